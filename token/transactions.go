package token

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/AlexZinkM/token-wallet/internal/client"
	"github.com/AlexZinkM/token-wallet/internal/common"
	"github.com/AlexZinkM/token-wallet/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// History reads past Transfer events of the token.
type History interface {
	Symbol(ctx context.Context) (string, error)
	BlockNumber(ctx context.Context) (uint64, error)
	TransferLogs(ctx context.Context, owner ethcommon.Address, fromBlock, toBlock uint64) ([]client.TransferEvent, error)
}

// GetTransactions gets transfers of the wallet over the last blockRange blocks, with filtering
func GetTransactions(ctx context.Context, history History, address string, blockRange uint64, req *model.LogRequest) (*model.LogResponse, error) {
	if !ethcommon.IsHexAddress(address) {
		return nil, ErrNotConnected
	}
	owner := ethcommon.HexToAddress(address)

	head, err := history.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest block: %w", err)
	}
	var fromBlock uint64
	if blockRange > 0 && head >= blockRange {
		fromBlock = head - blockRange + 1
	}

	events, err := history.TransferLogs(ctx, owner, fromBlock, head)
	if err != nil {
		return nil, err
	}
	symbol := readSymbol(ctx, history)

	var minAmount, maxAmount *big.Int
	if req.MinAmount != nil {
		if minAmount, err = common.ParseUnits(*req.MinAmount, common.TokenDecimals); err != nil {
			return nil, fmt.Errorf("invalid min amount: %w", err)
		}
	}
	if req.MaxAmount != nil {
		if maxAmount, err = common.ParseUnits(*req.MaxAmount, common.TokenDecimals); err != nil {
			return nil, fmt.Errorf("invalid max amount: %w", err)
		}
	}

	totalIncome := new(big.Int)
	totalSpent := new(big.Int)
	result := make([]model.Transaction, 0, len(events))
	for _, ev := range events {
		// Incoming transfers are DEBIT, outgoing CREDIT; a self transfer counts as CREDIT
		txType := model.TransactionTypeDebit
		if ev.From == owner {
			txType = model.TransactionTypeCredit
		}

		if req.Type != nil && *req.Type != txType {
			continue
		}
		if req.TxHash != nil && !equalHash(*req.TxHash, ev.TxHash) {
			continue
		}
		if minAmount != nil && ev.Value.Cmp(minAmount) < 0 {
			continue
		}
		if maxAmount != nil && ev.Value.Cmp(maxAmount) > 0 {
			continue
		}

		switch txType {
		case model.TransactionTypeDebit:
			totalIncome.Add(totalIncome, ev.Value)
		case model.TransactionTypeCredit:
			totalSpent.Add(totalSpent, ev.Value)
		}

		result = append(result, model.Transaction{
			Type:        txType,
			TxHash:      ev.TxHash.Hex(),
			From:        ev.From.Hex(),
			To:          ev.To.Hex(),
			Amount:      common.FormatUnits(ev.Value, common.TokenDecimals),
			Symbol:      symbol,
			BlockNumber: ev.BlockNumber,
			LogIndex:    ev.LogIndex,
		})
	}

	// Newest first
	sort.Slice(result, func(i, j int) bool {
		if result[i].BlockNumber != result[j].BlockNumber {
			return result[i].BlockNumber > result[j].BlockNumber
		}
		return result[i].LogIndex > result[j].LogIndex
	})

	return &model.LogResponse{
		Address:      owner.Hex(),
		TotalIncome:  common.FormatUnits(totalIncome, common.TokenDecimals),
		TotalSpent:   common.FormatUnits(totalSpent, common.TokenDecimals),
		FromBlock:    fromBlock,
		ToBlock:      head,
		Transactions: result,
	}, nil
}

func equalHash(s string, h ethcommon.Hash) bool {
	if len(s) != 66 {
		return false
	}
	return ethcommon.HexToHash(s) == h
}
