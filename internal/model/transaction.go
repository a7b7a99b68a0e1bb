package model

import (
	"fmt"

	"github.com/AlexZinkM/token-wallet/internal/common"
)

// TransactionType transaction type
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// Transaction represents a token transfer touching the wallet
type Transaction struct {
	Type        TransactionType `json:"type"`
	TxHash      string          `json:"txHash"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Amount      string          `json:"amount"`
	Symbol      string          `json:"symbol"`
	BlockNumber uint64          `json:"blockNumber"`
	LogIndex    uint            `json:"logIndex"`
}

// LogResponse represents response for GET /api/wallet/transactions
type LogResponse struct {
	Address      string        `json:"address"`
	TotalIncome  string        `json:"total_income"`
	TotalSpent   string        `json:"total_spent"`
	FromBlock    uint64        `json:"fromBlock"`
	ToBlock      uint64        `json:"toBlock"`
	Transactions []Transaction `json:"transactions"`
}

// LogRequest represents request parameters for GET /api/wallet/transactions
type LogRequest struct {
	Type      *TransactionType `form:"type"`
	TxHash    *string          `form:"txHash"`
	MinAmount *string          `form:"minAmount"`
	MaxAmount *string          `form:"maxAmount"`
}

// Validate validates LogRequest filter parameters.
func (r *LogRequest) Validate() error {
	if r.Type != nil && *r.Type != TransactionTypeDebit && *r.Type != TransactionTypeCredit {
		return fmt.Errorf("type must be DEBIT or CREDIT")
	}
	for _, a := range []*string{r.MinAmount, r.MaxAmount} {
		if a == nil {
			continue
		}
		if _, err := common.ParseUnits(*a, common.TokenDecimals); err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
	}
	if r.MinAmount != nil && r.MaxAmount != nil {
		cmp, err := common.CompareAmounts(*r.MinAmount, *r.MaxAmount, common.TokenDecimals)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		if cmp == 1 {
			return fmt.Errorf("minAmount must be less than or equal to maxAmount")
		}
	}
	return nil
}
