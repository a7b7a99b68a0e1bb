package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// erc20ABI covers the subset of ERC-20 the wallet needs
const erc20ABI = `[
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]}
]`

// ErrReverted is returned when a mined transaction has failed status.
var ErrReverted = errors.New("transaction reverted")

// Backend is the JSON-RPC surface the token client needs. *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Dial connects to an Ethereum JSON-RPC endpoint
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	c, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}
	return c, nil
}

// TokenClient is a client for an ERC-20 token contract
type TokenClient struct {
	backend  Backend
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
}

// NewTokenClient creates a client for the token deployed at tokenAddress.
func NewTokenClient(backend Backend, tokenAddress string) (*TokenClient, error) {
	if tokenAddress == "" {
		return nil, errors.New("missing TOKEN_ADDRESS")
	}
	if !common.IsHexAddress(tokenAddress) {
		return nil, fmt.Errorf("invalid token address: %s", tokenAddress)
	}

	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token ABI: %w", err)
	}

	address := common.HexToAddress(tokenAddress)
	return &TokenClient{
		backend:  backend,
		address:  address,
		abi:      parsed,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the token contract address
func (c *TokenClient) Address() common.Address {
	return c.address
}

// Symbol calls symbol()
func (c *TokenClient) Symbol(ctx context.Context) (string, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "symbol"); err != nil {
		return "", fmt.Errorf("failed to get token symbol: %w", err)
	}
	if len(out) == 0 {
		return "", errors.New("empty symbol response")
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

// BalanceOf calls balanceOf(owner) and returns raw units
func (c *TokenClient) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", owner); err != nil {
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}
	if len(out) == 0 {
		return nil, errors.New("empty balance response")
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// Transfer signs and sends transfer(to, amount) using opts. It does not wait for mining.
func (c *TokenClient) Transfer(ctx context.Context, opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	if opts == nil {
		return nil, errors.New("missing signer")
	}
	txOpts := *opts
	txOpts.Context = ctx

	tx, err := c.contract.Transact(&txOpts, "transfer", to, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to send transfer: %w", err)
	}
	return tx, nil
}

// WaitMined blocks until tx is mined or ctx is done. A reverted receipt is ErrReverted.
func (c *TokenClient) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return receipt, fmt.Errorf("%w: %s", ErrReverted, tx.Hash().Hex())
	}
	return receipt, nil
}

// ChainID returns the chain id reported by the node
func (c *TokenClient) ChainID(ctx context.Context) (*big.Int, error) {
	return c.backend.ChainID(ctx)
}

// BlockNumber returns the latest block number
func (c *TokenClient) BlockNumber(ctx context.Context) (uint64, error) {
	return c.backend.BlockNumber(ctx)
}

// TransferEvent is a decoded Transfer log
type TransferEvent struct {
	From        common.Address
	To          common.Address
	Value       *big.Int
	TxHash      common.Hash
	BlockNumber uint64
	LogIndex    uint
}

// TransferLogs returns Transfer events sent or received by owner in [fromBlock, toBlock].
func (c *TokenClient) TransferLogs(ctx context.Context, owner common.Address, fromBlock, toBlock uint64) ([]TransferEvent, error) {
	sig := c.abi.Events["Transfer"].ID
	ownerTopic := common.BytesToHash(owner.Bytes())

	queries := [][][]common.Hash{
		{{sig}, {ownerTopic}},      // sent
		{{sig}, nil, {ownerTopic}}, // received
	}

	seen := make(map[string]bool)
	events := make([]TransferEvent, 0, 8)
	for _, topics := range queries {
		logs, err := c.backend.FilterLogs(ctx, ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(fromBlock),
			ToBlock:   new(big.Int).SetUint64(toBlock),
			Addresses: []common.Address{c.address},
			Topics:    topics,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to filter transfer logs: %w", err)
		}

		for _, l := range logs {
			key := fmt.Sprintf("%s:%d", l.TxHash.Hex(), l.Index)
			if seen[key] {
				continue // self transfer matches both queries
			}
			ev, err := c.parseTransferLog(l)
			if err != nil {
				return nil, err
			}
			seen[key] = true
			events = append(events, ev)
		}
	}
	return events, nil
}

func (c *TokenClient) parseTransferLog(l types.Log) (TransferEvent, error) {
	if len(l.Topics) != 3 {
		return TransferEvent{}, fmt.Errorf("unexpected Transfer topics in %s: %d", l.TxHash.Hex(), len(l.Topics))
	}
	values, err := c.abi.Unpack("Transfer", l.Data)
	if err != nil {
		return TransferEvent{}, fmt.Errorf("failed to decode Transfer log: %w", err)
	}
	if len(values) != 1 {
		return TransferEvent{}, fmt.Errorf("unexpected Transfer data in %s", l.TxHash.Hex())
	}
	value, ok := values[0].(*big.Int)
	if !ok {
		return TransferEvent{}, fmt.Errorf("unexpected Transfer value type %T", values[0])
	}

	return TransferEvent{
		From:        common.BytesToAddress(l.Topics[1].Bytes()),
		To:          common.BytesToAddress(l.Topics[2].Bytes()),
		Value:       value,
		TxHash:      l.TxHash,
		BlockNumber: l.BlockNumber,
		LogIndex:    l.Index,
	}, nil
}
