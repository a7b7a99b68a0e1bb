package token

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/token-wallet/internal/common"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// fallbackSymbol is shown when the contract does not answer symbol()
const fallbackSymbol = "TOKEN"

// readPrettyBalance reads balanceOf(address) and renders it as "<amount> <symbol>"
func readPrettyBalance(ctx context.Context, token Token, address ethcommon.Address) (string, error) {
	if token == nil {
		return "", fmt.Errorf("token contract not configured")
	}

	raw, err := token.BalanceOf(ctx, address)
	if err != nil {
		return "", err
	}

	return common.PrettyBalance(raw, common.TokenDecimals, readSymbol(ctx, token)), nil
}

// readSymbol calls symbol() and falls back to fallbackSymbol on any error
func readSymbol(ctx context.Context, token interface {
	Symbol(ctx context.Context) (string, error)
}) string {
	symbol, err := token.Symbol(ctx)
	if err != nil || symbol == "" {
		return fallbackSymbol
	}
	return symbol
}
