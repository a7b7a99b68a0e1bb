package token

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AlexZinkM/token-wallet/internal/common"
	"github.com/AlexZinkM/token-wallet/internal/validation"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Transfer sends amount tokens to the address to and waits for the receipt.
// The form is validated against the current balance before anything is signed.
func (s *Session) Transfer(ctx context.Context, to, amount string) (string, error) {
	if !s.inFlight.TryLock() {
		return "", ErrBusy
	}
	defer s.inFlight.Unlock()

	snap := s.store.Snapshot()
	if !snap.IsConnected() {
		return "", ErrNotConnected
	}

	if res := validation.CheckTransfer(to, amount, snap.PrettyBalance()); !res.CanSend {
		return "", &validation.Error{Result: res}
	}

	// Check cooldown
	if s.cooldown > 0 && !s.lastTransfer.IsZero() {
		if elapsed := s.now().Sub(s.lastTransfer); elapsed < s.cooldown {
			remaining := s.cooldown - elapsed
			return "", fmt.Errorf("%w, please wait %v", ErrCooldown, remaining.Round(time.Second))
		}
	}

	s.store.TransferRequest()

	txHash, balance, err := s.transfer(ctx, to, amount)
	if err != nil {
		s.log.Warn().Err(err).Str("to", to).Str("amount", amount).Msg("transfer failed")
		s.store.TransferFailure(errorMessage(err))
		return txHash, err
	}

	s.store.TransferSuccess(txHash)
	s.store.SetBalance(balance)
	s.log.Info().Str("tx", txHash).Str("to", to).Str("amount", amount).Msg("transfer mined")
	return txHash, nil
}

func (s *Session) transfer(ctx context.Context, to, amount string) (string, string, error) {
	if s.provider == nil {
		return "", "", ErrNoProvider
	}

	signer, err := s.provider.Signer(ctx)
	if err != nil {
		return "", "", err
	}

	value, err := common.ParseUnits(strings.TrimSpace(amount), common.TokenDecimals)
	if err != nil {
		return "", "", fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := s.token.Transfer(ctx, signer, ethcommon.HexToAddress(strings.TrimSpace(to)), value)
	if err != nil {
		return "", "", err
	}
	txHash := tx.Hash().Hex()

	// Once broadcast the tx may be mined whatever happens next.
	s.lastTransfer = s.now()
	s.store.TransferSent(txHash)

	waitCtx, cancel := context.WithTimeout(ctx, s.receiptTimeout)
	defer cancel()
	if _, err := s.token.WaitMined(waitCtx, tx); err != nil {
		return txHash, "", err
	}

	balance, err := readPrettyBalance(ctx, s.token, signer.From)
	if err != nil {
		return txHash, "", err
	}
	return txHash, balance, nil
}
