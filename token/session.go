package token

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/AlexZinkM/token-wallet/internal/provider"
	"github.com/AlexZinkM/token-wallet/internal/state"
	"github.com/AlexZinkM/token-wallet/internal/validation"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
)

var (
	// ErrBusy is returned when another wallet request is still running.
	ErrBusy = errors.New("another wallet request is in progress")
	// ErrNotConnected is returned by operations that need a connected wallet.
	ErrNotConnected = errors.New("wallet not connected")
	// ErrCooldown is returned when a transfer is attempted too soon after the previous one.
	ErrCooldown = errors.New("cooldown active")
	// ErrNoProvider is returned when no wallet provider is available.
	ErrNoProvider = provider.ErrNoProvider
)

// Provider requests accounts and signs transactions.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]ethcommon.Address, error)
	Signer(ctx context.Context) (*bind.TransactOpts, error)
}

// Token is the token contract the wallet reads and transfers.
type Token interface {
	Symbol(ctx context.Context) (string, error)
	BalanceOf(ctx context.Context, owner ethcommon.Address) (*big.Int, error)
	Transfer(ctx context.Context, opts *bind.TransactOpts, to ethcommon.Address, amount *big.Int) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Options tune a Session.
type Options struct {
	Cooldown       time.Duration
	ReceiptTimeout time.Duration
	Logger         zerolog.Logger
	Now            func() time.Time
}

// Session drives the wallet state through connect, transfer and refresh.
// At most one of those runs at a time.
type Session struct {
	provider Provider
	token    Token
	store    *state.Store
	log      zerolog.Logger

	cooldown       time.Duration
	receiptTimeout time.Duration
	now            func() time.Time

	inFlight     sync.Mutex
	lastTransfer time.Time
}

// NewSession creates a session with the initial wallet state.
func NewSession(p Provider, t Token, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReceiptTimeout <= 0 {
		opts.ReceiptTimeout = 2 * time.Minute
	}
	return &Session{
		provider:       p,
		token:          t,
		store:          state.NewStore(),
		log:            opts.Logger.With().Str("component", "session").Logger(),
		cooldown:       opts.Cooldown,
		receiptTimeout: opts.ReceiptTimeout,
		now:            opts.Now,
	}
}

// State returns the current selector view.
func (s *Session) State() state.View {
	return s.store.Snapshot().View()
}

// Snapshot returns the raw wallet state.
func (s *Session) Snapshot() state.WalletState {
	return s.store.Snapshot()
}

// Connect requests the provider's account and reads its balance.
func (s *Session) Connect(ctx context.Context) (state.View, error) {
	if !s.inFlight.TryLock() {
		return s.State(), ErrBusy
	}
	defer s.inFlight.Unlock()

	s.store.ConnectRequest()

	address, balance, err := s.connect(ctx)
	if err != nil {
		msg := errorMessage(err)
		s.log.Warn().Err(err).Msg("connect failed")
		s.store.ConnectFailure(msg)
		return s.State(), err
	}

	s.store.ConnectSuccess(address.Hex(), balance)
	s.log.Info().Str("address", address.Hex()).Str("balance", balance).Msg("wallet connected")
	return s.State(), nil
}

func (s *Session) connect(ctx context.Context) (ethcommon.Address, string, error) {
	if s.provider == nil {
		return ethcommon.Address{}, "", ErrNoProvider
	}

	accounts, err := s.provider.RequestAccounts(ctx)
	if err != nil {
		return ethcommon.Address{}, "", err
	}
	if len(accounts) == 0 {
		return ethcommon.Address{}, "", errors.New(validation.MsgConnectionFailed)
	}
	address := accounts[0]

	balance, err := readPrettyBalance(ctx, s.token, address)
	if err != nil {
		return ethcommon.Address{}, "", err
	}
	return address, balance, nil
}

// RefreshBalance re-reads the balance of the connected account.
func (s *Session) RefreshBalance(ctx context.Context) (state.View, error) {
	if !s.inFlight.TryLock() {
		return s.State(), ErrBusy
	}
	defer s.inFlight.Unlock()

	snap := s.store.Snapshot()
	if !snap.IsConnected() {
		return snap.View(), ErrNotConnected
	}

	s.store.RefreshRequest()
	balance, err := readPrettyBalance(ctx, s.token, ethcommon.HexToAddress(snap.AddressOrEmpty()))
	if err != nil {
		s.log.Warn().Err(err).Msg("balance refresh failed")
		s.store.RefreshFailure(errorMessage(err))
		return s.State(), err
	}

	s.store.RefreshSuccess(balance)
	return s.State(), nil
}

// Disconnect forgets the connected account.
func (s *Session) Disconnect() (state.View, error) {
	if !s.inFlight.TryLock() {
		return s.State(), ErrBusy
	}
	defer s.inFlight.Unlock()

	s.store.Disconnect()
	s.log.Info().Msg("wallet disconnected")
	return s.State(), nil
}

// errorMessage is the text surfaced in the wallet state for err.
func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return validation.MsgUnknownError
	}
	return err.Error()
}
