package token

import (
	"context"
	"errors"
	"math/big"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/AlexZinkM/token-wallet/internal/client"
	"github.com/AlexZinkM/token-wallet/internal/crypto"
	"github.com/AlexZinkM/token-wallet/internal/validation"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	crypto.SetScryptN(1 << 10)
	os.Exit(m.Run())
}

var (
	me        = ethcommon.HexToAddress("0x1111111111111111111111111111111111111111")
	recipient = "0x2222222222222222222222222222222222222222"
)

type fakeProvider struct {
	accounts  []ethcommon.Address
	err       error
	signerErr error
}

func (p *fakeProvider) RequestAccounts(context.Context) ([]ethcommon.Address, error) {
	return p.accounts, p.err
}

func (p *fakeProvider) Signer(context.Context) (*bind.TransactOpts, error) {
	if p.signerErr != nil {
		return nil, p.signerErr
	}
	return &bind.TransactOpts{From: me}, nil
}

type fakeToken struct {
	mu          sync.Mutex
	balances    map[ethcommon.Address]int64
	symbol      string
	symbolErr   error
	balanceErr  error
	transferErr error
	waitErr     error
	waitGate    chan struct{}
	waiting     chan struct{}
	nonce       uint64
	transfers   int
}

func newFakeToken(balance int64) *fakeToken {
	return &fakeToken{balances: map[ethcommon.Address]int64{me: balance}, symbol: "DUMMY"}
}

func (f *fakeToken) Symbol(context.Context) (string, error) {
	return f.symbol, f.symbolErr
}

func (f *fakeToken) BalanceOf(_ context.Context, owner ethcommon.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return big.NewInt(f.balances[owner]), nil
}

func (f *fakeToken) Transfer(_ context.Context, opts *bind.TransactOpts, to ethcommon.Address, amount *big.Int) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.transferErr != nil {
		return nil, f.transferErr
	}
	f.transfers++
	f.nonce++
	f.balances[opts.From] -= amount.Int64()
	f.balances[to] += amount.Int64()
	return types.NewTx(&types.LegacyTx{Nonce: f.nonce, To: &to}), nil
}

func (f *fakeToken) WaitMined(ctx context.Context, _ *types.Transaction) (*types.Receipt, error) {
	if f.waitGate != nil {
		close(f.waiting)
		select {
		case <-f.waitGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func newSession(p Provider, t Token, opts Options) *Session {
	opts.Logger = zerolog.Nop()
	return NewSession(p, t, opts)
}

func connected(t *testing.T, tok *fakeToken, opts Options) *Session {
	t.Helper()
	s := newSession(&fakeProvider{accounts: []ethcommon.Address{me}}, tok, opts)
	_, err := s.Connect(context.Background())
	require.NoError(t, err)
	return s
}

func TestConnectSuccess(t *testing.T) {
	s := newSession(&fakeProvider{accounts: []ethcommon.Address{me}}, newFakeToken(100), Options{})

	view, err := s.Connect(context.Background())
	require.NoError(t, err)
	assert.True(t, view.IsConnected)
	assert.False(t, view.IsConnecting)
	assert.Equal(t, me.Hex(), view.Address)
	assert.Equal(t, "100.0 DUMMY", view.Balance)
	assert.Empty(t, view.Error)
}

func TestConnectSymbolFallback(t *testing.T) {
	tok := newFakeToken(5)
	tok.symbolErr = errors.New("execution reverted")
	s := newSession(&fakeProvider{accounts: []ethcommon.Address{me}}, tok, Options{})

	view, err := s.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5.0 TOKEN", view.Balance)
}

func TestConnectWithoutProvider(t *testing.T) {
	s := newSession(nil, newFakeToken(1), Options{})

	view, err := s.Connect(context.Background())
	assert.ErrorIs(t, err, ErrNoProvider)
	assert.False(t, view.IsConnected)
	assert.False(t, view.IsConnecting)
	assert.Equal(t, ErrNoProvider.Error(), view.Error)
	assert.Equal(t, "0 DUMMY", view.Balance)
}

func TestConnectFailures(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		token    *fakeToken
		wantMsg  string
	}{
		{"rejected", &fakeProvider{err: errors.New("user rejected the request")}, newFakeToken(1), "user rejected the request"},
		{"no accounts", &fakeProvider{}, newFakeToken(1), validation.MsgConnectionFailed},
		{"empty message", &fakeProvider{err: errors.New("")}, newFakeToken(1), validation.MsgUnknownError},
		{"balance error", &fakeProvider{accounts: []ethcommon.Address{me}}, &fakeToken{balanceErr: errors.New("rpc down")}, "rpc down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(tt.provider, tt.token, Options{})
			view, err := s.Connect(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, view.Error)
			assert.False(t, view.IsConnected)
		})
	}
}

func TestConnectClearsPreviousError(t *testing.T) {
	p := &fakeProvider{err: errors.New("locked")}
	s := newSession(p, newFakeToken(1), Options{})
	_, err := s.Connect(context.Background())
	require.Error(t, err)

	p.err = nil
	p.accounts = []ethcommon.Address{me}
	view, err := s.Connect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, view.Error)
}

func TestTransferRequiresConnection(t *testing.T) {
	s := newSession(&fakeProvider{}, newFakeToken(10), Options{})

	_, err := s.Transfer(context.Background(), recipient, "1")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestTransferValidation(t *testing.T) {
	tok := newFakeToken(10)
	s := connected(t, tok, Options{})

	tests := []struct {
		to, amount string
		want       validation.Result
	}{
		{"0x123", "1", validation.Result{AddressError: validation.MsgInvalidAddress}},
		{recipient, "1.5", validation.Result{AmountError: validation.MsgOnlyPositiveInts}},
		{recipient, "11", validation.Result{AmountError: validation.MsgInsufficientBalance}},
		{recipient, "", validation.Result{}},
	}
	for _, tt := range tests {
		_, err := s.Transfer(context.Background(), tt.to, tt.amount)
		var ve *validation.Error
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, tt.want, ve.Result)
	}

	assert.Zero(t, tok.transfers)
	view := s.State()
	assert.False(t, view.IsTransferring)
	assert.Empty(t, view.Error)
}

func TestTransferSuccess(t *testing.T) {
	tok := newFakeToken(100)
	s := connected(t, tok, Options{})

	txHash, err := s.Transfer(context.Background(), " "+recipient+" ", " 10 ")
	require.NoError(t, err)
	assert.Len(t, txHash, 66)

	view := s.State()
	assert.False(t, view.IsTransferring)
	assert.Empty(t, view.Error)
	assert.Equal(t, "90.0 DUMMY", view.Balance)
	assert.Equal(t, txHash, view.LastTxHash)
	assert.Equal(t, int64(10), tok.balances[ethcommon.HexToAddress(recipient)])
}

func TestTransferWholeBalance(t *testing.T) {
	tok := newFakeToken(7)
	s := connected(t, tok, Options{})

	_, err := s.Transfer(context.Background(), recipient, "7")
	require.NoError(t, err)
	assert.Equal(t, "0.0 DUMMY", s.State().Balance)
}

func TestTransferFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *fakeProvider, tok *fakeToken)
		want  string
	}{
		{"signer", func(p *fakeProvider, _ *fakeToken) { p.signerErr = errors.New("locked") }, "locked"},
		{"send", func(_ *fakeProvider, tok *fakeToken) { tok.transferErr = errors.New("insufficient funds for gas") }, "insufficient funds for gas"},
		{"reverted", func(_ *fakeProvider, tok *fakeToken) { tok.waitErr = client.ErrReverted }, client.ErrReverted.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{accounts: []ethcommon.Address{me}}
			tok := newFakeToken(50)
			s := newSession(p, tok, Options{})
			_, err := s.Connect(context.Background())
			require.NoError(t, err)

			tt.setup(p, tok)
			_, err = s.Transfer(context.Background(), recipient, "5")
			require.Error(t, err)

			view := s.State()
			assert.False(t, view.IsTransferring)
			assert.Equal(t, tt.want, view.Error)
			assert.Equal(t, "50.0 DUMMY", view.Balance)
		})
	}
}

func TestTransferReceiptTimeout(t *testing.T) {
	tok := newFakeToken(50)
	tok.waitGate = make(chan struct{})
	tok.waiting = make(chan struct{})
	s := connected(t, tok, Options{ReceiptTimeout: 10 * time.Millisecond})

	_, err := s.Transfer(context.Background(), recipient, "5")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, s.State().IsTransferring)
}

func TestOneRequestInFlight(t *testing.T) {
	tok := newFakeToken(50)
	s := connected(t, tok, Options{})
	tok.waitGate = make(chan struct{})
	tok.waiting = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := s.Transfer(context.Background(), recipient, "5")
		done <- err
	}()
	<-tok.waiting

	assert.True(t, s.State().IsTransferring)

	_, err := s.Connect(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	_, err = s.Transfer(context.Background(), recipient, "1")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = s.RefreshBalance(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	_, err = s.Disconnect()
	assert.ErrorIs(t, err, ErrBusy)

	close(tok.waitGate)
	require.NoError(t, <-done)
	assert.False(t, s.State().IsTransferring)
}

func TestTransferCooldown(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tok := newFakeToken(50)
	s := connected(t, tok, Options{Cooldown: time.Minute, Now: func() time.Time { return now }})

	_, err := s.Transfer(context.Background(), recipient, "1")
	require.NoError(t, err)

	now = now.Add(20 * time.Second)
	_, err = s.Transfer(context.Background(), recipient, "1")
	assert.ErrorIs(t, err, ErrCooldown)
	assert.Contains(t, err.Error(), "40s")
	assert.Empty(t, s.State().Error)

	now = now.Add(time.Minute)
	_, err = s.Transfer(context.Background(), recipient, "1")
	require.NoError(t, err)
	assert.Equal(t, 2, tok.transfers)
}

func TestCooldownStartsOnceBroadcast(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tok := newFakeToken(50)
	tok.waitErr = errors.New("receipt timeout")
	s := connected(t, tok, Options{Cooldown: time.Hour, Now: func() time.Time { return now }})

	txHash, err := s.Transfer(context.Background(), recipient, "1")
	require.EqualError(t, err, "receipt timeout")
	require.NotEmpty(t, txHash)

	view := s.State()
	assert.Equal(t, "receipt timeout", view.Error)
	assert.Equal(t, txHash, view.LastTxHash)

	tok.waitErr = nil
	_, err = s.Transfer(context.Background(), recipient, "1")
	assert.ErrorIs(t, err, ErrCooldown)
	assert.Equal(t, 1, tok.transfers)
}

func TestCooldownNotStartedWhenSendFails(t *testing.T) {
	tok := newFakeToken(50)
	tok.transferErr = errors.New("insufficient funds for gas")
	s := connected(t, tok, Options{Cooldown: time.Hour})

	txHash, err := s.Transfer(context.Background(), recipient, "1")
	require.Error(t, err)
	assert.Empty(t, txHash)
	assert.Empty(t, s.State().LastTxHash)

	tok.transferErr = nil
	_, err = s.Transfer(context.Background(), recipient, "1")
	require.NoError(t, err)
}

func TestRefreshBalance(t *testing.T) {
	tok := newFakeToken(10)
	s := newSession(&fakeProvider{accounts: []ethcommon.Address{me}}, tok, Options{})

	_, err := s.RefreshBalance(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = s.Connect(context.Background())
	require.NoError(t, err)

	tok.balances[me] = 12
	view, err := s.RefreshBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12.0 DUMMY", view.Balance)

	tok.balanceErr = errors.New("rpc down")
	view, err = s.RefreshBalance(context.Background())
	require.Error(t, err)
	assert.Equal(t, "rpc down", view.Error)
	assert.Equal(t, "12.0 DUMMY", view.Balance)

	tok.balanceErr = nil
	view, err = s.RefreshBalance(context.Background())
	require.NoError(t, err)
	assert.Empty(t, view.Error)
}

func TestDisconnect(t *testing.T) {
	s := connected(t, newFakeToken(10), Options{})

	view, err := s.Disconnect()
	require.NoError(t, err)
	assert.False(t, view.IsConnected)
	assert.Equal(t, "0 DUMMY", view.Balance)
	assert.Nil(t, s.Snapshot().Address)
}
