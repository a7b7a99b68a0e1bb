// Package state keeps the in-memory wallet state and the transitions that
// mutate it. Nothing here is persisted.
package state

import (
	"sync"
)

// DefaultBalance is shown before a wallet is connected.
const DefaultBalance = "0 DUMMY"

// WalletState is the single piece of client state.
// Address is nil iff the wallet is disconnected.
type WalletState struct {
	Address        *string `json:"address"`
	Balance        string  `json:"balance"`
	IsConnecting   bool    `json:"isConnecting"`
	IsTransferring bool    `json:"isTransferring"`
	Error          *string `json:"error"`
	LastTxHash     string  `json:"lastTxHash,omitempty"`
}

// Initial returns the state the process starts with.
func Initial() WalletState {
	return WalletState{Balance: DefaultBalance}
}

// Store guards a WalletState. All mutation goes through the transition methods.
type Store struct {
	mu    sync.RWMutex
	state WalletState
}

// NewStore creates a store holding the initial state.
func NewStore() *Store {
	return &Store{state: Initial()}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() WalletState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if out.Address != nil {
		a := *out.Address
		out.Address = &a
	}
	if out.Error != nil {
		e := *out.Error
		out.Error = &e
	}
	return out
}

func (s *Store) update(fn func(st *WalletState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

func ptr(v string) *string { return &v }

func (s *Store) ConnectRequest() {
	s.update(func(st *WalletState) {
		st.IsConnecting = true
		st.Error = nil
	})
}

func (s *Store) ConnectSuccess(address, balance string) {
	s.update(func(st *WalletState) {
		st.IsConnecting = false
		st.Address = ptr(address)
		st.Balance = balance
		st.Error = nil
	})
}

func (s *Store) ConnectFailure(msg string) {
	s.update(func(st *WalletState) {
		st.IsConnecting = false
		st.Error = ptr(msg)
	})
}

func (s *Store) TransferRequest() {
	s.update(func(st *WalletState) {
		st.IsTransferring = true
		st.Error = nil
	})
}

// TransferSent records the hash of a broadcast transfer while it is still pending.
func (s *Store) TransferSent(txHash string) {
	s.update(func(st *WalletState) {
		st.LastTxHash = txHash
	})
}

func (s *Store) TransferSuccess(txHash string) {
	s.update(func(st *WalletState) {
		st.IsTransferring = false
		st.Error = nil
		st.LastTxHash = txHash
	})
}

func (s *Store) TransferFailure(msg string) {
	s.update(func(st *WalletState) {
		st.IsTransferring = false
		st.Error = ptr(msg)
	})
}

func (s *Store) SetBalance(balance string) {
	s.update(func(st *WalletState) {
		st.Balance = balance
	})
}

func (s *Store) RefreshRequest() {
	s.update(func(st *WalletState) {
		st.Error = nil
	})
}

func (s *Store) RefreshSuccess(balance string) {
	s.update(func(st *WalletState) {
		st.Balance = balance
		st.Error = nil
	})
}

func (s *Store) RefreshFailure(msg string) {
	s.update(func(st *WalletState) {
		st.Error = ptr(msg)
	})
}

// Disconnect drops the account and returns to the initial state.
func (s *Store) Disconnect() {
	s.update(func(st *WalletState) {
		*st = Initial()
	})
}
