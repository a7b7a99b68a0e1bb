package state

// AddressOrEmpty returns the connected address or "" when disconnected.
func (w WalletState) AddressOrEmpty() string {
	if w.Address == nil {
		return ""
	}
	return *w.Address
}

func (w WalletState) IsConnected() bool {
	return w.Address != nil && *w.Address != ""
}

// ErrorOrEmpty returns the last error message or "".
func (w WalletState) ErrorOrEmpty() string {
	if w.Error == nil {
		return ""
	}
	return *w.Error
}

// PrettyBalance falls back to DefaultBalance when no balance is known.
func (w WalletState) PrettyBalance() string {
	if w.Balance == "" {
		return DefaultBalance
	}
	return w.Balance
}

// Busy reports whether a connect or transfer request is running.
func (w WalletState) Busy() bool {
	return w.IsConnecting || w.IsTransferring
}

// View is the flattened selector output served to clients.
type View struct {
	Address        string `json:"address,omitempty"`
	IsConnected    bool   `json:"isConnected"`
	IsConnecting   bool   `json:"isConnecting"`
	IsTransferring bool   `json:"isTransferring"`
	Balance        string `json:"balance"`
	Error          string `json:"error,omitempty"`
	LastTxHash     string `json:"lastTxHash,omitempty"`
}

func (w WalletState) View() View {
	return View{
		Address:        w.AddressOrEmpty(),
		IsConnected:    w.IsConnected(),
		IsConnecting:   w.IsConnecting,
		IsTransferring: w.IsTransferring,
		Balance:        w.PrettyBalance(),
		Error:          w.ErrorOrEmpty(),
		LastTxHash:     w.LastTxHash,
	}
}
