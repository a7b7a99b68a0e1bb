// Package page builds the view models of the three wallet pages and decides
// when a page hands the user over to another one.
package page

import (
	"github.com/AlexZinkM/token-wallet/internal/common"
	"github.com/AlexZinkM/token-wallet/internal/state"
	"github.com/AlexZinkM/token-wallet/internal/validation"
)

// Routes
const (
	RouteHome     = "/"
	RouteWallet   = "/wallet"
	RouteTransfer = "/transfer"
)

// UI labels
const (
	LabelConnect     = "Connect"
	LabelWallet      = "Wallet"
	LabelTransfer    = "Transfer"
	LabelSend        = "Send"
	LabelBack        = "Back"
	LabelAddress     = "Address"
	LabelAmount      = "Amount"
	TransferSubtitle = "Send tokens to an account"
)

// Home is the connect page.
type Home struct {
	Action       string `json:"action"`
	IsConnecting bool   `json:"isConnecting"`
	Error        string `json:"error,omitempty"`
}

// HomeView returns the home page, or RouteWallet when the wallet is connected,
// idle and without error.
func HomeView(w state.WalletState) (Home, string) {
	if w.IsConnected() && !w.IsConnecting && w.Error == nil {
		return Home{}, RouteWallet
	}
	return Home{
		Action:       LabelConnect,
		IsConnecting: w.IsConnecting,
		Error:        w.ErrorOrEmpty(),
	}, ""
}

// Wallet is the account overview page.
type Wallet struct {
	Title        string `json:"title"`
	Address      string `json:"address"`
	ShortAddress string `json:"shortAddress"`
	Balance      string `json:"balance"`
	TransferLink string `json:"transferLink"`
}

// WalletView returns the wallet page, or RouteHome when disconnected.
func WalletView(w state.WalletState) (Wallet, string) {
	if !w.IsConnected() {
		return Wallet{}, RouteHome
	}
	address := w.AddressOrEmpty()
	return Wallet{
		Title:        LabelWallet,
		Address:      address,
		ShortAddress: common.ShortAddress(address),
		Balance:      w.PrettyBalance(),
		TransferLink: RouteTransfer,
	}, ""
}

// Field is one input of the transfer form.
type Field struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
	Error    string `json:"error,omitempty"`
}

// Transfer is the send form.
type Transfer struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Balance        string `json:"balance"`
	Amount         Field  `json:"amount"`
	To             Field  `json:"to"`
	IsTransferring bool   `json:"isTransferring"`
	SubmitLabel    string `json:"submitLabel"`
	SubmitEnabled  bool   `json:"submitEnabled"`
	BackLabel      string `json:"backLabel"`
	BackLink       string `json:"backLink"`
	Error          string `json:"error,omitempty"`
}

// TransferView renders the form for the given input. The request error is
// only shown once no transfer is running.
func TransferView(w state.WalletState, to, amount string) Transfer {
	res := validation.CheckTransfer(to, amount, w.PrettyBalance())

	v := Transfer{
		Title:          LabelTransfer,
		Description:    TransferSubtitle,
		Balance:        w.PrettyBalance(),
		Amount:         Field{Label: LabelAmount, Value: amount, Disabled: w.IsTransferring, Error: res.AmountError},
		To:             Field{Label: LabelAddress, Value: to, Disabled: w.IsTransferring, Error: res.AddressError},
		IsTransferring: w.IsTransferring,
		SubmitLabel:    LabelSend,
		SubmitEnabled:  res.CanSend && !w.IsTransferring,
		BackLabel:      LabelBack,
		BackLink:       RouteWallet,
	}
	if !w.IsTransferring {
		v.Error = w.ErrorOrEmpty()
	}
	return v
}
