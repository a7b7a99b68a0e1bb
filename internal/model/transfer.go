package model

import "github.com/AlexZinkM/token-wallet/internal/state"

// TransferRequest represents request for POST /api/wallet/transfer
type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// TransferResponse represents response for POST /api/wallet/transfer
type TransferResponse struct {
	TxHash string     `json:"txHash"`
	State  state.View `json:"state"`
}
