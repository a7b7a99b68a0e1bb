package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/token-wallet/internal/config"
	"github.com/AlexZinkM/token-wallet/internal/model"
	"github.com/AlexZinkM/token-wallet/internal/state"
	"github.com/AlexZinkM/token-wallet/internal/validation"
	"github.com/AlexZinkM/token-wallet/token"

	"github.com/rs/zerolog"
)

// Session is the wallet session the handlers drive.
type Session interface {
	State() state.View
	Snapshot() state.WalletState
	Connect(ctx context.Context) (state.View, error)
	RefreshBalance(ctx context.Context) (state.View, error)
	Disconnect() (state.View, error)
	Transfer(ctx context.Context, to, amount string) (string, error)
}

// Settings holds the values the handlers take from configuration.
type Settings struct {
	FilePath   string
	BlockRange uint64
	Password   func() ([]byte, error)
}

// SettingsFromConfig reads Settings from the global config.
func SettingsFromConfig() (Settings, error) {
	filePath := config.GetWalletFilePath()
	if filePath == "" {
		return Settings{}, errors.New("WALLET_FILE_PATH not set")
	}
	return Settings{
		FilePath:   filePath,
		BlockRange: config.GetHistoryBlockRange(),
		Password:   config.GetWalletPasswordBytes,
	}, nil
}

// WalletHandler serves the wallet pages and JSON operations
type WalletHandler struct {
	session    Session
	history    token.History
	filePath   string
	blockRange uint64
	password   func() ([]byte, error)
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(session Session, history token.History, s Settings) (*WalletHandler, error) {
	if session == nil {
		return nil, errors.New("wallet session is required")
	}
	if s.Password == nil {
		return nil, errors.New("password source is required")
	}
	return &WalletHandler{
		session:    session,
		history:    history,
		filePath:   s.FilePath,
		blockRange: s.BlockRange,
		password:   s.Password,
	}, nil
}

// Generate handles POST /api/wallet/generate
// @Summary      Generate new wallet
// @Description  Generates a new secp256k1 key and saves it encrypted to the .wlt key file
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      500  {object}  model.ErrorResponse
// @Router       /api/wallet/generate [post]
func (h *WalletHandler) Generate(w http.ResponseWriter, r *http.Request) {
	passwordBytes, err := h.password()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error(), Code: model.CodeInternal})
		return
	}
	defer clear(passwordBytes)

	address, err := token.GenerateWallet(h.filePath, passwordBytes)
	if err != nil {
		if token.IsFileExistsError(err) {
			writeError(w, r, err)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("generate wallet")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: err.Error(), Code: model.CodeInternal})
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Address: address,
	})
}

// Connect handles POST /api/wallet/connect
// @Summary      Connect wallet
// @Description  Unlocks the key file, reads the account and its token balance
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  state.View
// @Failure      409  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /api/wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.Connect(context.WithoutCancel(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Disconnect handles POST /api/wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Forgets the connected account and resets the wallet state
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  state.View
// @Failure      409  {object}  model.ErrorResponse
// @Router       /api/wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.Disconnect()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// State handles GET /api/wallet/state
// @Summary      Wallet state
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  state.View
// @Router       /api/wallet/state [get]
func (h *WalletHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.State())
}

// RefreshBalance handles POST /api/wallet/balance/refresh
// @Summary      Refresh balance
// @Description  Re-reads the token balance of the connected account
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  state.View
// @Failure      409  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /api/wallet/balance/refresh [post]
func (h *WalletHandler) RefreshBalance(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.RefreshBalance(context.WithoutCancel(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Transfer handles POST /api/wallet/transfer
// @Summary      Send tokens
// @Description  Validates the form, sends the transfer and waits until it is mined
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.TransferRequest  true  "Transfer data"
// @Success      200      {object}  model.TransferResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse  "txHash is set when the tx was already broadcast"
// @Router       /api/wallet/transfer [post]
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req model.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeValidationFailed})
		return
	}

	txHash, err := h.session.Transfer(context.WithoutCancel(r.Context()), req.To, req.Amount)
	if err != nil {
		status, resp := errorResponse(err)
		resp.TxHash = txHash
		logError(r, err, status, resp)
		writeJSON(w, status, resp)
		return
	}

	writeJSON(w, http.StatusOK, model.TransferResponse{
		TxHash: txHash,
		State:  h.session.State(),
	})
}

// ValidateTransfer handles GET /api/wallet/transfer/validate
// @Summary      Validate transfer form
// @Description  Checks address and amount against the current balance without sending anything
// @Tags         wallet
// @Produce      json
// @Param        to      query     string  false  "Recipient address"
// @Param        amount  query     string  false  "Amount in whole tokens"
// @Success      200     {object}  validation.Result
// @Router       /api/wallet/transfer/validate [get]
func (h *WalletHandler) ValidateTransfer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := validation.CheckTransfer(q.Get("to"), q.Get("amount"), h.session.Snapshot().PrettyBalance())
	writeJSON(w, http.StatusOK, res)
}

// TransactionHistory handles GET /api/wallet/transactions
// @Summary      Get wallet transfers
// @Description  Lists token transfers of the connected account over the recent block range
// @Tags         wallet
// @Produce      json
// @Param        type       query     string   false  "Transaction type: DEBIT or CREDIT"
// @Param        txHash     query     string   false  "Transaction hash"
// @Param        minAmount  query     string   false  "Minimum amount"
// @Param        maxAmount  query     string   false  "Maximum amount"
// @Success      200  {object}  model.LogResponse
// @Failure      400  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /api/wallet/transactions [get]
func (h *WalletHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	var req model.LogRequest
	q := r.URL.Query()

	if typeStr := q.Get("type"); typeStr != "" {
		txType := model.TransactionType(typeStr)
		req.Type = &txType
	}
	if txHash := q.Get("txHash"); txHash != "" {
		req.TxHash = &txHash
	}
	if minAmount := q.Get("minAmount"); minAmount != "" {
		req.MinAmount = &minAmount
	}
	if maxAmount := q.Get("maxAmount"); maxAmount != "" {
		req.MaxAmount = &maxAmount
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeValidationFailed})
		return
	}
	if h.history == nil {
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "transfer history is not available", Code: model.CodeInternal})
		return
	}

	address := h.session.Snapshot().AddressOrEmpty()
	logResp, err := token.GetTransactions(r.Context(), h.history, address, h.blockRange, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logResp)
}

// writeError maps a session error to its status and error code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := errorResponse(err)
	logError(r, err, status, resp)
	writeJSON(w, status, resp)
}

func logError(r *http.Request, err error, status int, resp model.ErrorResponse) {
	ev := zerolog.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		ev = zerolog.Ctx(r.Context()).Error()
	}
	if resp.TxHash != "" {
		ev = ev.Str("tx", resp.TxHash)
	}
	ev.Err(err).Int("status", status).Str("code", resp.Code).Msg("request failed")
}

func errorResponse(err error) (int, model.ErrorResponse) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		fields := map[string]string{}
		if verr.Result.AddressError != "" {
			fields["to"] = verr.Result.AddressError
		}
		if verr.Result.AmountError != "" {
			fields["amount"] = verr.Result.AmountError
		}
		return http.StatusBadRequest, model.ErrorResponse{Error: err.Error(), Code: model.CodeValidationFailed, Fields: fields}
	case errors.Is(err, token.ErrBusy):
		return http.StatusConflict, model.ErrorResponse{Error: err.Error(), Code: model.CodeRequestInFlight}
	case errors.Is(err, token.ErrNotConnected):
		return http.StatusConflict, model.ErrorResponse{Error: err.Error(), Code: model.CodeNotConnected}
	case errors.Is(err, token.ErrCooldown):
		return http.StatusTooManyRequests, model.ErrorResponse{Error: err.Error(), Code: model.CodeCooldownActive}
	case token.IsFileExistsError(err):
		return http.StatusConflict, model.ErrorResponse{Error: err.Error(), Code: model.CodeFileExists}
	default:
		return http.StatusBadGateway, model.ErrorResponse{Error: err.Error(), Code: model.CodeUpstream}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
