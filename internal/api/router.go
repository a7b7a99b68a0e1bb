package api

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/token-wallet/internal/handler"
	"github.com/AlexZinkM/token-wallet/internal/model"
	"github.com/AlexZinkM/token-wallet/internal/page"
	"github.com/AlexZinkM/token-wallet/token"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers configured from the environment
func SetupRouter(session handler.Session, history token.History, log zerolog.Logger) (http.Handler, error) {
	settings, err := handler.SettingsFromConfig()
	if err != nil {
		return nil, err
	}
	walletHandler, err := handler.NewWalletHandler(session, history, settings)
	if err != nil {
		return nil, err
	}
	return NewRouter(walletHandler, log), nil
}

// NewRouter wires the wallet routes around an existing handler
func NewRouter(h *handler.WalletHandler, log zerolog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID(log), AccessLog)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Pages
	r.HandleFunc(page.RouteHome, h.HomePage).Methods(http.MethodGet)
	r.HandleFunc(page.RouteWallet, h.WalletPage).Methods(http.MethodGet)
	r.HandleFunc(page.RouteTransfer, h.TransferPage).Methods(http.MethodGet)

	// Wallet endpoints
	r.HandleFunc("/api/wallet/generate", h.Generate).Methods(http.MethodPost)
	r.HandleFunc("/api/wallet/connect", h.Connect).Methods(http.MethodPost)
	r.HandleFunc("/api/wallet/disconnect", h.Disconnect).Methods(http.MethodPost)
	r.HandleFunc("/api/wallet/state", h.State).Methods(http.MethodGet)
	r.HandleFunc("/api/wallet/balance/refresh", h.RefreshBalance).Methods(http.MethodPost)
	r.HandleFunc("/api/wallet/transfer", h.Transfer).Methods(http.MethodPost)
	r.HandleFunc("/api/wallet/transfer/validate", h.ValidateTransfer).Methods(http.MethodGet)
	r.HandleFunc("/api/wallet/transactions", h.TransactionHistory).Methods(http.MethodGet)

	return r
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: "method " + r.Method + " not allowed"})
}
