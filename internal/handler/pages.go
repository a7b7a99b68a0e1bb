package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/AlexZinkM/token-wallet/internal/page"
	"github.com/AlexZinkM/token-wallet/token"

	"github.com/rs/zerolog"
)

// HomePage handles GET /
// @Summary      Home page
// @Description  Connect view. Redirects to /wallet once the wallet is connected
// @Tags         pages
// @Produce      json
// @Success      200  {object}  page.Home
// @Success      303  {string}  string  "See Other"
// @Router       / [get]
func (h *WalletHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	view, redirect := page.HomeView(h.session.Snapshot())
	if redirect != "" {
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// WalletPage handles GET /wallet
// @Summary      Wallet page
// @Description  Account address and balance. The balance is refreshed first. Redirects to / when disconnected
// @Tags         pages
// @Produce      json
// @Success      200  {object}  page.Wallet
// @Success      303  {string}  string  "See Other"
// @Router       /wallet [get]
func (h *WalletHandler) WalletPage(w http.ResponseWriter, r *http.Request) {
	if h.session.Snapshot().IsConnected() {
		// A failed refresh is recorded in the state; the page still shows the last balance.
		if _, err := h.session.RefreshBalance(context.WithoutCancel(r.Context())); err != nil && !errors.Is(err, token.ErrBusy) {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("balance refresh on wallet page")
		}
	}

	view, redirect := page.WalletView(h.session.Snapshot())
	if redirect != "" {
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// TransferPage handles GET /transfer
// @Summary      Transfer page
// @Description  Send form with live validation of the to and amount query values
// @Tags         pages
// @Produce      json
// @Param        to      query     string  false  "Recipient address"
// @Param        amount  query     string  false  "Amount in whole tokens"
// @Success      200     {object}  page.Transfer
// @Router       /transfer [get]
func (h *WalletHandler) TransferPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, page.TransferView(h.session.Snapshot(), q.Get("to"), q.Get("amount")))
}
