package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlexZinkM/token-wallet/internal/handler"
	"github.com/AlexZinkM/token-wallet/internal/logger"
	"github.com/AlexZinkM/token-wallet/internal/state"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	st state.WalletState
}

func (s *stubSession) State() state.View           { return s.st.View() }
func (s *stubSession) Snapshot() state.WalletState { return s.st }
func (s *stubSession) Connect(context.Context) (state.View, error) {
	return s.st.View(), nil
}
func (s *stubSession) RefreshBalance(context.Context) (state.View, error) {
	return s.st.View(), nil
}
func (s *stubSession) Disconnect() (state.View, error) { return s.st.View(), nil }
func (s *stubSession) Transfer(context.Context, string, string) (string, error) {
	return "0xfeed", nil
}

func newTestRouter(t *testing.T, buf *bytes.Buffer) http.Handler {
	t.Helper()
	h, err := handler.NewWalletHandler(&stubSession{st: state.Initial()}, nil, handler.Settings{
		FilePath: t.TempDir() + "/wallet.wlt",
		Password: func() ([]byte, error) { return []byte("pw"), nil },
	})
	require.NoError(t, err)
	return NewRouter(h, logger.NewWithWriter(buf, "info"))
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t, &bytes.Buffer{})

	cases := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/wallet", http.StatusSeeOther},
		{http.MethodGet, "/transfer", http.StatusOK},
		{http.MethodGet, "/api/wallet/state", http.StatusOK},
		{http.MethodPost, "/api/wallet/connect", http.StatusOK},
		{http.MethodPost, "/api/wallet/disconnect", http.StatusOK},
		{http.MethodPost, "/api/wallet/balance/refresh", http.StatusOK},
		{http.MethodGet, "/api/wallet/transfer/validate?amount=1", http.StatusOK},
		{http.MethodGet, "/api/wallet/state/missing", http.StatusNotFound},
		{http.MethodGet, "/api/wallet/connect", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/wallet/state", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestMethodNotAllowedIsJSON(t *testing.T) {
	r := newTestRouter(t, &bytes.Buffer{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wallet/transfer", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "method GET not allowed")
}

func TestTransferRoute(t *testing.T) {
	r := newTestRouter(t, &bytes.Buffer{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/wallet/transfer", strings.NewReader(`{"to":"0x0","amount":"1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0xfeed")
}

func TestRequestIDAndAccessLog(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouter(t, &buf)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wallet/state", nil))
	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, id, line["request_id"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/api/wallet/state", line["path"])
	assert.Equal(t, float64(http.StatusOK), line["status"])
}

func TestRequestIDIsReused(t *testing.T) {
	r := newTestRouter(t, &bytes.Buffer{})
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}
