package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	// TxHash is set when a transfer failed after it was broadcast.
	TxHash string            `json:"txHash,omitempty"`
}

// Error codes returned by the API.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeRequestInFlight  = "REQUEST_IN_FLIGHT"
	CodeNotConnected     = "NOT_CONNECTED"
	CodeCooldownActive   = "COOLDOWN_ACTIVE"
	CodeFileExists       = "FILE_EXISTS"
	CodeUpstream         = "UPSTREAM_FAILED"
	CodeInternal         = "INTERNAL"
)
