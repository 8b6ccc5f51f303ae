package types

// RequestIDHeader carries the per-request id set by the request id middleware and echoed in
// error envelopes.
const RequestIDHeader = "X-Request-Id"

// SuccessEnvelope wraps every 2xx body, including price matrices.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public face of a pkg/errors code. Details carries field paths for
// VALIDATION_ERROR and the violation list for INVALID_SNAPSHOT.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
