// Package api defines response envelopes shared by all HTTP handlers.
package api

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
