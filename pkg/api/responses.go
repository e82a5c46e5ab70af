package api

import "github.com/lucide-ai/lucide/pkg/models"

// AskResponse is the HTTP response body for POST /api/v1/ask. It is the
// bundle itself plus a top-level status discriminator so clients can branch
// without inspecting the bundle.
type AskResponse struct {
	// Status is "ok" or "needs_clarification".
	Status string         `json:"status"`
	Bundle *models.Bundle `json:"bundle"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
