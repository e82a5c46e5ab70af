package api

import "github.com/lucide-ai/lucide/pkg/models"

// AskRequest is the HTTP request body for POST /api/v1/ask.
type AskRequest struct {
	Question string `json:"question"`
	// Language optionally forces the answer language ("fr" or "en");
	// detection runs when omitted.
	Language string `json:"language,omitempty"`
	// Context carries caller-pinned entities that dominate extraction.
	Context *models.StructuredContext `json:"context,omitempty"`
}
