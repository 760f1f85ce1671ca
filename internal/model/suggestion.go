package model

import "encoding/json"

// SuggestionRequest is the body of POST /api/ai-suggestion.
//
// Message is kept raw so the handler can tell a missing field from a
// field of the wrong JSON type.
type SuggestionRequest struct {
	Message json.RawMessage `json:"message"`
}

// SuggestionResponse is the success body of POST /api/ai-suggestion.
type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}
