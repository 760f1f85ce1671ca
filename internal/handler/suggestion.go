package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/salifshaikh/portfolio/internal/apperror"
	"github.com/salifshaikh/portfolio/internal/model"
)

const (
	// SuggestionFailedMessage is the client-facing message for unexpected failures.
	SuggestionFailedMessage = "Failed to generate suggestion"
	// MessageRequiredMessage is returned when "message" is missing or not a string.
	MessageRequiredMessage = "Message is required and must be a string"

	maxSuggestionBody = 64 << 10
)

// Suggester turns a draft message into a suggestion. *service.SuggestionService satisfies it.
type Suggester interface {
	Suggest(message string) (string, error)
}

// SuggestionHandler serves the contact-form suggestion endpoint.
type SuggestionHandler struct {
	suggester Suggester
	logger    *slog.Logger
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(suggester Suggester, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		suggester: suggester,
		logger:    logger,
	}
}

// HandleSuggest returns a suggestion for the posted message.
//
// HTTP: POST /api/ai-suggestion
// REQUEST BODY:  {"message": "I have a project idea..."}
// RESPONSE BODY: {"suggestion": "..."}
//
// A body that is not JSON, or whose "message" is missing, null, empty or
// not a string, gets 400.
func (h *SuggestionHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	var req model.SuggestionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSuggestionBody)).Decode(&req); err != nil {
		h.logger.Warn("invalid suggestion request body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "Invalid JSON body"), SuggestionFailedMessage)
		return
	}

	var message string
	if len(req.Message) == 0 || json.Unmarshal(req.Message, &message) != nil {
		// Missing field, null, or a number/object/array/bool.
		writeError(w, apperror.ValidationFailed("message", MessageRequiredMessage), SuggestionFailedMessage)
		return
	}

	suggestion, err := h.suggester.Suggest(message)
	if err != nil {
		h.logger.Warn("suggestion rejected", slog.String("error", err.Error()))
		writeError(w, err, SuggestionFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, model.SuggestionResponse{Suggestion: suggestion})
}
