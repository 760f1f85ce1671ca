package service

import (
	"log/slog"
	"strings"
	"unicode/utf16"

	"github.com/salifshaikh/portfolio/internal/apperror"
)

// Suggestion templates. The generator is purely template based; it makes no
// external calls.
const (
	// ShortMessageThreshold: messages shorter than this (in UTF-16 code units,
	// the unit the contact form counts in) get the generic suggestion.
	ShortMessageThreshold = 20

	GenericSuggestion = "I'd like to discuss a potential project opportunity. Could we schedule a call to discuss details? I'm available next week and looking forward to hearing from you."

	ProjectSuffix  = "I'm excited about this project opportunity and would love to discuss timeline and budget considerations. I'm available for a call at your convenience."
	QuestionSuffix = "I'd appreciate your insights on this matter. Looking forward to your response!"
	DefaultSuffix  = "I look forward to hearing back from you soon. Thanks for your time and consideration."
)

// MessageRequiredText is the validation message for a missing or non-string message.
const MessageRequiredText = "Message is required and must be a string"

// SuggestionService turns a draft contact message into a polished suggestion.
type SuggestionService struct {
	logger *slog.Logger
}

// NewSuggestionService creates a SuggestionService.
func NewSuggestionService(logger *slog.Logger) *SuggestionService {
	return &SuggestionService{logger: logger}
}

// Suggest returns a suggestion for message.
//
// Rules, first match wins:
//  1. shorter than ShortMessageThreshold → GenericSuggestion
//  2. contains "project"                 → trimmed message + ProjectSuffix
//  3. contains "question"                → trimmed message + QuestionSuffix
//  4. anything else                      → trimmed message + DefaultSuffix
//
// The length check uses the untrimmed message and keyword matching is case
// sensitive. An empty message is a validation error.
func (s *SuggestionService) Suggest(message string) (string, error) {
	if message == "" {
		return "", apperror.ValidationFailed("message", MessageRequiredText)
	}

	var suggestion string
	switch {
	case utf16Len(message) < ShortMessageThreshold:
		suggestion = GenericSuggestion
	case strings.Contains(message, "project"):
		suggestion = strings.TrimSpace(message) + "\n\n" + ProjectSuffix
	case strings.Contains(message, "question"):
		suggestion = strings.TrimSpace(message) + "\n\n" + QuestionSuffix
	default:
		suggestion = strings.TrimSpace(message) + "\n\n" + DefaultSuffix
	}

	s.logger.Debug("suggestion generated",
		slog.Int("message_length", len(message)),
		slog.Int("suggestion_length", len(suggestion)),
	)
	return suggestion, nil
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
