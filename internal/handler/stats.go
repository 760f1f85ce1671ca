package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/salifshaikh/portfolio/internal/model"
)

// StatsFailedMessage is the client-facing message when aggregation fails.
const StatsFailedMessage = "Failed to fetch GitHub stats"

// StatsProvider produces a stats summary. *service.StatsService satisfies it.
type StatsProvider interface {
	GetStats(ctx context.Context) (*model.StatsSummary, error)
}

// StatsHandler serves the GitHub statistics endpoint.
type StatsHandler struct {
	stats  StatsProvider
	logger *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats StatsProvider, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		stats:  stats,
		logger: logger,
	}
}

// HandleGetStats returns the aggregated summary.
//
// HTTP: GET /api/github-stats
//
// RESPONSE FORMAT:
//
//	{
//	  "languages": [{"name":"Go","percentage":65,"color":"#00ADD8"}],
//	  "contributions": [{"date":"2024-04-01","count":5}],
//	  "totalContributions": 5,
//	  "totalRepos": 7,
//	  "totalStars": 42
//	}
//
// The request context is passed down, so a client hanging up cancels the
// outbound GitHub calls.
func (h *StatsHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.stats.GetStats(r.Context())
	if err != nil {
		h.logger.Error("github stats request failed", slog.String("error", err.Error()))
		writeError(w, err, StatsFailedMessage)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
