// Package service contains the business logic of the portfolio backend.
//
// Handlers parse HTTP and call services; services call the GitHub client
// through a small interface so tests can swap in a fake. Neither layer knows
// about the other's concerns: services return apperror values, handlers map
// them to status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"github.com/salifshaikh/portfolio/internal/apperror"
	"github.com/salifshaikh/portfolio/internal/github"
	"github.com/salifshaikh/portfolio/internal/model"
)

const (
	// RepoPageSize is how many repositories are listed. Only one page is read.
	RepoPageSize = 100
	// LanguageSampleSize is how many repositories, taken from the head of the
	// listing, contribute to the language breakdown.
	LanguageSampleSize = 5
	// TopLanguages is the maximum number of languages reported.
	TopLanguages = 5
)

// GitHubAPI is the subset of the GitHub client the stats service needs.
// *github.Client satisfies it.
type GitHubAPI interface {
	GetUser(ctx context.Context, login string) (*github.User, error)
	ListRepos(ctx context.Context, login string, perPage int) ([]github.Repository, error)
	GetLanguages(ctx context.Context, repo github.Repository) (github.LanguageBreakdown, error)
	ContributionCalendar(ctx context.Context, login string) (*github.ContributionCalendar, error)
}

// StatsService aggregates an account's public GitHub activity into a
// model.StatsSummary.
//
// Every call re-fetches everything; there is no cache and nothing is shared
// between calls, so concurrent requests are independent.
//
// SAMPLING:
// Language percentages are computed from the first LanguageSampleSize
// repositories in GitHub's default listing order, not from the whole account.
// For accounts with more repositories than that, the breakdown is an
// approximation and may change as the listing order changes. Star and
// repository totals are always computed over the full listing.
type StatsService struct {
	gh       GitHubAPI
	username string
	logger   *slog.Logger
}

// NewStatsService creates a StatsService reporting on username.
func NewStatsService(gh GitHubAPI, username string, logger *slog.Logger) *StatsService {
	return &StatsService{
		gh:       gh,
		username: username,
		logger:   logger,
	}
}

// Username returns the account the service reports on.
func (s *StatsService) Username() string {
	return s.username
}

// GetStats builds a fresh summary.
//
// FAILURE POLICY:
// The profile, the repository listing and the language breakdowns are
// mandatory: if any of them fails, GetStats returns an apperror wrapping
// apperror.ErrUpstream and no summary. The contribution calendar is best
// effort: if it fails, the summary carries an empty calendar and zero total.
//
// The profile, listing and calendar are fetched concurrently. Language
// calls wait for the listing since they depend on it.
func (s *StatsService) GetStats(ctx context.Context) (*model.StatsSummary, error) {
	runID := xid.New().String()
	logger := s.logger.With(slog.String("run_id", runID), slog.String("user", s.username))
	start := time.Now()

	var (
		user     *github.User
		repos    []github.Repository
		calendar CalendarResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.gh.GetUser(gctx, s.username)
		if err != nil {
			return apperror.Upstream("fetch profile", err)
		}
		user = u
		return nil
	})
	g.Go(func() error {
		r, err := s.gh.ListRepos(gctx, s.username, RepoPageSize)
		if err != nil {
			return apperror.Upstream("fetch repositories", err)
		}
		repos = r
		return nil
	})
	g.Go(func() error {
		// Never returns an error: calendar failures are recoverable.
		calendar = s.fetchCalendar(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("stats aggregation failed", slog.String("error", err.Error()))
		return nil, err
	}

	breakdowns, err := s.fetchLanguages(ctx, SampleRepos(repos, LanguageSampleSize))
	if err != nil {
		logger.Error("stats aggregation failed", slog.String("error", err.Error()))
		return nil, err
	}

	if calendar.Err != nil {
		logger.Warn("contribution calendar unavailable, continuing without it",
			slog.String("error", calendar.Err.Error()),
		)
	}

	summary := &model.StatsSummary{
		Languages:          ComputeLanguageShares(breakdowns, TopLanguages),
		Contributions:      calendar.Days,
		TotalContributions: calendar.Total,
		TotalRepos:         user.PublicRepos,
		TotalStars:         SumStars(repos),
	}

	logger.Info("stats aggregated",
		slog.Int("repos_listed", len(repos)),
		slog.Int("repos_sampled", len(breakdowns)),
		slog.Int("languages", len(summary.Languages)),
		slog.Int("contribution_days", len(summary.Contributions)),
		slog.Bool("calendar_ok", calendar.Err == nil),
		slog.Duration("duration", time.Since(start)),
	)

	return summary, nil
}

// fetchLanguages fetches the breakdown of each sampled repository.
// Calls run concurrently; results keep the order of repos.
func (s *StatsService) fetchLanguages(ctx context.Context, repos []github.Repository) ([]github.LanguageBreakdown, error) {
	out := make([]github.LanguageBreakdown, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	for i, repo := range repos {
		g.Go(func() error {
			langs, err := s.gh.GetLanguages(gctx, repo)
			if err != nil {
				return apperror.Upstream(fmt.Sprintf("fetch languages for %s", repo.FullName), err)
			}
			out[i] = langs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchCalendar wraps the calendar call into a CalendarResult.
func (s *StatsService) fetchCalendar(ctx context.Context) CalendarResult {
	cal, err := s.gh.ContributionCalendar(ctx, s.username)
	if err != nil {
		return EmptyCalendar(err)
	}
	return FlattenCalendar(cal)
}

// SampleRepos returns the first n repositories as listed. It does not sort or
// filter, so the sample follows whatever order GitHub returned.
func SampleRepos(repos []github.Repository, n int) []github.Repository {
	if len(repos) <= n {
		return repos
	}
	return repos[:n]
}

// SumStars totals stargazers over every repository given.
func SumStars(repos []github.Repository) int {
	var total int
	for _, r := range repos {
		total += r.StargazersCount
	}
	return total
}
