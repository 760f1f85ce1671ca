// Package main is the entry point for the portfolio backend.
//
// The main package stays minimal. It:
//  1. Reads configuration (env vars, .env, optional config file)
//  2. Creates dependencies (logger, GitHub client)
//  3. Starts the HTTP server, or runs a one-off stats aggregation
//
// All actual logic lives in the internal/ packages.
//
// USAGE:
//
//	portfolio             # same as "portfolio serve"
//	portfolio serve       # run the HTTP API
//	portfolio stats       # fetch the GitHub summary once and print it as JSON
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/salifshaikh/portfolio/internal/config"
	"github.com/salifshaikh/portfolio/internal/github"
	"github.com/salifshaikh/portfolio/internal/logging"
	"github.com/salifshaikh/portfolio/internal/server"
	"github.com/salifshaikh/portfolio/internal/service"
)

var configFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Backend API for the portfolio site.",
		Long:          "Serves GitHub statistics and contact-message suggestions for the portfolio front end.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./portfolio.yaml if present)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Aggregate GitHub stats once and print them as JSON",
			Args:  cobra.NoArgs,
			RunE:  runStats,
		},
	)
	return root
}

// setup loads configuration and builds the shared dependencies.
func setup() (*config.Config, *slog.Logger, *github.Client, error) {
	cfg, err := config.Load(config.Options{ConfigFile: configFile})
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.GitHubToken == "" {
		logger.Warn("GITHUB_API_TOKEN not set: using the unauthenticated GitHub API (rate limited) and skipping the contribution calendar")
	}

	gh := github.New(github.Config{
		APIURL:     cfg.GitHubAPIURL,
		GraphQLURL: cfg.GitHubGraphQLURL,
		Token:      cfg.GitHubToken,
		Timeout:    cfg.HTTPTimeout,
	})
	return cfg, logger, gh, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, gh, err := setup()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, logger, gh)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start blocks until the server is shut down (via Ctrl+C or SIGTERM).
	return srv.Start()
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, logger, gh, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 3*cfg.HTTPTimeout)
	defer cancel()

	summary, err := service.NewStatsService(gh, cfg.GitHubUsername, logger).GetStats(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
