// Package github is a small read-only client for the GitHub REST and GraphQL APIs.
//
// Only the handful of calls the stats aggregator needs are implemented:
// a user profile, a user's repositories, one repository's language breakdown
// and a user's contribution calendar.
//
// AUTHENTICATION:
// When a token is configured, every request goes through an oauth2.Transport
// that adds "Authorization: Bearer <token>". Without a token REST calls are
// anonymous (and rate limited), while GraphQL calls fail with ErrTokenRequired
// because GitHub's GraphQL API rejects anonymous requests.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultUserAgent = "portfolio-stats/1.0"

	// maxBodyBytes caps how much of a response body we are willing to decode.
	maxBodyBytes = 8 << 20
)

// ErrTokenRequired is returned by calls that cannot be made anonymously.
var ErrTokenRequired = errors.New("github: api token required")

// StatusError is returned when GitHub answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: %s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// Config configures a Client.
type Config struct {
	APIURL     string // REST base, e.g. https://api.github.com
	GraphQLURL string // GraphQL endpoint, e.g. https://api.github.com/graphql
	Token      string // optional personal access token
	Timeout    time.Duration

	// Transport overrides the base round tripper. Nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// Client talks to GitHub. It holds no per-request state and is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	apiURL     string
	graphqlURL string
	hasToken   bool
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	transport := base
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
			Base:   base,
		}
	}

	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		apiURL:     cfg.APIURL,
		graphqlURL: cfg.GraphQLURL,
		hasToken:   cfg.Token != "",
	}
}

// User is the part of GET /users/{login} we use.
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	PublicRepos int    `json:"public_repos"`
}

// Repository is the part of a repository listing entry we use.
type Repository struct {
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
	LanguagesURL    string `json:"languages_url"`
}

// GetUser fetches a public profile.
func (c *Client) GetUser(ctx context.Context, login string) (*User, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.apiURL, url.PathEscape(login))

	var u User
	if err := c.getJSON(ctx, endpoint, &u); err != nil {
		return nil, fmt.Errorf("github: get user %q: %w", login, err)
	}
	return &u, nil
}

// ListRepos fetches a single page of up to perPage repositories owned by login,
// in GitHub's default order. Further pages are not followed.
func (c *Client) ListRepos(ctx context.Context, login string, perPage int) ([]Repository, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%s",
		c.apiURL, url.PathEscape(login), strconv.Itoa(perPage))

	var repos []Repository
	if err := c.getJSON(ctx, endpoint, &repos); err != nil {
		return nil, fmt.Errorf("github: list repos for %q: %w", login, err)
	}
	return repos, nil
}

// GetLanguages fetches a repository's language byte breakdown. It prefers the
// languages_url from the listing and falls back to building it from FullName.
func (c *Client) GetLanguages(ctx context.Context, repo Repository) (LanguageBreakdown, error) {
	endpoint := repo.LanguagesURL
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/repos/%s/languages", c.apiURL, repo.FullName)
	}

	var langs LanguageBreakdown
	if err := c.getJSON(ctx, endpoint, &langs); err != nil {
		return nil, fmt.Errorf("github: languages for %q: %w", repo.FullName, err)
	}
	return langs, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	return c.do(req, dst)
}

func (c *Client) do(req *http.Request, dst any) error {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &StatusError{Method: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dst)
}
