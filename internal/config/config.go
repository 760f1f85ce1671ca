// Package config resolves server configuration from defaults, an optional
// config file, a .env file and the process environment.
//
// PRECEDENCE (highest wins):
//
//	environment variable > .env file > config file > default
//
// godotenv never overrides variables that are already set, so a real
// environment always beats the .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys. They double as environment variable names.
const (
	KeyPort             = "port"
	KeyGitHubUsername   = "github_username"
	KeyGitHubToken      = "github_api_token"
	KeyGitHubAPIURL     = "github_api_url"
	KeyGitHubGraphQLURL = "github_graphql_url"
	KeyHTTPTimeout      = "http_timeout"
	KeyLogLevel         = "log_level"
	KeyLogFormat        = "log_format"
)

// Defaults.
const (
	DefaultPort           = 8080
	DefaultGitHubUsername = "salifshaikh"
	DefaultGitHubAPIURL   = "https://api.github.com"
	DefaultGraphQLURL     = "https://api.github.com/graphql"
	DefaultHTTPTimeout    = 10 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// legacyUsernameEnv is the variable name the site's front-end build used.
// It is honoured when GITHUB_USERNAME is not set.
const legacyUsernameEnv = "NEXT_PUBLIC_GITHUB_USERNAME"

// Config is the validated configuration shared by every command.
type Config struct {
	Port int `mapstructure:"port"`

	// GitHubUsername is the account the stats endpoint reports on.
	// It is fixed for the lifetime of the process.
	GitHubUsername   string        `mapstructure:"github_username"`
	GitHubToken      string        `mapstructure:"github_api_token"`
	GitHubAPIURL     string        `mapstructure:"github_api_url"`
	GitHubGraphQLURL string        `mapstructure:"github_graphql_url"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file path. When empty, Load looks for
	// portfolio.{yaml,json,toml} in the working directory and ignores its absence.
	ConfigFile string
	// EnvFiles are dotenv files to load. Missing files are skipped.
	// A nil slice means ".env".
	EnvFiles []string
}

// Load builds a Config. It uses its own viper instance so tests and
// multiple commands never share global state.
func Load(opts Options) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv.Load fails on a missing file; that is the normal case here.
		_ = godotenv.Load(f)
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("portfolio")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyGitHubUsername, "GITHUB_USERNAME", legacyUsernameEnv); err != nil {
		return nil, fmt.Errorf("config: binding %s: %w", KeyGitHubUsername, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyGitHubUsername, DefaultGitHubUsername)
	v.SetDefault(KeyGitHubToken, "")
	v.SetDefault(KeyGitHubAPIURL, DefaultGitHubAPIURL)
	v.SetDefault(KeyGitHubGraphQLURL, DefaultGraphQLURL)
	v.SetDefault(KeyHTTPTimeout, DefaultHTTPTimeout)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}

func (c *Config) normalize() {
	c.GitHubUsername = strings.TrimSpace(c.GitHubUsername)
	c.GitHubToken = strings.TrimSpace(c.GitHubToken)
	c.GitHubAPIURL = strings.TrimRight(strings.TrimSpace(c.GitHubAPIURL), "/")
	c.GitHubGraphQLURL = strings.TrimSpace(c.GitHubGraphQLURL)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.GitHubUsername == "" {
		return errors.New("config: github username is required")
	}
	if c.GitHubAPIURL == "" {
		return errors.New("config: github api url is required")
	}
	if c.GitHubGraphQLURL == "" {
		return errors.New("config: github graphql url is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: http timeout must be positive, got %s", c.HTTPTimeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
