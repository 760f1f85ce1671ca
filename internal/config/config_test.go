package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads. Viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GITHUB_USERNAME", legacyUsernameEnv, "GITHUB_API_TOKEN",
		"GITHUB_API_URL", "GITHUB_GRAPHQL_URL", "HTTP_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func noFiles() Options {
	return Options{ConfigFile: "", EnvFiles: []string{}}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load(noFiles())
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultGitHubUsername, cfg.GitHubUsername)
	assert.Empty(t, cfg.GitHubToken)
	assert.Equal(t, DefaultGitHubAPIURL, cfg.GitHubAPIURL)
	assert.Equal(t, DefaultGraphQLURL, cfg.GitHubGraphQLURL)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("GITHUB_USERNAME", " octocat ")
	t.Setenv("GITHUB_API_TOKEN", "ghp_secret")
	t.Setenv("GITHUB_API_URL", "http://localhost:1234/")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(noFiles())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "octocat", cfg.GitHubUsername)
	assert.Equal(t, "ghp_secret", cfg.GitHubToken)
	assert.Equal(t, "http://localhost:1234", cfg.GitHubAPIURL, "trailing slash is trimmed")
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_LegacyUsernameVariable(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(legacyUsernameEnv, "legacy-user")

	cfg, err := Load(noFiles())
	require.NoError(t, err)
	assert.Equal(t, "legacy-user", cfg.GitHubUsername)

	t.Setenv("GITHUB_USERNAME", "primary-user")
	cfg, err = Load(noFiles())
	require.NoError(t, err)
	assert.Equal(t, "primary-user", cfg.GitHubUsername, "GITHUB_USERNAME wins over the legacy name")
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 7070\ngithub_username: from-file\n"), 0o644))

	cfg, err := Load(Options{ConfigFile: path, EnvFiles: []string{}})
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "from-file", cfg.GitHubUsername)

	t.Setenv("PORT", "7171")
	cfg, err = Load(Options{ConfigFile: path, EnvFiles: []string{}})
	require.NoError(t, err)
	assert.Equal(t, 7171, cfg.Port, "environment beats the config file")
}

func TestLoad_DefaultConfigFileInWorkingDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portfolio.yaml"), []byte("log_format: json\n"), 0o644))

	cfg, err := Load(noFiles())
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load(Options{ConfigFile: "does-not-exist.yaml", EnvFiles: []string{}})
	assert.Error(t, err)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	// clearEnv set HTTP_TIMEOUT to "", which godotenv treats as already set.
	require.NoError(t, os.Unsetenv("HTTP_TIMEOUT"))
	t.Cleanup(func() { _ = os.Unsetenv("HTTP_TIMEOUT") })

	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("HTTP_TIMEOUT=2s\n"), 0o644))

	cfg, err := Load(Options{EnvFiles: []string{envPath, filepath.Join(dir, "missing.env")}})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:             8080,
			GitHubUsername:   "octocat",
			GitHubAPIURL:     DefaultGitHubAPIURL,
			GitHubGraphQLURL: DefaultGraphQLURL,
			HTTPTimeout:      time.Second,
			LogLevel:         "info",
			LogFormat:        "text",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "empty username", mutate: func(c *Config) { c.GitHubUsername = "" }, wantErr: true},
		{name: "empty api url", mutate: func(c *Config) { c.GitHubAPIURL = "" }, wantErr: true},
		{name: "empty graphql url", mutate: func(c *Config) { c.GitHubGraphQLURL = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
