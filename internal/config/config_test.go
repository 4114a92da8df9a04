package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every bound variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
}

func load(t *testing.T, dir string, envFiles ...string) Config {
	t.Helper()
	if envFiles == nil {
		envFiles = []string{}
	}
	cfg, err := Load(nil, Options{ConfigDir: dir, EnvFiles: envFiles})
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg := load(t, dir)

	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL)
	assert.Equal(t, "llama3.1:8b", cfg.Ollama.Model)
	assert.Equal(t, "Huly Bot", cfg.Bot.DisplayName)
	assert.Equal(t, "chunter:space:General", cfg.Bot.Channel)
	assert.Equal(t, 30*time.Second, cfg.Bot.ActionInterval)
	assert.Equal(t, 10, cfg.Bot.MaxActionsPerMinute)
	assert.Equal(t, filepath.Join(dir, "state.toml"), cfg.StatePath)
	assert.Equal(t, filepath.Join(dir, "secrets"), cfg.SecretsDir)
	assert.Equal(t, SecretsAuto, cfg.SecretsBackend)
	assert.Equal(t, Log{Level: "info", Format: "text"}, cfg.Log)
	assert.Empty(t, cfg.Huly.AccountURL)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadReadsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HULY_URL", "https://huly.example.com/")
	t.Setenv("HULY_TRANSACTOR_URL", "wss://huly.example.com/transactor")
	t.Setenv("HULY_EMAIL", " bot@example.com ")
	t.Setenv("HULY_PASSWORD", "secret")
	t.Setenv("HULY_SOCIAL_ID", "social-1")
	t.Setenv("ACTION_INTERVAL_MS", "1500")
	t.Setenv("MAX_ACTIONS_PER_MINUTE", "3")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := load(t, t.TempDir())

	assert.Equal(t, "https://huly.example.com/_accounts", cfg.Huly.AccountURL)
	assert.Equal(t, "bot@example.com", cfg.Huly.Email)
	assert.Equal(t, "social-1", cfg.Huly.SocialID)
	assert.Equal(t, 1500*time.Millisecond, cfg.Bot.ActionInterval)
	assert.Equal(t, 3, cfg.Bot.MaxActionsPerMinute)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadKeepsExplicitAccountURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("HULY_URL", "https://huly.example.com")
	t.Setenv("HULY_ACCOUNT_URL", "https://accounts.example.com")

	cfg := load(t, t.TempDir())
	assert.Equal(t, "https://accounts.example.com", cfg.Huly.AccountURL)
}

func TestLoadReadsConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[huly]
url = "https://file.example.com"
transactor_url = "wss://file.example.com/ws"
token = "file-token"

[bot]
action_interval = "5s"
display_name = "Helper"
`), 0o600))
	t.Setenv("BOT_DISPLAY_NAME", "Env Helper")

	cfg := load(t, dir)

	assert.Equal(t, "https://file.example.com", cfg.Huly.URL)
	assert.Equal(t, "file-token", cfg.Huly.Token)
	assert.Equal(t, 5*time.Second, cfg.Bot.ActionInterval)
	assert.Equal(t, "Env Helper", cfg.Bot.DisplayName)
	require.NoError(t, cfg.Validate())
}

func TestLoadMalformedConfigFileReturnsError(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[huly"), 0o600))

	_, err := Load(nil, Options{ConfigDir: dir, EnvFiles: []string{}})
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadDotenvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HULY_TOKEN=dotenv-token\nOLLAMA_MODEL=from-dotenv\n"), 0o600))
	t.Setenv("OLLAMA_MODEL", "from-env")

	cfg := load(t, dir, filepath.Join(dir, "missing.env"), envFile)

	assert.Equal(t, "dotenv-token", cfg.Huly.Token)
	assert.Equal(t, "from-env", cfg.Ollama.Model)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACTION_INTERVAL_MS", "soon")

	_, err := Load(nil, Options{ConfigDir: t.TempDir(), EnvFiles: []string{}})
	require.Error(t, err)
	assert.ErrorContains(t, err, "bot.action_interval")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := Config{Huly: Huly{URL: "https://h", TransactorURL: "wss://h"}}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "token", mutate: func(c *Config) { c.Huly.Token = "tok" }},
		{name: "email and password", mutate: func(c *Config) { c.Huly.Email, c.Huly.Password = "a@b", "pw" }},
		{name: "no credentials", mutate: func(*Config) {}, wantErr: "HULY_TOKEN or"},
		{name: "email only", mutate: func(c *Config) { c.Huly.Email = "a@b" }, wantErr: "HULY_TOKEN or"},
		{
			name:    "missing urls",
			mutate:  func(c *Config) { c.Huly = Huly{Token: "tok"} },
			wantErr: "HULY_URL and HULY_TRANSACTOR_URL are required",
		},
		{
			name:    "negative rate",
			mutate:  func(c *Config) { c.Huly.Token = "tok"; c.Bot.MaxActionsPerMinute = -1 },
			wantErr: "bot.max_actions_per_minute",
		},
		{
			name:    "unknown secrets backend",
			mutate:  func(c *Config) { c.Huly.Token = "tok"; c.SecretsBackend = "vault" },
			wantErr: "secrets.backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewLogger(&buf, Log{Level: "warn", Format: "json"})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"key":"value"`)

	_, err = NewLogger(&buf, Log{Level: "loud"})
	require.Error(t, err)
	_, err = NewLogger(&buf, Log{Format: "xml"})
	require.Error(t, err)
}
