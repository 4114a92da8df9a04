package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configDir  = ".hulybot"
	configName = "config"
	configType = "toml"

	KeyURL           = "huly.url"
	KeyTransactorURL = "huly.transactor_url"
	KeyAccountURL    = "huly.account_url"
	KeyEmail         = "huly.email"
	KeyPassword      = "huly.password"
	KeyToken         = "huly.token"
	KeyWorkspaceID   = "huly.workspace_id"
	KeySocialID      = "huly.social_id"

	KeyOllamaURL   = "ollama.url"
	KeyOllamaModel = "ollama.model"

	KeyBotName             = "bot.display_name"
	KeySystemPrompt        = "bot.system_prompt"
	KeyChannel             = "bot.channel"
	KeyActionInterval      = "bot.action_interval"
	KeyMaxActionsPerMinute = "bot.max_actions_per_minute"

	KeyRedisURL       = "redis.url"
	KeyStatePath      = "state.path"
	KeySecretsDir     = "secrets.dir"
	KeySecretsBackend = "secrets.backend"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
)

// envBindings maps config keys to the environment variables the bot has
// always read.
var envBindings = map[string]string{
	KeyURL:                 "HULY_URL",
	KeyTransactorURL:       "HULY_TRANSACTOR_URL",
	KeyAccountURL:          "HULY_ACCOUNT_URL",
	KeyEmail:               "HULY_EMAIL",
	KeyPassword:            "HULY_PASSWORD",
	KeyToken:               "HULY_TOKEN",
	KeyWorkspaceID:         "HULY_WORKSPACE_ID",
	KeySocialID:            "HULY_SOCIAL_ID",
	KeyOllamaURL:           "OLLAMA_URL",
	KeyOllamaModel:         "OLLAMA_MODEL",
	KeyBotName:             "BOT_DISPLAY_NAME",
	KeySystemPrompt:        "BOT_SYSTEM_PROMPT",
	KeyChannel:             "BOT_CHANNEL",
	KeyActionInterval:      "ACTION_INTERVAL_MS",
	KeyMaxActionsPerMinute: "MAX_ACTIONS_PER_MINUTE",
	KeyRedisURL:            "REDIS_URL",
	KeyStatePath:           "HULYBOT_STATE_PATH",
	KeySecretsDir:          "HULYBOT_SECRETS_DIR",
	KeySecretsBackend:      "HULYBOT_SECRETS_BACKEND",
	KeyLogLevel:            "LOG_LEVEL",
	KeyLogFormat:           "LOG_FORMAT",
}

type Huly struct {
	URL           string
	TransactorURL string
	AccountURL    string
	Email         string
	Password      string
	Token         string
	WorkspaceID   string
	SocialID      string
}

type Ollama struct {
	URL   string
	Model string
}

type Bot struct {
	DisplayName         string
	SystemPrompt        string
	Channel             string
	ActionInterval      time.Duration
	MaxActionsPerMinute int
}

type Log struct {
	Level  string
	Format string
}

// Secret store backends.
const (
	SecretsAuto = "auto"
	SecretsPass = "pass"
	SecretsFile = "file"
)

type Config struct {
	Huly       Huly
	Ollama     Ollama
	Bot        Bot
	RedisURL   string
	StatePath  string
	SecretsDir string
	// SecretsBackend is auto (pass with a file fallback), pass or file.
	SecretsBackend string
	Log            Log
}

// Options controls where Load looks besides the environment. Zero values
// mean ~/.hulybot for ConfigDir and ./.env for EnvFiles.
type Options struct {
	ConfigDir string
	EnvFiles  []string
}

// Load reads .env files, the optional config.toml and the environment, in
// increasing order of precedence. Existing environment variables are never
// overridden by .env files.
func Load(cfg *viper.Viper, opts Options) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env"}
	}
	if err := loadDotenv(envFiles); err != nil {
		return Config{}, err
	}

	configPath := opts.ConfigDir
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, configDir)
	}

	setDefaults(cfg, configPath)
	for key, env := range envBindings {
		if err := cfg.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(configPath)
	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(cfg)
}

func setDefaults(cfg *viper.Viper, configPath string) {
	cfg.SetDefault(KeyOllamaURL, "http://localhost:11434")
	cfg.SetDefault(KeyOllamaModel, "llama3.1:8b")
	cfg.SetDefault(KeyBotName, "Huly Bot")
	cfg.SetDefault(KeyChannel, "chunter:space:General")
	cfg.SetDefault(KeyActionInterval, 30000)
	cfg.SetDefault(KeyMaxActionsPerMinute, 10)
	cfg.SetDefault(KeyStatePath, filepath.Join(configPath, "state.toml"))
	cfg.SetDefault(KeySecretsDir, filepath.Join(configPath, "secrets"))
	cfg.SetDefault(KeySecretsBackend, SecretsAuto)
	cfg.SetDefault(KeyLogLevel, "info")
	cfg.SetDefault(KeyLogFormat, "text")
}

func loadDotenv(files []string) error {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat env file %s: %w", file, err)
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("load env file %s: %w", file, err)
		}
	}
	return nil
}

func fromViper(cfg *viper.Viper) (Config, error) {
	interval, err := parseInterval(cfg.GetString(KeyActionInterval))
	if err != nil {
		return Config{}, err
	}

	out := Config{
		Huly: Huly{
			URL:           strings.TrimSpace(cfg.GetString(KeyURL)),
			TransactorURL: strings.TrimSpace(cfg.GetString(KeyTransactorURL)),
			AccountURL:    strings.TrimSpace(cfg.GetString(KeyAccountURL)),
			Email:         strings.TrimSpace(cfg.GetString(KeyEmail)),
			Password:      cfg.GetString(KeyPassword),
			Token:         strings.TrimSpace(cfg.GetString(KeyToken)),
			WorkspaceID:   strings.TrimSpace(cfg.GetString(KeyWorkspaceID)),
			SocialID:      strings.TrimSpace(cfg.GetString(KeySocialID)),
		},
		Ollama: Ollama{
			URL:   cfg.GetString(KeyOllamaURL),
			Model: cfg.GetString(KeyOllamaModel),
		},
		Bot: Bot{
			DisplayName:         cfg.GetString(KeyBotName),
			SystemPrompt:        cfg.GetString(KeySystemPrompt),
			Channel:             cfg.GetString(KeyChannel),
			ActionInterval:      interval,
			MaxActionsPerMinute: cfg.GetInt(KeyMaxActionsPerMinute),
		},
		RedisURL:       cfg.GetString(KeyRedisURL),
		StatePath:      cfg.GetString(KeyStatePath),
		SecretsDir:     cfg.GetString(KeySecretsDir),
		SecretsBackend: strings.ToLower(strings.TrimSpace(cfg.GetString(KeySecretsBackend))),
		Log: Log{
			Level:  strings.ToLower(cfg.GetString(KeyLogLevel)),
			Format: strings.ToLower(cfg.GetString(KeyLogFormat)),
		},
	}

	if out.Huly.AccountURL == "" && out.Huly.URL != "" {
		out.Huly.AccountURL = strings.TrimRight(out.Huly.URL, "/") + "/_accounts"
	}

	return out, nil
}

// parseInterval accepts plain milliseconds, as ACTION_INTERVAL_MS always
// did, or a Go duration string.
func parseInterval(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if ms, err := time.ParseDuration(raw + "ms"); err == nil {
		return ms, nil
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", KeyActionInterval, raw, err)
	}
	return interval, nil
}

// Validate checks what the bot needs to run.
func (c Config) Validate() error {
	var errs []error
	if c.Huly.URL == "" || c.Huly.TransactorURL == "" {
		errs = append(errs, errors.New("HULY_URL and HULY_TRANSACTOR_URL are required"))
	}
	if c.Huly.Token == "" && (c.Huly.Email == "" || c.Huly.Password == "") {
		errs = append(errs, errors.New("HULY_TOKEN or (HULY_EMAIL and HULY_PASSWORD) are required"))
	}
	if c.Bot.MaxActionsPerMinute < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyMaxActionsPerMinute))
	}
	if c.Bot.ActionInterval < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyActionInterval))
	}
	if err := c.validateSecretsBackend(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateAccount checks what the account commands need.
func (c Config) ValidateAccount() error {
	if c.Huly.AccountURL == "" {
		return errors.New("HULY_ACCOUNT_URL or HULY_URL is required")
	}
	if c.Huly.Token == "" && (c.Huly.Email == "" || c.Huly.Password == "") {
		return errors.New("HULY_TOKEN or (HULY_EMAIL and HULY_PASSWORD) are required")
	}
	return c.validateSecretsBackend()
}

func (c Config) validateSecretsBackend() error {
	switch c.SecretsBackend {
	case "", SecretsAuto, SecretsPass, SecretsFile:
		return nil
	default:
		return fmt.Errorf("%s must be one of %s, %s or %s", KeySecretsBackend, SecretsAuto, SecretsPass, SecretsFile)
	}
}
