package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/viper"

	"github.com/bnema/huly-agent/internal/adapters/conversation/memory"
	redisstore "github.com/bnema/huly-agent/internal/adapters/conversation/redis"
	"github.com/bnema/huly-agent/internal/adapters/huly"
	"github.com/bnema/huly-agent/internal/adapters/llm"
	workspacesrender "github.com/bnema/huly-agent/internal/adapters/render/workspaces"
	tomlrepo "github.com/bnema/huly-agent/internal/adapters/repo/toml"
	chainstore "github.com/bnema/huly-agent/internal/adapters/secrets/chain"
	filestore "github.com/bnema/huly-agent/internal/adapters/secrets/file"
	passstore "github.com/bnema/huly-agent/internal/adapters/secrets/pass"
	"github.com/bnema/huly-agent/internal/application"
	"github.com/bnema/huly-agent/internal/config"
	"github.com/bnema/huly-agent/internal/domain"
	"github.com/bnema/huly-agent/internal/ports"
)

type app struct {
	cfg                config.Config
	httpClient         *http.Client
	clock              ports.Clock
	workspacesRenderer func([]domain.Workspace, workspacesrender.RenderOptions) (string, error)
}

// services are built per command so that logs go to the command's stderr.
type services struct {
	logger   *slog.Logger
	platform *huly.Client
	auth     *application.AuthService
	secrets  ports.SecretStore
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New(), config.Options{})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &app{
		cfg:                cfg,
		httpClient:         http.DefaultClient,
		clock:              ports.SystemClock{},
		workspacesRenderer: workspacesrender.Render,
	}, nil
}

func (a *app) services(stderr io.Writer) (*services, error) {
	logger, err := config.NewLogger(stderr, a.cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	secrets, err := a.secretStore()
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	platform := huly.NewClient(huly.ClientConfig{
		AccountURL:    a.cfg.Huly.AccountURL,
		TransactorURL: a.cfg.Huly.TransactorURL,
		HTTPClient:    a.httpClient,
		Clock:         a.clock,
		Logger:        logger,
	})

	return &services{
		logger:   logger,
		platform: platform,
		auth:     application.NewAuthService(platform, secrets, logger),
		secrets:  secrets,
	}, nil
}

func (a *app) secretStore() (ports.SecretStore, error) {
	switch a.cfg.SecretsBackend {
	case config.SecretsFile:
		return filestore.NewStore(a.cfg.SecretsDir), nil
	case config.SecretsPass:
		return passstore.NewStore(), nil
	default:
		store, err := chainstore.NewPassFirstWithFileFallback(a.cfg.SecretsDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func (a *app) completer(logger *slog.Logger) ports.Completer {
	return llm.Client{
		BaseURL:    a.cfg.Ollama.URL,
		Model:      a.cfg.Ollama.Model,
		HTTPClient: a.httpClient,
		Logger:     logger,
	}
}

// conversationStore uses redis when configured and falls back to process
// memory. The returned close function is never nil.
func (a *app) conversationStore(ctx context.Context, logger *slog.Logger) (ports.ConversationStore, func() error, error) {
	if a.cfg.RedisURL == "" {
		logger.Info("conversation history kept in memory")
		return memory.New(domain.MaxConversationTurns), func() error { return nil }, nil
	}

	store, err := redisstore.Open(ctx, a.cfg.RedisURL, redisstore.WithMaxTurns(domain.MaxConversationTurns))
	if err != nil {
		return nil, nil, fmt.Errorf("wire conversation store: %w", err)
	}
	logger.Info("conversation history kept in redis")
	return store, store.Close, nil
}

func (a *app) stateRepository() (ports.StateRepository, error) {
	repo, err := tomlrepo.NewRepository(a.cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("wire state repository: %w", err)
	}
	return repo, nil
}

func (a *app) credentials(workspace string) application.Credentials {
	creds := application.Credentials{
		Email:        a.cfg.Huly.Email,
		Password:     a.cfg.Huly.Password,
		DisplayName:  a.cfg.Bot.DisplayName,
		Token:        a.cfg.Huly.Token,
		WorkspaceID:  a.cfg.Huly.WorkspaceID,
		IdentityHint: a.cfg.Huly.SocialID,
	}
	if workspace != "" {
		creds.WorkspaceID = workspace
	}
	return creds
}
