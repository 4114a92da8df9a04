package huly

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bnema/huly-agent/internal/domain"
	"github.com/bnema/huly-agent/internal/ports"
)

type ClientConfig struct {
	AccountURL    string
	TransactorURL string

	HTTPClient     *http.Client
	RequestTimeout time.Duration

	// CallTimeout bounds each transactor request. Zero means 30 seconds.
	CallTimeout time.Duration
	Dialer      *websocket.Dialer

	Clock  ports.Clock
	Logger *slog.Logger
}

// Client is the workspace-facing facade: it keeps the session, calls the
// account service, and drives the transactor connection.
type Client struct {
	session   *SessionStore
	accounts  AccountClient
	transport *Transport
	events    *Dispatcher
	clock     ports.Clock
	logger    *slog.Logger
}

var _ ports.Platform = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	events := NewDispatcher(logger)
	return &Client{
		session: &SessionStore{},
		accounts: AccountClient{
			URL:            cfg.AccountURL,
			HTTPClient:     cfg.HTTPClient,
			RequestTimeout: cfg.RequestTimeout,
			Logger:         logger,
		},
		transport: NewTransport(TransportConfig{
			URL:         cfg.TransactorURL,
			CallTimeout: cfg.CallTimeout,
			Dialer:      cfg.Dialer,
			Logger:      logger,
		}, events),
		events: events,
		clock:  clock,
		logger: logger,
	}
}

func (c *Client) Session() domain.Session {
	return c.session.Snapshot()
}

// SetToken injects a pre-generated token. identityHint, when set, is used as
// the author id for writes instead of the token's account claim.
func (c *Client) SetToken(token, workspaceID, identityHint string) {
	c.session.Set(token, workspaceID, identityHint)
	c.logger.Debug("session token set",
		"workspace", workspaceID,
		"account", c.session.AccountID(),
	)
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	token, err := c.accounts.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	c.session.replace(token, "")
	c.logger.Info("logged in", "email", email, "account", c.session.AccountID())
	return token, nil
}

func (c *Client) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	token, err := c.accounts.SignUp(ctx, email, password, displayName)
	if err != nil {
		return "", err
	}
	c.session.replace(token, "")
	c.logger.Info("signed up", "email", email, "account", c.session.AccountID())
	return token, nil
}

func (c *Client) Join(ctx context.Context, inviteID string) error {
	return c.accounts.Join(ctx, c.session.Token(), inviteID)
}

func (c *Client) Workspaces(ctx context.Context) ([]domain.Workspace, error) {
	return c.accounts.ListWorkspaces(ctx, c.session.Token())
}

// SelectWorkspace swaps the session token for a workspace-scoped one. The
// next Connect uses the new token.
func (c *Client) SelectWorkspace(ctx context.Context, workspaceID string) (string, error) {
	token, err := c.accounts.SelectWorkspace(ctx, c.session.Token(), workspaceID)
	if err != nil {
		return "", err
	}
	c.session.replace(token, workspaceID)
	c.logger.Info("workspace selected", "workspace", workspaceID)
	return token, nil
}

func (c *Client) Connect(ctx context.Context) error {
	return c.transport.Connect(ctx, c.session.Token())
}

func (c *Client) Disconnect() {
	c.transport.Disconnect()
}

func (c *Client) State() State {
	return c.transport.State()
}

func (c *Client) On(event string, listener func(data json.RawMessage)) {
	c.events.On(event, listener)
}

// Subscribe registers listener for pushed transactions and then probes the
// model and account endpoints. Probe failures are logged only.
func (c *Client) Subscribe(ctx context.Context, listener func(tx json.RawMessage)) {
	c.events.On(EventTx, listener)

	for _, probe := range []string{"loadModel", "getAccount"} {
		result, err := c.transport.Call(ctx, probe)
		if err != nil {
			c.logger.Warn("subscription probe failed", "method", probe, "error", err)
			continue
		}
		c.logger.Debug("subscription probe", "method", probe, "result", excerpt(result))
	}
}

func (c *Client) Call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	return c.transport.Call(ctx, method, params...)
}

func (c *Client) FindAll(ctx context.Context, class string, query map[string]any) ([]json.RawMessage, error) {
	docs, err := c.transport.FindAll(ctx, class, query)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", class, err)
	}
	return docs, nil
}
