package huly

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/huly-agent/internal/domain"
)

const maxAccountResponseBytes = 4 << 20

// AccountClient talks to the platform account service: one JSON POST of
// {method, params} per operation.
type AccountClient struct {
	URL            string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

type accountRequest struct {
	Method string `json:"method"`
	Params any    `json:"params"`
}

type accountResponse struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

type tokenResult struct {
	Token string `json:"token"`
}

func (c AccountClient) Login(ctx context.Context, email, password string) (string, error) {
	result, err := c.call(ctx, "login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	if err != nil {
		return "", err
	}
	return decodeToken("login", result)
}

// SignUp registers a new account. displayName is split into first and last
// name on its first space.
func (c AccountClient) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	firstName, lastName := splitDisplayName(displayName)
	result, err := c.call(ctx, "signUp", map[string]any{
		"email":     email,
		"password":  password,
		"firstName": firstName,
		"lastName":  lastName,
	}, "")
	if err != nil {
		return "", err
	}
	return decodeToken("signUp", result)
}

func (c AccountClient) Join(ctx context.Context, token, inviteID string) error {
	if token == "" {
		return fmt.Errorf("join workspace: %w", domain.ErrNotLoggedIn)
	}
	if strings.TrimSpace(inviteID) == "" {
		return errors.New("invite id is required")
	}

	_, err := c.call(ctx, "join", map[string]any{"inviteId": inviteID}, token)
	return err
}

func (c AccountClient) ListWorkspaces(ctx context.Context, token string) ([]domain.Workspace, error) {
	if token == "" {
		return nil, fmt.Errorf("list workspaces: %w", domain.ErrNotLoggedIn)
	}

	result, err := c.post(ctx, "listWorkspaces", map[string]any{}, token)
	if err != nil {
		return nil, err
	}
	if !isPresent(result) {
		return []domain.Workspace{}, nil
	}

	var workspaces []domain.Workspace
	if err := json.Unmarshal(result, &workspaces); err != nil {
		return nil, &domain.AuthError{Method: "listWorkspaces", Payload: result}
	}
	if workspaces == nil {
		workspaces = []domain.Workspace{}
	}
	return workspaces, nil
}

// SelectWorkspace exchanges token for a workspace-scoped token.
func (c AccountClient) SelectWorkspace(ctx context.Context, token, workspaceID string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("select workspace: %w", domain.ErrNotLoggedIn)
	}
	if workspaceID == "" {
		return "", errors.New("workspace id is required")
	}

	result, err := c.call(ctx, "selectWorkspace", map[string]any{"workspaceId": workspaceID}, token)
	if err != nil {
		return "", err
	}
	return decodeToken("selectWorkspace", result)
}

// call posts one request and returns the raw result. A server error field or
// a missing result yields an AuthError; nothing is partially parsed.
func (c AccountClient) call(ctx context.Context, method string, params any, token string) (json.RawMessage, error) {
	result, err := c.post(ctx, method, params, token)
	if err != nil {
		return nil, err
	}
	if !isPresent(result) {
		return nil, &domain.AuthError{Method: method}
	}
	return result, nil
}

// post is call without the result requirement. The returned result may be
// empty or null.
func (c AccountClient) post(ctx context.Context, method string, params any, token string) (json.RawMessage, error) {
	if strings.TrimSpace(c.URL) == "" {
		return nil, errors.New("account url is required")
	}

	body, err := json.Marshal(accountRequest{Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", method, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger().Debug("account request", "method", method)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: method, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxAccountResponseBytes))
	if err != nil {
		return nil, &domain.TransportError{Op: method, Err: fmt.Errorf("read response: %w", err)}
	}

	var payload accountResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &domain.TransportError{
			Op:  method,
			Err: fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, &domain.ParseError{Payload: raw, Err: err}),
		}
	}

	if isPresent(payload.Error) {
		return nil, &domain.AuthError{Method: method, Payload: payload.Error}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.TransportError{Op: method, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	return payload.Result, nil
}

func (c AccountClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c AccountClient) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c AccountClient) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, requestTimeout)
}

func decodeToken(method string, result json.RawMessage) (string, error) {
	var decoded tokenResult
	if err := json.Unmarshal(result, &decoded); err != nil || decoded.Token == "" {
		return "", &domain.AuthError{Method: method, Payload: result}
	}
	return decoded.Token, nil
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func splitDisplayName(displayName string) (string, string) {
	displayName = strings.TrimSpace(displayName)
	first, last, _ := strings.Cut(displayName, " ")
	return first, strings.TrimSpace(last)
}
