package huly

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/huly-agent/internal/domain"
)

type accountCall struct {
	Method        string
	Params        map[string]any
	Authorization string
}

func newAccountServer(t *testing.T, respond func(call accountCall) (int, string)) (*httptest.Server, chan accountCall) {
	t.Helper()

	calls := make(chan accountCall, 8)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Method string         `json:"method"`
			Params map[string]any `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		call := accountCall{Method: body.Method, Params: body.Params, Authorization: r.Header.Get("Authorization")}
		calls <- call

		status, payload := respond(call)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)

	return server, calls
}

func accountClientFor(server *httptest.Server) AccountClient {
	return AccountClient{URL: server.URL, HTTPClient: server.Client(), Logger: discardLogger()}
}

func TestAccountLoginReturnsToken(t *testing.T) {
	t.Parallel()

	server, calls := newAccountServer(t, func(accountCall) (int, string) {
		return http.StatusOK, `{"result":{"token":"tok-1","account":"acc-1"}}`
	})

	token, err := accountClientFor(server).Login(context.Background(), "bot@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	call := <-calls
	assert.Equal(t, "login", call.Method)
	assert.Equal(t, map[string]any{"email": "bot@example.com", "password": "secret"}, call.Params)
	assert.Empty(t, call.Authorization)
}

func TestAccountLoginFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantPayload string
	}{
		{name: "server error", status: http.StatusOK, body: `{"error":{"code":"InvalidPassword"}}`, wantPayload: `{"code":"InvalidPassword"}`},
		{name: "error with result", status: http.StatusOK, body: `{"result":{"token":"tok"},"error":"locked"}`, wantPayload: `"locked"`},
		{name: "missing token", status: http.StatusOK, body: `{"result":{}}`, wantPayload: `{}`},
		{name: "missing result", status: http.StatusOK, body: `{}`},
		{name: "error status with json error", status: http.StatusUnauthorized, body: `{"error":"unauthorized"}`, wantPayload: `"unauthorized"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server, _ := newAccountServer(t, func(accountCall) (int, string) {
				return tt.status, tt.body
			})

			token, err := accountClientFor(server).Login(context.Background(), "bot@example.com", "secret")
			require.Error(t, err)
			assert.Empty(t, token)
			assert.ErrorIs(t, err, domain.ErrAuth)

			var authErr *domain.AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, "login", authErr.Method)
			if tt.wantPayload != "" {
				assert.JSONEq(t, tt.wantPayload, string(authErr.Payload))
			}
		})
	}
}

func TestAccountNonJSONResponseIsTransportError(t *testing.T) {
	t.Parallel()

	server, _ := newAccountServer(t, func(accountCall) (int, string) {
		return http.StatusBadGateway, `<html>bad gateway</html>`
	})

	_, err := accountClientFor(server).Login(context.Background(), "bot@example.com", "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.NotErrorIs(t, err, domain.ErrAuth)
}

func TestAccountSignUpSplitsDisplayName(t *testing.T) {
	t.Parallel()

	server, calls := newAccountServer(t, func(accountCall) (int, string) {
		return http.StatusOK, `{"result":{"token":"tok-2"}}`
	})

	token, err := accountClientFor(server).SignUp(context.Background(), "bot@example.com", "secret", "Huly Helper Bot")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	call := <-calls
	assert.Equal(t, "signUp", call.Method)
	assert.Equal(t, "Huly", call.Params["firstName"])
	assert.Equal(t, "Helper Bot", call.Params["lastName"])
}

func TestAccountWorkspaceCallsSendBearerToken(t *testing.T) {
	t.Parallel()

	server, calls := newAccountServer(t, func(call accountCall) (int, string) {
		switch call.Method {
		case "listWorkspaces":
			return http.StatusOK, `{"result":[{"workspaceId":"ws-1","workspaceName":"Team","workspaceUrl":"team"}]}`
		case "selectWorkspace":
			return http.StatusOK, `{"result":{"token":"ws-token"}}`
		case "join":
			return http.StatusOK, `{"result":{"workspace":"ws-1"}}`
		}
		return http.StatusOK, `{"error":"unknown method"}`
	})
	client := accountClientFor(server)
	ctx := context.Background()

	workspaces, err := client.ListWorkspaces(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Workspace{{ID: "ws-1", Name: "Team", URL: "team"}}, workspaces)

	token, err := client.SelectWorkspace(ctx, "tok-1", "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "ws-token", token)

	require.NoError(t, client.Join(ctx, "tok-1", "invite-9"))

	for _, want := range []struct {
		method string
		params map[string]any
	}{
		{method: "listWorkspaces", params: map[string]any{}},
		{method: "selectWorkspace", params: map[string]any{"workspaceId": "ws-1"}},
		{method: "join", params: map[string]any{"inviteId": "invite-9"}},
	} {
		call := <-calls
		assert.Equal(t, want.method, call.Method)
		assert.Equal(t, want.params, call.Params)
		assert.Equal(t, "Bearer tok-1", call.Authorization)
	}
}

func TestAccountListWorkspacesAcceptsEmptyList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty array", payload: `{"result":[]}`},
		{name: "null result", payload: `{"result":null}`},
		{name: "absent result", payload: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server, _ := newAccountServer(t, func(accountCall) (int, string) {
				return http.StatusOK, tt.payload
			})

			workspaces, err := accountClientFor(server).ListWorkspaces(context.Background(), "tok-1")
			require.NoError(t, err)
			assert.NotNil(t, workspaces)
			assert.Empty(t, workspaces)
		})
	}
}

func TestAccountTokenRequiredCalls(t *testing.T) {
	t.Parallel()

	client := AccountClient{URL: "http://127.0.0.1:1", Logger: discardLogger()}
	ctx := context.Background()

	_, err := client.ListWorkspaces(ctx, "")
	assert.ErrorIs(t, err, domain.ErrState)

	_, err = client.SelectWorkspace(ctx, "", "ws-1")
	assert.ErrorIs(t, err, domain.ErrState)

	err = client.Join(ctx, "", "invite")
	assert.ErrorIs(t, err, domain.ErrState)
}

func TestAccountRequestTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server, _ := newAccountServer(t, func(accountCall) (int, string) {
		time.Sleep(100 * time.Millisecond)
		return http.StatusOK, `{"result":{"token":"late"}}`
	})
	client := accountClientFor(server)
	client.RequestTimeout = 20 * time.Millisecond

	_, err := client.Login(context.Background(), "bot@example.com", "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
}
