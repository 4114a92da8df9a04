package llm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/huly-agent/internal/domain"
	"github.com/bnema/huly-agent/internal/ports"
)

func testClient(server *httptest.Server) Client {
	return Client{
		BaseURL:    server.URL + "/",
		Model:      "llama3.1:8b",
		HTTPClient: server.Client(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestCompleteSendsChatRequest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3.1:8b", body.Model)
		assert.InDelta(t, 0.3, body.Temperature, 1e-9)
		assert.Equal(t, 10, body.MaxTokens)
		assert.False(t, body.Stream)
		assert.Equal(t, []chatMessage{
			{Role: "system", Content: "answer YES or NO"},
			{Role: "user", Content: "hello?"},
		}, body.Messages)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"YES"}},{"message":{"content":"NO"}}]}`))
	}))
	t.Cleanup(server.Close)

	answer, err := testClient(server).Complete(context.Background(), ports.CompletionRequest{
		Messages: []domain.ChatTurn{
			{Role: domain.RoleSystem, Content: "answer YES or NO"},
			{Role: domain.RoleUser, Content: "hello?"},
		},
		Temperature: 0.3,
		MaxTokens:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, "YES", answer)
}

func TestCompleteFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `model not loaded`, wantErr: "status 500: model not loaded"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: "no choices"},
		{name: "bad json", status: http.StatusOK, body: `{"choices":`, wantErr: "decode completion response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			_, err := testClient(server).Complete(context.Background(), ports.CompletionRequest{
				Messages: []domain.ChatTurn{{Role: domain.RoleUser, Content: "hi"}},
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCompleteRequiresMessages(t *testing.T) {
	t.Parallel()

	_, err := Client{BaseURL: "http://127.0.0.1:1", Model: "m"}.Complete(context.Background(), ports.CompletionRequest{})
	require.Error(t, err)
}

func TestCompleteTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"late"}}]}`))
	}))
	t.Cleanup(server.Close)

	client := testClient(server)
	client.RequestTimeout = 20 * time.Millisecond

	_, err := client.Complete(context.Background(), ports.CompletionRequest{
		Messages: []domain.ChatTurn{{Role: domain.RoleUser, Content: "hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request completion")
}

func TestAvailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	assert.True(t, testClient(server).Available(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(down.Close)
	assert.False(t, testClient(down).Available(context.Background()))

	assert.False(t, Client{BaseURL: "http://127.0.0.1:1"}.Available(context.Background()))
}
