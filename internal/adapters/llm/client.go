package llm

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

	"github.com/bnema/huly-agent/internal/ports"
)

const (
	chatCompletionsPath = "/v1/chat/completions"
	tagsPath            = "/api/tags"
	maxResponseBytes    = 4 << 20
	maxErrorExcerpt     = 300
)

// Client calls an OpenAI-compatible chat completions endpoint such as the
// one Ollama exposes.
type Client struct {
	BaseURL        string
	Model          string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

var _ ports.Completer = Client{}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete returns the content of the first choice.
func (c Client) Complete(ctx context.Context, request ports.CompletionRequest) (string, error) {
	if len(request.Messages) == 0 {
		return "", errors.New("completion request has no messages")
	}
	if strings.TrimSpace(c.Model) == "" {
		return "", errors.New("model is required")
	}

	messages := make([]chatMessage, 0, len(request.Messages))
	for _, turn := range request.Messages {
		messages = append(messages, chatMessage{Role: string(turn.Role), Content: turn.Content})
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    messages,
		Temperature: request.Temperature,
		MaxTokens:   request.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, c.endpoint(chatCompletionsPath), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorExcerpt))
		return "", fmt.Errorf("request completion: status %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	var payload chatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	c.logger().Debug("completion finished",
		"model", c.Model,
		"messages", len(messages),
		"duration", time.Since(started),
	)

	return payload.Choices[0].Message.Content, nil
}

// Available reports whether the endpoint answers its model listing.
func (c Client) Available(ctx context.Context) bool {
	requestCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, c.endpoint(tagsPath), nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.logger().Debug("llm endpoint unreachable", "url", c.BaseURL, "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}

func (c Client) endpoint(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 2 * time.Minute
	}
	return context.WithTimeout(ctx, requestTimeout)
}
