package ports

import (
	"context"

	"github.com/bnema/huly-agent/internal/domain"
)

type CompletionRequest struct {
	Messages    []domain.ChatTurn
	Temperature float64
	MaxTokens   int
}

// Completer is a chat-completion endpoint returning a single text answer.
type Completer interface {
	Complete(ctx context.Context, request CompletionRequest) (string, error)
	Available(ctx context.Context) bool
}
