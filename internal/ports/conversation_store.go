package ports

import (
	"context"

	"github.com/bnema/huly-agent/internal/domain"
)

// ConversationStore keeps the recent LLM turns for a conversation key
// (typically a channel id).
type ConversationStore interface {
	Load(ctx context.Context, key string) ([]domain.ChatTurn, error)
	Append(ctx context.Context, key string, turns ...domain.ChatTurn) error
}
