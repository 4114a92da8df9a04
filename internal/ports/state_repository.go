package ports

import (
	"context"

	"github.com/bnema/huly-agent/internal/domain"
)

type StateRepository interface {
	Get(ctx context.Context, workspaceID string) (domain.AgentState, error)
	Save(ctx context.Context, state domain.AgentState) error
}
