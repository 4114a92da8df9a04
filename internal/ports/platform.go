package ports

import (
	"context"
	"encoding/json"

	"github.com/bnema/huly-agent/internal/domain"
)

// Platform is the authenticated workspace surface the agent drives.
type Platform interface {
	Session() domain.Session
	SetToken(token, workspaceID, identityHint string)
	Login(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, email, password, displayName string) (string, error)
	Join(ctx context.Context, inviteID string) error
	Workspaces(ctx context.Context) ([]domain.Workspace, error)
	SelectWorkspace(ctx context.Context, workspaceID string) (string, error)

	Connect(ctx context.Context) error
	Disconnect()
	On(event string, listener func(data json.RawMessage))
	Subscribe(ctx context.Context, listener func(tx json.RawMessage))

	FindAll(ctx context.Context, class string, query map[string]any) ([]json.RawMessage, error)
	CreateDoc(ctx context.Context, class, space string, attributes map[string]any) (string, error)
	UpdateDoc(ctx context.Context, class, space, objectID string, operations map[string]any) error
	SendChatMessage(ctx context.Context, channelID, text string) (json.RawMessage, error)
}
