package domain

import "time"

// AgentState is the persisted polling position for one workspace.
type AgentState struct {
	WorkspaceID string
	// SeenMessages is the number of chat messages already handled.
	SeenMessages  int
	LastMessageID string
	UpdatedAt     time.Time
}
