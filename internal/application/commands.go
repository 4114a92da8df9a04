package application

import (
	"time"

	"github.com/bnema/huly-agent/internal/domain"
)

// Credentials selects how the bot authenticates. A non-empty Token skips the
// account service entirely.
type Credentials struct {
	Email       string
	Password    string
	DisplayName string

	Token        string
	WorkspaceID  string
	IdentityHint string
}

func (c Credentials) HasPassword() bool {
	return c.Email != "" && c.Password != ""
}

type AgentConfig struct {
	Credentials Credentials

	// Channel receives replies for messages that are not attached to a
	// channel.
	Channel      string
	BotName      string
	SystemPrompt string

	ActionInterval      time.Duration
	MaxActionsPerMinute int
}

func (c AgentConfig) withDefaults() AgentConfig {
	if c.Channel == "" {
		c.Channel = domain.SpaceGeneral
	}
	if c.BotName == "" {
		c.BotName = "Huly Bot"
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	if c.ActionInterval <= 0 {
		c.ActionInterval = 30 * time.Second
	}
	if c.MaxActionsPerMinute <= 0 {
		c.MaxActionsPerMinute = 10
	}
	return c
}
