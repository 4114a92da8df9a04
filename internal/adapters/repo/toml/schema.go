package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version    int               `toml:"version"`
	Workspaces []workspaceSchema `toml:"workspaces"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type workspaceSchema struct {
	ID            string `toml:"id"`
	SeenMessages  int    `toml:"seen_messages"`
	LastMessageID string `toml:"last_message_id,omitempty"`
	UpdatedAt     string `toml:"updated_at,omitempty"`
}
