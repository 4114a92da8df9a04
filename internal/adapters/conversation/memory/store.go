package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/bnema/huly-agent/internal/domain"
)

// Store keeps conversations in process memory. History is lost on restart.
type Store struct {
	mu       sync.Mutex
	turns    map[string][]domain.ChatTurn
	maxTurns int
}

func New(maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = domain.MaxConversationTurns
	}
	return &Store{turns: map[string][]domain.ChatTurn{}, maxTurns: maxTurns}
}

func (s *Store) Load(_ context.Context, key string) ([]domain.ChatTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.turns[strings.TrimSpace(key)]
	out := make([]domain.ChatTurn, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *Store) Append(_ context.Context, key string, turns ...domain.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}
	key = strings.TrimSpace(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.turns[key], turns...)
	if len(history) > s.maxTurns {
		history = append([]domain.ChatTurn(nil), history[len(history)-s.maxTurns:]...)
	}
	s.turns[key] = history
	return nil
}
