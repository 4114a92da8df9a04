package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/huly-agent/internal/adapters/secrets/file"
	"github.com/bnema/huly-agent/internal/adapters/secrets/pass"
	"github.com/bnema/huly-agent/internal/domain"
	"github.com/bnema/huly-agent/internal/ports"
)

// Store writes to the primary backend and falls back to the secondary one
// when the primary is unusable. Reads try both.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewPassFirstWithFileFallback prefers pass(1) and keeps files under
// fileRoot when pass is missing or fails.
func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(pass.NewStore(), file.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

// Get returns domain.ErrSecretNotFound only when neither backend has the key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	if isNotFoundOrUnavailable(err) && errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete removes the key from both backends so a stale copy cannot be read
// back after logout.
func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	if shouldSkipFallback(primaryErr) {
		return primaryErr
	}
	if errors.Is(primaryErr, pass.ErrUnavailable) {
		primaryErr = nil
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if primaryErr != nil && fallbackErr != nil {
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", primaryErr, fallbackErr)
	}
	if fallbackErr != nil {
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	}
	if primaryErr != nil {
		return fmt.Errorf("primary backend delete failed: %w", primaryErr)
	}
	return nil
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func isNotFoundOrUnavailable(err error) bool {
	return errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, pass.ErrUnavailable)
}
