package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/huly-agent/internal/domain"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	prefix := fmt.Sprintf("hulybot-test:%s:", uuid.NewString())
	store, err := Open(context.Background(), url, append([]Option{WithPrefix(prefix)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTripAndTrim(t *testing.T) {
	store := openTestStore(t, WithMaxTurns(3), WithTTL(time.Minute))
	ctx := context.Background()

	empty, err := store.Load(ctx, "channel-1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for i := range 4 {
		require.NoError(t, store.Append(ctx, "channel-1", domain.ChatTurn{Role: domain.RoleUser, Content: fmt.Sprint(i)}))
	}

	turns, err := store.Load(ctx, "channel-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.ChatTurn{
		{Role: domain.RoleUser, Content: "1"},
		{Role: domain.RoleUser, Content: "2"},
		{Role: domain.RoleUser, Content: "3"},
	}, turns)

	ttl, err := store.rdb.TTL(ctx, store.prefix+"channel-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestOpenRejectsInvalidURL(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "not-a-redis-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	store := New(nil)
	assert.Equal(t, DefaultPrefix, store.prefix)
	assert.Equal(t, DefaultTTL, store.ttl)
	assert.Equal(t, domain.MaxConversationTurns, store.maxTurns)
}

func TestWithMaxTurnsKeepsCapForNonPositiveValues(t *testing.T) {
	t.Parallel()

	for _, maxTurns := range []int{0, -5} {
		store := New(nil, WithMaxTurns(maxTurns))
		assert.Equal(t, domain.MaxConversationTurns, store.maxTurns, "maxTurns=%d", maxTurns)
	}

	assert.Equal(t, 4, New(nil, WithMaxTurns(4)).maxTurns)
}
