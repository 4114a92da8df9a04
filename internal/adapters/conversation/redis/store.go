package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bnema/huly-agent/internal/domain"
)

const (
	DefaultTTL    = 24 * time.Hour
	DefaultPrefix = "hulybot:conversation:"
)

// Store keeps each conversation as a capped redis list of JSON turns.
type Store struct {
	rdb      *goredis.Client
	prefix   string
	ttl      time.Duration
	maxTurns int
}

type Option func(*Store)

func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithMaxTurns caps the stored turns per key. Non-positive values keep the
// default cap.
func WithMaxTurns(maxTurns int) Option {
	return func(s *Store) {
		if maxTurns > 0 {
			s.maxTurns = maxTurns
		}
	}
}

func New(rdb *goredis.Client, opts ...Option) *Store {
	store := &Store{
		rdb:      rdb,
		prefix:   DefaultPrefix,
		ttl:      DefaultTTL,
		maxTurns: domain.MaxConversationTurns,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Open parses a redis:// url, connects and pings the server.
func Open(ctx context.Context, url string, opts ...Option) (*Store, error) {
	options, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := goredis.NewClient(options)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(rdb, opts...), nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Load(ctx context.Context, key string) ([]domain.ChatTurn, error) {
	values, err := s.rdb.LRange(ctx, s.prefix+key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}

	turns := make([]domain.ChatTurn, 0, len(values))
	for _, value := range values {
		var turn domain.ChatTurn
		if err := json.Unmarshal([]byte(value), &turn); err != nil {
			return nil, fmt.Errorf("decode conversation turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Append pushes turns, trims the list to the newest entries and refreshes
// the expiry in one transaction.
func (s *Store) Append(ctx context.Context, key string, turns ...domain.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}

	values := make([]any, 0, len(turns))
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("encode conversation turn: %w", err)
		}
		values = append(values, data)
	}

	listKey := s.prefix + key
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.RPush(ctx, listKey, values...)
		pipe.LTrim(ctx, listKey, int64(-s.maxTurns), -1)
		pipe.Expire(ctx, listKey, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	return nil
}
