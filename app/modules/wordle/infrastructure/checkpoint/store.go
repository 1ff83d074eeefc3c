// Package wordlecheckpoint remembers how far a channel scrape got so an
// interrupted run resumes instead of starting over.
package wordlecheckpoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const ttlCheckpoint = 7 * 24 * time.Hour

// Checkpoint is the resume point of one channel scrape.
type Checkpoint struct {
	// Before is the id of the oldest message already processed.
	Before string `json:"before"`
	// Range is the scrape range as requested; Since is the cutoff it
	// resolved to when the scrape started.
	Range     string    `json:"range"`
	Since     time.Time `json:"since"`
	Pages     int       `json:"pages"`
	Messages  int       `json:"messages"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists checkpoints under the keys built by Key. Load returns nil,
// nil when no checkpoint exists.
type Store interface {
	Load(ctx context.Context, key string) (*Checkpoint, error)
	Save(ctx context.Context, key string, cp *Checkpoint) error
	Clear(ctx context.Context, key string) error
}

// Key identifies one scrape: a channel walked back to one requested range.
// Scrapes of the same channel with different ranges keep separate
// checkpoints.
func Key(channelID, rangeText string) string {
	return strings.TrimSpace(channelID) + ":" + rangeText
}

// RedisStore keeps checkpoints as JSON strings with a TTL.
type RedisStore struct{ rdb *redis.Client }

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) redisKey(key string) string {
	return "wordle:scrape:" + key
}

func (s *RedisStore) Load(ctx context.Context, key string) (*Checkpoint, error) {
	raw, err := s.rdb.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}
	var cp Checkpoint
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, fmt.Errorf("decode checkpoint: %w", err)
	}
	return &cp, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, cp *Checkpoint) error {
	cp.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.redisKey(key), raw, ttlCheckpoint).Err(); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("clear checkpoint: %w", err)
	}
	return nil
}

// MemoryStore is used when no Redis is configured; checkpoints then live only
// as long as the process.
type MemoryStore struct {
	mu  sync.Mutex
	cps map[string]Checkpoint
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{cps: map[string]Checkpoint{}} }

func (s *MemoryStore) Load(_ context.Context, key string) (*Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp, ok := s.cps[key]
	if !ok {
		return nil, nil
	}
	return &cp, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, cp *Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp.UpdatedAt = time.Now().UTC()
	s.cps[key] = *cp
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cps, key)
	return nil
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
