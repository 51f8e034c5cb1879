// Package session is the side channel that survives the
// checkout -> payment-confirmation redirect. It remembers the last order
// created for an identity (registered user or anonymous session).
package session

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is session-scoped key-value storage keyed by identity.
type Store interface {
	SetLastOrder(ctx context.Context, identity string, orderID uint) error
	// LastOrder reports the remembered order id, or ok=false when the
	// identity has no recent order.
	LastOrder(ctx context.Context, identity string) (id uint, ok bool, err error)
}

// RedisStore keeps session state in Redis with a TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) key(identity string) string {
	return fmt.Sprintf("session:last_order:%s", identity)
}

func (s *RedisStore) SetLastOrder(ctx context.Context, identity string, orderID uint) error {
	return s.rdb.Set(ctx, s.key(identity), orderID, s.ttl).Err()
}

func (s *RedisStore) LastOrder(ctx context.Context, identity string) (uint, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(identity)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

// MemoryStore is an in-process Store used in tests.
type MemoryStore struct {
	mu     sync.Mutex
	orders map[string]uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]uint)}
}

func (s *MemoryStore) SetLastOrder(_ context.Context, identity string, orderID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[identity] = orderID
	return nil
}

func (s *MemoryStore) LastOrder(_ context.Context, identity string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.orders[identity]
	return id, ok, nil
}
