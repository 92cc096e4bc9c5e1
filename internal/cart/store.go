package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps the pending order snapshot between checkout and the payment
// callback, keyed by order number. The verification flow only ever clears
// entries; clearing an absent entry is a no-op.
type Store interface {
	SavePendingOrder(ctx context.Context, orderNumber string, snapshot []byte) error
	PendingOrder(ctx context.Context, orderNumber string) ([]byte, bool, error)
	ClearPendingOrder(ctx context.Context, orderNumber string) error
}

type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (s *redisStore) key(orderNumber string) string {
	return s.prefix + ":" + orderNumber
}

func (s *redisStore) SavePendingOrder(ctx context.Context, orderNumber string, snapshot []byte) error {
	return s.client.Set(ctx, s.key(orderNumber), snapshot, s.ttl).Err()
}

func (s *redisStore) PendingOrder(ctx context.Context, orderNumber string) ([]byte, bool, error) {
	raw, err := s.client.Get(ctx, s.key(orderNumber)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *redisStore) ClearPendingOrder(ctx context.Context, orderNumber string) error {
	return s.client.Del(ctx, s.key(orderNumber)).Err()
}

type memoryEntry struct {
	snapshot []byte
	expires  time.Time
}

type memoryStore struct {
	mu     sync.Mutex
	items  map[string]memoryEntry
	ttl    time.Duration
	nextGC time.Time
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	now := time.Now()
	return &memoryStore{
		items:  make(map[string]memoryEntry),
		ttl:    ttl,
		nextGC: now.Add(ttl),
	}
}

func (s *memoryStore) SavePendingOrder(_ context.Context, orderNumber string, snapshot []byte) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[orderNumber] = memoryEntry{snapshot: snapshot, expires: now.Add(s.ttl)}
	if now.After(s.nextGC) {
		for key, entry := range s.items {
			if entry.expires.Before(now) {
				delete(s.items, key)
			}
		}
		s.nextGC = now.Add(s.ttl)
	}
	return nil
}

func (s *memoryStore) PendingOrder(_ context.Context, orderNumber string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.items[orderNumber]
	if !ok || entry.expires.Before(time.Now()) {
		return nil, false, nil
	}
	return entry.snapshot, true, nil
}

func (s *memoryStore) ClearPendingOrder(_ context.Context, orderNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, orderNumber)
	return nil
}

// New builds a Redis-backed store and falls back to in-memory when Redis is
// unreachable. The returned error reports the fallback; the store is usable
// either way.
func New(addr, pass string, db int, ttl time.Duration) (Store, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if addr == "" {
		return newMemoryStore(ttl), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return newMemoryStore(ttl), err
	}

	return &redisStore{client: client, prefix: "shop:pending", ttl: ttl}, nil
}

// NewMemory returns a purely in-memory store, used in tests and when Redis
// is not configured.
func NewMemory(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return newMemoryStore(ttl)
}
