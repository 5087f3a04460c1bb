package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSessionTTL is how long an idle draft is kept.
const DefaultSessionTTL = 2 * time.Hour

const keyPrefixSession = "booking:session:"

// SessionStore keeps wizard states between requests.
type SessionStore interface {
	Save(ctx context.Context, id string, st State) error
	Load(ctx context.Context, id string) (State, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the default store when Redis is not configured.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memorySession
}

type memorySession struct {
	state     State
	expiresAt time.Time
}

// NewMemoryStore creates an in-process store. A ttl <= 0 keeps sessions forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySession),
	}
}

func (s *MemoryStore) Save(_ context.Context, id string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memorySession{state: st}
	entry.state.Draft = st.Draft.clone()
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.sessions[id] = entry
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return State{}, ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return State{}, ErrSessionNotFound
	}

	st := entry.state
	st.Draft = st.Draft.clone()
	return st, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// RedisStore keeps states as JSON with a sliding TTL.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{redis: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, id string, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.redis.Set(ctx, keyPrefixSession+id, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (State, error) {
	data, err := s.redis.Get(ctx, keyPrefixSession+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrSessionNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to load session: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return st, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, keyPrefixSession+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ConfirmationRegistry holds confirmed bookings for the lifetime of the process.
type ConfirmationRegistry struct {
	mu       sync.RWMutex
	bookings map[string]*ConfirmedBooking
}

func NewConfirmationRegistry() *ConfirmationRegistry {
	return &ConfirmationRegistry{bookings: make(map[string]*ConfirmedBooking)}
}

func (r *ConfirmationRegistry) Add(b *ConfirmedBooking) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *b
	cp.Draft = b.Draft.clone()
	r.bookings[b.ID] = &cp
}

// Get returns a copy; callers change bookings through Update.
func (r *ConfirmationRegistry) Get(id string) (*ConfirmedBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrConfirmationNotFound
	}

	cp := *b
	cp.Draft = b.Draft.clone()
	return &cp, nil
}

// Update applies fn to the stored booking under the write lock.
func (r *ConfirmationRegistry) Update(id string, fn func(b *ConfirmedBooking) error) (*ConfirmedBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrConfirmationNotFound
	}
	if err := fn(b); err != nil {
		return nil, err
	}

	cp := *b
	cp.Draft = b.Draft.clone()
	return &cp, nil
}
