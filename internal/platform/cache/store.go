package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/hoop-analytics/internal/platform/logging"
	"github.com/riskibarqy/hoop-analytics/internal/platform/resilience"
)

// Remote is an optional shared tier consulted on a local miss.
type Remote interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process result cache with per-class TTLs. Concurrent misses
// for the same key share one loader call, and loader errors are never stored.
// A nil *Store is usable and caches nothing.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	policy  TTLPolicy
	now     func() time.Time
	flight  resilience.SingleFlight
	remote  Remote
	logger  *logging.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithRemote(remote Remote) Option {
	return func(s *Store) {
		s.remote = remote
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(policy TTLPolicy, opts ...Option) *Store {
	if policy == nil {
		policy = DefaultTTLPolicy()
	}
	s := &Store{
		entries: make(map[string]entry),
		policy:  policy,
		now:     time.Now,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a fresh entry. An expired entry is evicted and reported as a miss.
func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if s == nil || key == "" {
		return nil, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !now.Before(e.expiresAt) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && !now.Before(current.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any, class Class) {
	if s == nil || key == "" {
		return
	}
	ttl := s.policy.TTL(class)
	if ttl <= 0 {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	s.mu.Unlock()
}

// Delete invalidates one key in the local tier.
func (s *Store) Delete(_ context.Context, key string) {
	if s == nil || key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if s == nil || prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Len counts stored entries, including ones that expired but were not read yet.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or computes it with loader. The
// remote tier is skipped because untyped values cannot be decoded; use Load.
func (s *Store) GetOrLoad(ctx context.Context, key string, class Class, loader func(context.Context) (any, error)) (any, error) {
	return s.load(ctx, key, class, nil, loader)
}

// Load is the typed form of GetOrLoad. Values also flow through the remote tier
// when one is configured. A T with a Clone() T method is returned as a clone so
// callers cannot reach the stored entry; any other value is shared and must be
// treated as read-only.
func Load[T any](ctx context.Context, s *Store, key string, class Class, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}

	value, err := s.load(ctx, key, class, decodeInto[T], func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %q holds %T", key, value)
	}
	if c, ok := any(typed).(interface{ Clone() T }); ok {
		return c.Clone(), nil
	}
	return typed, nil
}

func decodeInto[T any](raw []byte) (any, error) {
	var out T
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) load(
	ctx context.Context,
	key string,
	class Class,
	decode func([]byte) (any, error),
	loader func(context.Context) (any, error),
) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if s == nil || key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	// The shared load outlives any single caller; per-call deadlines come from
	// the repository guard.
	loadCtx := context.WithoutCancel(ctx)
	value, err, _ := s.flight.Do(key, func() (any, error) {
		ctx := loadCtx
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		if cached, ok := s.readRemote(ctx, key, class, decode); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded, class)
		if decode != nil {
			s.writeRemote(ctx, key, class, loaded)
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) readRemote(ctx context.Context, key string, class Class, decode func([]byte) (any, error)) (any, bool) {
	if s.remote == nil || decode == nil || s.policy.TTL(class) <= 0 {
		return nil, false
	}

	raw, ok, err := s.remote.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "remote cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	value, err := decode(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "remote cache entry undecodable", "key", key, "error", err)
		return nil, false
	}
	s.Set(ctx, key, value, class)
	return value, true
}

func (s *Store) writeRemote(ctx context.Context, key string, class Class, value any) {
	ttl := s.policy.TTL(class)
	if s.remote == nil || ttl <= 0 {
		return
	}

	raw, err := sonic.Marshal(value)
	if err != nil {
		s.logger.WarnContext(ctx, "remote cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.remote.Set(ctx, key, raw, ttl); err != nil {
		s.logger.WarnContext(ctx, "remote cache write failed", "key", key, "error", err)
	}
}
