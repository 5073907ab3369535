package usecase

import (
	"context"
	"sync"
	"time"
)

// MemoryIdempotencyStore is the in-process IdempotencyStore used when Redis
// is not configured.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	locks   map[string]time.Time
	answers map[string]memoryAnswer
}

type memoryAnswer struct {
	value   string
	expires time.Time
}

func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		ttl:     ttl,
		now:     time.Now,
		locks:   map[string]time.Time{},
		answers: map[string]memoryAnswer{},
	}
}

func (s *MemoryIdempotencyStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.ttl)
}

func (s *MemoryIdempotencyStore) live(exp time.Time) bool {
	return exp.IsZero() || s.now().Before(exp)
}

func (s *MemoryIdempotencyStore) TryLock(_ context.Context, scope, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	if exp, ok := s.locks[k]; ok && s.live(exp) {
		return false, nil
	}
	s.locks[k] = s.expiry()
	return true, nil
}

func (s *MemoryIdempotencyStore) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	delete(s.locks, scope+":"+key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryIdempotencyStore) Remember(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	s.answers[scope+":"+key] = memoryAnswer{value: value, expires: s.expiry()}
	s.mu.Unlock()
	return nil
}

func (s *MemoryIdempotencyStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.answers[scope+":"+key]
	if !ok || !s.live(a.expires) {
		return "", false, nil
	}
	return a.value, true, nil
}

var _ IdempotencyStore = (*MemoryIdempotencyStore)(nil)
