package otpstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store for single-instance deployments.
// Expired entries are dropped on read and by a periodic sweep.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryStore starts a sweeper running every interval; interval <= 0 disables it.
func NewMemoryStore(interval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]Entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if interval > 0 {
		go s.sweep(interval)
	}
	return s
}

func (s *MemoryStore) Put(_ context.Context, key string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[NormalizeKey(key)] = entry
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := NormalizeKey(key)
	entry, ok := s.entries[k]
	if !ok {
		return Entry{}, ErrNotFound
	}
	if entry.Expired(s.now()) {
		delete(s.entries, k)
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, NormalizeKey(key))
	return nil
}

// Len returns the number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the sweeper.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.purge()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, e := range s.entries {
		if e.Expired(now) {
			delete(s.entries, k)
		}
	}
}
