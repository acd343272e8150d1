package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/osse101/MagicGarden_Go/internal/domain"
)

// SaveRepository keeps save documents in process memory with an optional byte quota.
// It models browser-style local storage where writes fail once the quota is spent.
type SaveRepository struct {
	mu     sync.RWMutex
	docs   map[string][]byte
	quota  int
	used   int
	failer func(key string) error
}

// NewSaveRepository creates a repository. A quota of 0 disables the limit.
func NewSaveRepository(quotaBytes int) *SaveRepository {
	return &SaveRepository{
		docs:  make(map[string][]byte),
		quota: quotaBytes,
	}
}

// FailWith installs a hook consulted before each Put; a non-nil result aborts the write.
// Used by tests to simulate transient storage failures.
func (r *SaveRepository) FailWith(fn func(key string) error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failer = fn
}

func (r *SaveRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.docs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (r *SaveRepository) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failer != nil {
		if err := r.failer(key); err != nil {
			return err
		}
	}

	newUsed := r.used - len(r.docs[key]) + len(value)
	if r.quota > 0 && newUsed > r.quota {
		return fmt.Errorf("%w: %d of %d bytes", domain.ErrQuotaExceeded, newUsed, r.quota)
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	r.docs[key] = stored
	r.used = newUsed
	return nil
}

func (r *SaveRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.used -= len(r.docs[key])
	delete(r.docs, key)
	return nil
}

func (r *SaveRepository) Keys(_ context.Context, prefix string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.docs))
	for k := range r.docs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Used reports the bytes currently stored
func (r *SaveRepository) Used() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.used
}
