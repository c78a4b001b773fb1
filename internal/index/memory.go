package index

import (
	"errors"
	"sync"
	"time"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

// ErrNoSnapshot is returned before the first successful load.
var ErrNoSnapshot = errors.New("no site snapshot loaded")

// MemoryIndex holds the currently published snapshot.
// Snapshots are replaced whole and never mutated, so readers keep the
// pointer they got for as long as they need it.
type MemoryIndex struct {
	mu         sync.RWMutex
	current    *domain.Snapshot
	lastReload time.Time // Timestamp of last successful publish
	lastError  error     // Last failed or rejected reload, cleared on success
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Update publishes snap as the current snapshot.
func (idx *MemoryIndex) Update(snap *domain.Snapshot) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.current = snap
	idx.lastReload = time.Now()
	idx.lastError = nil
}

// Current returns the published snapshot.
func (idx *MemoryIndex) Current() (*domain.Snapshot, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.current == nil {
		return nil, ErrNoSnapshot
	}
	return idx.current, nil
}

// Ready reports whether a snapshot has been published.
func (idx *MemoryIndex) Ready() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.current != nil
}

// Revision returns the current revision, or "" when empty.
func (idx *MemoryIndex) Revision() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.current == nil {
		return ""
	}
	return idx.current.Revision
}

// RecordFailure keeps the error of a reload that did not publish.
func (idx *MemoryIndex) RecordFailure(err error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lastError = err
}

// LastError returns the last reload failure since the last publish.
func (idx *MemoryIndex) LastError() error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastError
}

// GetLastReload returns the timestamp of the last publish
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
