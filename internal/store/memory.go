package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

type memoryEntry struct {
	mu   sync.Mutex
	link *shortener.ShortLink
}

// MemoryStore is an in-memory implementation of shortener.Repository.
// The map lock guards membership only; each entry has its own lock so visits
// to different links never contend.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[shortener.ID]*memoryEntry
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[shortener.ID]*memoryEntry),
	}
}

func (m *MemoryStore) Insert(ctx context.Context, link *shortener.ShortLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.links[link.ID]; exists {
		return shortener.ErrDuplicateKey
	}

	stored := link.Clone()
	stored.Visits = nil
	m.links[link.ID] = &memoryEntry{link: stored}

	return nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id shortener.ID) (*shortener.ShortLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, ok := m.entry(id)
	if !ok {
		return nil, shortener.ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.link.Clone(), nil
}

func (m *MemoryStore) AppendVisit(ctx context.Context, id shortener.ID, at time.Time) (*shortener.ShortLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, ok := m.entry(id)
	if !ok {
		return nil, shortener.ErrNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.link.Visits = append(entry.link.Visits, shortener.Visit{
		Seq:       int64(len(entry.link.Visits)) + 1,
		Timestamp: at,
	})

	return entry.link.Clone(), nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryStore) entry(id shortener.ID) (*memoryEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.links[id]

	return entry, ok
}

var _ shortener.Repository = (*MemoryStore)(nil)
