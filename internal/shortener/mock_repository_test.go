package shortener_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

var errMock = errors.New("mock error")

// mockRepository is a test double for shortener.Repository.
type mockRepository struct {
	mu          sync.Mutex
	insertErrs  []error // consumed one per Insert call; nil once exhausted
	insertErr   error   // returned after insertErrs is exhausted
	findErr     error
	appendErr   error
	inserted    []*shortener.ShortLink
	findResult  *shortener.ShortLink
	appendCalls []time.Time
}

func (m *mockRepository) Insert(_ context.Context, link *shortener.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.insertErrs) > 0 {
		err := m.insertErrs[0]
		m.insertErrs = m.insertErrs[1:]

		if err != nil {
			return err
		}
	} else if m.insertErr != nil {
		return m.insertErr
	}

	m.inserted = append(m.inserted, link)

	return nil
}

func (m *mockRepository) FindByID(_ context.Context, _ shortener.ID) (*shortener.ShortLink, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}

	return m.findResult, nil
}

func (m *mockRepository) AppendVisit(_ context.Context, _ shortener.ID, at time.Time) (*shortener.ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.appendCalls = append(m.appendCalls, at)

	if m.appendErr != nil {
		return nil, m.appendErr
	}

	return m.findResult, nil
}

// sequence returns a generator yielding ids in order, repeating the last one.
func sequence(ids ...string) shortener.IDGenerator {
	var (
		mu sync.Mutex
		i  int
	)

	return func() string {
		mu.Lock()
		defer mu.Unlock()

		id := ids[min(i, len(ids)-1)]
		i++

		return id
	}
}

type countingMetrics struct {
	mu         sync.Mutex
	created    int
	collisions int
	exhausted  int
	visits     int
}

func (c *countingMetrics) LinkCreated()         { c.mu.Lock(); c.created++; c.mu.Unlock() }
func (c *countingMetrics) IDCollision()         { c.mu.Lock(); c.collisions++; c.mu.Unlock() }
func (c *countingMetrics) GenerationExhausted() { c.mu.Lock(); c.exhausted++; c.mu.Unlock() }
func (c *countingMetrics) VisitRecorded()       { c.mu.Lock(); c.visits++; c.mu.Unlock() }
