package shortener

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds identifier generation per Create call.
const DefaultMaxAttempts = 5

// Clock returns the current time.
type Clock func() time.Time

// Metrics receives service-level counters. See metrics.Collector.
type Metrics interface {
	LinkCreated()
	IDCollision()
	GenerationExhausted()
	VisitRecorded()
}

type nopMetrics struct{}

func (nopMetrics) LinkCreated()         {}
func (nopMetrics) IDCollision()         {}
func (nopMetrics) GenerationExhausted() {}
func (nopMetrics) VisitRecorded()       {}

// Option configures a Service.
type Option func(*Service)

// WithMaxAttempts sets how many identifiers Create tries before giving up.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithClock overrides the time source used for creation and visit timestamps.
func WithClock(clock Clock) Option {
	return func(s *Service) { s.now = clock }
}

// WithURLPolicy sets the validation applied to redirect targets.
func WithURLPolicy(policy URLPolicy) Option {
	return func(s *Service) { s.policy = policy }
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Service creates short links, resolves them while recording visits, and
// aggregates visit analytics.
type Service struct {
	store       Repository
	generateID  IDGenerator
	maxAttempts int
	now         Clock
	policy      URLPolicy
	metrics     Metrics
	logger      *zap.Logger
}

// NewService creates a Service over the given store and identifier generator.
func NewService(store Repository, generator IDGenerator, opts ...Option) *Service {
	s := &Service{
		store:       store,
		generateID:  generator,
		maxAttempts: DefaultMaxAttempts,
		now:         time.Now,
		policy:      AnyNonEmpty,
		metrics:     nopMetrics{},
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type outcome int

const (
	outcomeCreated outcome = iota
	outcomeDuplicate
	outcomeFailed
)

// Create stores longURL under a newly generated identifier.
func (s *Service) Create(ctx context.Context, longURL string) (*ShortLink, error) {
	if err := s.policy(longURL); err != nil {
		return nil, err
	}

	createdAt := s.now()

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		link := &ShortLink{
			ID:          ID(s.generateID()),
			RedirectURL: longURL,
			CreatedAt:   createdAt,
		}

		result, err := s.tryInsert(ctx, link)

		switch result {
		case outcomeCreated:
			s.metrics.LinkCreated()

			return link, nil
		case outcomeDuplicate:
			s.metrics.IDCollision()
			s.logger.Warn("short id collision, regenerating",
				zap.String("shortId", string(link.ID)),
				zap.Int("attempt", attempt),
			)
		case outcomeFailed:
			return nil, fmt.Errorf("insert short link: %w", err)
		}
	}

	s.metrics.GenerationExhausted()
	s.logger.Error("short id generation exhausted", zap.Int("attempts", s.maxAttempts))

	return nil, ErrGenerationExhausted
}

func (s *Service) tryInsert(ctx context.Context, link *ShortLink) (outcome, error) {
	err := s.store.Insert(ctx, link)

	switch {
	case err == nil:
		return outcomeCreated, nil
	case errors.Is(err, ErrDuplicateKey):
		return outcomeDuplicate, nil
	default:
		return outcomeFailed, err
	}
}

// Resolve records a visit and returns the link's redirect target together
// with the visit time handed to the store.
// The visit is persisted before the target is handed back.
func (s *Service) Resolve(ctx context.Context, id ID) (*Resolution, error) {
	visitedAt := s.now()

	link, err := s.store.AppendVisit(ctx, id, visitedAt)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("append visit: %w", err)
	}

	s.metrics.VisitRecorded()

	return &Resolution{
		RedirectURL: link.RedirectURL,
		VisitedAt:   visitedAt,
	}, nil
}

// Analytics returns the visit count and chronological visit history of a link.
func (s *Service) Analytics(ctx context.Context, id ID) (*Analytics, error) {
	link, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("find short link: %w", err)
	}

	visits := slices.Clone(link.Visits)
	slices.SortStableFunc(visits, func(a, b Visit) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}

		return cmp.Compare(a.Seq, b.Seq)
	})

	return &Analytics{
		ID:          link.ID,
		TotalClicks: len(visits),
		Visits:      visits,
	}, nil
}
