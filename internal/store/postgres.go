package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
// Visits live in their own table; the BIGSERIAL key is the visit sequence.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Insert(ctx context.Context, link *shortener.ShortLink) error {
	query := `
		INSERT INTO short_links (short_id, redirect_url, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (short_id) DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query,
		string(link.ID),
		link.RedirectURL,
		link.CreatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrDuplicateKey
	}

	return nil
}

func (p *PostgresStore) FindByID(ctx context.Context, id shortener.ID) (*shortener.ShortLink, error) {
	return p.load(ctx, p.pool, id)
}

// AppendVisit inserts the visit only if the link exists, in a single
// statement, then reads the updated link in the same transaction.
func (p *PostgresStore) AppendVisit(ctx context.Context, id shortener.ID, at time.Time) (*shortener.ShortLink, error) {
	insert := `
		INSERT INTO link_visits (short_id, visited_at)
		SELECT short_id, $2 FROM short_links WHERE short_id = $1
		RETURNING seq
	`

	var link *shortener.ShortLink

	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		var seq int64
		if err := tx.QueryRow(ctx, insert, string(id), at).Scan(&seq); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shortener.ErrNotFound
			}

			return err
		}

		var err error
		link, err = p.load(ctx, tx, id)

		return err
	})
	if err != nil {
		return nil, err
	}

	return link, nil
}

// Ping checks database connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Shutdown closes the connection pool.
func (p *PostgresStore) Shutdown() error {
	p.pool.Close()

	return nil
}

func (p *PostgresStore) load(ctx context.Context, q querier, id shortener.ID) (*shortener.ShortLink, error) {
	query := `
		SELECT short_id, redirect_url, created_at
		FROM short_links
		WHERE short_id = $1
	`

	var (
		link    shortener.ShortLink
		shortID string
	)

	err := q.QueryRow(ctx, query, string(id)).Scan(
		&shortID,
		&link.RedirectURL,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	link.ID = shortener.ID(shortID)

	rows, err := q.Query(ctx, `
		SELECT seq, visited_at
		FROM link_visits
		WHERE short_id = $1
		ORDER BY seq
	`, string(id))
	if err != nil {
		return nil, err
	}

	link.Visits, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (shortener.Visit, error) {
		var v shortener.Visit
		err := row.Scan(&v.Seq, &v.Timestamp)

		return v, err
	})
	if err != nil {
		return nil, err
	}

	return &link, nil
}

var _ shortener.Repository = (*PostgresStore)(nil)
