package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// Both keys of a link share the {id} hash tag so the scripts stay single-slot.
var (
	insertScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'redirect_url', ARGV[1], 'created_at', ARGV[2])
return 1
`)

	appendVisitScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('RPUSH', KEYS[2], ARGV[1])
`)
)

// RedisStore is a Redis implementation of shortener.Repository.
// A link is a hash at link:{id}; its visits are a list at link:{id}:visits
// holding unix-nano timestamps, so a visit's Seq is its list position.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a new Redis-backed link store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "link:",
	}
}

func (r *RedisStore) Insert(ctx context.Context, link *shortener.ShortLink) error {
	created, err := insertScript.Run(ctx, r.client,
		[]string{r.linkKey(link.ID)},
		link.RedirectURL,
		link.CreatedAt.UnixNano(),
	).Int64()
	if err != nil {
		return err
	}

	if created == 0 {
		return shortener.ErrDuplicateKey
	}

	return nil
}

func (r *RedisStore) FindByID(ctx context.Context, id shortener.ID) (*shortener.ShortLink, error) {
	return r.load(ctx, id)
}

func (r *RedisStore) AppendVisit(ctx context.Context, id shortener.ID, at time.Time) (*shortener.ShortLink, error) {
	length, err := appendVisitScript.Run(ctx, r.client,
		[]string{r.linkKey(id), r.visitsKey(id)},
		at.UnixNano(),
	).Int64()
	if err != nil {
		return nil, err
	}

	if length < 0 {
		return nil, shortener.ErrNotFound
	}

	return r.load(ctx, id)
}

// Ping checks Redis connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) load(ctx context.Context, id shortener.ID) (*shortener.ShortLink, error) {
	pipe := r.client.Pipeline()
	fields := pipe.HGetAll(ctx, r.linkKey(id))
	visits := pipe.LRange(ctx, r.visitsKey(id), 0, -1)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	result := fields.Val()
	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	createdAt, err := parseUnixNano(result["created_at"])
	if err != nil {
		return nil, fmt.Errorf("decode created_at of %s: %w", id, err)
	}

	link := &shortener.ShortLink{
		ID:          id,
		RedirectURL: result["redirect_url"],
		CreatedAt:   createdAt,
	}

	for i, raw := range visits.Val() {
		ts, err := parseUnixNano(raw)
		if err != nil {
			return nil, fmt.Errorf("decode visit %d of %s: %w", i, id, err)
		}

		link.Visits = append(link.Visits, shortener.Visit{
			Seq:       int64(i) + 1,
			Timestamp: ts,
		})
	}

	return link, nil
}

func (r *RedisStore) linkKey(id shortener.ID) string {
	return r.prefix + "{" + string(id) + "}"
}

func (r *RedisStore) visitsKey(id shortener.ID) string {
	return r.linkKey(id) + ":visits"
}

func parseUnixNano(s string) (time.Time, error) {
	nanos, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	return time.Unix(0, nanos), nil
}

var _ shortener.Repository = (*RedisStore)(nil)
