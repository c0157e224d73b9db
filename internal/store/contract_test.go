package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises behaviour every shortener.Repository must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) shortener.Repository) {
	t.Helper()

	ctx := context.Background()
	createdAt := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("insert then find", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Insert(ctx, &shortener.ShortLink{
			ID:          "abc12345",
			RedirectURL: "https://example.com",
			CreatedAt:   createdAt,
		})
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, "abc12345")
		require.NoError(t, err)
		assert.Equal(t, shortener.ID("abc12345"), got.ID)
		assert.Equal(t, "https://example.com", got.RedirectURL)
		assert.True(t, createdAt.Equal(got.CreatedAt))
		assert.Empty(t, got.Visits)
	})

	t.Run("insert duplicate returns ErrDuplicateKey and keeps original", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Insert(ctx, &shortener.ShortLink{
			ID: "dup00001", RedirectURL: "https://old.com", CreatedAt: createdAt,
		}))

		err := repo.Insert(ctx, &shortener.ShortLink{
			ID: "dup00001", RedirectURL: "https://new.com", CreatedAt: createdAt,
		})
		assert.ErrorIs(t, err, shortener.ErrDuplicateKey)

		got, err := repo.FindByID(ctx, "dup00001")
		require.NoError(t, err)
		assert.Equal(t, "https://old.com", got.RedirectURL)
	})

	t.Run("find missing returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.FindByID(ctx, "zzzzzzzz")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("append visit to missing link returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.AppendVisit(ctx, "zzzzzzzz", time.Now())

		assert.Nil(t, got)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("append visit returns updated link with increasing seq", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, &shortener.ShortLink{
			ID: "visit001", RedirectURL: "https://example.com", CreatedAt: createdAt,
		}))

		first, err := repo.AppendVisit(ctx, "visit001", createdAt.Add(time.Second))
		require.NoError(t, err)
		require.Len(t, first.Visits, 1)
		assert.Equal(t, "https://example.com", first.RedirectURL)

		second, err := repo.AppendVisit(ctx, "visit001", createdAt.Add(2*time.Second))
		require.NoError(t, err)
		require.Len(t, second.Visits, 2)
		assert.Less(t, second.Visits[0].Seq, second.Visits[1].Seq)
		assert.True(t, createdAt.Add(time.Second).Equal(second.Visits[0].Timestamp))
		assert.True(t, createdAt.Add(2*time.Second).Equal(second.Visits[1].Timestamp))
	})

	t.Run("seq increases within a link when appends interleave", func(t *testing.T) {
		repo := newRepo(t)
		for _, id := range []shortener.ID{"mixed001", "mixed002"} {
			require.NoError(t, repo.Insert(ctx, &shortener.ShortLink{
				ID: id, RedirectURL: "https://example.com", CreatedAt: createdAt,
			}))
		}

		var last *shortener.ShortLink

		for i := range 3 {
			_, err := repo.AppendVisit(ctx, "mixed002", createdAt.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)

			last, err = repo.AppendVisit(ctx, "mixed001", createdAt.Add(time.Duration(i)*time.Second))
			require.NoError(t, err)
		}

		require.Len(t, last.Visits, 3)

		for i := 1; i < len(last.Visits); i++ {
			assert.Less(t, last.Visits[i-1].Seq, last.Visits[i].Seq)
		}
	})

	for _, n := range []int{1, 10, 100} {
		t.Run(fmt.Sprintf("%d concurrent visits are all recorded", n), func(t *testing.T) {
			repo := newRepo(t)
			id := shortener.ID(fmt.Sprintf("conc%04d", n))
			require.NoError(t, repo.Insert(ctx, &shortener.ShortLink{
				ID: id, RedirectURL: "https://example.com", CreatedAt: createdAt,
			}))

			var wg sync.WaitGroup

			wg.Add(n)

			for range n {
				go func() {
					defer wg.Done()

					_, err := repo.AppendVisit(ctx, id, time.Now())
					assert.NoError(t, err)
				}()
			}

			wg.Wait()

			got, err := repo.FindByID(ctx, id)
			require.NoError(t, err)
			require.Len(t, got.Visits, n)

			seen := make(map[int64]bool, n)
			for _, v := range got.Visits {
				assert.False(t, seen[v.Seq], "duplicate seq %d", v.Seq)
				seen[v.Seq] = true
			}
		})
	}

	t.Run("concurrent inserts of one id admit exactly one", func(t *testing.T) {
		repo := newRepo(t)

		const writers = 20

		var (
			wg         sync.WaitGroup
			mu         sync.Mutex
			successes  int
			duplicates int
		)

		wg.Add(writers)

		for i := range writers {
			go func() {
				defer wg.Done()

				err := repo.Insert(ctx, &shortener.ShortLink{
					ID:          "samecode",
					RedirectURL: fmt.Sprintf("https://example.com/%d", i),
					CreatedAt:   createdAt,
				})

				mu.Lock()
				defer mu.Unlock()

				switch {
				case err == nil:
					successes++
				case assert.ErrorIs(t, err, shortener.ErrDuplicateKey):
					duplicates++
				}
			}()
		}

		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, writers-1, duplicates)
	})
}
