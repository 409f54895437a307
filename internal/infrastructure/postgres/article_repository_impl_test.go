package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okisetiana/blog-api/internal/domain/entity"
	"github.com/okisetiana/blog-api/internal/domain/query"
	"github.com/okisetiana/blog-api/internal/domain/repository"
	"github.com/okisetiana/blog-api/internal/infrastructure/postgres"
)

func TestArticleRepository(t *testing.T) {
	db := setupTestDB(t)
	users := postgres.NewUserRepository(db.Pool)
	articles := postgres.NewArticleRepository(db.Pool)
	ctx := context.Background()
	now := time.Now()

	seedAuthor := func(t *testing.T) int64 {
		t.Helper()
		u := newUser("writer", "writer@example.com")
		require.NoError(t, users.Create(ctx, u))
		return u.ID
	}

	seed := func(t *testing.T, authorID int64, mut func(*entity.Article)) *entity.Article {
		t.Helper()
		a := &entity.Article{Title: "seed title", Content: "seed content", AuthorID: authorID}
		if mut != nil {
			mut(a)
		}
		require.NoError(t, articles.Create(ctx, a))
		return a
	}

	list := func(t *testing.T, p query.Params) ([]entity.Article, int64) {
		t.Helper()
		items, total, err := articles.List(ctx, query.Build(p, now))
		require.NoError(t, err)
		return items, total
	}

	t.Run("crud round trip", func(t *testing.T) {
		db.truncate(t, "articles", "users")
		authorID := seedAuthor(t)

		published := now.Add(-time.Hour).UTC().Truncate(time.Microsecond)
		a := seed(t, authorID, func(a *entity.Article) {
			a.Category = "Tech"
			a.Tags = "go,web"
			a.PublishedAt = &published
			a.Featured = true
		})
		assert.NotZero(t, a.ID)
		assert.Zero(t, a.ViewCount)

		got, err := articles.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "seed title", got.Title)
		assert.Equal(t, "go,web", got.Tags)
		require.NotNil(t, got.PublishedAt)
		assert.True(t, got.PublishedAt.Equal(published))
		assert.True(t, got.Featured)

		got.Title = "renamed"
		got.PublishedAt = nil
		require.NoError(t, articles.Update(ctx, got))
		back, err := articles.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", back.Title)
		assert.Nil(t, back.PublishedAt, "unpublished back to draft")

		require.NoError(t, articles.Delete(ctx, a.ID))
		_, err = articles.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("missing rows", func(t *testing.T) {
		db.truncate(t, "articles", "users")
		_, err := articles.GetByID(ctx, 404)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, articles.Delete(ctx, 404), repository.ErrNotFound)
		assert.ErrorIs(t, articles.Update(ctx, &entity.Article{ID: 404, Title: "x"}), repository.ErrNotFound)
	})

	t.Run("tag overlap matching", func(t *testing.T) {
		db.truncate(t, "articles", "users")
		authorID := seedAuthor(t)
		target := seed(t, authorID, func(a *entity.Article) { a.Tags = "Java,Spring,Boot" })
		seed(t, authorID, func(a *entity.Article) { a.Tags = "python,django" })

		items, total := list(t, query.Params{Tags: []string{"java", "react"}})
		require.Equal(t, int64(1), total)
		assert.Equal(t, target.ID, items[0].ID, "one overlapping tag is enough, case-insensitively")

		_, total = list(t, query.Params{Tags: []string{"rust", "elixir"}})
		assert.Zero(t, total)
	})

	t.Run("keyword matches title or content", func(t *testing.T) {
		db.truncate(t, "articles", "users")
		authorID := seedAuthor(t)
		inTitle := seed(t, authorID, func(a *entity.Article) { a.Title = "Generics Deep Dive" })
		inContent := seed(t, authorID, func(a *entity.Article) { a.Content = "all about generics" })
		seed(t, authorID, nil)

		items, total := list(t, query.Params{Keyword: "GENERICS"})
		assert.Equal(t, int64(2), total)
		ids := []int64{items[0].ID, items[1].ID}
		assert.ElementsMatch(t, []int64{inTitle.ID, inContent.ID}, ids)
	})

	t.Run("published only hides drafts and scheduled", func(t *testing.T) {
		db.truncate(t, "articles", "users")
		authorID := seedAuthor(t)
		past := now.Add(-time.Hour)
		future := now.Add(time.Hour)
		visible := seed(t, authorID, func(a *entity.Article) { a.PublishedAt = &past })
		seed(t, authorID, nil) // draft
		seed(t, authorID, func(a *entity.Article) { a.PublishedAt = &future })

		items, total := list(t, query.Params{PublishedOnly: true})
		require.Equal(t, int64(1), total)
		assert.Equal(t, visible.ID, items[0].ID)

		_, total = list(t, query.Params{})
		assert.Equal(t, int64(3), total, "without the flag every row is listed")
	})

	t.Run("category and author filters", func(t *testing.T) {
		db.truncate(t, "articles", "users")
		authorID := seedAuthor(t)
		other := newUser("other", "other@example.com")
		require.NoError(t, users.Create(ctx, other))

		tech := seed(t, authorID, func(a *entity.Article) { a.Category = "Tech" })
		seed(t, other.ID, func(a *entity.Article) { a.Category = "Sport" })

		items, total := list(t, query.Params{Category: "TECH"})
		require.Equal(t, int64(1), total)
		assert.Equal(t, tech.ID, items[0].ID)

		items, total = list(t, query.Params{AuthorID: other.ID})
		require.Equal(t, int64(1), total)
		assert.Equal(t, "Sport", items[0].Category)
	})

	t.Run("sorting and pagination with unpaged total", func(t *testing.T) {
		db.truncate(t, "articles", "users")
		authorID := seedAuthor(t)
		for i := 1; i <= 5; i++ {
			i := i
			a := seed(t, authorID, func(a *entity.Article) { a.Title = string(rune('a'+i)) + "-title" })
			for j := 0; j < i; j++ {
				require.NoError(t, articles.IncrementViewCount(ctx, a.ID))
			}
		}

		items, total := list(t, query.Params{Sort: "popularity", Order: "desc", Page: 0, Size: 2})
		assert.Equal(t, int64(5), total, "total ignores the page window")
		require.Len(t, items, 2)
		assert.Equal(t, int64(5), items[0].ViewCount)
		assert.Equal(t, int64(4), items[1].ViewCount)

		items, _ = list(t, query.Params{Sort: "popularity", Order: "desc", Page: 2, Size: 2})
		require.Len(t, items, 1, "last page is short")
		assert.Equal(t, int64(1), items[0].ViewCount)

		items, _ = list(t, query.Params{Sort: "title", Order: "asc", Size: 5})
		require.Len(t, items, 5)
		assert.Equal(t, "b-title", items[0].Title)
	})

	t.Run("distinct categories", func(t *testing.T) {
		db.truncate(t, "articles", "users")
		authorID := seedAuthor(t)
		for _, c := range []string{"Tech", "Sport", "Tech", ""} {
			c := c
			seed(t, authorID, func(a *entity.Article) { a.Category = c })
		}
		cats, err := articles.DistinctCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Sport", "Tech"}, cats, "sorted, deduplicated, no blanks")
	})

	t.Run("count by author", func(t *testing.T) {
		db.truncate(t, "articles", "users")
		authorID := seedAuthor(t)
		other := newUser("other", "other@example.com")
		require.NoError(t, users.Create(ctx, other))
		seed(t, authorID, nil)
		seed(t, authorID, nil)
		seed(t, other.ID, nil)

		n, err := articles.CountByAuthor(ctx, authorID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("increment view count", func(t *testing.T) {
		db.truncate(t, "articles", "users")
		authorID := seedAuthor(t)
		a := seed(t, authorID, nil)
		require.NoError(t, articles.IncrementViewCount(ctx, a.ID))
		require.NoError(t, articles.IncrementViewCount(ctx, a.ID))
		got, err := articles.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ViewCount)
	})
}
