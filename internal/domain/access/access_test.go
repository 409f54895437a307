package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/okisetiana/blog-api/internal/domain/entity"
)

func principal(id int64, role entity.Role) *Principal {
	return &Principal{UserID: id, Username: "u", Role: role}
}

func TestCanCreate(t *testing.T) {
	cases := []struct {
		role entity.Role
		want bool
	}{
		{entity.RoleAdmin, true},
		{entity.RoleEditor, true},
		{entity.RoleAuthor, true},
		{entity.RoleReader, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.want, CanCreate(principal(1, tc.role)))
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		assert.False(t, CanCreate(nil))
	})

	t.Run("unknown role", func(t *testing.T) {
		assert.False(t, CanCreate(principal(1, entity.Role("SUPERUSER"))))
	})
}

func TestCanUpdateAndDelete(t *testing.T) {
	const owner, other = int64(10), int64(99)

	cases := []struct {
		name    string
		p       *Principal
		ownerID int64
		want    bool
	}{
		{"admin own", principal(owner, entity.RoleAdmin), owner, true},
		{"admin other", principal(other, entity.RoleAdmin), owner, true},
		{"editor own", principal(owner, entity.RoleEditor), owner, true},
		{"editor other", principal(other, entity.RoleEditor), owner, true},
		{"author own", principal(owner, entity.RoleAuthor), owner, true},
		{"author other", principal(other, entity.RoleAuthor), owner, false},
		{"reader own", principal(owner, entity.RoleReader), owner, false},
		{"reader other", principal(other, entity.RoleReader), owner, false},
		{"anonymous", nil, owner, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanUpdate(tc.p, tc.ownerID))
			assert.Equal(t, tc.want, CanDelete(tc.p, tc.ownerID))
		})
	}
}

func TestCanView(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	const owner = int64(10)

	published := &entity.Article{AuthorID: owner, PublishedAt: &past}
	draft := &entity.Article{AuthorID: owner, PublishedAt: nil}
	scheduled := &entity.Article{AuthorID: owner, PublishedAt: &future}

	t.Run("published is visible to everyone", func(t *testing.T) {
		assert.True(t, CanView(nil, published, now))
		assert.True(t, CanView(principal(99, entity.RoleReader), published, now))
	})

	for name, hidden := range map[string]*entity.Article{"draft": draft, "scheduled": scheduled} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, CanView(nil, hidden, now), "anonymous")
			assert.False(t, CanView(principal(99, entity.RoleReader), hidden, now), "reader")
			assert.False(t, CanView(principal(99, entity.RoleAuthor), hidden, now), "other author")
			assert.True(t, CanView(principal(owner, entity.RoleAuthor), hidden, now), "owning author")
			assert.True(t, CanView(principal(99, entity.RoleEditor), hidden, now), "editor")
			assert.True(t, CanView(principal(99, entity.RoleAdmin), hidden, now), "admin")
		})
	}

	t.Run("publish instant exactly now is published", func(t *testing.T) {
		exact := &entity.Article{AuthorID: owner, PublishedAt: &now}
		assert.True(t, CanView(nil, exact, now))
	})
}
