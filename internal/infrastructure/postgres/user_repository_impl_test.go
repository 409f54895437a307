package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okisetiana/blog-api/internal/domain/entity"
	"github.com/okisetiana/blog-api/internal/domain/repository"
	"github.com/okisetiana/blog-api/internal/infrastructure/postgres"
)

func newUser(username, email string) *entity.User {
	return &entity.User{
		Username: username,
		Email:    email,
		Password: "$2a$10$abcdefghijklmnopqrstuv",
		Role:     entity.RoleAuthor,
	}
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := postgres.NewUserRepository(db.Pool)
	ctx := context.Background()

	t.Run("create fills generated columns", func(t *testing.T) {
		db.truncate(t, "users")
		u := newUser("alice", "alice@example.com")
		require.NoError(t, repo.Create(ctx, u))
		assert.NotZero(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("duplicate username maps to the conflict sentinel", func(t *testing.T) {
		db.truncate(t, "users")
		require.NoError(t, repo.Create(ctx, newUser("alice", "a1@example.com")))
		err := repo.Create(ctx, newUser("alice", "a2@example.com"))
		assert.ErrorIs(t, err, repository.ErrUsernameTaken)
	})

	t.Run("duplicate email maps to the conflict sentinel", func(t *testing.T) {
		db.truncate(t, "users")
		require.NoError(t, repo.Create(ctx, newUser("a1", "same@example.com")))
		err := repo.Create(ctx, newUser("a2", "same@example.com"))
		assert.ErrorIs(t, err, repository.ErrEmailTaken)
	})

	t.Run("lookups", func(t *testing.T) {
		db.truncate(t, "users")
		u := newUser("alice", "alice@example.com")
		require.NoError(t, repo.Create(ctx, u))

		byID, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)
		assert.Equal(t, entity.RoleAuthor, byID.Role)

		byName, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)

		_, err = repo.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("exists checks", func(t *testing.T) {
		db.truncate(t, "users")
		require.NoError(t, repo.Create(ctx, newUser("alice", "alice@example.com")))

		ok, err := repo.ExistsByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = repo.ExistsByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.ExistsByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = repo.ExistsByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("update", func(t *testing.T) {
		db.truncate(t, "users")
		u := newUser("alice", "alice@example.com")
		require.NoError(t, repo.Create(ctx, u))

		u.Username = "alicia"
		u.Email = "alicia@example.com"
		require.NoError(t, repo.Update(ctx, u))

		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alicia", got.Username)
		assert.Equal(t, "alicia@example.com", got.Email)
	})

	t.Run("update into a taken username conflicts", func(t *testing.T) {
		db.truncate(t, "users")
		require.NoError(t, repo.Create(ctx, newUser("alice", "alice@example.com")))
		bob := newUser("bob", "bob@example.com")
		require.NoError(t, repo.Create(ctx, bob))

		bob.Username = "alice"
		err := repo.Update(ctx, bob)
		assert.ErrorIs(t, err, repository.ErrUsernameTaken)
	})

	t.Run("unrecognized stored role is an error, not a deny-all user", func(t *testing.T) {
		db.truncate(t, "users")
		var id int64
		err := db.Pool.QueryRow(ctx, `
			INSERT INTO users (username, email, password_hash, role)
			VALUES ('corrupt', 'corrupt@example.com', 'x', 'SUPERUSER')
			RETURNING id
		`).Scan(&id)
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, id)
		require.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrNotFound)
		assert.Contains(t, err.Error(), "SUPERUSER")
	})

	t.Run("update of a missing user", func(t *testing.T) {
		db.truncate(t, "users")
		ghost := newUser("ghost", "ghost@example.com")
		ghost.ID = 12345
		assert.ErrorIs(t, repo.Update(ctx, ghost), repository.ErrNotFound)
	})
}
