package repository

import (
	"context"
	"errors"

	"github.com/okisetiana/blog-api/internal/domain/entity"
)

// Sentinel errors shared by repository implementations. Conflict errors are
// raised both by pre-checks and, authoritatively, by the database unique
// constraints, so concurrent duplicate registrations cannot slip through.
var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

// UserRepository is the storage collaborator for accounts.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
}
