package repository

import (
	"context"

	"github.com/okisetiana/blog-api/internal/domain/entity"
	"github.com/okisetiana/blog-api/internal/domain/query"
)

// ArticleRepository is the storage collaborator for articles. List executes
// a predicate built by the query package; everything else is by id.
type ArticleRepository interface {
	Create(ctx context.Context, a *entity.Article) error
	GetByID(ctx context.Context, id int64) (*entity.Article, error)
	Update(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q query.Query) ([]entity.Article, int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	IncrementViewCount(ctx context.Context, id int64) error
}
