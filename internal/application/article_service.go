package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/okisetiana/blog-api/internal/domain/access"
	"github.com/okisetiana/blog-api/internal/domain/entity"
	"github.com/okisetiana/blog-api/internal/domain/query"
	repo "github.com/okisetiana/blog-api/internal/domain/repository"
)

// ErrArticleNotFound covers both truly absent articles and articles the
// caller is not allowed to see; the two must stay indistinguishable.
var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// ArticleService gates article reads and mutations through the visibility
// and access-control rules.
type ArticleService struct {
	Articles repo.ArticleRepository
	Logger   *logrus.Logger
}

func NewArticleService(articles repo.ArticleRepository, logger *logrus.Logger) *ArticleService {
	return &ArticleService{Articles: articles, Logger: logger}
}

// List runs the composed filter query. Listing does not consult the
// access-control service: publishedOnly=false exposes list rows as-is, and
// single-item reads still gate.
func (s *ArticleService) List(ctx context.Context, p query.Params) ([]entity.Article, int64, error) {
	return s.Articles.List(ctx, query.Build(p, time.Now()))
}

func (s *ArticleService) Categories(ctx context.Context) ([]string, error) {
	return s.Articles.DistinctCategories(ctx)
}

// Get returns the article when the caller may see it, counting the view for
// published reads. Hidden and absent articles both yield ErrArticleNotFound.
func (s *ArticleService) Get(ctx context.Context, id int64, p *access.Principal) (*entity.Article, error) {
	a, err := s.Articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	now := time.Now()
	if !access.CanView(p, a, now) {
		return nil, ErrArticleNotFound
	}

	if a.IsPublishedAt(now) {
		if err := s.Articles.IncrementViewCount(ctx, a.ID); err != nil {
			s.Logger.WithError(err).WithField("article_id", a.ID).Warn("view count increment failed")
		} else {
			a.ViewCount++
		}
	}
	return a, nil
}

// ArticleInput carries authoring fields. Pointer fields are "absent vs
// provided": updates only touch them when provided.
type ArticleInput struct {
	Title       string
	Content     string
	Category    *string
	Tags        *string
	PublishedAt *time.Time
	Featured    *bool
	Pinned      *bool
}

// Create stores a new article owned by the caller. PublishedAt may be nil
// (draft) or in the future (scheduled).
func (s *ArticleService) Create(ctx context.Context, p *access.Principal, in ArticleInput) (*entity.Article, error) {
	if !access.CanCreate(p) {
		return nil, ErrPermissionDenied
	}

	a := &entity.Article{
		Title:       in.Title,
		Content:     in.Content,
		AuthorID:    p.UserID,
		PublishedAt: in.PublishedAt,
	}
	if in.Category != nil {
		a.Category = *in.Category
	}
	if in.Tags != nil {
		a.Tags = *in.Tags
	}
	if in.Featured != nil {
		a.Featured = *in.Featured
	}
	if in.Pinned != nil {
		a.Pinned = *in.Pinned
	}

	if err := s.Articles.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update rewrites title/content and applies provided optional fields. The
// author reference never changes.
func (s *ArticleService) Update(ctx context.Context, id int64, p *access.Principal, in ArticleInput) (*entity.Article, error) {
	a, err := s.Articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	if !access.CanUpdate(p, a.AuthorID) {
		return nil, ErrPermissionDenied
	}

	a.Title = in.Title
	a.Content = in.Content
	if in.Category != nil {
		a.Category = *in.Category
	}
	if in.Tags != nil {
		a.Tags = *in.Tags
	}
	if in.PublishedAt != nil {
		a.PublishedAt = in.PublishedAt
	}
	if in.Featured != nil {
		a.Featured = *in.Featured
	}
	if in.Pinned != nil {
		a.Pinned = *in.Pinned
	}

	if err := s.Articles.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes the article permanently; there is no soft delete.
func (s *ArticleService) Delete(ctx context.Context, id int64, p *access.Principal) error {
	a, err := s.Articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	if !access.CanDelete(p, a.AuthorID) {
		return ErrPermissionDenied
	}
	return s.Articles.Delete(ctx, a.ID)
}
