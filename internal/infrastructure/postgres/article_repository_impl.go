package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okisetiana/blog-api/internal/domain/entity"
	"github.com/okisetiana/blog-api/internal/domain/query"
	"github.com/okisetiana/blog-api/internal/domain/repository"
)

const articleColumns = `id, title, content, created_at, updated_at, published_at,
	view_count, author_id, category, tags, featured, pinned`

// psql renders squirrel expressions with $N placeholders for pgx.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO articles (title, content, published_at, author_id, category, tags, featured, pinned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at, view_count
	`, a.Title, a.Content, a.PublishedAt, a.AuthorID, a.Category, a.Tags, a.Featured, a.Pinned)

	return row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt, &a.ViewCount)
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	a := &entity.Article{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE id = $1
	`, id)

	if err := scanArticle(row, a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	// author_id is deliberately not in the SET list: ownership is fixed at
	// creation.
	res, err := r.pool.Exec(ctx, `
		UPDATE articles
		SET title = $1, content = $2, updated_at = now(), published_at = $3,
		    category = $4, tags = $5, featured = $6, pinned = $7
		WHERE id = $8
	`, a.Title, a.Content, a.PublishedAt, a.Category, a.Tags, a.Featured, a.Pinned, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List executes the composed predicate plus ordering and page window, and
// returns the matching page with the unpaged total.
func (r *ArticleRepository) List(ctx context.Context, q query.Query) ([]entity.Article, int64, error) {
	sqlStr, args, err := psql.
		Select(articleColumns).
		From("articles").
		Where(q.Where).
		OrderBy(q.OrderBy).
		Limit(q.Limit).
		Offset(q.Offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]entity.Article, 0, q.Limit)
	for rows.Next() {
		var a entity.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countSQL, countArgs, err := psql.
		Select("COUNT(*)").
		From("articles").
		Where(q.Where).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *ArticleRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT category
		FROM articles
		WHERE category IS NOT NULL AND category != ''
		ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ArticleRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM articles WHERE author_id = $1`, authorID,
	).Scan(&n)
	return n, err
}

func (r *ArticleRepository) IncrementViewCount(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE articles SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

func scanArticle(row pgx.Row, a *entity.Article) error {
	return row.Scan(&a.ID, &a.Title, &a.Content, &a.CreatedAt, &a.UpdatedAt,
		&a.PublishedAt, &a.ViewCount, &a.AuthorID, &a.Category, &a.Tags,
		&a.Featured, &a.Pinned)
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)
