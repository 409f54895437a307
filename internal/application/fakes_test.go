package application

import (
	"context"
	"strings"
	"sync"

	"github.com/okisetiana/blog-api/internal/domain/entity"
	"github.com/okisetiana/blog-api/internal/domain/query"
	repo "github.com/okisetiana/blog-api/internal/domain/repository"
)

// In-memory repositories for service tests. They honor the same sentinel
// errors as the postgres implementations but do not evaluate predicates;
// List returns everything.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Username == u.Username {
			return repo.ErrUsernameTaken
		}
		if e.Email == u.Email {
			return repo.ErrEmailTaken
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, e := range r.users {
		if id == u.ID {
			continue
		}
		if e.Username == u.Username {
			return repo.ErrUsernameTaken
		}
		if e.Email == u.Email {
			return repo.ErrEmailTaken
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeArticleRepo struct {
	mu       sync.Mutex
	nextID   int64
	articles map[int64]*entity.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[int64]*entity.Article)}
}

func (r *fakeArticleRepo) Create(_ context.Context, a *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	cp := *a
	r.articles[a.ID] = &cp
	return nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id int64) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeArticleRepo) Update(_ context.Context, a *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[a.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *a
	r.articles[a.ID] = &cp
	return nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) List(_ context.Context, _ query.Query) ([]entity.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Article, 0, len(r.articles))
	for _, a := range r.articles {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *fakeArticleRepo) DistinctCategories(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, a := range r.articles {
		c := strings.TrimSpace(a.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) CountByAuthor(_ context.Context, authorID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.articles {
		if a.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (r *fakeArticleRepo) IncrementViewCount(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return repo.ErrNotFound
	}
	a.ViewCount++
	return nil
}
