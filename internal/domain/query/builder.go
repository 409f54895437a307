// Package query composes optional article filters into a single SQL
// predicate plus ordering and a page window. Every clause constructor
// returns True when its input is absent, so the outer AND-fold never
// depends on which clauses are present or on their order.
package query

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// truePred is the identity element for And: it matches every row.
type truePred struct{}

func (truePred) ToSql() (string, []interface{}, error) { return "TRUE", nil, nil }

// True is the shared constant-true predicate contributed by absent filters.
var True sq.Sqlizer = truePred{}

// And folds predicates with logical AND, skipping nil and identity entries.
// And() with no effective operands yields True.
func And(preds ...sq.Sqlizer) sq.Sqlizer {
	conj := sq.And{}
	for _, p := range preds {
		if p == nil || p == True {
			continue
		}
		conj = append(conj, p)
	}
	if len(conj) == 0 {
		return True
	}
	return conj
}

// WithKeyword matches the keyword as a case-insensitive substring of the
// title or the content.
func WithKeyword(keyword string) sq.Sqlizer {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if k == "" {
		return True
	}
	pattern := "%" + k + "%"
	return sq.Or{
		sq.Like{"LOWER(title)": pattern},
		sq.Like{"LOWER(content)": pattern},
	}
}

// WithAuthor filters by exact author id. Non-positive ids mean "any author".
func WithAuthor(authorID int64) sq.Sqlizer {
	if authorID <= 0 {
		return True
	}
	return sq.Eq{"author_id": authorID}
}

// WithCategory matches the category case-insensitively after trimming.
func WithCategory(category string) sq.Sqlizer {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return True
	}
	return sq.Eq{"LOWER(category)": c}
}

// WithTags matches articles whose tag list overlaps the requested tags:
// OR across tags, case-insensitive substring match per tag. The OR is
// internal; the clause still ANDs with every other filter.
func WithTags(tags []string) sq.Sqlizer {
	disj := sq.Or{}
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		disj = append(disj, sq.Like{"LOWER(tags)": "%" + t + "%"})
	}
	if len(disj) == 0 {
		return True
	}
	return disj
}

// CreatedAfter is an inclusive lower bound on the creation timestamp.
func CreatedAfter(from *time.Time) sq.Sqlizer {
	if from == nil {
		return True
	}
	return sq.GtOrEq{"created_at": *from}
}

// CreatedBefore is an inclusive upper bound on the creation timestamp.
func CreatedBefore(to *time.Time) sq.Sqlizer {
	if to == nil {
		return True
	}
	return sq.LtOrEq{"created_at": *to}
}

// PublishedOnly restricts to articles whose publish time is set and has
// passed. Draft and scheduled articles never match it.
func PublishedOnly(now time.Time) sq.Sqlizer {
	return sq.And{
		sq.NotEq{"published_at": nil},
		sq.LtOrEq{"published_at": now},
	}
}

// FeaturedOnly restricts to featured articles when requested; there is no
// way to filter for "not featured" through this clause.
func FeaturedOnly(featured bool) sq.Sqlizer {
	if !featured {
		return True
	}
	return sq.Eq{"featured": true}
}

// PinnedOnly restricts to pinned articles when requested.
func PinnedOnly(pinned bool) sq.Sqlizer {
	if !pinned {
		return True
	}
	return sq.Eq{"pinned": true}
}

// DefaultPageSize is applied when the caller does not supply a size.
const DefaultPageSize = 20

// Params carries the raw, all-optional listing parameters.
type Params struct {
	Keyword       string
	Sort          string // date | popularity | title
	Order         string // asc | desc
	AuthorID      int64
	Category      string
	Tags          []string
	DateFrom      *time.Time
	DateTo        *time.Time
	PublishedOnly bool
	Featured      bool
	Pinned        bool
	Page          int
	Size          int
}

// Query is the executable result of Build: a predicate for the storage
// layer plus ordering and a page window.
type Query struct {
	Where   sq.Sqlizer
	OrderBy string
	Limit   uint64
	Offset  uint64
}

// SortColumn maps the public sort name to a column. Unrecognized names fall
// back to the creation time, they never fail.
func SortColumn(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "popularity":
		return "view_count"
	case "title":
		return "title"
	default:
		return "created_at"
	}
}

// Build assembles the composite predicate, ordering, and page window. It is
// pure: identical inputs (including now) produce identical queries.
func Build(p Params, now time.Time) Query {
	published := True
	if p.PublishedOnly {
		published = PublishedOnly(now)
	}

	where := And(
		WithKeyword(p.Keyword),
		WithAuthor(p.AuthorID),
		WithCategory(p.Category),
		WithTags(p.Tags),
		CreatedAfter(p.DateFrom),
		CreatedBefore(p.DateTo),
		published,
		FeaturedOnly(p.Featured),
		PinnedOnly(p.Pinned),
	)

	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(p.Order), "asc") {
		dir = "ASC"
	}

	page := p.Page
	if page < 0 {
		page = 0
	}
	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}

	return Query{
		Where:   where,
		OrderBy: SortColumn(p.Sort) + " " + dir,
		Limit:   uint64(size),
		Offset:  uint64(page) * uint64(size),
	}
}
