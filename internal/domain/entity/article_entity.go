package entity

import (
	"strings"
	"time"
)

// PublicationState is derived from PublishedAt and the current time; it is
// never stored. All classification goes through Article.StateAt.
type PublicationState string

const (
	StateDraft     PublicationState = "draft"
	StateScheduled PublicationState = "scheduled"
	StatePublished PublicationState = "published"
)

// Article is the content aggregate. AuthorID is a weak reference by id; the
// full user graph is never loaded alongside an article.
type Article struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
	ViewCount   int64      `json:"view_count"`
	AuthorID    int64      `json:"author_id"`
	Category    string     `json:"category"`
	Tags        string     `json:"tags"` // comma-separated, e.g. "java,spring,boot"
	Featured    bool       `json:"featured"`
	Pinned      bool       `json:"pinned"`
}

// StateAt classifies the article relative to now. A PublishedAt exactly equal
// to now counts as published.
func (a *Article) StateAt(now time.Time) PublicationState {
	switch {
	case a.PublishedAt == nil:
		return StateDraft
	case a.PublishedAt.After(now):
		return StateScheduled
	default:
		return StatePublished
	}
}

// IsPublishedAt reports whether the article is externally visible without
// any ownership or role check.
func (a *Article) IsPublishedAt(now time.Time) bool {
	return a.StateAt(now) == StatePublished
}

// TagList splits the stored tag string into trimmed, non-empty tags.
func (a *Article) TagList() []string {
	if strings.TrimSpace(a.Tags) == "" {
		return nil
	}
	parts := strings.Split(a.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
