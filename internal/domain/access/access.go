// Package access holds the role- and ownership-based decision functions for
// article mutations and visibility. Every decision takes the caller's
// Principal as an explicit argument; a nil Principal is an anonymous caller
// and is denied every action.
//
// Role matrix:
//   - ADMIN, EDITOR: create any, update/delete any article.
//   - AUTHOR: create; update/delete only own articles.
//   - READER: read only.
package access

import (
	"time"

	"github.com/okisetiana/blog-api/internal/domain/entity"
)

// Principal is the verified identity of the current caller, reconstructed
// from a token on every request and discarded when the request ends.
type Principal struct {
	UserID    int64
	Username  string
	Role      entity.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// CanCreate reports whether the caller may create articles at all.
func CanCreate(p *Principal) bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case entity.RoleAdmin, entity.RoleEditor, entity.RoleAuthor:
		return true
	}
	return false
}

// CanUpdate reports whether the caller may update an article owned by
// ownerID. Ownership is strict equality of user id and author id.
func CanUpdate(p *Principal, ownerID int64) bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case entity.RoleAdmin, entity.RoleEditor:
		return true
	case entity.RoleAuthor:
		return p.UserID == ownerID
	}
	return false
}

// CanDelete reports whether the caller may delete an article owned by
// ownerID.
func CanDelete(p *Principal, ownerID int64) bool {
	// Same matrix as update; kept separate so the two actions can diverge
	// without touching call sites.
	return CanUpdate(p, ownerID)
}

// CanView reports whether the caller may read the article. Published
// articles are visible to everyone, anonymous callers included; drafts and
// scheduled articles are visible only to callers passing the
// update-or-delete check. Callers that are denied must be answered with
// "not found", never "forbidden", so hidden content is not confirmed to
// exist.
func CanView(p *Principal, a *entity.Article, now time.Time) bool {
	if a.IsPublishedAt(now) {
		return true
	}
	return CanUpdate(p, a.AuthorID) || CanDelete(p, a.AuthorID)
}
