package entity

import "time"

// Role is the closed set of authorization roles. There are no custom roles.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleAuthor Role = "AUTHOR"
	RoleReader Role = "READER"
)

// ParseRole maps a stored or submitted role name to a Role, reporting
// whether it is one of the closed values.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleAuthor, RoleReader:
		return Role(s), true
	}
	return "", false
}

// User is the account aggregate. Password holds a bcrypt hash, never the
// plaintext credential.
type User struct {
	ID        int64
	Username  string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
