package domain

import "time"

// UserRole enumerates platform roles. Roles are fixed at creation; there is no
// promotion flow.
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleBrandUser UserRole = "brand_user"
	RoleAdmin     UserRole = "admin"
)

// Valid reports whether the role is known.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleBrandUser, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for every actor: customers, brand team members and
// platform administrators. BrandID is set only for brand_user accounts.
type User struct {
	ID           int64
	Email        string
	FullName     string
	Phone        string
	PasswordHash string
	Role         UserRole
	BrandID      *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
