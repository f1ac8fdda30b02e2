package identity

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's platform-wide role.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// IsValid checks if the role is valid.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	default:
		return false
	}
}

// User represents a platform user.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName  string    `json:"full_name" gorm:"not null"`
	Role      Role      `json:"role" gorm:"not null;default:member"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// IsAdmin returns true if the user holds the platform admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
