package team

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a member's role within a team.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// IsValid checks if the role is valid.
func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsManagerial returns true for roles that may govern the team.
func (r Role) IsManagerial() bool {
	return r == RoleManager || r == RoleAdmin
}

// Team represents a team.
type Team struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string     `json:"name" gorm:"uniqueIndex;not null"`
	Description string     `json:"description,omitempty"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName returns the database table name.
func (Team) TableName() string {
	return "teams"
}

// Membership represents a user's standing within a team. At most one
// membership exists per (user, team) pair.
type Membership struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_team"`
	TeamID        uuid.UUID  `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_team"`
	Role          Role       `json:"role" gorm:"not null;default:member"`
	JoinedAt      time.Time  `json:"joined_at"`
	RoleUpdatedAt *time.Time `json:"role_updated_at,omitempty"`
}

// TableName returns the database table name.
func (Membership) TableName() string {
	return "team_memberships"
}

// IsManagerial returns true if this membership may govern the team.
func (m *Membership) IsManagerial() bool {
	return m.Role.IsManagerial()
}

// Project is the slice of the project record this module owns: enough
// to archive a team's projects when the team is disbanded. Project CRUD
// itself lives elsewhere.
type Project struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	TeamID     uuid.UUID  `json:"team_id" gorm:"type:uuid;not null;index"`
	Name       string     `json:"name" gorm:"not null"`
	Archived   bool       `json:"archived" gorm:"not null;default:false"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	ArchivedBy *uuid.UUID `json:"archived_by,omitempty" gorm:"type:uuid"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName returns the database table name.
func (Project) TableName() string {
	return "projects"
}
