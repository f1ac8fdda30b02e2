package team

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Directory defines data access over teams and memberships. It performs
// existence checks only; all workflow rules live in the governance
// engine.
type Directory interface {
	// Team operations
	CreateTeam(ctx context.Context, team *Team) error
	FindTeam(ctx context.Context, id uuid.UUID) (*Team, error)
	FindTeamByName(ctx context.Context, name string) (*Team, error)
	ListTeams(ctx context.Context) ([]*Team, error)
	ListDiscoverableTeams(ctx context.Context, userID uuid.UUID) ([]*Team, error)
	ListTeamsForUser(ctx context.Context, userID uuid.UUID) ([]*Team, error)

	// Membership operations
	AddMembership(ctx context.Context, membership *Membership) error
	GetMembership(ctx context.Context, teamID, userID uuid.UUID) (*Membership, error)
	ListMembers(ctx context.Context, teamID uuid.UUID) ([]*Membership, error)
	UpdateMembershipRole(ctx context.Context, teamID, userID uuid.UUID, role Role, roleUpdatedAt time.Time) error
	RemoveMembership(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveAllMemberships(ctx context.Context, teamID uuid.UUID) error
}

// ProjectStore defines the slice of project data access the governance
// engine needs: archiving a disbanded team's projects.
type ProjectStore interface {
	CreateProject(ctx context.Context, project *Project) error
	ListProjectsByTeam(ctx context.Context, teamID uuid.UUID) ([]*Project, error)
	ArchiveProjectsByTeam(ctx context.Context, teamID, archivedBy uuid.UUID, at time.Time) error
}
