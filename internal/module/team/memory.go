package team

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryDirectory is an in-memory Directory implementation guarded by a
// single lock, so each operation observes a consistent view.
type MemoryDirectory struct {
	mu          sync.RWMutex
	teams       map[uuid.UUID]*Team
	memberships map[uuid.UUID]*Membership // keyed by membership id
}

// NewMemoryDirectory creates an empty in-memory team directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		teams:       make(map[uuid.UUID]*Team),
		memberships: make(map[uuid.UUID]*Membership),
	}
}

// CreateTeam stores a new team, enforcing name uniqueness.
func (d *MemoryDirectory) CreateTeam(_ context.Context, team *Team) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := strings.ToLower(strings.TrimSpace(team.Name))
	for _, existing := range d.teams {
		if strings.ToLower(existing.Name) == name {
			return ErrTeamNameTaken
		}
	}

	cp := *team
	d.teams[team.ID] = &cp
	return nil
}

// FindTeam retrieves a team by id.
func (d *MemoryDirectory) FindTeam(_ context.Context, id uuid.UUID) (*Team, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	team, ok := d.teams[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	cp := *team
	return &cp, nil
}

// FindTeamByName retrieves a team by name, case-insensitively.
func (d *MemoryDirectory) FindTeamByName(_ context.Context, name string) (*Team, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	for _, team := range d.teams {
		if strings.ToLower(team.Name) == name {
			cp := *team
			return &cp, nil
		}
	}
	return nil, ErrTeamNotFound
}

// ListTeams lists all teams ordered by creation time.
func (d *MemoryDirectory) ListTeams(_ context.Context) ([]*Team, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.listTeamsLocked(func(*Team) bool { return true }), nil
}

// ListDiscoverableTeams lists teams where the user holds no membership.
func (d *MemoryDirectory) ListDiscoverableTeams(_ context.Context, userID uuid.UUID) ([]*Team, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	memberOf := make(map[uuid.UUID]bool)
	for _, m := range d.memberships {
		if m.UserID == userID {
			memberOf[m.TeamID] = true
		}
	}

	return d.listTeamsLocked(func(t *Team) bool { return !memberOf[t.ID] }), nil
}

// ListTeamsForUser lists teams the user belongs to.
func (d *MemoryDirectory) ListTeamsForUser(_ context.Context, userID uuid.UUID) ([]*Team, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	memberOf := make(map[uuid.UUID]bool)
	for _, m := range d.memberships {
		if m.UserID == userID {
			memberOf[m.TeamID] = true
		}
	}

	return d.listTeamsLocked(func(t *Team) bool { return memberOf[t.ID] }), nil
}

// listTeamsLocked returns copies of teams matching the filter, ordered
// by creation time. Caller must hold at least a read lock.
func (d *MemoryDirectory) listTeamsLocked(match func(*Team) bool) []*Team {
	teams := make([]*Team, 0)
	for _, team := range d.teams {
		if match(team) {
			cp := *team
			teams = append(teams, &cp)
		}
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})
	return teams
}

// AddMembership stores a new membership, enforcing one per (user, team).
func (d *MemoryDirectory) AddMembership(_ context.Context, membership *Membership) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.teams[membership.TeamID]; !ok {
		return ErrTeamNotFound
	}
	for _, m := range d.memberships {
		if m.UserID == membership.UserID && m.TeamID == membership.TeamID {
			return ErrAlreadyMember
		}
	}

	cp := *membership
	d.memberships[membership.ID] = &cp
	return nil
}

// GetMembership retrieves the membership for a (team, user) pair.
func (d *MemoryDirectory) GetMembership(_ context.Context, teamID, userID uuid.UUID) (*Membership, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, m := range d.memberships {
		if m.TeamID == teamID && m.UserID == userID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, ErrMembershipNotFound
}

// ListMembers lists all memberships of a team ordered by join time.
func (d *MemoryDirectory) ListMembers(_ context.Context, teamID uuid.UUID) ([]*Membership, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	members := make([]*Membership, 0)
	for _, m := range d.memberships {
		if m.TeamID == teamID {
			cp := *m
			members = append(members, &cp)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
	return members, nil
}

// UpdateMembershipRole updates a member's role in place.
func (d *MemoryDirectory) UpdateMembershipRole(_ context.Context, teamID, userID uuid.UUID, role Role, roleUpdatedAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, m := range d.memberships {
		if m.TeamID == teamID && m.UserID == userID {
			m.Role = role
			at := roleUpdatedAt
			m.RoleUpdatedAt = &at
			return nil
		}
	}
	return ErrMembershipNotFound
}

// RemoveMembership removes the membership for a (team, user) pair.
func (d *MemoryDirectory) RemoveMembership(_ context.Context, teamID, userID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, m := range d.memberships {
		if m.TeamID == teamID && m.UserID == userID {
			delete(d.memberships, id)
			return nil
		}
	}
	return ErrMembershipNotFound
}

// RemoveAllMemberships removes every membership of a team.
func (d *MemoryDirectory) RemoveAllMemberships(_ context.Context, teamID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, m := range d.memberships {
		if m.TeamID == teamID {
			delete(d.memberships, id)
		}
	}
	return nil
}

// MemoryProjectStore is an in-memory ProjectStore implementation.
type MemoryProjectStore struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]*Project
}

// NewMemoryProjectStore creates an empty in-memory project store.
func NewMemoryProjectStore() *MemoryProjectStore {
	return &MemoryProjectStore{projects: make(map[uuid.UUID]*Project)}
}

// CreateProject stores a new project.
func (s *MemoryProjectStore) CreateProject(_ context.Context, project *Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *project
	s.projects[project.ID] = &cp
	return nil
}

// ListProjectsByTeam lists all projects owned by a team.
func (s *MemoryProjectStore) ListProjectsByTeam(_ context.Context, teamID uuid.UUID) ([]*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]*Project, 0)
	for _, p := range s.projects {
		if p.TeamID == teamID {
			cp := *p
			projects = append(projects, &cp)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

// ArchiveProjectsByTeam marks every project of the team as archived.
func (s *MemoryProjectStore) ArchiveProjectsByTeam(_ context.Context, teamID, archivedBy uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.projects {
		if p.TeamID == teamID && !p.Archived {
			p.Archived = true
			archivedAt := at
			p.ArchivedAt = &archivedAt
			by := archivedBy
			p.ArchivedBy = &by
		}
	}
	return nil
}
