package team

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// postgresDirectory implements Directory using GORM.
type postgresDirectory struct {
	db *gorm.DB
}

// NewPostgresDirectory creates a database-backed team directory.
func NewPostgresDirectory(db *gorm.DB) Directory {
	return &postgresDirectory{db: db}
}

// CreateTeam stores a new team.
func (d *postgresDirectory) CreateTeam(ctx context.Context, team *Team) error {
	err := d.db.WithContext(ctx).Create(team).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrTeamNameTaken
	}
	return err
}

// FindTeam retrieves a team by id.
func (d *postgresDirectory) FindTeam(ctx context.Context, id uuid.UUID) (*Team, error) {
	var team Team
	err := d.db.WithContext(ctx).
		Where("id = ?", id).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// FindTeamByName retrieves a team by name.
func (d *postgresDirectory) FindTeamByName(ctx context.Context, name string) (*Team, error) {
	var team Team
	err := d.db.WithContext(ctx).
		Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// ListTeams lists all teams.
func (d *postgresDirectory) ListTeams(ctx context.Context) ([]*Team, error) {
	var teams []*Team
	err := d.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListDiscoverableTeams lists teams where the user holds no membership.
func (d *postgresDirectory) ListDiscoverableTeams(ctx context.Context, userID uuid.UUID) ([]*Team, error) {
	var teams []*Team
	err := d.db.WithContext(ctx).
		Where("id NOT IN (?)",
			d.db.Model(&Membership{}).Select("team_id").Where("user_id = ?", userID),
		).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListTeamsForUser lists teams the user belongs to.
func (d *postgresDirectory) ListTeamsForUser(ctx context.Context, userID uuid.UUID) ([]*Team, error) {
	var teams []*Team
	err := d.db.WithContext(ctx).
		Joins("JOIN team_memberships ON team_memberships.team_id = teams.id").
		Where("team_memberships.user_id = ?", userID).
		Order("teams.created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// AddMembership stores a new membership.
func (d *postgresDirectory) AddMembership(ctx context.Context, membership *Membership) error {
	err := d.db.WithContext(ctx).Create(membership).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyMember
	}
	return err
}

// GetMembership retrieves the membership for a (team, user) pair.
func (d *postgresDirectory) GetMembership(ctx context.Context, teamID, userID uuid.UUID) (*Membership, error) {
	var membership Membership
	err := d.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

// ListMembers lists all memberships of a team.
func (d *postgresDirectory) ListMembers(ctx context.Context, teamID uuid.UUID) ([]*Membership, error) {
	var members []*Membership
	err := d.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMembershipRole updates a member's role in place.
func (d *postgresDirectory) UpdateMembershipRole(ctx context.Context, teamID, userID uuid.UUID, role Role, roleUpdatedAt time.Time) error {
	result := d.db.WithContext(ctx).
		Model(&Membership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Updates(map[string]interface{}{"role": role, "role_updated_at": roleUpdatedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

// RemoveMembership removes the membership for a (team, user) pair.
func (d *postgresDirectory) RemoveMembership(ctx context.Context, teamID, userID uuid.UUID) error {
	result := d.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

// RemoveAllMemberships removes every membership of a team.
func (d *postgresDirectory) RemoveAllMemberships(ctx context.Context, teamID uuid.UUID) error {
	return d.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Delete(&Membership{}).Error
}

// postgresProjectStore implements ProjectStore using GORM.
type postgresProjectStore struct {
	db *gorm.DB
}

// NewPostgresProjectStore creates a database-backed project store.
func NewPostgresProjectStore(db *gorm.DB) ProjectStore {
	return &postgresProjectStore{db: db}
}

// CreateProject stores a new project.
func (s *postgresProjectStore) CreateProject(ctx context.Context, project *Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

// ListProjectsByTeam lists all projects owned by a team.
func (s *postgresProjectStore) ListProjectsByTeam(ctx context.Context, teamID uuid.UUID) ([]*Project, error) {
	var projects []*Project
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ArchiveProjectsByTeam marks every project of the team as archived.
func (s *postgresProjectStore) ArchiveProjectsByTeam(ctx context.Context, teamID, archivedBy uuid.UUID, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&Project{}).
		Where("team_id = ? AND archived = ?", teamID, false).
		Updates(map[string]interface{}{
			"archived":    true,
			"archived_at": at,
			"archived_by": archivedBy,
		}).Error
}
