package team

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/identity"
)

// Service provides the non-workflow team surface: direct admin team
// creation and read operations. Join/invite/creation-request workflows
// live in the governance engine.
type Service struct {
	directory Directory
	users     identity.Store
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new team service.
func NewService(directory Directory, users identity.Store, logger *zap.Logger) *Service {
	return &Service{
		directory: directory,
		users:     users,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateTeam creates a team directly. Only platform admins may do this;
// everyone else goes through the creation-request workflow.
func (s *Service) CreateTeam(ctx context.Context, caller *identity.User, req *CreateTeamRequest) (*Team, error) {
	if !caller.IsAdmin() {
		return nil, ErrNotAdmin
	}

	if _, err := s.directory.FindTeamByName(ctx, req.Name); err == nil {
		return nil, ErrTeamNameTaken
	} else if err != ErrTeamNotFound {
		return nil, err
	}

	createdBy := caller.ID
	team := &Team{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   &createdBy,
		CreatedAt:   s.now(),
	}

	if err := s.directory.CreateTeam(ctx, team); err != nil {
		return nil, err
	}

	// The creating admin gets an admin membership.
	membership := &Membership{
		ID:       uuid.New(),
		UserID:   caller.ID,
		TeamID:   team.ID,
		Role:     RoleAdmin,
		JoinedAt: s.now(),
	}
	if err := s.directory.AddMembership(ctx, membership); err != nil {
		return nil, err
	}

	s.logger.Info("team created",
		zap.String("team_id", team.ID.String()),
		zap.String("created_by", caller.ID.String()),
		zap.String("name", team.Name),
	)

	return team, nil
}

// GetTeam retrieves a team by id, along with the requester's role in it
// when they are a member.
func (s *Service) GetTeam(ctx context.Context, teamID, requesterID uuid.UUID) (*Team, *Role, error) {
	team, err := s.directory.FindTeam(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}

	var myRole *Role
	membership, err := s.directory.GetMembership(ctx, teamID, requesterID)
	if err == nil {
		myRole = &membership.Role
	} else if err != ErrMembershipNotFound {
		return nil, nil, err
	}

	return team, myRole, nil
}

// ListMyTeams lists teams the user belongs to.
func (s *Service) ListMyTeams(ctx context.Context, userID uuid.UUID) ([]*Team, error) {
	return s.directory.ListTeamsForUser(ctx, userID)
}

// ListDiscoverableTeams lists teams the user does not belong to.
func (s *Service) ListDiscoverableTeams(ctx context.Context, userID uuid.UUID) ([]*Team, error) {
	return s.directory.ListDiscoverableTeams(ctx, userID)
}

// ListMembers lists team members with user display details.
func (s *Service) ListMembers(ctx context.Context, teamID uuid.UUID) ([]*MemberWithUser, error) {
	if _, err := s.directory.FindTeam(ctx, teamID); err != nil {
		return nil, err
	}

	members, err := s.directory.ListMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	result := make([]*MemberWithUser, 0, len(members))
	for _, m := range members {
		entry := &MemberWithUser{Membership: *m}
		if user, err := s.users.FindUser(ctx, m.UserID); err == nil {
			entry.FullName = user.FullName
			entry.Email = user.Email
		}
		result = append(result, entry)
	}
	return result, nil
}

// MemberWithUser is a membership joined with user display fields.
type MemberWithUser struct {
	Membership
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
