package governance

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// postgresStore implements Store using GORM.
type postgresStore struct {
	db *gorm.DB
}

// NewPostgresStore creates a database-backed governance store.
func NewPostgresStore(db *gorm.DB) Store {
	return &postgresStore{db: db}
}

// CreateJoinRequest stores a new join request.
func (s *postgresStore) CreateJoinRequest(ctx context.Context, request *JoinRequest) error {
	return s.db.WithContext(ctx).Create(request).Error
}

// GetJoinRequest retrieves a join request by id.
func (s *postgresStore) GetJoinRequest(ctx context.Context, id uuid.UUID) (*JoinRequest, error) {
	var request JoinRequest
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJoinRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindPendingJoinRequest finds the pending join request for a
// (user, team) pair. A nil result without error means none.
func (s *postgresStore) FindPendingJoinRequest(ctx context.Context, userID, teamID uuid.UUID) (*JoinRequest, error) {
	var request JoinRequest
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ? AND status = ?", userID, teamID, JoinRequestPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// ListJoinRequestsByTeam lists join requests for a team.
func (s *postgresStore) ListJoinRequestsByTeam(ctx context.Context, teamID uuid.UUID, status *JoinRequestStatus) ([]*JoinRequest, error) {
	query := s.db.WithContext(ctx).Where("team_id = ?", teamID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var requests []*JoinRequest
	if err := query.Order("created_at ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateJoinRequest replaces a stored join request.
func (s *postgresStore) UpdateJoinRequest(ctx context.Context, request *JoinRequest) error {
	result := s.db.WithContext(ctx).Save(request)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJoinRequestNotFound
	}
	return nil
}

// CreateInvitation stores a new invitation.
func (s *postgresStore) CreateInvitation(ctx context.Context, invitation *Invitation) error {
	return s.db.WithContext(ctx).Create(invitation).Error
}

// GetInvitation retrieves an invitation by id.
func (s *postgresStore) GetInvitation(ctx context.Context, id uuid.UUID) (*Invitation, error) {
	var invitation Invitation
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &invitation, nil
}

// FindPendingInvitation finds the pending invitation for a (user, team)
// pair. A nil result without error means none.
func (s *postgresStore) FindPendingInvitation(ctx context.Context, userID, teamID uuid.UUID) (*Invitation, error) {
	var invitation Invitation
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ? AND status = ?", userID, teamID, InvitationPending).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

// ListInvitationsByUser lists invitations addressed to a user.
func (s *postgresStore) ListInvitationsByUser(ctx context.Context, userID uuid.UUID, status *InvitationStatus) ([]*Invitation, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var invitations []*Invitation
	if err := query.Order("created_at ASC").Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// UpdateInvitation replaces a stored invitation.
func (s *postgresStore) UpdateInvitation(ctx context.Context, invitation *Invitation) error {
	result := s.db.WithContext(ctx).Save(invitation)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

// CreateCreationRequest stores a new creation request.
func (s *postgresStore) CreateCreationRequest(ctx context.Context, request *CreationRequest) error {
	return s.db.WithContext(ctx).Create(request).Error
}

// GetCreationRequest retrieves a creation request by id.
func (s *postgresStore) GetCreationRequest(ctx context.Context, id uuid.UUID) (*CreationRequest, error) {
	var request CreationRequest
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreationRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindPendingCreationRequestByName finds the requester's pending
// creation request for a team name, if any.
func (s *postgresStore) FindPendingCreationRequestByName(ctx context.Context, requesterID uuid.UUID, teamName string) (*CreationRequest, error) {
	var request CreationRequest
	err := s.db.WithContext(ctx).
		Where("requester_id = ? AND lower(team_name) = ? AND status = ?",
			requesterID, strings.ToLower(strings.TrimSpace(teamName)), CreationRequestPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// ListCreationRequests lists creation requests.
func (s *postgresStore) ListCreationRequests(ctx context.Context, status *CreationRequestStatus) ([]*CreationRequest, error) {
	query := s.db.WithContext(ctx)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var requests []*CreationRequest
	if err := query.Order("created_at ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateCreationRequest replaces a stored creation request.
func (s *postgresStore) UpdateCreationRequest(ctx context.Context, request *CreationRequest) error {
	result := s.db.WithContext(ctx).Save(request)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreationRequestNotFound
	}
	return nil
}
