package governance

import (
	"context"

	"github.com/google/uuid"
)

// Store defines data access over join requests, invitations, and
// creation requests. Like the team directory, it performs existence
// checks only.
type Store interface {
	// Join requests
	CreateJoinRequest(ctx context.Context, request *JoinRequest) error
	GetJoinRequest(ctx context.Context, id uuid.UUID) (*JoinRequest, error)
	FindPendingJoinRequest(ctx context.Context, userID, teamID uuid.UUID) (*JoinRequest, error)
	ListJoinRequestsByTeam(ctx context.Context, teamID uuid.UUID, status *JoinRequestStatus) ([]*JoinRequest, error)
	UpdateJoinRequest(ctx context.Context, request *JoinRequest) error

	// Invitations
	CreateInvitation(ctx context.Context, invitation *Invitation) error
	GetInvitation(ctx context.Context, id uuid.UUID) (*Invitation, error)
	FindPendingInvitation(ctx context.Context, userID, teamID uuid.UUID) (*Invitation, error)
	ListInvitationsByUser(ctx context.Context, userID uuid.UUID, status *InvitationStatus) ([]*Invitation, error)
	UpdateInvitation(ctx context.Context, invitation *Invitation) error

	// Creation requests
	CreateCreationRequest(ctx context.Context, request *CreationRequest) error
	GetCreationRequest(ctx context.Context, id uuid.UUID) (*CreationRequest, error)
	FindPendingCreationRequestByName(ctx context.Context, requesterID uuid.UUID, teamName string) (*CreationRequest, error)
	ListCreationRequests(ctx context.Context, status *CreationRequestStatus) ([]*CreationRequest, error)
	UpdateCreationRequest(ctx context.Context, request *CreationRequest) error
}
