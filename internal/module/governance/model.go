package governance

import (
	"time"

	"github.com/google/uuid"
)

// JoinRequestStatus represents the state of a join request. Resolved
// requests are terminal and never re-opened.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestDenied   JoinRequestStatus = "denied"
)

// InvitationStatus represents the state of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// CreationRequestStatus represents the state of a team-creation request.
type CreationRequestStatus string

const (
	CreationRequestPending  CreationRequestStatus = "pending"
	CreationRequestApproved CreationRequestStatus = "approved"
	CreationRequestDenied   CreationRequestStatus = "denied"
)

// ResolveAction is the reviewer's decision on a join or creation request.
type ResolveAction string

const (
	ActionApprove ResolveAction = "approve"
	ActionDeny    ResolveAction = "deny"
)

// IsValid checks if the action is one of the two accepted values.
func (a ResolveAction) IsValid() bool {
	return a == ActionApprove || a == ActionDeny
}

// InvitationAction is the invitee's decision on an invitation.
type InvitationAction string

const (
	ActionAccept  InvitationAction = "accept"
	ActionDecline InvitationAction = "decline"
)

// IsValid checks if the action is one of the two accepted values.
func (a InvitationAction) IsValid() bool {
	return a == ActionAccept || a == ActionDecline
}

// JoinRequest is a user-initiated ask to join a team, resolved by that
// team's managers or admins.
type JoinRequest struct {
	ID              uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;index"`
	TeamID          uuid.UUID         `json:"team_id" gorm:"type:uuid;not null;index"`
	Message         string            `json:"message,omitempty"`
	Status          JoinRequestStatus `json:"status" gorm:"not null;default:pending"`
	ResponseMessage string            `json:"response_message,omitempty"`
	RespondedBy     *uuid.UUID        `json:"responded_by,omitempty" gorm:"type:uuid"`
	RespondedAt     *time.Time        `json:"responded_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// TableName returns the database table name.
func (JoinRequest) TableName() string {
	return "team_join_requests"
}

// IsPending returns true if the request is still open.
func (r *JoinRequest) IsPending() bool {
	return r.Status == JoinRequestPending
}

// Invitation is a manager-initiated ask for a specific user to join,
// resolved by that user.
type Invitation struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	InviterID       uuid.UUID        `json:"inviter_id" gorm:"type:uuid;not null"`
	UserID          uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	TeamID          uuid.UUID        `json:"team_id" gorm:"type:uuid;not null;index"`
	Message         string           `json:"message,omitempty"`
	Status          InvitationStatus `json:"status" gorm:"not null;default:pending"`
	ResponseMessage string           `json:"response_message,omitempty"`
	RespondedAt     *time.Time       `json:"responded_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// TableName returns the database table name.
func (Invitation) TableName() string {
	return "team_invitations"
}

// IsPending returns true if the invitation is still open.
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationPending
}

// CreationRequest is a non-admin's ask to create a new team, resolved
// by any platform admin. Approval instantiates the team and seeds its
// first manager.
type CreationRequest struct {
	ID              uuid.UUID             `json:"id" gorm:"type:uuid;primaryKey"`
	RequesterID     uuid.UUID             `json:"requester_id" gorm:"type:uuid;not null;index"`
	TeamName        string                `json:"team_name" gorm:"not null"`
	TeamDescription string                `json:"team_description,omitempty"`
	Message         string                `json:"message,omitempty"`
	Status          CreationRequestStatus `json:"status" gorm:"not null;default:pending"`
	CreatedAt       time.Time             `json:"created_at"`
	ReviewedAt      *time.Time            `json:"reviewed_at,omitempty"`
	ReviewedBy      *uuid.UUID            `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ResponseMessage string                `json:"response_message,omitempty"`
}

// TableName returns the database table name.
func (CreationRequest) TableName() string {
	return "team_creation_requests"
}

// IsPending returns true if the request is still open.
func (r *CreationRequest) IsPending() bool {
	return r.Status == CreationRequestPending
}

// SuccessionAction discriminates the outcome of a manager quitting.
type SuccessionAction string

const (
	SuccessionReassigned SuccessionAction = "reassigned"
	SuccessionDisbanded  SuccessionAction = "disbanded"
)
