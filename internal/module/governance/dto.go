package governance

import (
	"github.com/google/uuid"

	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/team"
)

// JoinRequestInput carries a new join request. TeamID comes from the
// route, the rest from the body.
type JoinRequestInput struct {
	TeamID  uuid.UUID `json:"-"`
	Message string    `json:"message" binding:"max=500"`
}

// ResolveInput carries a reviewer's decision on a join or creation
// request.
type ResolveInput struct {
	Action          ResolveAction `json:"action" binding:"required"`
	ResponseMessage string        `json:"response_message" binding:"max=500"`
}

// InvitationInput carries a new invitation. TeamID comes from the route.
type InvitationInput struct {
	TeamID  uuid.UUID `json:"-"`
	UserID  uuid.UUID `json:"user_id" binding:"required"`
	Message string    `json:"message" binding:"max=500"`
}

// InvitationResponseInput carries the invitee's decision.
type InvitationResponseInput struct {
	Action          InvitationAction `json:"action" binding:"required"`
	ResponseMessage string           `json:"response_message" binding:"max=500"`
}

// CreationRequestInput carries a new team-creation request.
type CreationRequestInput struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Message     string `json:"message" binding:"max=500"`
}

// CreationResolveInput carries an admin's decision on a creation
// request. AssignedManagerID is only meaningful on approval; when nil
// the requester becomes the manager.
type CreationResolveInput struct {
	Action            ResolveAction `json:"action" binding:"required"`
	AssignedManagerID *uuid.UUID    `json:"assigned_manager_id,omitempty"`
	ResponseMessage   string        `json:"response_message" binding:"max=500"`
}

// QuitTeamInput carries a manager's exit. A nil NewManagerID means
// disband.
type QuitTeamInput struct {
	NewManagerID *uuid.UUID `json:"new_manager_id,omitempty"`
}

// CreationResolution is the outcome of resolving a creation request.
// Team is set only when the request was approved.
type CreationResolution struct {
	Request *CreationRequest `json:"request"`
	Team    *team.Team       `json:"team,omitempty"`
}

// SuccessionResult is the outcome of a manager quitting a team.
// NewManager is set only when the role was reassigned.
type SuccessionResult struct {
	Action     SuccessionAction `json:"action"`
	Team       *team.Team       `json:"team"`
	NewManager *team.Membership `json:"new_manager,omitempty"`
}
