package governance

import "errors"

// Domain errors for the governance engine. Handlers map these onto the
// four client-facing kinds: not found, forbidden, conflict, bad request.
var (
	// Not found
	ErrJoinRequestNotFound     = errors.New("join request not found")
	ErrInvitationNotFound      = errors.New("invitation not found")
	ErrCreationRequestNotFound = errors.New("creation request not found")

	// Forbidden
	ErrNotTeamManager     = errors.New("caller is not a manager or admin of this team")
	ErrNotInvitee         = errors.New("invitation is addressed to another user")
	ErrAdminCannotRequest = errors.New("admins create teams directly instead of requesting")
	ErrNotAdmin           = errors.New("caller is not an admin")

	// Conflict
	ErrPendingJoinRequestExists = errors.New("a pending join request for this team already exists")
	ErrPendingInvitationExists  = errors.New("a pending invitation for this team already exists")
	ErrPendingCreationExists    = errors.New("a pending creation request for this name already exists")
	ErrJoinRequestNotPending    = errors.New("join request has already been resolved")
	ErrInvitationNotPending     = errors.New("invitation has already been resolved")
	ErrCreationNotPending       = errors.New("creation request has already been resolved")
	ErrNewManagerNotMember      = errors.New("new manager must already be a member of the team")

	// Bad request
	ErrInvalidAction = errors.New("invalid action")
)
