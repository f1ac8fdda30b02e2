package team

import "errors"

// Domain errors for the team module.
var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNameTaken      = errors.New("team name already taken")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrAlreadyMember      = errors.New("user is already a member of this team")
	ErrNotAdmin           = errors.New("caller is not an admin")
)
