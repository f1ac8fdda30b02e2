package team

import (
	"time"

	"github.com/google/uuid"
)

// CreateTeamRequest represents a direct team creation request.
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// TeamResponse represents a team in API responses.
type TeamResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// Optional: current user's role in this team
	MyRole *Role `json:"my_role,omitempty"`
}

// ToResponse converts a Team to TeamResponse.
func (t *Team) ToResponse(myRole *Role) *TeamResponse {
	return &TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		MyRole:      myRole,
	}
}

// MemberResponse represents a team member in API responses.
type MemberResponse struct {
	UserID        uuid.UUID  `json:"user_id"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Role          Role       `json:"role"`
	JoinedAt      time.Time  `json:"joined_at"`
	RoleUpdatedAt *time.Time `json:"role_updated_at,omitempty"`
}

// ToResponse converts a MemberWithUser to MemberResponse.
func (m *MemberWithUser) ToResponse() *MemberResponse {
	return &MemberResponse{
		UserID:        m.UserID,
		FullName:      m.FullName,
		Email:         m.Email,
		Role:          m.Role,
		JoinedAt:      m.JoinedAt,
		RoleUpdatedAt: m.RoleUpdatedAt,
	}
}
