package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies a notification for the client.
type Type string

const (
	TypeJoinRequest             Type = "join_request"
	TypeJoinRequestResolved     Type = "join_request_resolved"
	TypeInvitation              Type = "invitation"
	TypeInvitationResolved      Type = "invitation_resolved"
	TypeCreationRequest         Type = "creation_request"
	TypeCreationRequestResolved Type = "creation_request_resolved"
	TypeManagerChanged          Type = "manager_changed"
	TypePromotedToManager       Type = "promoted_to_manager"
	TypeTeamDisbanded           Type = "team_disbanded"
)

// Notification is the message handed to the delivery mechanism. Storage
// and read-tracking belong to the delivery side; this module only owns
// the send contract.
type Notification struct {
	ID            uuid.UUID  `json:"id"`
	RecipientID   uuid.UUID  `json:"recipient_id"`
	Type          Type       `json:"type"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	RelatedTeamID *uuid.UUID `json:"related_team_id,omitempty"`
	Read          bool       `json:"read"`
	CreatedAt     time.Time  `json:"created_at"`
}

// New builds a notification with a fresh id and timestamp.
func New(recipientID uuid.UUID, typ Type, title, message string, relatedTeamID *uuid.UUID) Notification {
	return Notification{
		ID:            uuid.New(),
		RecipientID:   recipientID,
		Type:          typ,
		Title:         title,
		Message:       message,
		RelatedTeamID: relatedTeamID,
		CreatedAt:     time.Now(),
	}
}
