package governance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PendingLookups(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	userID := uuid.New()
	teamID := uuid.New()

	// Absent records report nil without an error.
	found, err := s.FindPendingJoinRequest(ctx, userID, teamID)
	require.NoError(t, err)
	assert.Nil(t, found)

	request := &JoinRequest{
		ID:        uuid.New(),
		UserID:    userID,
		TeamID:    teamID,
		Status:    JoinRequestPending,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateJoinRequest(ctx, request))

	found, err = s.FindPendingJoinRequest(ctx, userID, teamID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, request.ID, found.ID)

	// Resolved requests stop matching.
	request.Status = JoinRequestDenied
	require.NoError(t, s.UpdateJoinRequest(ctx, request))

	found, err = s.FindPendingJoinRequest(ctx, userID, teamID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryStore_CreationRequestNameMatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	requesterID := uuid.New()
	require.NoError(t, s.CreateCreationRequest(ctx, &CreationRequest{
		ID:          uuid.New(),
		RequesterID: requesterID,
		TeamName:    "Falcons",
		Status:      CreationRequestPending,
		CreatedAt:   time.Now(),
	}))

	// Matching is case-insensitive and whitespace-tolerant.
	found, err := s.FindPendingCreationRequestByName(ctx, requesterID, "  falcons ")
	require.NoError(t, err)
	assert.NotNil(t, found)

	// Another requester's pending request does not match.
	found, err = s.FindPendingCreationRequestByName(ctx, uuid.New(), "Falcons")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryStore_UpdateUnknownRecords(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.UpdateJoinRequest(ctx, &JoinRequest{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrJoinRequestNotFound)

	err = s.UpdateInvitation(ctx, &Invitation{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvitationNotFound)

	err = s.UpdateCreationRequest(ctx, &CreationRequest{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrCreationRequestNotFound)
}

func TestMemoryStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	teamID := uuid.New()

	pending := &JoinRequest{
		ID: uuid.New(), UserID: uuid.New(), TeamID: teamID,
		Status: JoinRequestPending, CreatedAt: time.Now(),
	}
	denied := &JoinRequest{
		ID: uuid.New(), UserID: uuid.New(), TeamID: teamID,
		Status: JoinRequestDenied, CreatedAt: time.Now().Add(time.Second),
	}
	require.NoError(t, s.CreateJoinRequest(ctx, pending))
	require.NoError(t, s.CreateJoinRequest(ctx, denied))

	all, err := s.ListJoinRequestsByTeam(ctx, teamID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Ordered by creation time.
	assert.Equal(t, pending.ID, all[0].ID)

	status := JoinRequestPending
	filtered, err := s.ListJoinRequestsByTeam(ctx, teamID, &status)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, pending.ID, filtered[0].ID)
}
