package team

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTeam(name string) *Team {
	return &Team{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
}

func newMembership(teamID, userID uuid.UUID, role Role) *Membership {
	return &Membership{
		ID:       uuid.New(),
		UserID:   userID,
		TeamID:   teamID,
		Role:     role,
		JoinedAt: time.Now(),
	}
}

func TestMemoryDirectory_TeamNameUniqueness(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory()

	require.NoError(t, d.CreateTeam(ctx, newTeam("Falcons")))

	// Uniqueness is case-insensitive.
	err := d.CreateTeam(ctx, newTeam("falcons"))
	assert.ErrorIs(t, err, ErrTeamNameTaken)

	found, err := d.FindTeamByName(ctx, "  FALCONS ")
	require.NoError(t, err)
	assert.Equal(t, "Falcons", found.Name)
}

func TestMemoryDirectory_OneMembershipPerPair(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory()
	tm := newTeam("Falcons")
	require.NoError(t, d.CreateTeam(ctx, tm))

	userID := uuid.New()
	require.NoError(t, d.AddMembership(ctx, newMembership(tm.ID, userID, RoleMember)))

	err := d.AddMembership(ctx, newMembership(tm.ID, userID, RoleManager))
	assert.ErrorIs(t, err, ErrAlreadyMember)

	err = d.AddMembership(ctx, newMembership(uuid.New(), userID, RoleMember))
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestMemoryDirectory_UpdateMembershipRole(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory()
	tm := newTeam("Falcons")
	require.NoError(t, d.CreateTeam(ctx, tm))

	userID := uuid.New()
	require.NoError(t, d.AddMembership(ctx, newMembership(tm.ID, userID, RoleMember)))

	at := time.Now()
	require.NoError(t, d.UpdateMembershipRole(ctx, tm.ID, userID, RoleManager, at))

	m, err := d.GetMembership(ctx, tm.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, m.Role)
	require.NotNil(t, m.RoleUpdatedAt)
	assert.True(t, m.RoleUpdatedAt.Equal(at))

	err = d.UpdateMembershipRole(ctx, tm.ID, uuid.New(), RoleManager, at)
	assert.ErrorIs(t, err, ErrMembershipNotFound)
}

func TestMemoryDirectory_Listings(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory()

	falcons := newTeam("Falcons")
	hawks := newTeam("Hawks")
	hawks.CreatedAt = falcons.CreatedAt.Add(time.Second)
	require.NoError(t, d.CreateTeam(ctx, falcons))
	require.NoError(t, d.CreateTeam(ctx, hawks))

	userID := uuid.New()
	require.NoError(t, d.AddMembership(ctx, newMembership(falcons.ID, userID, RoleMember)))

	mine, err := d.ListTeamsForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, falcons.ID, mine[0].ID)

	discoverable, err := d.ListDiscoverableTeams(ctx, userID)
	require.NoError(t, err)
	require.Len(t, discoverable, 1)
	assert.Equal(t, hawks.ID, discoverable[0].ID)
}

func TestMemoryDirectory_RemoveAllMemberships(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDirectory()
	tm := newTeam("Falcons")
	other := newTeam("Hawks")
	require.NoError(t, d.CreateTeam(ctx, tm))
	require.NoError(t, d.CreateTeam(ctx, other))

	keeper := uuid.New()
	require.NoError(t, d.AddMembership(ctx, newMembership(tm.ID, uuid.New(), RoleManager)))
	require.NoError(t, d.AddMembership(ctx, newMembership(tm.ID, uuid.New(), RoleMember)))
	require.NoError(t, d.AddMembership(ctx, newMembership(other.ID, keeper, RoleMember)))

	require.NoError(t, d.RemoveAllMemberships(ctx, tm.ID))

	members, err := d.ListMembers(ctx, tm.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	// Other teams keep their members.
	_, err = d.GetMembership(ctx, other.ID, keeper)
	assert.NoError(t, err)
}

func TestMemoryProjectStore_Archiving(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProjectStore()
	teamID := uuid.New()

	require.NoError(t, s.CreateProject(ctx, &Project{
		ID: uuid.New(), TeamID: teamID, Name: "roadmap", CreatedAt: time.Now(),
	}))
	require.NoError(t, s.CreateProject(ctx, &Project{
		ID: uuid.New(), TeamID: uuid.New(), Name: "other", CreatedAt: time.Now(),
	}))

	archiver := uuid.New()
	at := time.Now()
	require.NoError(t, s.ArchiveProjectsByTeam(ctx, teamID, archiver, at))

	projects, err := s.ListProjectsByTeam(ctx, teamID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.True(t, projects[0].Archived)
	require.NotNil(t, projects[0].ArchivedBy)
	assert.Equal(t, archiver, *projects[0].ArchivedBy)

	// Archiving again does not overwrite the original timestamps.
	later := at.Add(time.Hour)
	require.NoError(t, s.ArchiveProjectsByTeam(ctx, teamID, uuid.New(), later))

	projects, err = s.ListProjectsByTeam(ctx, teamID)
	require.NoError(t, err)
	assert.True(t, projects[0].ArchivedAt.Equal(at))
}
