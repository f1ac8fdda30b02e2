package governance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/identity"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/notification"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/team"
)

type fixture struct {
	svc       *Service
	store     *MemoryStore
	directory *team.MemoryDirectory
	users     *identity.MemoryStore
	projects  *team.MemoryProjectStore
	recorder  *notification.Recorder
}

func newFixture() *fixture {
	f := &fixture{
		store:     NewMemoryStore(),
		directory: team.NewMemoryDirectory(),
		users:     identity.NewMemoryStore(),
		projects:  team.NewMemoryProjectStore(),
		recorder:  notification.NewRecorder(),
	}
	f.svc = NewService(f.store, f.directory, f.users, f.projects, f.recorder, zap.NewNop())
	return f
}

func (f *fixture) addUser(t *testing.T, name string, role identity.Role) *identity.User {
	t.Helper()
	user := &identity.User{
		ID:        uuid.New(),
		Email:     name + "@example.com",
		FullName:  name,
		Role:      role,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.users.CreateUser(context.Background(), user))
	return user
}

func (f *fixture) addTeam(t *testing.T, name string) *team.Team {
	t.Helper()
	tm := &team.Team{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.directory.CreateTeam(context.Background(), tm))
	return tm
}

func (f *fixture) addMember(t *testing.T, tm *team.Team, user *identity.User, role team.Role) {
	t.Helper()
	require.NoError(t, f.directory.AddMembership(context.Background(), &team.Membership{
		ID:       uuid.New(),
		UserID:   user.ID,
		TeamID:   tm.ID,
		Role:     role,
		JoinedAt: time.Now(),
	}))
}

func TestRequestToJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending request and notifies managers", func(t *testing.T) {
		f := newFixture()
		manager := f.addUser(t, "manager", identity.RoleManager)
		member := f.addUser(t, "member", identity.RoleMember)
		requester := f.addUser(t, "requester", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, manager, team.RoleManager)
		f.addMember(t, tm, member, team.RoleMember)

		request, err := f.svc.RequestToJoin(ctx, requester.ID, &JoinRequestInput{
			TeamID:  tm.ID,
			Message: "let me in",
		})
		require.NoError(t, err)
		assert.Equal(t, JoinRequestPending, request.Status)
		assert.Equal(t, requester.ID, request.UserID)

		// Only the manager is notified, not the plain member.
		assert.Len(t, f.recorder.SentTo(manager.ID), 1)
		assert.Empty(t, f.recorder.SentTo(member.ID))
		assert.Equal(t, notification.TypeJoinRequest, f.recorder.SentTo(manager.ID)[0].Type)
	})

	t.Run("rejects unknown team", func(t *testing.T) {
		f := newFixture()
		requester := f.addUser(t, "requester", identity.RoleMember)

		_, err := f.svc.RequestToJoin(ctx, requester.ID, &JoinRequestInput{TeamID: uuid.New()})
		assert.ErrorIs(t, err, team.ErrTeamNotFound)
	})

	t.Run("rejects existing member", func(t *testing.T) {
		f := newFixture()
		member := f.addUser(t, "member", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, member, team.RoleMember)

		_, err := f.svc.RequestToJoin(ctx, member.ID, &JoinRequestInput{TeamID: tm.ID})
		assert.ErrorIs(t, err, team.ErrAlreadyMember)
	})

	t.Run("rejects duplicate pending request", func(t *testing.T) {
		f := newFixture()
		requester := f.addUser(t, "requester", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")

		_, err := f.svc.RequestToJoin(ctx, requester.ID, &JoinRequestInput{TeamID: tm.ID})
		require.NoError(t, err)

		_, err = f.svc.RequestToJoin(ctx, requester.ID, &JoinRequestInput{TeamID: tm.ID})
		assert.ErrorIs(t, err, ErrPendingJoinRequestExists)
	})
}

func TestResolveJoinRequest(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *identity.User, *identity.User, *team.Team, *JoinRequest) {
		f := newFixture()
		manager := f.addUser(t, "manager", identity.RoleManager)
		requester := f.addUser(t, "requester", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, manager, team.RoleManager)

		request, err := f.svc.RequestToJoin(ctx, requester.ID, &JoinRequestInput{TeamID: tm.ID})
		require.NoError(t, err)
		f.recorder.Reset()
		return f, manager, requester, tm, request
	}

	t.Run("approval adds member and notifies requester", func(t *testing.T) {
		f, manager, requester, tm, request := setup(t)

		resolved, err := f.svc.ResolveJoinRequest(ctx, manager.ID, request.ID, &ResolveInput{
			Action: ActionApprove,
		})
		require.NoError(t, err)
		assert.Equal(t, JoinRequestApproved, resolved.Status)
		require.NotNil(t, resolved.RespondedBy)
		assert.Equal(t, manager.ID, *resolved.RespondedBy)
		assert.NotNil(t, resolved.RespondedAt)

		membership, err := f.directory.GetMembership(ctx, tm.ID, requester.ID)
		require.NoError(t, err)
		assert.Equal(t, team.RoleMember, membership.Role)

		sent := f.recorder.SentTo(requester.ID)
		require.Len(t, sent, 1)
		assert.Equal(t, notification.TypeJoinRequestResolved, sent[0].Type)
	})

	t.Run("denial leaves no membership and is terminal", func(t *testing.T) {
		f, manager, requester, tm, request := setup(t)

		resolved, err := f.svc.ResolveJoinRequest(ctx, manager.ID, request.ID, &ResolveInput{
			Action:          ActionDeny,
			ResponseMessage: "team is full",
		})
		require.NoError(t, err)
		assert.Equal(t, JoinRequestDenied, resolved.Status)

		_, err = f.directory.GetMembership(ctx, tm.ID, requester.ID)
		assert.ErrorIs(t, err, team.ErrMembershipNotFound)

		// A second resolution attempt fails.
		_, err = f.svc.ResolveJoinRequest(ctx, manager.ID, request.ID, &ResolveInput{
			Action: ActionApprove,
		})
		assert.ErrorIs(t, err, ErrJoinRequestNotPending)
	})

	t.Run("non-managers cannot resolve", func(t *testing.T) {
		f, _, _, tm, request := setup(t)
		outsider := f.addUser(t, "outsider", identity.RoleMember)
		plain := f.addUser(t, "plain", identity.RoleMember)
		f.addMember(t, tm, plain, team.RoleMember)

		_, err := f.svc.ResolveJoinRequest(ctx, outsider.ID, request.ID, &ResolveInput{Action: ActionApprove})
		assert.ErrorIs(t, err, ErrNotTeamManager)

		_, err = f.svc.ResolveJoinRequest(ctx, plain.ID, request.ID, &ResolveInput{Action: ActionApprove})
		assert.ErrorIs(t, err, ErrNotTeamManager)
	})

	t.Run("rejects invalid action", func(t *testing.T) {
		f, manager, _, _, request := setup(t)

		_, err := f.svc.ResolveJoinRequest(ctx, manager.ID, request.ID, &ResolveInput{Action: "maybe"})
		assert.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("rejects unknown request", func(t *testing.T) {
		f, manager, _, _, _ := setup(t)

		_, err := f.svc.ResolveJoinRequest(ctx, manager.ID, uuid.New(), &ResolveInput{Action: ActionApprove})
		assert.ErrorIs(t, err, ErrJoinRequestNotFound)
	})
}

func TestSendInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("manager invites and invitee is notified", func(t *testing.T) {
		f := newFixture()
		manager := f.addUser(t, "manager", identity.RoleManager)
		invitee := f.addUser(t, "invitee", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, manager, team.RoleManager)

		invitation, err := f.svc.SendInvitation(ctx, manager.ID, &InvitationInput{
			TeamID: tm.ID,
			UserID: invitee.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, InvitationPending, invitation.Status)
		assert.Equal(t, manager.ID, invitation.InviterID)

		sent := f.recorder.SentTo(invitee.ID)
		require.Len(t, sent, 1)
		assert.Equal(t, notification.TypeInvitation, sent[0].Type)
	})

	t.Run("plain members cannot invite", func(t *testing.T) {
		f := newFixture()
		member := f.addUser(t, "member", identity.RoleMember)
		invitee := f.addUser(t, "invitee", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, member, team.RoleMember)

		_, err := f.svc.SendInvitation(ctx, member.ID, &InvitationInput{TeamID: tm.ID, UserID: invitee.ID})
		assert.ErrorIs(t, err, ErrNotTeamManager)
	})

	t.Run("rejects inviting an existing member", func(t *testing.T) {
		f := newFixture()
		manager := f.addUser(t, "manager", identity.RoleManager)
		member := f.addUser(t, "member", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, manager, team.RoleManager)
		f.addMember(t, tm, member, team.RoleMember)

		_, err := f.svc.SendInvitation(ctx, manager.ID, &InvitationInput{TeamID: tm.ID, UserID: member.ID})
		assert.ErrorIs(t, err, team.ErrAlreadyMember)
	})

	t.Run("rejects duplicate pending invitation", func(t *testing.T) {
		f := newFixture()
		manager := f.addUser(t, "manager", identity.RoleManager)
		invitee := f.addUser(t, "invitee", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, manager, team.RoleManager)

		_, err := f.svc.SendInvitation(ctx, manager.ID, &InvitationInput{TeamID: tm.ID, UserID: invitee.ID})
		require.NoError(t, err)

		_, err = f.svc.SendInvitation(ctx, manager.ID, &InvitationInput{TeamID: tm.ID, UserID: invitee.ID})
		assert.ErrorIs(t, err, ErrPendingInvitationExists)
	})

	t.Run("rejects unknown invitee", func(t *testing.T) {
		f := newFixture()
		manager := f.addUser(t, "manager", identity.RoleManager)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, manager, team.RoleManager)

		_, err := f.svc.SendInvitation(ctx, manager.ID, &InvitationInput{TeamID: tm.ID, UserID: uuid.New()})
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})
}

func TestRespondToInvitation(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *identity.User, *identity.User, *team.Team, *Invitation) {
		f := newFixture()
		manager := f.addUser(t, "manager", identity.RoleManager)
		invitee := f.addUser(t, "invitee", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, manager, team.RoleManager)

		invitation, err := f.svc.SendInvitation(ctx, manager.ID, &InvitationInput{
			TeamID: tm.ID,
			UserID: invitee.ID,
		})
		require.NoError(t, err)
		f.recorder.Reset()
		return f, manager, invitee, tm, invitation
	}

	t.Run("acceptance adds member and notifies inviter", func(t *testing.T) {
		f, manager, invitee, tm, invitation := setup(t)

		resolved, err := f.svc.RespondToInvitation(ctx, invitee.ID, invitation.ID, &InvitationResponseInput{
			Action: ActionAccept,
		})
		require.NoError(t, err)
		assert.Equal(t, InvitationAccepted, resolved.Status)
		assert.NotNil(t, resolved.RespondedAt)

		membership, err := f.directory.GetMembership(ctx, tm.ID, invitee.ID)
		require.NoError(t, err)
		assert.Equal(t, team.RoleMember, membership.Role)

		sent := f.recorder.SentTo(manager.ID)
		require.Len(t, sent, 1)
		assert.Equal(t, notification.TypeInvitationResolved, sent[0].Type)
	})

	t.Run("decline leaves no membership and is terminal", func(t *testing.T) {
		f, _, invitee, tm, invitation := setup(t)

		resolved, err := f.svc.RespondToInvitation(ctx, invitee.ID, invitation.ID, &InvitationResponseInput{
			Action: ActionDecline,
		})
		require.NoError(t, err)
		assert.Equal(t, InvitationDeclined, resolved.Status)

		_, err = f.directory.GetMembership(ctx, tm.ID, invitee.ID)
		assert.ErrorIs(t, err, team.ErrMembershipNotFound)

		_, err = f.svc.RespondToInvitation(ctx, invitee.ID, invitation.ID, &InvitationResponseInput{
			Action: ActionAccept,
		})
		assert.ErrorIs(t, err, ErrInvitationNotPending)
	})

	t.Run("only the invitee may respond", func(t *testing.T) {
		f, manager, _, _, invitation := setup(t)
		stranger := f.addUser(t, "stranger", identity.RoleMember)

		_, err := f.svc.RespondToInvitation(ctx, stranger.ID, invitation.ID, &InvitationResponseInput{
			Action: ActionAccept,
		})
		assert.ErrorIs(t, err, ErrNotInvitee)

		// Not even the inviter.
		_, err = f.svc.RespondToInvitation(ctx, manager.ID, invitation.ID, &InvitationResponseInput{
			Action: ActionAccept,
		})
		assert.ErrorIs(t, err, ErrNotInvitee)
	})

	t.Run("rejects invalid action", func(t *testing.T) {
		f, _, invitee, _, invitation := setup(t)

		_, err := f.svc.RespondToInvitation(ctx, invitee.ID, invitation.ID, &InvitationResponseInput{
			Action: "later",
		})
		assert.ErrorIs(t, err, ErrInvalidAction)
	})
}

func TestRequestTeamCreation(t *testing.T) {
	ctx := context.Background()

	t.Run("files pending request and notifies admins", func(t *testing.T) {
		f := newFixture()
		admin := f.addUser(t, "admin", identity.RoleAdmin)
		otherAdmin := f.addUser(t, "admin2", identity.RoleAdmin)
		requester := f.addUser(t, "requester", identity.RoleMember)

		request, err := f.svc.RequestTeamCreation(ctx, requester.ID, &CreationRequestInput{
			Name: "Falcons",
		})
		require.NoError(t, err)
		assert.Equal(t, CreationRequestPending, request.Status)
		assert.Equal(t, "Falcons", request.TeamName)

		assert.Len(t, f.recorder.SentTo(admin.ID), 1)
		assert.Len(t, f.recorder.SentTo(otherAdmin.ID), 1)
	})

	t.Run("admins create teams directly", func(t *testing.T) {
		f := newFixture()
		admin := f.addUser(t, "admin", identity.RoleAdmin)

		_, err := f.svc.RequestTeamCreation(ctx, admin.ID, &CreationRequestInput{Name: "Falcons"})
		assert.ErrorIs(t, err, ErrAdminCannotRequest)
	})

	t.Run("rejects a taken team name", func(t *testing.T) {
		f := newFixture()
		requester := f.addUser(t, "requester", identity.RoleMember)
		f.addTeam(t, "Falcons")

		_, err := f.svc.RequestTeamCreation(ctx, requester.ID, &CreationRequestInput{Name: "falcons"})
		assert.ErrorIs(t, err, team.ErrTeamNameTaken)
	})

	t.Run("rejects duplicate pending request for the same name", func(t *testing.T) {
		f := newFixture()
		f.addUser(t, "admin", identity.RoleAdmin)
		requester := f.addUser(t, "requester", identity.RoleMember)

		_, err := f.svc.RequestTeamCreation(ctx, requester.ID, &CreationRequestInput{Name: "Falcons"})
		require.NoError(t, err)

		_, err = f.svc.RequestTeamCreation(ctx, requester.ID, &CreationRequestInput{Name: "Falcons"})
		assert.ErrorIs(t, err, ErrPendingCreationExists)
	})
}

func TestResolveCreationRequest(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *identity.User, *identity.User, *CreationRequest) {
		f := newFixture()
		admin := f.addUser(t, "admin", identity.RoleAdmin)
		requester := f.addUser(t, "requester", identity.RoleMember)

		request, err := f.svc.RequestTeamCreation(ctx, requester.ID, &CreationRequestInput{
			Name:        "Falcons",
			Description: "fast birds",
		})
		require.NoError(t, err)
		f.recorder.Reset()
		return f, admin, requester, request
	}

	t.Run("approval creates team with requester as manager", func(t *testing.T) {
		f, admin, requester, request := setup(t)

		resolution, err := f.svc.ResolveCreationRequest(ctx, admin.ID, request.ID, &CreationResolveInput{
			Action: ActionApprove,
		})
		require.NoError(t, err)
		assert.Equal(t, CreationRequestApproved, resolution.Request.Status)
		require.NotNil(t, resolution.Team)
		assert.Equal(t, "Falcons", resolution.Team.Name)
		assert.Equal(t, "fast birds", resolution.Team.Description)

		managerMembership, err := f.directory.GetMembership(ctx, resolution.Team.ID, requester.ID)
		require.NoError(t, err)
		assert.Equal(t, team.RoleManager, managerMembership.Role)

		adminMembership, err := f.directory.GetMembership(ctx, resolution.Team.ID, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, team.RoleAdmin, adminMembership.Role)

		members, err := f.directory.ListMembers(ctx, resolution.Team.ID)
		require.NoError(t, err)
		assert.Len(t, members, 2)

		sent := f.recorder.SentTo(requester.ID)
		require.Len(t, sent, 1)
		assert.Equal(t, notification.TypeCreationRequestResolved, sent[0].Type)
	})

	t.Run("approval honors an explicitly assigned manager", func(t *testing.T) {
		f, admin, requester, request := setup(t)
		assigned := f.addUser(t, "assigned", identity.RoleMember)

		resolution, err := f.svc.ResolveCreationRequest(ctx, admin.ID, request.ID, &CreationResolveInput{
			Action:            ActionApprove,
			AssignedManagerID: &assigned.ID,
		})
		require.NoError(t, err)

		managerMembership, err := f.directory.GetMembership(ctx, resolution.Team.ID, assigned.ID)
		require.NoError(t, err)
		assert.Equal(t, team.RoleManager, managerMembership.Role)

		// The requester does not get a membership in this case.
		_, err = f.directory.GetMembership(ctx, resolution.Team.ID, requester.ID)
		assert.ErrorIs(t, err, team.ErrMembershipNotFound)
	})

	t.Run("denial creates nothing and is terminal", func(t *testing.T) {
		f, admin, requester, request := setup(t)

		resolution, err := f.svc.ResolveCreationRequest(ctx, admin.ID, request.ID, &CreationResolveInput{
			Action: ActionDeny,
		})
		require.NoError(t, err)
		assert.Equal(t, CreationRequestDenied, resolution.Request.Status)
		assert.Nil(t, resolution.Team)

		_, err = f.directory.FindTeamByName(ctx, "Falcons")
		assert.ErrorIs(t, err, team.ErrTeamNotFound)

		require.Len(t, f.recorder.SentTo(requester.ID), 1)

		_, err = f.svc.ResolveCreationRequest(ctx, admin.ID, request.ID, &CreationResolveInput{
			Action: ActionApprove,
		})
		assert.ErrorIs(t, err, ErrCreationNotPending)
	})

	t.Run("only admins resolve", func(t *testing.T) {
		f, _, requester, request := setup(t)

		_, err := f.svc.ResolveCreationRequest(ctx, requester.ID, request.ID, &CreationResolveInput{
			Action: ActionApprove,
		})
		assert.ErrorIs(t, err, ErrNotAdmin)
	})

	t.Run("approval re-checks the name", func(t *testing.T) {
		f, admin, _, request := setup(t)
		// A team with the requested name appeared after the request was
		// filed.
		f.addTeam(t, "Falcons")

		_, err := f.svc.ResolveCreationRequest(ctx, admin.ID, request.ID, &CreationResolveInput{
			Action: ActionApprove,
		})
		assert.ErrorIs(t, err, team.ErrTeamNameTaken)
	})
}

func TestQuitTeam(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *identity.User, *identity.User, *identity.User, *team.Team) {
		f := newFixture()
		manager := f.addUser(t, "manager", identity.RoleManager)
		successor := f.addUser(t, "successor", identity.RoleMember)
		bystander := f.addUser(t, "bystander", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, manager, team.RoleManager)
		f.addMember(t, tm, successor, team.RoleMember)
		f.addMember(t, tm, bystander, team.RoleMember)
		return f, manager, successor, bystander, tm
	}

	t.Run("reassignment promotes successor and removes caller", func(t *testing.T) {
		f, manager, successor, bystander, tm := setup(t)

		result, err := f.svc.QuitTeam(ctx, manager.ID, tm.ID, &successor.ID)
		require.NoError(t, err)
		assert.Equal(t, SuccessionReassigned, result.Action)
		require.NotNil(t, result.NewManager)
		assert.Equal(t, team.RoleManager, result.NewManager.Role)
		assert.NotNil(t, result.NewManager.RoleUpdatedAt)

		_, err = f.directory.GetMembership(ctx, tm.ID, manager.ID)
		assert.ErrorIs(t, err, team.ErrMembershipNotFound)

		// The successor is told about the promotion, everyone else about
		// the change of manager.
		promoted := f.recorder.SentTo(successor.ID)
		require.Len(t, promoted, 1)
		assert.Equal(t, notification.TypePromotedToManager, promoted[0].Type)

		informed := f.recorder.SentTo(bystander.ID)
		require.Len(t, informed, 1)
		assert.Equal(t, notification.TypeManagerChanged, informed[0].Type)

		assert.Empty(t, f.recorder.SentTo(manager.ID))
	})

	t.Run("reassignment requires an existing member", func(t *testing.T) {
		f, manager, _, _, tm := setup(t)
		outsider := f.addUser(t, "outsider", identity.RoleMember)

		_, err := f.svc.QuitTeam(ctx, manager.ID, tm.ID, &outsider.ID)
		assert.ErrorIs(t, err, ErrNewManagerNotMember)

		// The manager still holds their membership.
		membership, err := f.directory.GetMembership(ctx, tm.ID, manager.ID)
		require.NoError(t, err)
		assert.Equal(t, team.RoleManager, membership.Role)
	})

	t.Run("manager cannot hand the role to themselves", func(t *testing.T) {
		f, manager, _, _, tm := setup(t)

		_, err := f.svc.QuitTeam(ctx, manager.ID, tm.ID, &manager.ID)
		assert.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("disbandment removes members and archives projects", func(t *testing.T) {
		f, manager, successor, bystander, tm := setup(t)
		require.NoError(t, f.projects.CreateProject(ctx, &team.Project{
			ID:        uuid.New(),
			TeamID:    tm.ID,
			Name:      "roadmap",
			CreatedAt: time.Now(),
		}))

		result, err := f.svc.QuitTeam(ctx, manager.ID, tm.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, SuccessionDisbanded, result.Action)
		assert.Nil(t, result.NewManager)

		members, err := f.directory.ListMembers(ctx, tm.ID)
		require.NoError(t, err)
		assert.Empty(t, members)

		// The team record itself survives.
		_, err = f.directory.FindTeam(ctx, tm.ID)
		require.NoError(t, err)

		projects, err := f.projects.ListProjectsByTeam(ctx, tm.ID)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.True(t, projects[0].Archived)
		require.NotNil(t, projects[0].ArchivedBy)
		assert.Equal(t, manager.ID, *projects[0].ArchivedBy)

		assert.Len(t, f.recorder.SentTo(successor.ID), 1)
		assert.Len(t, f.recorder.SentTo(bystander.ID), 1)
		assert.Empty(t, f.recorder.SentTo(manager.ID))
	})

	t.Run("plain members cannot quit-with-succession", func(t *testing.T) {
		f, _, successor, _, tm := setup(t)

		_, err := f.svc.QuitTeam(ctx, successor.ID, tm.ID, nil)
		assert.ErrorIs(t, err, ErrNotTeamManager)
	})
}

func TestListOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("join request listing is manager only", func(t *testing.T) {
		f := newFixture()
		manager := f.addUser(t, "manager", identity.RoleManager)
		requester := f.addUser(t, "requester", identity.RoleMember)
		tm := f.addTeam(t, "Falcons")
		f.addMember(t, tm, manager, team.RoleManager)

		_, err := f.svc.RequestToJoin(ctx, requester.ID, &JoinRequestInput{TeamID: tm.ID})
		require.NoError(t, err)

		requests, err := f.svc.ListTeamJoinRequests(ctx, manager.ID, tm.ID, nil)
		require.NoError(t, err)
		assert.Len(t, requests, 1)

		_, err = f.svc.ListTeamJoinRequests(ctx, requester.ID, tm.ID, nil)
		assert.ErrorIs(t, err, ErrNotTeamManager)
	})

	t.Run("creation request listing is admin only", func(t *testing.T) {
		f := newFixture()
		admin := f.addUser(t, "admin", identity.RoleAdmin)
		requester := f.addUser(t, "requester", identity.RoleMember)

		_, err := f.svc.RequestTeamCreation(ctx, requester.ID, &CreationRequestInput{Name: "Falcons"})
		require.NoError(t, err)

		pending := CreationRequestPending
		requests, err := f.svc.ListCreationRequests(ctx, admin.ID, &pending)
		require.NoError(t, err)
		assert.Len(t, requests, 1)

		_, err = f.svc.ListCreationRequests(ctx, requester.ID, nil)
		assert.ErrorIs(t, err, ErrNotAdmin)
	})
}
