package governance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/identity"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/notification"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/team"
)

// Service is the governance engine: join requests, invitations,
// team-creation requests, and manager succession. Every operation
// validates preconditions first, applies its mutations, and dispatches
// notifications last; a failed notification never fails the operation.
//
// A single mutex serializes operations so each call's set of mutations
// is applied atomically with respect to the others.
type Service struct {
	mu sync.Mutex

	store     Store
	directory team.Directory
	users     identity.Store
	projects  team.ProjectStore
	notifier  notification.Notifier
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a new governance engine.
func NewService(
	store Store,
	directory team.Directory,
	users identity.Store,
	projects team.ProjectStore,
	notifier notification.Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:     store,
		directory: directory,
		users:     users,
		projects:  projects,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the engine's clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ========== Join Request Workflow ==========

// RequestToJoin files a join request for a team on behalf of the caller.
func (s *Service) RequestToJoin(ctx context.Context, callerID uuid.UUID, input *JoinRequestInput) (*JoinRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := s.users.FindUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	tm, err := s.directory.FindTeam(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}

	if _, err := s.directory.GetMembership(ctx, tm.ID, callerID); err == nil {
		return nil, team.ErrAlreadyMember
	} else if err != team.ErrMembershipNotFound {
		return nil, err
	}

	pending, err := s.store.FindPendingJoinRequest(ctx, callerID, tm.ID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrPendingJoinRequestExists
	}

	request := &JoinRequest{
		ID:        uuid.New(),
		UserID:    callerID,
		TeamID:    tm.ID,
		Message:   input.Message,
		Status:    JoinRequestPending,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateJoinRequest(ctx, request); err != nil {
		return nil, err
	}

	s.notifyTeamManagers(ctx, tm, notification.TypeJoinRequest,
		"New join request",
		fmt.Sprintf("%s requested to join %s", caller.FullName, tm.Name))

	s.logger.Info("join request created",
		zap.String("request_id", request.ID.String()),
		zap.String("team_id", tm.ID.String()),
		zap.String("user_id", callerID.String()),
	)

	return request, nil
}

// ResolveJoinRequest approves or denies a pending join request. Only a
// manager or admin of the request's team may resolve it.
func (s *Service) ResolveJoinRequest(ctx context.Context, callerID, requestID uuid.UUID, input *ResolveInput) (*JoinRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !input.Action.IsValid() {
		return nil, ErrInvalidAction
	}

	request, err := s.store.GetJoinRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.requireTeamManager(ctx, request.TeamID, callerID); err != nil {
		return nil, err
	}

	if !request.IsPending() {
		return nil, ErrJoinRequestNotPending
	}

	if input.Action == ActionApprove {
		// The requester may have joined through an invitation in the
		// interim; re-check before mutating.
		if _, err := s.directory.GetMembership(ctx, request.TeamID, request.UserID); err == nil {
			return nil, team.ErrAlreadyMember
		} else if err != team.ErrMembershipNotFound {
			return nil, err
		}
	}

	responder, err := s.users.FindUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	respondedBy := callerID
	request.Status = JoinRequestDenied
	if input.Action == ActionApprove {
		request.Status = JoinRequestApproved
	}
	request.ResponseMessage = input.ResponseMessage
	request.RespondedBy = &respondedBy
	request.RespondedAt = &now

	if err := s.store.UpdateJoinRequest(ctx, request); err != nil {
		return nil, err
	}

	if request.Status == JoinRequestApproved {
		membership := &team.Membership{
			ID:       uuid.New(),
			UserID:   request.UserID,
			TeamID:   request.TeamID,
			Role:     team.RoleMember,
			JoinedAt: now,
		}
		if err := s.directory.AddMembership(ctx, membership); err != nil {
			return nil, err
		}
	}

	s.notify(ctx, request.UserID, notification.TypeJoinRequestResolved,
		fmt.Sprintf("Join request %s", request.Status),
		resolutionMessage(
			fmt.Sprintf("%s %s your request to join the team", responder.FullName, request.Status),
			input.ResponseMessage),
		&request.TeamID)

	s.logger.Info("join request resolved",
		zap.String("request_id", request.ID.String()),
		zap.String("status", string(request.Status)),
		zap.String("responded_by", callerID.String()),
	)

	return request, nil
}

// ListTeamJoinRequests lists a team's join requests for its managers.
func (s *Service) ListTeamJoinRequests(ctx context.Context, callerID, teamID uuid.UUID, status *JoinRequestStatus) ([]*JoinRequest, error) {
	if _, err := s.directory.FindTeam(ctx, teamID); err != nil {
		return nil, err
	}
	if err := s.requireTeamManager(ctx, teamID, callerID); err != nil {
		return nil, err
	}
	return s.store.ListJoinRequestsByTeam(ctx, teamID, status)
}

// ========== Invitation Workflow ==========

// SendInvitation invites a user to a team. Only a manager or admin of
// the team may invite.
func (s *Service) SendInvitation(ctx context.Context, callerID uuid.UUID, input *InvitationInput) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tm, err := s.directory.FindTeam(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}

	if err := s.requireTeamManager(ctx, tm.ID, callerID); err != nil {
		return nil, err
	}

	inviter, err := s.users.FindUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	if _, err := s.directory.GetMembership(ctx, tm.ID, input.UserID); err == nil {
		return nil, team.ErrAlreadyMember
	} else if err != team.ErrMembershipNotFound {
		return nil, err
	}

	pending, err := s.store.FindPendingInvitation(ctx, input.UserID, tm.ID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrPendingInvitationExists
	}

	invitation := &Invitation{
		ID:        uuid.New(),
		InviterID: callerID,
		UserID:    input.UserID,
		TeamID:    tm.ID,
		Message:   input.Message,
		Status:    InvitationPending,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	s.notify(ctx, input.UserID, notification.TypeInvitation,
		"Team invitation",
		resolutionMessage(
			fmt.Sprintf("%s invited you to join %s", inviter.FullName, tm.Name),
			input.Message),
		&tm.ID)

	s.logger.Info("invitation sent",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("team_id", tm.ID.String()),
		zap.String("user_id", input.UserID.String()),
	)

	return invitation, nil
}

// RespondToInvitation accepts or declines an invitation. Only the
// invited user may respond.
func (s *Service) RespondToInvitation(ctx context.Context, callerID, invitationID uuid.UUID, input *InvitationResponseInput) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !input.Action.IsValid() {
		return nil, ErrInvalidAction
	}

	invitation, err := s.store.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if invitation.UserID != callerID {
		return nil, ErrNotInvitee
	}

	if !invitation.IsPending() {
		return nil, ErrInvitationNotPending
	}

	if input.Action == ActionAccept {
		if _, err := s.directory.GetMembership(ctx, invitation.TeamID, callerID); err == nil {
			return nil, team.ErrAlreadyMember
		} else if err != team.ErrMembershipNotFound {
			return nil, err
		}
	}

	invitee, err := s.users.FindUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	invitation.Status = InvitationDeclined
	if input.Action == ActionAccept {
		invitation.Status = InvitationAccepted
	}
	invitation.ResponseMessage = input.ResponseMessage
	invitation.RespondedAt = &now

	if err := s.store.UpdateInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	if invitation.Status == InvitationAccepted {
		membership := &team.Membership{
			ID:       uuid.New(),
			UserID:   callerID,
			TeamID:   invitation.TeamID,
			Role:     team.RoleMember,
			JoinedAt: now,
		}
		if err := s.directory.AddMembership(ctx, membership); err != nil {
			return nil, err
		}
	}

	s.notify(ctx, invitation.InviterID, notification.TypeInvitationResolved,
		fmt.Sprintf("Invitation %s", invitation.Status),
		resolutionMessage(
			fmt.Sprintf("%s %s your invitation", invitee.FullName, invitation.Status),
			input.ResponseMessage),
		&invitation.TeamID)

	s.logger.Info("invitation resolved",
		zap.String("invitation_id", invitation.ID.String()),
		zap.String("status", string(invitation.Status)),
	)

	return invitation, nil
}

// ListMyInvitations lists invitations addressed to the caller.
func (s *Service) ListMyInvitations(ctx context.Context, callerID uuid.UUID, status *InvitationStatus) ([]*Invitation, error) {
	return s.store.ListInvitationsByUser(ctx, callerID, status)
}

// ========== Team-Creation Request Workflow ==========

// RequestTeamCreation files a request to create a new team. Admins are
// rejected here; they create teams directly.
func (s *Service) RequestTeamCreation(ctx context.Context, callerID uuid.UUID, input *CreationRequestInput) (*CreationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := s.users.FindUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return nil, ErrAdminCannotRequest
	}

	if _, err := s.directory.FindTeamByName(ctx, input.Name); err == nil {
		return nil, team.ErrTeamNameTaken
	} else if err != team.ErrTeamNotFound {
		return nil, err
	}

	pending, err := s.store.FindPendingCreationRequestByName(ctx, callerID, input.Name)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrPendingCreationExists
	}

	request := &CreationRequest{
		ID:              uuid.New(),
		RequesterID:     callerID,
		TeamName:        input.Name,
		TeamDescription: input.Description,
		Message:         input.Message,
		Status:          CreationRequestPending,
		CreatedAt:       s.now(),
	}
	if err := s.store.CreateCreationRequest(ctx, request); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx, notification.TypeCreationRequest,
		"New team creation request",
		fmt.Sprintf("%s requested to create team %q", caller.FullName, input.Name))

	s.logger.Info("creation request filed",
		zap.String("request_id", request.ID.String()),
		zap.String("team_name", input.Name),
		zap.String("requester_id", callerID.String()),
	)

	return request, nil
}

// ResolveCreationRequest approves or denies a pending creation request.
// Admin only. Approval creates the team, a manager membership for the
// assigned manager (the requester by default), and an admin membership
// for the resolving admin.
func (s *Service) ResolveCreationRequest(ctx context.Context, callerID, requestID uuid.UUID, input *CreationResolveInput) (*CreationResolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := s.users.FindUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, ErrNotAdmin
	}

	request, err := s.store.GetCreationRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsPending() {
		return nil, ErrCreationNotPending
	}

	if !input.Action.IsValid() {
		return nil, ErrInvalidAction
	}

	now := s.now()
	reviewedBy := callerID

	if input.Action == ActionDeny {
		request.Status = CreationRequestDenied
		request.ReviewedAt = &now
		request.ReviewedBy = &reviewedBy
		request.ResponseMessage = input.ResponseMessage

		if err := s.store.UpdateCreationRequest(ctx, request); err != nil {
			return nil, err
		}

		s.notify(ctx, request.RequesterID, notification.TypeCreationRequestResolved,
			"Team creation request denied",
			resolutionMessage(
				fmt.Sprintf("Your request to create team %q was denied", request.TeamName),
				input.ResponseMessage),
			nil)

		s.logger.Info("creation request denied",
			zap.String("request_id", request.ID.String()),
			zap.String("reviewed_by", callerID.String()),
		)

		return &CreationResolution{Request: request}, nil
	}

	// Approval path. The assigned manager defaults to the requester.
	managerID := request.RequesterID
	if input.AssignedManagerID != nil {
		if _, err := s.users.FindUser(ctx, *input.AssignedManagerID); err != nil {
			return nil, err
		}
		managerID = *input.AssignedManagerID
	}

	// Re-check the name: a team may have been created directly since
	// the request was filed.
	if _, err := s.directory.FindTeamByName(ctx, request.TeamName); err == nil {
		return nil, team.ErrTeamNameTaken
	} else if err != team.ErrTeamNotFound {
		return nil, err
	}

	requesterID := request.RequesterID
	newTeam := &team.Team{
		ID:          uuid.New(),
		Name:        request.TeamName,
		Description: request.TeamDescription,
		CreatedBy:   &requesterID,
		CreatedAt:   now,
	}
	if err := s.directory.CreateTeam(ctx, newTeam); err != nil {
		return nil, err
	}

	if err := s.directory.AddMembership(ctx, &team.Membership{
		ID:       uuid.New(),
		UserID:   managerID,
		TeamID:   newTeam.ID,
		Role:     team.RoleManager,
		JoinedAt: now,
	}); err != nil {
		return nil, err
	}

	// The approving admin gets their own membership, unless they are
	// also the assigned manager.
	if callerID != managerID {
		if err := s.directory.AddMembership(ctx, &team.Membership{
			ID:       uuid.New(),
			UserID:   callerID,
			TeamID:   newTeam.ID,
			Role:     team.RoleAdmin,
			JoinedAt: now,
		}); err != nil {
			return nil, err
		}
	}

	request.Status = CreationRequestApproved
	request.ReviewedAt = &now
	request.ReviewedBy = &reviewedBy
	request.ResponseMessage = input.ResponseMessage
	if err := s.store.UpdateCreationRequest(ctx, request); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your request to create team %q was approved", request.TeamName)
	if managerID != request.RequesterID {
		if manager, err := s.users.FindUser(ctx, managerID); err == nil {
			message = fmt.Sprintf("%s; %s was assigned as manager", message, manager.FullName)
		}
	}
	s.notify(ctx, request.RequesterID, notification.TypeCreationRequestResolved,
		"Team creation request approved",
		resolutionMessage(message, input.ResponseMessage),
		&newTeam.ID)

	s.logger.Info("creation request approved",
		zap.String("request_id", request.ID.String()),
		zap.String("team_id", newTeam.ID.String()),
		zap.String("manager_id", managerID.String()),
	)

	return &CreationResolution{Request: request, Team: newTeam}, nil
}

// ListCreationRequests lists creation requests for admins.
func (s *Service) ListCreationRequests(ctx context.Context, callerID uuid.UUID, status *CreationRequestStatus) ([]*CreationRequest, error) {
	caller, err := s.users.FindUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return s.store.ListCreationRequests(ctx, status)
}

// ========== Manager Succession / Team Quit ==========

// QuitTeam lets a team's manager leave, either handing the role to an
// existing member or disbanding the team's memberships. On disbandment
// the team's projects are archived; the team record itself stays.
func (s *Service) QuitTeam(ctx context.Context, callerID, teamID uuid.UUID, newManagerID *uuid.UUID) (*SuccessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tm, err := s.directory.FindTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if err := s.requireTeamManager(ctx, teamID, callerID); err != nil {
		return nil, err
	}

	if newManagerID != nil {
		return s.reassignManager(ctx, tm, callerID, *newManagerID)
	}
	return s.disbandTeam(ctx, tm, callerID)
}

// reassignManager promotes an existing member and removes the caller.
func (s *Service) reassignManager(ctx context.Context, tm *team.Team, callerID, newManagerID uuid.UUID) (*SuccessionResult, error) {
	if newManagerID == callerID {
		return nil, ErrInvalidAction
	}

	newManager, err := s.users.FindUser(ctx, newManagerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.directory.GetMembership(ctx, tm.ID, newManagerID); err != nil {
		if err == team.ErrMembershipNotFound {
			return nil, ErrNewManagerNotMember
		}
		return nil, err
	}

	members, err := s.directory.ListMembers(ctx, tm.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.directory.UpdateMembershipRole(ctx, tm.ID, newManagerID, team.RoleManager, now); err != nil {
		return nil, err
	}
	if err := s.directory.RemoveMembership(ctx, tm.ID, callerID); err != nil {
		return nil, err
	}

	s.notify(ctx, newManagerID, notification.TypePromotedToManager,
		"Promoted to manager",
		fmt.Sprintf("You are now the manager of %s", tm.Name),
		&tm.ID)
	for _, m := range members {
		if m.UserID == callerID || m.UserID == newManagerID {
			continue
		}
		s.notify(ctx, m.UserID, notification.TypeManagerChanged,
			"Team manager changed",
			fmt.Sprintf("%s is now the manager of %s", newManager.FullName, tm.Name),
			&tm.ID)
	}

	s.logger.Info("manager reassigned",
		zap.String("team_id", tm.ID.String()),
		zap.String("old_manager_id", callerID.String()),
		zap.String("new_manager_id", newManagerID.String()),
	)

	promoted, err := s.directory.GetMembership(ctx, tm.ID, newManagerID)
	if err != nil {
		return nil, err
	}

	return &SuccessionResult{
		Action:     SuccessionReassigned,
		Team:       tm,
		NewManager: promoted,
	}, nil
}

// disbandTeam removes every membership and archives the team's
// projects. The team record is deliberately left in place.
func (s *Service) disbandTeam(ctx context.Context, tm *team.Team, callerID uuid.UUID) (*SuccessionResult, error) {
	members, err := s.directory.ListMembers(ctx, tm.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.directory.RemoveAllMemberships(ctx, tm.ID); err != nil {
		return nil, err
	}
	if err := s.projects.ArchiveProjectsByTeam(ctx, tm.ID, callerID, now); err != nil {
		return nil, err
	}

	for _, m := range members {
		if m.UserID == callerID {
			continue
		}
		s.notify(ctx, m.UserID, notification.TypeTeamDisbanded,
			"Team disbanded",
			fmt.Sprintf("Team %s has been disbanded", tm.Name),
			&tm.ID)
	}

	s.logger.Info("team disbanded",
		zap.String("team_id", tm.ID.String()),
		zap.String("disbanded_by", callerID.String()),
		zap.Int("members_removed", len(members)),
	)

	return &SuccessionResult{
		Action: SuccessionDisbanded,
		Team:   tm,
	}, nil
}

// ========== Helpers ==========

// requireTeamManager verifies the caller holds a managerial role on the
// team.
func (s *Service) requireTeamManager(ctx context.Context, teamID, callerID uuid.UUID) error {
	membership, err := s.directory.GetMembership(ctx, teamID, callerID)
	if err != nil {
		if err == team.ErrMembershipNotFound {
			return ErrNotTeamManager
		}
		return err
	}
	if !membership.IsManagerial() {
		return ErrNotTeamManager
	}
	return nil
}

// notify dispatches a single notification. Fire-and-forget.
func (s *Service) notify(ctx context.Context, recipientID uuid.UUID, typ notification.Type, title, message string, relatedTeamID *uuid.UUID) {
	s.notifier.Notify(ctx, notification.New(recipientID, typ, title, message, relatedTeamID))
}

// notifyTeamManagers notifies every manager/admin of a team.
func (s *Service) notifyTeamManagers(ctx context.Context, tm *team.Team, typ notification.Type, title, message string) {
	members, err := s.directory.ListMembers(ctx, tm.ID)
	if err != nil {
		s.logger.Warn("list members for notification", zap.Error(err))
		return
	}
	for _, m := range members {
		if m.IsManagerial() {
			s.notify(ctx, m.UserID, typ, title, message, &tm.ID)
		}
	}
}

// notifyAdmins notifies every platform admin.
func (s *Service) notifyAdmins(ctx context.Context, typ notification.Type, title, message string) {
	admins, err := s.users.ListUsersByRole(ctx, identity.RoleAdmin)
	if err != nil {
		s.logger.Warn("list admins for notification", zap.Error(err))
		return
	}
	for _, admin := range admins {
		s.notify(ctx, admin.ID, typ, title, message, nil)
	}
}

// resolutionMessage appends an optional responder message.
func resolutionMessage(base, extra string) string {
	if extra == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, extra)
}
