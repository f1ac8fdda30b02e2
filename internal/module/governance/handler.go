package governance

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/identity"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/team"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/metrics"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/middleware"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/response"
)

// Handler handles HTTP requests for the governance workflows.
type Handler struct {
	service *Service
	metrics *metrics.Metrics
}

// NewHandler creates a new governance handler. metrics may be nil.
func NewHandler(service *Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

// RegisterRoutes registers governance routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	teams := r.Group("/teams/:id")
	{
		teams.POST("/join-requests", h.RequestToJoin)
		teams.GET("/join-requests", h.ListTeamJoinRequests)
		teams.POST("/invitations", h.SendInvitation)
		teams.POST("/quit", h.QuitTeam)
	}

	r.POST("/join-requests/:id/resolve", h.ResolveJoinRequest)

	invitations := r.Group("/invitations")
	{
		invitations.GET("", h.ListMyInvitations)
		invitations.POST("/:id/respond", h.RespondToInvitation)
	}

	teamRequests := r.Group("/team-requests")
	{
		teamRequests.POST("", h.RequestTeamCreation)
		teamRequests.GET("", h.ListCreationRequests)
		teamRequests.POST("/:id/resolve", h.ResolveCreationRequest)
	}
}

// RequestToJoin handles filing a join request.
func (h *Handler) RequestToJoin(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	teamID, ok := h.pathID(c)
	if !ok {
		return
	}

	var input JoinRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	input.TeamID = teamID

	request, err := h.service.RequestToJoin(c.Request.Context(), callerID, &input)
	if err != nil {
		h.fail(c, "request_to_join", err)
		return
	}

	h.record("request_to_join", "ok")
	c.JSON(http.StatusCreated, request)
}

// ListTeamJoinRequests handles listing a team's join requests.
func (h *Handler) ListTeamJoinRequests(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	teamID, ok := h.pathID(c)
	if !ok {
		return
	}

	var status *JoinRequestStatus
	if raw := c.Query("status"); raw != "" {
		s := JoinRequestStatus(raw)
		status = &s
	}

	requests, err := h.service.ListTeamJoinRequests(c.Request.Context(), callerID, teamID, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"join_requests": requests})
}

// ResolveJoinRequest handles approving or denying a join request.
func (h *Handler) ResolveJoinRequest(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	requestID, ok := h.pathID(c)
	if !ok {
		return
	}

	var input ResolveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	request, err := h.service.ResolveJoinRequest(c.Request.Context(), callerID, requestID, &input)
	if err != nil {
		h.fail(c, "resolve_join_request", err)
		return
	}

	h.record("resolve_join_request", string(request.Status))
	c.JSON(http.StatusOK, request)
}

// SendInvitation handles inviting a user to a team.
func (h *Handler) SendInvitation(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	teamID, ok := h.pathID(c)
	if !ok {
		return
	}

	var input InvitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	input.TeamID = teamID

	invitation, err := h.service.SendInvitation(c.Request.Context(), callerID, &input)
	if err != nil {
		h.fail(c, "send_invitation", err)
		return
	}

	h.record("send_invitation", "ok")
	c.JSON(http.StatusCreated, invitation)
}

// ListMyInvitations handles listing the caller's invitations.
func (h *Handler) ListMyInvitations(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	var status *InvitationStatus
	if raw := c.Query("status"); raw != "" {
		s := InvitationStatus(raw)
		status = &s
	}

	invitations, err := h.service.ListMyInvitations(c.Request.Context(), callerID, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

// RespondToInvitation handles accepting or declining an invitation.
func (h *Handler) RespondToInvitation(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	invitationID, ok := h.pathID(c)
	if !ok {
		return
	}

	var input InvitationResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invitation, err := h.service.RespondToInvitation(c.Request.Context(), callerID, invitationID, &input)
	if err != nil {
		h.fail(c, "respond_to_invitation", err)
		return
	}

	h.record("respond_to_invitation", string(invitation.Status))
	c.JSON(http.StatusOK, invitation)
}

// RequestTeamCreation handles filing a team-creation request.
func (h *Handler) RequestTeamCreation(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	var input CreationRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	request, err := h.service.RequestTeamCreation(c.Request.Context(), callerID, &input)
	if err != nil {
		h.fail(c, "request_team_creation", err)
		return
	}

	h.record("request_team_creation", "ok")
	c.JSON(http.StatusCreated, request)
}

// ListCreationRequests handles listing creation requests (admin only).
func (h *Handler) ListCreationRequests(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	var status *CreationRequestStatus
	if raw := c.Query("status"); raw != "" {
		s := CreationRequestStatus(raw)
		status = &s
	}

	requests, err := h.service.ListCreationRequests(c.Request.Context(), callerID, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"creation_requests": requests})
}

// ResolveCreationRequest handles approving or denying a creation
// request (admin only).
func (h *Handler) ResolveCreationRequest(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	requestID, ok := h.pathID(c)
	if !ok {
		return
	}

	var input CreationResolveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resolution, err := h.service.ResolveCreationRequest(c.Request.Context(), callerID, requestID, &input)
	if err != nil {
		h.fail(c, "resolve_creation_request", err)
		return
	}

	h.record("resolve_creation_request", string(resolution.Request.Status))
	c.JSON(http.StatusOK, resolution)
}

// QuitTeam handles a manager leaving a team.
func (h *Handler) QuitTeam(c *gin.Context) {
	callerID, ok := h.caller(c)
	if !ok {
		return
	}

	teamID, ok := h.pathID(c)
	if !ok {
		return
	}

	var input QuitTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.QuitTeam(c.Request.Context(), callerID, teamID, input.NewManagerID)
	if err != nil {
		h.fail(c, "quit_team", err)
		return
	}

	h.record("quit_team", string(result.Action))
	c.JSON(http.StatusOK, result)
}

// caller extracts the authenticated user id from the request context.
func (h *Handler) caller(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "")
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the :id route parameter.
func (h *Handler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// record counts a governance operation outcome.
func (h *Handler) record(operation, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordGovernanceOp(operation, outcome)
	}
}

// fail records the failed operation and writes the error response.
func (h *Handler) fail(c *gin.Context, operation string, err error) {
	h.record(operation, "error")
	h.handleError(c, err)
}

// handleError maps governance errors to HTTP responses.
func (h *Handler) handleError(c *gin.Context, err error) {
	response.HandleErrorWithDefault(c, err, []response.ErrorMapping{
		{Err: ErrJoinRequestNotFound, Status: http.StatusNotFound},
		{Err: ErrInvitationNotFound, Status: http.StatusNotFound},
		{Err: ErrCreationRequestNotFound, Status: http.StatusNotFound},
		{Err: team.ErrTeamNotFound, Status: http.StatusNotFound},
		{Err: identity.ErrUserNotFound, Status: http.StatusNotFound},

		{Err: ErrNotTeamManager, Status: http.StatusForbidden},
		{Err: ErrNotInvitee, Status: http.StatusForbidden},
		{Err: ErrAdminCannotRequest, Status: http.StatusForbidden},
		{Err: ErrNotAdmin, Status: http.StatusForbidden},

		{Err: ErrPendingJoinRequestExists, Status: http.StatusConflict},
		{Err: ErrPendingInvitationExists, Status: http.StatusConflict},
		{Err: ErrPendingCreationExists, Status: http.StatusConflict},
		{Err: ErrJoinRequestNotPending, Status: http.StatusConflict},
		{Err: ErrInvitationNotPending, Status: http.StatusConflict},
		{Err: ErrCreationNotPending, Status: http.StatusConflict},
		{Err: ErrNewManagerNotMember, Status: http.StatusConflict},
		{Err: team.ErrAlreadyMember, Status: http.StatusConflict},
		{Err: team.ErrTeamNameTaken, Status: http.StatusConflict},

		{Err: ErrInvalidAction, Status: http.StatusBadRequest},
	})
}
