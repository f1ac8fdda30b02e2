package team

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/identity"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/middleware"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/response"
)

// Handler handles HTTP requests for the team read surface.
type Handler struct {
	service *Service
	users   identity.Store
}

// NewHandler creates a new team handler.
func NewHandler(service *Service, users identity.Store) *Handler {
	return &Handler{service: service, users: users}
}

// RegisterRoutes registers team routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	{
		teams.POST("", h.CreateTeam)
		teams.GET("", h.ListMyTeams)
		teams.GET("/discover", h.ListDiscoverableTeams)
		teams.GET("/:id", h.GetTeam)
		teams.GET("/:id/members", h.ListMembers)
	}
}

// CreateTeam handles direct team creation (admin only).
func (h *Handler) CreateTeam(c *gin.Context) {
	caller, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	role := RoleAdmin
	c.JSON(http.StatusCreated, team.ToResponse(&role))
}

// GetTeam handles getting a team by id.
func (h *Handler) GetTeam(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid team id")
		return
	}

	team, myRole, err := h.service.GetTeam(c.Request.Context(), teamID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, team.ToResponse(myRole))
}

// ListMyTeams handles listing teams the caller belongs to.
func (h *Handler) ListMyTeams(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	teams, err := h.service.ListMyTeams(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": h.toResponses(teams)})
}

// ListDiscoverableTeams handles listing teams the caller may ask to join.
func (h *Handler) ListDiscoverableTeams(c *gin.Context) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	teams, err := h.service.ListDiscoverableTeams(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": h.toResponses(teams)})
}

// ListMembers handles listing a team's members.
func (h *Handler) ListMembers(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid team id")
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), teamID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]*MemberResponse, len(members))
	for i, m := range members {
		responses[i] = m.ToResponse()
	}

	c.JSON(http.StatusOK, gin.H{"members": responses})
}

// currentUser resolves the authenticated caller's user record.
func (h *Handler) currentUser(c *gin.Context) (*identity.User, bool) {
	userID, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "")
		return nil, false
	}

	user, err := h.users.FindUser(c.Request.Context(), userID)
	if err != nil {
		response.Unauthorized(c, "unknown user")
		return nil, false
	}
	return user, true
}

// toResponses converts teams without role annotations.
func (h *Handler) toResponses(teams []*Team) []*TeamResponse {
	responses := make([]*TeamResponse, len(teams))
	for i, t := range teams {
		responses[i] = t.ToResponse(nil)
	}
	return responses
}

// handleError maps team errors to HTTP responses.
func (h *Handler) handleError(c *gin.Context, err error) {
	response.HandleErrorWithDefault(c, err, []response.ErrorMapping{
		{Err: ErrTeamNotFound, Status: http.StatusNotFound},
		{Err: ErrMembershipNotFound, Status: http.StatusNotFound},
		{Err: ErrTeamNameTaken, Status: http.StatusConflict},
		{Err: ErrAlreadyMember, Status: http.StatusConflict},
		{Err: ErrNotAdmin, Status: http.StatusForbidden},
	})
}
