package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/middleware"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/response"
)

// Handler handles HTTP requests for user administration.
type Handler struct {
	service *Service
}

// NewHandler creates a new identity handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers identity routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
	}
}

// CreateUser handles user registration (admin only).
func (h *Handler) CreateUser(c *gin.Context) {
	role, ok := middleware.CurrentRole(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.service.RegisterUser(c.Request.Context(), Role(role), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponse())
}

// GetUser handles user lookup by id.
func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// ListUsers handles listing all users.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]*UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}

	c.JSON(http.StatusOK, gin.H{"users": responses})
}

// handleError maps identity errors to HTTP responses.
func (h *Handler) handleError(c *gin.Context, err error) {
	response.HandleErrorWithDefault(c, err, []response.ErrorMapping{
		{Err: ErrUserNotFound, Status: http.StatusNotFound},
		{Err: ErrEmailTaken, Status: http.StatusConflict},
		{Err: ErrInvalidRole, Status: http.StatusBadRequest},
		{Err: ErrNotAdmin, Status: http.StatusForbidden},
	})
}
