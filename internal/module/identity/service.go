package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service provides user administration logic.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new identity service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// RegisterUser creates a new user. Only platform admins may register
// users through this surface.
func (s *Service) RegisterUser(ctx context.Context, callerRole Role, req *CreateUserRequest) (*User, error) {
	if callerRole != RoleAdmin {
		return nil, ErrNotAdmin
	}

	role := req.Role
	if role == "" {
		role = RoleMember
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	user := &User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:  req.FullName,
		Role:      role,
		CreatedAt: s.now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return user, nil
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.FindUser(ctx, id)
}

// ListUsers lists all users.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.store.ListUsers(ctx)
}
