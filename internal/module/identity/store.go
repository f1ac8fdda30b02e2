package identity

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for user lookup and registration. The
// governance engine consumes only FindUser; the rest is administrative
// glue used by the HTTP surface.
type Store interface {
	FindUser(ctx context.Context, id uuid.UUID) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	ListUsers(ctx context.Context) ([]*User, error)
	ListUsersByRole(ctx context.Context, role Role) ([]*User, error)
}
