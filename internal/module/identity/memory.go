package identity

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation. Safe for concurrent
// use; each test gets its own isolated instance.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]*User)}
}

// FindUser retrieves a user by id.
func (s *MemoryStore) FindUser(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// FindUserByEmail retrieves a user by email, case-insensitively.
func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, user := range s.users {
		if strings.ToLower(user.Email) == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

// CreateUser registers a new user.
func (s *MemoryStore) CreateUser(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, existing := range s.users {
		if strings.ToLower(existing.Email) == email {
			return ErrEmailTaken
		}
	}

	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// ListUsers lists all users ordered by creation time.
func (s *MemoryStore) ListUsers(_ context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*User, 0, len(s.users))
	for _, user := range s.users {
		cp := *user
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// ListUsersByRole lists all users holding the given platform role.
func (s *MemoryStore) ListUsersByRole(ctx context.Context, role Role) ([]*User, error) {
	all, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]*User, 0)
	for _, user := range all {
		if user.Role == role {
			users = append(users, user)
		}
	}
	return users, nil
}
