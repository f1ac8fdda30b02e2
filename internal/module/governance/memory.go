package governance

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation. Pending-duplicate
// lookups are linear scans, fine at this scale.
type MemoryStore struct {
	mu               sync.RWMutex
	joinRequests     map[uuid.UUID]*JoinRequest
	invitations      map[uuid.UUID]*Invitation
	creationRequests map[uuid.UUID]*CreationRequest
}

// NewMemoryStore creates an empty in-memory governance store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		joinRequests:     make(map[uuid.UUID]*JoinRequest),
		invitations:      make(map[uuid.UUID]*Invitation),
		creationRequests: make(map[uuid.UUID]*CreationRequest),
	}
}

// CreateJoinRequest stores a new join request.
func (s *MemoryStore) CreateJoinRequest(_ context.Context, request *JoinRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *request
	s.joinRequests[request.ID] = &cp
	return nil
}

// GetJoinRequest retrieves a join request by id.
func (s *MemoryStore) GetJoinRequest(_ context.Context, id uuid.UUID) (*JoinRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.joinRequests[id]
	if !ok {
		return nil, ErrJoinRequestNotFound
	}
	cp := *request
	return &cp, nil
}

// FindPendingJoinRequest finds the pending join request for a
// (user, team) pair, if any. A nil result without error means none.
func (s *MemoryStore) FindPendingJoinRequest(_ context.Context, userID, teamID uuid.UUID) (*JoinRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.joinRequests {
		if r.UserID == userID && r.TeamID == teamID && r.Status == JoinRequestPending {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

// ListJoinRequestsByTeam lists join requests for a team, optionally
// filtered by status.
func (s *MemoryStore) ListJoinRequestsByTeam(_ context.Context, teamID uuid.UUID, status *JoinRequestStatus) ([]*JoinRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]*JoinRequest, 0)
	for _, r := range s.joinRequests {
		if r.TeamID != teamID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		cp := *r
		requests = append(requests, &cp)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
	return requests, nil
}

// UpdateJoinRequest replaces a stored join request.
func (s *MemoryStore) UpdateJoinRequest(_ context.Context, request *JoinRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.joinRequests[request.ID]; !ok {
		return ErrJoinRequestNotFound
	}
	cp := *request
	s.joinRequests[request.ID] = &cp
	return nil
}

// CreateInvitation stores a new invitation.
func (s *MemoryStore) CreateInvitation(_ context.Context, invitation *Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *invitation
	s.invitations[invitation.ID] = &cp
	return nil
}

// GetInvitation retrieves an invitation by id.
func (s *MemoryStore) GetInvitation(_ context.Context, id uuid.UUID) (*Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invitation, ok := s.invitations[id]
	if !ok {
		return nil, ErrInvitationNotFound
	}
	cp := *invitation
	return &cp, nil
}

// FindPendingInvitation finds the pending invitation for a (user, team)
// pair, if any. A nil result without error means none.
func (s *MemoryStore) FindPendingInvitation(_ context.Context, userID, teamID uuid.UUID) (*Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, i := range s.invitations {
		if i.UserID == userID && i.TeamID == teamID && i.Status == InvitationPending {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

// ListInvitationsByUser lists invitations addressed to a user,
// optionally filtered by status.
func (s *MemoryStore) ListInvitationsByUser(_ context.Context, userID uuid.UUID, status *InvitationStatus) ([]*Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invitations := make([]*Invitation, 0)
	for _, i := range s.invitations {
		if i.UserID != userID {
			continue
		}
		if status != nil && i.Status != *status {
			continue
		}
		cp := *i
		invitations = append(invitations, &cp)
	}
	sort.Slice(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.Before(invitations[j].CreatedAt)
	})
	return invitations, nil
}

// UpdateInvitation replaces a stored invitation.
func (s *MemoryStore) UpdateInvitation(_ context.Context, invitation *Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invitations[invitation.ID]; !ok {
		return ErrInvitationNotFound
	}
	cp := *invitation
	s.invitations[invitation.ID] = &cp
	return nil
}

// CreateCreationRequest stores a new creation request.
func (s *MemoryStore) CreateCreationRequest(_ context.Context, request *CreationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *request
	s.creationRequests[request.ID] = &cp
	return nil
}

// GetCreationRequest retrieves a creation request by id.
func (s *MemoryStore) GetCreationRequest(_ context.Context, id uuid.UUID) (*CreationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.creationRequests[id]
	if !ok {
		return nil, ErrCreationRequestNotFound
	}
	cp := *request
	return &cp, nil
}

// FindPendingCreationRequestByName finds the requester's pending
// creation request for a team name, if any.
func (s *MemoryStore) FindPendingCreationRequestByName(_ context.Context, requesterID uuid.UUID, teamName string) (*CreationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := strings.ToLower(strings.TrimSpace(teamName))
	for _, r := range s.creationRequests {
		if r.RequesterID == requesterID &&
			strings.ToLower(r.TeamName) == name &&
			r.Status == CreationRequestPending {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

// ListCreationRequests lists creation requests, optionally filtered by
// status.
func (s *MemoryStore) ListCreationRequests(_ context.Context, status *CreationRequestStatus) ([]*CreationRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]*CreationRequest, 0)
	for _, r := range s.creationRequests {
		if status != nil && r.Status != *status {
			continue
		}
		cp := *r
		requests = append(requests, &cp)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
	return requests, nil
}

// UpdateCreationRequest replaces a stored creation request.
func (s *MemoryStore) UpdateCreationRequest(_ context.Context, request *CreationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.creationRequests[request.ID]; !ok {
		return ErrCreationRequestNotFound
	}
	cp := *request
	s.creationRequests[request.ID] = &cp
	return nil
}
