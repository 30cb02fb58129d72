package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/userbase/userbase-go/internal/model"
)

// MemoryUserStore is an in-memory user store with the same behavior as
// UserRepository, including its sentinel errors. It backs tests and local
// development without a database.
type MemoryUserStore struct {
	mu      sync.RWMutex
	users   map[string]*model.User
	byEmail map[string]string
	order   []string
}

// NewMemoryUserStore creates an empty MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[string]*model.User),
		byEmail: make(map[string]string),
	}
}

// Create inserts a new user, assigning a fresh ID when the record has none.
func (s *MemoryUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	s.users[user.ID] = &stored
	s.byEmail[user.Email] = user.ID
	s.order = append(s.order, user.ID)
	return nil
}

// GetByEmail retrieves a user by their email address.
func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

// GetByID retrieves a user by their ID.
func (s *MemoryUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// List retrieves all users in insertion order, matching the repository's
// oldest-first ordering.
func (s *MemoryUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, *s.users[id])
	}
	return users, nil
}

// Update applies a partial update to a user. Nil fields keep their stored value.
func (s *MemoryUserStore) Update(_ context.Context, id string, name, phone *string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	if name != nil {
		u.Name = *name
	}
	if phone != nil {
		u.Phone = *phone
	}
	u.UpdatedAt = time.Now().UTC()

	copied := *u
	return &copied, nil
}

// Delete removes a user by ID.
func (s *MemoryUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}

	delete(s.byEmail, u.Email)
	delete(s.users, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
