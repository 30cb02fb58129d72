package service

import (
	"context"
	"errors"

	"github.com/userbase/userbase-go/internal/model"
	"github.com/userbase/userbase-go/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrSelfDelete rejects deleting the currently authenticated user. This
	// is a domain rule, checked before the store is consulted.
	ErrSelfDelete = errors.New("cannot delete the logged in user")
)

// UserService handles user CRUD business logic.
type UserService struct {
	store UserStore
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// List returns all users, sanitized for API responses.
func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserResponse, len(users))
	for i, u := range users {
		result[i] = u.Response()
	}
	return result, nil
}

// Update applies a partial update to a user. A present phone field is
// re-validated; nil fields are left unchanged.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (model.UserResponse, error) {
	if req.Phone != nil && !validPhone(*req.Phone) {
		return model.UserResponse{}, ErrInvalidPhone
	}

	user, err := s.store.Update(ctx, id, req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return user.Response(), nil
}

// Delete removes a user. The authenticated caller may not delete itself.
func (s *UserService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return ErrSelfDelete
	}

	err := s.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}
