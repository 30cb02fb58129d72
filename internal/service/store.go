package service

import (
	"context"

	"github.com/userbase/userbase-go/internal/model"
)

// UserStore defines the persistence operations the services need. Both the
// MySQL-backed repository and the in-memory store satisfy it.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, name, phone *string) (*model.User, error)
	Delete(ctx context.Context, id string) error
}
