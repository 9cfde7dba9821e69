package repositories

import (
	"context"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
)

// UserReader defines read operations for owners and their inventory.
type UserReader interface {
	// FindUserByID retrieves a user by ID. Returns apperrors.ErrNotFound when missing.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by e-mail. Returns apperrors.ErrNotFound when missing.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers returns every owner.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// FindInventoryByUser resolves the single inventory of an owner.
	FindInventoryByUser(ctx context.Context, userID string) (*domain.Inventory, error)
}

// UserWriter defines write operations for owners.
type UserWriter interface {
	// SaveUser inserts a user. Returns apperrors.ErrDuplicate when the e-mail is taken.
	SaveUser(ctx context.Context, user domain.User) error

	SaveInventory(ctx context.Context, inventory domain.Inventory) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
