package services

import (
	"context"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	"github.com/SscSPs/mei_retail_app/internal/dto"
)

// AuthSvc registers owners and issues session tokens.
type AuthSvc interface {
	// RegisterOwner creates the user, its inventory and its BANK and CASH accounts.
	RegisterOwner(ctx context.Context, req dto.RegisterRequest) (*domain.OwnerContext, error)

	// Login checks the credentials and returns a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// OwnerSvc resolves the per-operation owner context.
type OwnerSvc interface {
	// ResolveOwner loads the owner, its inventory and its wallet accounts by e-mail.
	ResolveOwner(ctx context.Context, userEmail string) (*domain.OwnerContext, error)

	// ListOwners returns every registered owner.
	ListOwners(ctx context.Context) ([]domain.User, error)
}
