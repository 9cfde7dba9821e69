package dto

import (
	"time"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
)

// RegisterRequest creates an owner with its inventory and wallets.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=120"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse defines the user data returned by the API.
type UserResponse struct {
	UserID      string    `json:"userID"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	InventoryID string    `json:"inventoryID"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUserResponse converts an owner context to UserResponse.
func ToUserResponse(owner *domain.OwnerContext) UserResponse {
	return UserResponse{
		UserID:      owner.User.UserID,
		Email:       owner.User.Email,
		Name:        owner.User.Name,
		InventoryID: owner.Inventory.InventoryID,
		CreatedAt:   owner.User.CreatedAt,
	}
}
