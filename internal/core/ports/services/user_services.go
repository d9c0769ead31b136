package services

import (
	"context"

	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	"github.com/SscSPs/personal_banking_app/internal/dto"
)

// UserSvcFacade defines user registration and lookup operations.
type UserSvcFacade interface {
	// RegisterUser creates a new user together with their checking and
	// savings accounts, both starting at balance zero.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// VerifyCredentials authenticates an email/password pair and returns the
	// matching user, or ErrNotFound if the pair does not match.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID retrieves a user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
