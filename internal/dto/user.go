package dto

import (
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
)

// RegisterUserRequest defines the data required to register a new user.
type RegisterUserRequest struct {
	FirstName   string `json:"firstName" binding:"required,max=32"`
	LastName    string `json:"lastName" binding:"required,max=32"`
	Email       string `json:"email" binding:"required,email,max=64"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=15"`
	Address     string `json:"address" binding:"required,max=128"`
	DateOfBirth string `json:"dateOfBirth" binding:"required,dateonly"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse is the outward representation of a user.
type UserResponse struct {
	UserID      string `json:"userID"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		DateOfBirth: u.DateOfBirth,
	}
}
