package dto

import (
	"time"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// StaffLoginRequest authenticates a staff member.
type StaffLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffResponse is the staff profile view.
type StaffResponse struct {
	ID       string           `json:"id"`
	Email    string           `json:"email"`
	FullName string           `json:"full_name"`
	Role     domain.StaffRole `json:"role"`
}

// StaffLoginResponse carries the issued token.
type StaffLoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Staff     StaffResponse `json:"staff"`
}
