package domain

import "time"

// StaffRole enumerates staff permission levels.
type StaffRole string

const (
	StaffRoleOperator StaffRole = "OPERATOR"
	StaffRoleAdmin    StaffRole = "ADMIN"
)

// StaffMember is an internal operator working the admin surface.
type StaffMember struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
}
