package domain

import "time"

// UserRole classifies back-office users. Staff roles (admin, manager, agent)
// can enter quotes; clients only consult.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleAgent   UserRole = "agent"
	RoleClient  UserRole = "client"
)

// IsStaff reports whether the role belongs to back-office staff.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleAgent
}

// IsValid reports whether the role is one of the known values.
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleAgent || r == RoleClient
}

// AuthProvider identifies how a user account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents a staff member or client of the back-office.
type User struct {
	UserID       string       `json:"userID"` // Primary Key (UUID)
	Name         string       `json:"name"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         UserRole     `json:"role"`
	AuthProvider AuthProvider `json:"authProvider"`
	// ProviderUserID is the external identity (e.g. Google's sub claim) for
	// OAuth accounts; empty for local accounts.
	ProviderUserID string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Refresh token state; only the SHA256 hash of the token is stored.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo is the subset of Google's userinfo payload the back-office
// cares about.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
