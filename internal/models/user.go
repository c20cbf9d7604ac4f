package models

import (
	"database/sql"
	"time"
)

// User represents a staff member or client account.
type User struct {
	UserID         string         `json:"userID" db:"user_id"`
	Name           string         `json:"name" db:"name"`
	Username       string         `json:"username" db:"username"`
	Email          string         `json:"email" db:"email"`
	PasswordHash   string         `json:"-" db:"password_hash"`
	Role           string         `json:"role" db:"role"`
	AuthProvider   string         `json:"authProvider" db:"auth_provider"`
	ProviderUserID sql.NullString `json:"-" db:"provider_user_id"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`

	// Refresh Token Fields
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
