package ports

import (
	"context"
	"time"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	"github.com/dalpho/currency_exchange_app/internal/dto"
)

// UserSvcReader defines read-only user operations.
type UserSvcReader interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserSvcWriter defines mutating user operations.
type UserSvcWriter interface {
	// CreateUser registers a local user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	// CreateOAuthUser registers a user provisioned by an external identity
	// provider.
	CreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
	// UpdateUser applies a partial update to a user.
	UpdateUser(ctx context.Context, actorID string, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, actorID string, userID string) error
}

// UserSvcAuthenticator defines credential and refresh token operations.
type UserSvcAuthenticator interface {
	// AuthenticateUser verifies a username/password pair.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
	// GetUserByProviderID looks up a user provisioned by an external
	// identity provider.
	GetUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
	// SetRefreshToken stores the hash of a newly issued refresh token.
	SetRefreshToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error
	// ValidateRefreshToken checks a presented refresh token hash against the
	// stored one.
	ValidateRefreshToken(ctx context.Context, userID, tokenHash string) (*domain.User, error)
	// ClearRefreshToken invalidates the stored refresh token on logout.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user operations.
type UserSvcFacade interface {
	UserSvcReader
	UserSvcWriter
	UserSvcAuthenticator
}
