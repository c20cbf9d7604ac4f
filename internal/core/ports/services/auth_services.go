package ports

import (
	"context"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
)

// TokenSvcFacade issues and verifies the tokens backing API sessions.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user.
	GenerateAccessToken(userID string, role domain.UserRole) (string, error)
	// ValidateAccessToken parses a JWT and returns the user ID and role it
	// carries.
	ValidateAccessToken(tokenString string) (string, domain.UserRole, error)
	// IssueRefreshToken creates an opaque refresh token, stores its hash and
	// sets it as an HTTP-only cookie value returned to the caller.
	IssueRefreshToken(ctx context.Context, userID string) (string, error)
	// RotateRefreshToken validates a presented refresh token and issues a
	// replacement access/refresh pair.
	RotateRefreshToken(ctx context.Context, userID, refreshToken string) (accessToken string, newRefreshToken string, err error)
	// RevokeRefreshToken invalidates the stored refresh token.
	RevokeRefreshToken(ctx context.Context, userID string) error
}

// GoogleOAuthHandlerSvcFacade exchanges a Google authorization code for a
// verified identity and provisions the matching local user.
type GoogleOAuthHandlerSvcFacade interface {
	// HandleGoogleAuthCode validates the authorization code, verifies the ID
	// token and returns the local user, creating one on first sign-in.
	HandleGoogleAuthCode(ctx context.Context, authCode string) (*domain.User, error)
}
