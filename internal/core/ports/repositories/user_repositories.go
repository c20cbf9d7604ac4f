package repositories

import (
	"context"
	"time"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
)

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error

	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)

	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// MarkUserDeleted soft-deletes a user.
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error

	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}
