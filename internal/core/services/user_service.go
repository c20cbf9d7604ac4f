package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dalpho/currency_exchange_app/internal/apperrors"
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/dalpho/currency_exchange_app/internal/utils"
	"github.com/google/uuid"
)

// userService provides business logic for user accounts.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a local user. The role defaults to client when the
// request leaves it empty.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	role := domain.RoleClient
	if req.Role != "" {
		role = domain.UserRole(req.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
		}
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "failed to create user", slog.String("username", req.Username))
		return nil, err
	}

	s.LogInfo(ctx, "user created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

// CreateOAuthUser registers a user provisioned by an external identity
// provider. OAuth accounts are always clients until a staff member promotes
// them.
func (s *userService) CreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("%w: provider identity is incomplete", apperrors.ErrValidation)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:         userID,
		Name:           info.Name,
		Username:       info.Email,
		Email:          info.Email,
		Role:           domain.RoleClient,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: info.ID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "failed to create oauth user", slog.String("email", info.Email))
		return nil, err
	}

	s.LogInfo(ctx, "oauth user created", slog.String("user_id", user.UserID))
	return &user, nil
}

// UpdateUser applies a partial update to a user.
func (s *userService) UpdateUser(ctx context.Context, actorID string, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = actorID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "failed to update user", slog.String("user_id", userID))
		return nil, err
	}

	return user, nil
}

// DeleteUser soft-deletes a user and revokes any active refresh token.
func (s *userService) DeleteUser(ctx context.Context, actorID string, userID string) error {
	if err := s.userRepo.MarkUserDeleted(ctx, userID, actorID, time.Now()); err != nil {
		return err
	}
	s.LogInfo(ctx, "user deleted", slog.String("user_id", userID), slog.String("deleted_by", actorID))
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers retrieves a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// AuthenticateUser verifies a username/password pair. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}
	if user.AuthProvider != domain.ProviderLocal || user.PasswordHash == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// GetUserByProviderID looks up a user provisioned by an external identity
// provider.
func (s *userService) GetUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	return s.userRepo.FindUserByProviderID(ctx, provider, providerUserID)
}

// SetRefreshToken stores the hash of a newly issued refresh token.
func (s *userService) SetRefreshToken(ctx context.Context, userID, tokenHash string, expiry time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, expiry)
}

// ValidateRefreshToken checks a presented refresh token hash against the
// stored one and its expiry.
func (s *userService) ValidateRefreshToken(ctx context.Context, userID, tokenHash string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for refresh validation: %w", err)
	}
	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if user.RefreshTokenHash != tokenHash {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// ClearRefreshToken invalidates the stored refresh token on logout.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}
