package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalpho/currency_exchange_app/internal/apperrors"
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/platform/config"
	"github.com/dalpho/currency_exchange_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements TokenSvcFacade over JWT access tokens and opaque,
// hashed refresh tokens.
type tokenService struct {
	cfg     *config.Config
	userSvc portssvc.UserSvcFacade
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config, userSvc portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:     cfg,
		userSvc: userSvc,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a signed JWT carrying the user ID and role.
func (s *tokenService) GenerateAccessToken(userID string, role domain.UserRole) (string, error) {
	return utils.GenerateJWT(userID, string(role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
}

// ValidateAccessToken parses a JWT and returns the user ID and role it carries.
func (s *tokenService) ValidateAccessToken(tokenString string) (string, domain.UserRole, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", apperrors.ErrUnauthorized, err.Error())
	}
	role := domain.UserRole(claims.Role)
	if !role.IsValid() {
		return "", "", fmt.Errorf("%w: token carries unknown role", apperrors.ErrUnauthorized)
	}
	return claims.Subject, role, nil
}

// IssueRefreshToken creates an opaque refresh token and stores its SHA256
// hash against the user. The raw token is returned once and never persisted.
func (s *tokenService) IssueRefreshToken(ctx context.Context, userID string) (string, error) {
	rawToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiry := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.userSvc.SetRefreshToken(ctx, userID, utils.HashRefreshToken(rawToken), expiry); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return rawToken, nil
}

// RotateRefreshToken validates a presented refresh token and issues a fresh
// access/refresh pair, invalidating the old refresh token.
func (s *tokenService) RotateRefreshToken(ctx context.Context, userID, refreshToken string) (string, string, error) {
	user, err := s.userSvc.ValidateRefreshToken(ctx, userID, utils.HashRefreshToken(refreshToken))
	if err != nil {
		return "", "", err
	}

	accessToken, err := s.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken, err := s.IssueRefreshToken(ctx, user.UserID)
	if err != nil {
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

// RevokeRefreshToken invalidates the stored refresh token.
func (s *tokenService) RevokeRefreshToken(ctx context.Context, userID string) error {
	return s.userSvc.ClearRefreshToken(ctx, userID)
}

// googleOAuthHandlerService implements the Google authorization code flow.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	userSvc      portssvc.UserSvcFacade
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new Google OAuth handler service.
func NewGoogleOAuthHandlerService(cfg *config.Config, userSvc portssvc.UserSvcFacade) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg:     cfg,
		userSvc: userSvc,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)

// HandleGoogleAuthCode exchanges the authorization code, verifies the ID
// token and returns the local user, provisioning one on first sign-in.
func (s *googleOAuthHandlerService) HandleGoogleAuthCode(ctx context.Context, authCode string) (*domain.User, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured")
	}

	token, err := s.oauth2Config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange authorization code", apperrors.ErrUnauthorized)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: token response is missing id_token", apperrors.ErrUnauthorized)
	}
	payload, err := idtoken.Validate(ctx, rawIDToken, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed", apperrors.ErrUnauthorized)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if info.ID != payload.Subject {
		return nil, fmt.Errorf("%w: userinfo subject does not match ID token", apperrors.ErrUnauthorized)
	}
	if !info.VerifiedEmail {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := s.userSvc.GetUserByProviderID(ctx, domain.ProviderGoogle, info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up oauth user: %w", err)
	}

	return s.userSvc.CreateOAuthUser(ctx, *info)
}

// fetchUserInfo retrieves the user's profile from Google's userinfo endpoint.
func (s *googleOAuthHandlerService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned non-200 status for userinfo: %s", resp.Status)
	}

	var info domain.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}
	return &info, nil
}
