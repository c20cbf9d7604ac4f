package dto

// RefreshTokenRequest identifies whose refresh token cookie is being rotated.
type RefreshTokenRequest struct {
	UserID string `json:"userID" binding:"required,uuid"`
}

// GoogleAuthCodeRequest carries the authorization code from the OAuth
// redirect.
type GoogleAuthCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}
