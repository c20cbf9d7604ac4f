package handlers

import (
	"net/http"

	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/dalpho/currency_exchange_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler handles the Google sign-in code exchange.
type googleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

func newGoogleOAuthHandler(os portssvc.GoogleOAuthHandlerSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *googleOAuthHandler {
	return &googleOAuthHandler{
		oauthService: os,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerGoogleOAuthRoutes sets up the Google OAuth routes.
func registerGoogleOAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(services.GoogleOAuthSvc, services.TokenSvc, cfg)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/google", h.exchangeCode)
	}
}

// exchangeCode godoc
// @Summary Google sign-in
// @Description Exchanges a Google authorization code for an application session. First sign-in provisions a client account.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleAuthCodeRequest true "Authorization code"
// @Success 200 {object} APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /auth/google [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	var req dto.GoogleAuthCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.oauthService.HandleGoogleAuthCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}

	accessToken, err := h.tokenService.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	refreshToken, err := h.tokenService.IssueRefreshToken(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "Failed to issue refresh token")
		return
	}

	maxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, refreshToken, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	respondSuccess(c, http.StatusOK, "Login successful", dto.LoginResponse{
		Token: accessToken,
		User:  dto.ToUserResponse(user),
	})
}
