package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/dalpho/currency_exchange_app/internal/middleware"
	"github.com/dalpho/currency_exchange_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.UserSvc, services.TokenSvc, cfg)

	// Login attempts are limited to 5 per minute per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/register", h.register)
		auth.POST("/refresh", h.refresh)
	}
}

// registerAuthProtectedRoutes sets up auth routes that require a valid token.
func registerAuthProtectedRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.UserSvc, services.TokenSvc, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/logout", h.logout)
		auth.GET("/me", h.me)
	}
}

// setRefreshCookie stores the raw refresh token in an HTTP-only cookie.
func (h *authHandler) setRefreshCookie(c *gin.Context, refreshToken string) {
	maxAge := int(h.cfg.RefreshTokenExpiryDuration.Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, refreshToken, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *authHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access token. The refresh token is set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 429 {object} APIResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Invalid username or password")
		return
	}

	accessToken, err := h.tokenService.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to generate access token", slog.String("error", err.Error()))
		respondError(c, err, "Failed to generate token")
		return
	}

	refreshToken, err := h.tokenService.IssueRefreshToken(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "Failed to issue refresh token")
		return
	}
	h.setRefreshCookie(c, refreshToken)

	respondSuccess(c, http.StatusOK, "Login successful", dto.LoginResponse{
		Token: accessToken,
		User:  dto.ToUserResponse(user),
	})
}

// register godoc
// @Summary Register new user
// @Description Creates a new client account.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} APIResponse{data=dto.UserResponse}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	// Self-registration is always a client account; staff roles are assigned
	// through the user management endpoints.
	req.Role = ""

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	respondSuccess(c, http.StatusCreated, "User registered", dto.ToUserResponse(user))
}

// refresh godoc
// @Summary Rotate tokens
// @Description Validates the refresh token cookie and returns a fresh access token. The rotated refresh token replaces the cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "User whose token to rotate"
// @Success 200 {object} APIResponse{data=dto.RefreshTokenResponse}
// @Failure 401 {object} APIResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	refreshToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Refresh token cookie missing"})
		return
	}

	accessToken, newRefreshToken, err := h.tokenService.RotateRefreshToken(c.Request.Context(), req.UserID, refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		respondError(c, err, "Failed to refresh token")
		return
	}
	h.setRefreshCookie(c, newRefreshToken)

	respondSuccess(c, http.StatusOK, "Token refreshed", dto.RefreshTokenResponse{Token: accessToken})
}

// logout godoc
// @Summary Logout
// @Description Revokes the caller's refresh token and clears the cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	if err := h.tokenService.RevokeRefreshToken(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to logout")
		return
	}
	h.clearRefreshCookie(c)

	respondSuccess(c, http.StatusOK, "Logged out", nil)
}

// me godoc
// @Summary Current user
// @Description Returns the authenticated user's profile.
// @Tags auth
// @Produce json
// @Success 200 {object} APIResponse{data=dto.UserResponse}
// @Failure 401 {object} APIResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}

	respondSuccess(c, http.StatusOK, "User profile", dto.ToUserResponse(user))
}
