package handlers

import (
	"net/http"
	"strconv"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/dalpho/currency_exchange_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to user management.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers user management routes. All of them require a
// staff role; only admins may create staff accounts.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users", middleware.RequireStaff())
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUserByID)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}
}

// createUser godoc
// @Summary Create a user
// @Description Registers an account. Staff roles may only be assigned by an admin.
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} APIResponse{data=dto.UserResponse}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	role, _ := middleware.GetUserRoleFromContext(c)
	if domain.UserRole(req.Role).IsStaff() && role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, APIResponse{Success: false, Message: "Only admins can create staff accounts"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	respondSuccess(c, http.StatusCreated, "User created", dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Description Retrieves a paginated list of users.
// @Tags users
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} APIResponse{data=[]dto.UserResponse}
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.userService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}

	respondSuccess(c, http.StatusOK, "Users retrieved", dto.ToListUserResponse(users))
}

// getUserByID godoc
// @Summary Get a user
// @Description Retrieves a user by ID.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} APIResponse{data=dto.UserResponse}
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUserByID(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	respondSuccess(c, http.StatusOK, "User retrieved", dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Description Applies a partial update to a user.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} APIResponse{data=dto.UserResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}

	respondSuccess(c, http.StatusOK, "User updated", dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Soft-deletes a user and revokes any active refresh token.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}

	respondSuccess(c, http.StatusOK, "User deleted", nil)
}
