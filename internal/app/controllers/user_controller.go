package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/app/services"
	"github.com/acortes/biblioteca/internal/middleware"
)

// UserController handles user administration requests
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// ListUsers lists the user directory
// @Summary List users
// @Description Lists users with loan counts and directory stats. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search in name and email"
// @Param role query string false "Filter by role" Enums(admin, librarian, user)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(24)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users"
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var filters dto.UserFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result, err := c.userService.List(ctx, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, result)
}

// CreateUser creates an account with an explicit role
// @Summary Create a user
// @Description Creates an account with the given role, for staff onboarding. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "New account"
// @Success 201 {object} dto.APIResponse{data=dto.ProfileResponse} "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.userService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, dto.FromUser(user))
}

// UpdateUserRole changes a user's role
// @Summary Update a user's role
// @Description Changes a user's role. Admin only; admins cannot change their own role.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Role updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id}/role [put]
func (c *UserController) UpdateUserRole(ctx *gin.Context) {
	actorID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	targetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.userService.UpdateRole(ctx, actorID, targetID, models.RoleType(req.Role)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.SuccessResponse{Message: "Role updated"})
}

// UpdateUserActive enables or disables a user account
// @Summary Activate or deactivate a user
// @Description Enables or disables an account. Admin only; admins cannot disable their own account.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserActiveRequest true "Desired state"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id}/active [put]
func (c *UserController) UpdateUserActive(ctx *gin.Context) {
	actorID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	targetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.userService.SetActive(ctx, actorID, targetID, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.SuccessResponse{Message: "Status updated"})
}
