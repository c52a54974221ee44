package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shared-expenses/backend/internal/application/usecase/auth"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/integration/entrypoint/dto"
)

// UserController handles user profile endpoints.
type UserController struct {
	getCurrentUserUseCase *auth.GetCurrentUserUseCase
	changePasswordUseCase *auth.ChangePasswordUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getCurrentUserUseCase *auth.GetCurrentUserUseCase,
	changePasswordUseCase *auth.ChangePasswordUseCase,
) *UserController {
	return &UserController{
		getCurrentUserUseCase: getCurrentUserUseCase,
		changePasswordUseCase: changePasswordUseCase,
	}
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.getCurrentUserUseCase.Execute(ctx.Request.Context(), auth.GetCurrentUserInput{
		UserID: userID,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// ChangePassword handles PUT /users/me/password requests.
func (c *UserController) ChangePassword(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.changePasswordUseCase.Execute(ctx.Request.Context(), auth.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: output.Message,
	})
}

// handleUserError handles auth errors raised by the user profile endpoints.
func (c *UserController) handleUserError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		statusCode := c.getStatusCodeForUserError(authErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForUserError maps auth error codes to HTTP status codes.
func (c *UserController) getStatusCodeForUserError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeAuthUserNotFound,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
