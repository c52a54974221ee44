package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// ChangePasswordInput represents the input for a password change.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordOutput represents the output of a password change.
type ChangePasswordOutput struct {
	Message string
}

// ChangePasswordUseCase handles password changes for authenticated users.
type ChangePasswordUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewChangePasswordUseCase creates a new ChangePasswordUseCase instance.
func NewChangePasswordUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute performs the password change. The current password must verify
// against the stored hash before the new one is accepted.
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, input ChangePasswordInput) (*ChangePasswordOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeAuthUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.CurrentPassword); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"current password is incorrect",
			domainerror.ErrInvalidCredentials,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.NewPassword); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &ChangePasswordOutput{Message: "Password changed successfully"}, nil
}
