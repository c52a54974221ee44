package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// GetCurrentUserInput represents the input for fetching the current user.
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// GetCurrentUserOutput represents the output of fetching the current user.
type GetCurrentUserOutput struct {
	User *entity.User
}

// GetCurrentUserUseCase returns the authenticated user's profile.
type GetCurrentUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetCurrentUserUseCase creates a new GetCurrentUserUseCase instance.
func NewGetCurrentUserUseCase(userRepo adapter.UserRepository) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: userRepo}
}

// Execute fetches the current user.
func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, input GetCurrentUserInput) (*GetCurrentUserOutput, error) {
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
	return &GetCurrentUserOutput{User: user}, nil
}
