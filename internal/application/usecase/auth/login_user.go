// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// LoginRateLimiter bounds login attempts per account.
type LoginRateLimiter interface {
	// Allow reports whether another attempt is permitted for the key.
	Allow(key string) bool
}

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email    string
	Password string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	rateLimiter     LoginRateLimiter
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance. The rate
// limiter may be nil, disabling throttling.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	rateLimiter LoginRateLimiter,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		rateLimiter:     rateLimiter,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if uc.rateLimiter != nil && !uc.rateLimiter.Allow(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeRateLimited,
			"too many login attempts, try again later",
			domainerror.ErrRateLimited,
		)
	}

	// Generic error on every failure path to prevent email enumeration
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, invalidCredentials()
	}
	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &LoginUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}
