package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// denyAfter allows the first n attempts and blocks the rest.
type denyAfter struct {
	remaining int
}

func (l *denyAfter) Allow(string) bool {
	if l.remaining == 0 {
		return false
	}
	l.remaining--
	return true
}

func TestLoginUserUseCase_Execute(t *testing.T) {
	newFixture := func(limiter LoginRateLimiter) (*LoginUserUseCase, *fakeUserRepo) {
		userRepo := newFakeUserRepo()
		userRepo.users["ana@example.com"] = entity.NewUser("ana@example.com", "Ana", "hashed:strong password")
		useCase := NewLoginUserUseCase(userRepo, fakePasswordService{}, newFakeTokenService(), limiter)
		return useCase, userRepo
	}

	t.Run("logs in with valid credentials", func(t *testing.T) {
		useCase, _ := newFixture(nil)

		output, err := useCase.Execute(context.Background(), LoginUserInput{
			Email:    "Ana@Example.com ",
			Password: "strong password",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.AccessToken == "" || output.RefreshToken == "" {
			t.Error("expected a token pair")
		}
		if output.User.Email != "ana@example.com" {
			t.Errorf("expected the stored user, got %s", output.User.Email)
		}
	})

	t.Run("a wrong password and an unknown email fail identically", func(t *testing.T) {
		useCase, _ := newFixture(nil)

		_, wrongPassword := useCase.Execute(context.Background(), LoginUserInput{
			Email:    "ana@example.com",
			Password: "wrong",
		})
		_, unknownEmail := useCase.Execute(context.Background(), LoginUserInput{
			Email:    "nobody@example.com",
			Password: "strong password",
		})

		if code := authCode(t, wrongPassword); code != domainerror.ErrCodeInvalidCredentials {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCredentials, code)
		}
		if code := authCode(t, unknownEmail); code != domainerror.ErrCodeInvalidCredentials {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCredentials, code)
		}
		if wrongPassword.Error() != unknownEmail.Error() {
			t.Error("expected indistinguishable failure messages")
		}
	})

	t.Run("throttles repeated attempts", func(t *testing.T) {
		useCase, _ := newFixture(&denyAfter{remaining: 1})

		if _, err := useCase.Execute(context.Background(), LoginUserInput{
			Email:    "ana@example.com",
			Password: "strong password",
		}); err != nil {
			t.Fatalf("unexpected error on first attempt: %v", err)
		}

		_, err := useCase.Execute(context.Background(), LoginUserInput{
			Email:    "ana@example.com",
			Password: "strong password",
		})
		if code := authCode(t, err); code != domainerror.ErrCodeRateLimited {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeRateLimited, code)
		}
	})
}

func TestRefreshTokenUseCase_Execute(t *testing.T) {
	t.Run("rotates the refresh token", func(t *testing.T) {
		tokenService := newFakeTokenService()
		useCase := NewRefreshTokenUseCase(tokenService)
		pair, _ := tokenService.GenerateTokenPair(context.Background(), uuid.New(), "ana@example.com")

		output, err := useCase.Execute(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.RefreshToken == pair.RefreshToken {
			t.Error("expected a new refresh token")
		}
		if !tokenService.invalidated[pair.RefreshToken] {
			t.Error("expected the presented token to be invalidated")
		}
	})

	t.Run("rejects a revoked token", func(t *testing.T) {
		tokenService := newFakeTokenService()
		useCase := NewRefreshTokenUseCase(tokenService)
		pair, _ := tokenService.GenerateTokenPair(context.Background(), uuid.New(), "ana@example.com")
		tokenService.invalidated[pair.RefreshToken] = true

		_, err := useCase.Execute(context.Background(), RefreshTokenInput{RefreshToken: pair.RefreshToken})
		if code := authCode(t, err); code != domainerror.ErrCodeInvalidToken {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidToken, code)
		}
	})

	t.Run("rejects a malformed token", func(t *testing.T) {
		useCase := NewRefreshTokenUseCase(newFakeTokenService())

		_, err := useCase.Execute(context.Background(), RefreshTokenInput{RefreshToken: "garbage"})
		if code := authCode(t, err); code != domainerror.ErrCodeInvalidToken {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidToken, code)
		}
	})
}

func TestLogoutUserUseCase_Execute(t *testing.T) {
	tokenService := newFakeTokenService()
	useCase := NewLogoutUserUseCase(tokenService)

	output, err := useCase.Execute(context.Background(), LogoutUserInput{RefreshToken: "refresh-1-x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("expected a confirmation message")
	}
	if !tokenService.invalidated["refresh-1-x"] {
		t.Error("expected the refresh token to be invalidated")
	}
}
