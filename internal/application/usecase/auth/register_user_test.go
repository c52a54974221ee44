package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// fakeUserRepo is an in-memory adapter.UserRepository keyed by email.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, usernameOrEmail string) (*entity.User, error) {
	if user, ok := r.users[usernameOrEmail]; ok {
		return user, nil
	}
	for _, user := range r.users {
		if user.Name == usernameOrEmail {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, exists := r.users[email]
	return exists, nil
}

// fakePasswordService hashes by prefixing, enough to tell inputs apart.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

// fakeTokenService issues counter-based tokens and tracks invalidations.
type fakeTokenService struct {
	issued      int
	invalidated map[string]bool
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{invalidated: make(map[string]bool)}
}

func (s *fakeTokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	s.issued++
	return &adapter.TokenPair{
		AccessToken:  fmt.Sprintf("access-%d-%s", s.issued, userID),
		RefreshToken: fmt.Sprintf("refresh-%d-%s", s.issued, email),
	}, nil
}

func (s *fakeTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.claims(token, "access-")
}

func (s *fakeTokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.claims(token, "refresh-")
}

func (s *fakeTokenService) claims(token, prefix string) (*adapter.TokenClaims, error) {
	if !strings.HasPrefix(token, prefix) {
		return nil, errors.New("malformed token")
	}
	return &adapter.TokenClaims{
		UserID:    uuid.New(),
		Email:     "ana@example.com",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}, nil
}

func (s *fakeTokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	s.invalidated[token] = true
	return nil
}

func (s *fakeTokenService) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	return !s.invalidated[token], nil
}

var (
	_ adapter.UserRepository  = (*fakeUserRepo)(nil)
	_ adapter.PasswordService = fakePasswordService{}
	_ adapter.TokenService    = (*fakeTokenService)(nil)
)

func authCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
	return authErr.Code
}

func TestRegisterUserUseCase_Execute(t *testing.T) {
	newFixture := func() (*RegisterUserUseCase, *fakeUserRepo) {
		userRepo := newFakeUserRepo()
		useCase := NewRegisterUserUseCase(userRepo, fakePasswordService{}, newFakeTokenService())
		return useCase, userRepo
	}

	t.Run("registers a user and issues tokens", func(t *testing.T) {
		useCase, userRepo := newFixture()

		output, err := useCase.Execute(context.Background(), RegisterUserInput{
			Email:    "Ana@Example.com",
			Name:     "Ana",
			Password: "strong password",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.Email != "ana@example.com" {
			t.Errorf("expected normalized email, got %s", output.User.Email)
		}
		if output.User.PasswordHash == "strong password" {
			t.Error("expected the password to be hashed")
		}
		if output.AccessToken == "" || output.RefreshToken == "" {
			t.Error("expected a token pair")
		}
		if userRepo.users["ana@example.com"] == nil {
			t.Error("expected the user to be persisted")
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		useCase, _ := newFixture()
		input := RegisterUserInput{Email: "ana@example.com", Name: "Ana", Password: "strong password"}

		if _, err := useCase.Execute(context.Background(), input); err != nil {
			t.Fatalf("unexpected error on first registration: %v", err)
		}
		_, err := useCase.Execute(context.Background(), input)
		if code := authCode(t, err); code != domainerror.ErrCodeEmailExists {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeEmailExists, code)
		}
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		useCase, _ := newFixture()
		_, err := useCase.Execute(context.Background(), RegisterUserInput{
			Email:    "not-an-email",
			Name:     "Ana",
			Password: "strong password",
		})
		if code := authCode(t, err); code != domainerror.ErrCodeInvalidEmail {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidEmail, code)
		}
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		useCase, _ := newFixture()
		_, err := useCase.Execute(context.Background(), RegisterUserInput{
			Email:    "ana@example.com",
			Name:     "   ",
			Password: "strong password",
		})
		if code := authCode(t, err); code != domainerror.ErrCodeMissingFields {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingFields, code)
		}
	})

	t.Run("rejects a weak password", func(t *testing.T) {
		useCase, _ := newFixture()
		_, err := useCase.Execute(context.Background(), RegisterUserInput{
			Email:    "ana@example.com",
			Name:     "Ana",
			Password: "short",
		})
		if code := authCode(t, err); code != domainerror.ErrCodeWeakPassword {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeWeakPassword, code)
		}
	})
}
