// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
)

type stubTokenService struct {
	token string
	err   error
}

func (s *stubTokenService) GenerateAccessToken(ctx context.Context, username string) (string, error) {
	return s.token, s.err
}

func (s *stubTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func TestLogin(t *testing.T) {
	hash := hashPassword(t, "correct-password")

	t.Run("valid credentials return a token", func(t *testing.T) {
		uc := NewLoginUseCase(&stubTokenService{token: "signed-token"}, "admin", hash)

		output, err := uc.Execute(context.Background(), LoginInput{
			Username: "admin",
			Password: "correct-password",
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if output.AccessToken != "signed-token" {
			t.Errorf("expected signed-token, got %s", output.AccessToken)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		uc := NewLoginUseCase(&stubTokenService{token: "signed-token"}, "admin", hash)

		_, err := uc.Execute(context.Background(), LoginInput{
			Username: "admin",
			Password: "wrong-password",
		})
		assertInvalidCredentials(t, err)
	})

	t.Run("wrong username is rejected", func(t *testing.T) {
		uc := NewLoginUseCase(&stubTokenService{token: "signed-token"}, "admin", hash)

		_, err := uc.Execute(context.Background(), LoginInput{
			Username: "somebody-else",
			Password: "correct-password",
		})
		assertInvalidCredentials(t, err)
	})

	t.Run("token generation failure surfaces", func(t *testing.T) {
		uc := NewLoginUseCase(&stubTokenService{err: errors.New("signing failed")}, "admin", hash)

		_, err := uc.Execute(context.Background(), LoginInput{
			Username: "admin",
			Password: "correct-password",
		})
		if err == nil {
			t.Fatal("expected an error")
		}
		var authErr *domainerror.AuthError
		if errors.As(err, &authErr) {
			t.Error("expected a plain error, not an auth error, for signing failures")
		}
	})
}

func assertInvalidCredentials(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected an auth error, got %v", err)
	}
	if authErr.Code != domainerror.ErrCodeInvalidCredentials {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidCredentials, authErr.Code)
	}
}
