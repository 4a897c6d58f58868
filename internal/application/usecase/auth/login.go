// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rm-entrenador/backend/internal/application/adapter"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
)

// LoginInput represents the input for login.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the output of login.
type LoginOutput struct {
	AccessToken string
}

// LoginUseCase authenticates the single administrative user against the
// configured credential pair and issues an access token.
type LoginUseCase struct {
	tokenService  adapter.TokenService
	adminUsername string
	adminHash     string
}

// NewLoginUseCase creates a new LoginUseCase instance.
func NewLoginUseCase(tokenService adapter.TokenService, adminUsername, adminPasswordHash string) *LoginUseCase {
	return &LoginUseCase{
		tokenService:  tokenService,
		adminUsername: adminUsername,
		adminHash:     adminPasswordHash,
	}
}

// Execute performs the login. Username and password checks always both run
// so a failed attempt takes the same time either way.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(uc.adminUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.adminHash), []byte(input.Password))

	if !userOK || passErr != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid username or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, uc.adminUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &LoginOutput{
		AccessToken: token,
	}, nil
}
