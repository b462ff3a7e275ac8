package usecase

import (
	"context"
	"errors"
	"strings"

	"taller_str/internal/usecase/interfaces"
)

var (
	ErrWrongPassword    = errors.New("wrong password")
	ErrPasswordTooShort = errors.New("password too short")
)

const minPasswordLength = 6

// IAuthUseCase covers the shared-admin-password lifecycle. Session token
// issuance itself lives in the token infrastructure; this only answers
// whether a password is acceptable.

type IAuthUseCase interface {
	Login(ctx context.Context, password string) error
	ChangePassword(ctx context.Context, current, next string) error
}

type AuthUseCase struct {
	credentials interfaces.ICredentialRepository
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(credentials interfaces.ICredentialRepository) *AuthUseCase {
	return &AuthUseCase{credentials: credentials}
}

func (u *AuthUseCase) Login(ctx context.Context, password string) error {
	ok, err := u.credentials.Verify(ctx, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWrongPassword
	}
	return nil
}

func (u *AuthUseCase) ChangePassword(ctx context.Context, current, next string) error {
	if len(strings.TrimSpace(next)) < minPasswordLength {
		return ErrPasswordTooShort
	}
	ok, err := u.credentials.Verify(ctx, current)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWrongPassword
	}
	return u.credentials.Update(ctx, next)
}
