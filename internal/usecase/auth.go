package usecase

import (
	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	pkgAuth "github.com/lafrite/friterie/internal/pkg/auth"
)

// AdminSubject identifies the single configured admin principal in tokens.
const AdminSubject = "admin"

// AdminAuthUseCase authenticates the dashboard operator against the
// configured credential hash and manages bearer tokens.
type AdminAuthUseCase struct {
	passwordHash string
	hasher       pkgAuth.PasswordHasher
	tokens       pkgAuth.Strategy
}

// NewAdminAuthUseCase constructs AdminAuthUseCase.
func NewAdminAuthUseCase(passwordHash string, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AdminAuthUseCase {
	return &AdminAuthUseCase{passwordHash: passwordHash, hasher: hasher, tokens: strategy}
}

// Login validates the admin credential and returns a bearer token.
func (u *AdminAuthUseCase) Login(password string) (string, error) {
	if password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.passwordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.tokens.IssueToken(AdminSubject)
}

// ParseToken validates a bearer token and checks it names the admin.
func (u *AdminAuthUseCase) ParseToken(token string) error {
	if token == "" {
		return pkgAuth.ErrInvalidToken
	}
	subject, err := u.tokens.ParseToken(token)
	if err != nil {
		return err
	}
	if subject != AdminSubject {
		return pkgAuth.ErrInvalidToken
	}
	return nil
}
