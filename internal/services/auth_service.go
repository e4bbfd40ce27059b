package services

import (
	"errors"
	"strings"

	"github.com/andresouzadev/sindigo/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthUserRepository interface {
	FindByUsername(username string) (*models.User, error)
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login looks the username up case-insensitively and compares the password
// by exact string equality against the stored value. Passwords are kept in
// plaintext; this is the system's documented behavior and is preserved
// as-is rather than hardened here.
func (service *AuthService) Login(username string, password string) (*models.User, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := service.users.FindByUsername(trimmed)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
