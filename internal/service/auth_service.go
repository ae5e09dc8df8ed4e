package service

import (
	"context"

	"practicetime_backend/internal/config"
	"practicetime_backend/internal/repository"
	"practicetime_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies dashboard credentials and issues JWTs. Accounts live
// in the same users tree the set-attachment workflow provisions into.
type AuthService struct {
	Users *repository.UserRepository
	Cfg   *config.Config
}

func NewAuthService(users *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{Users: users, Cfg: cfg}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, found, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !found {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}
