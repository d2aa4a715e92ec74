package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/internal/repository"
	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/models"
)

// AuthService authenticates professionals and issues tokens
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.Professional, error)
}

type authService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(repo *repository.Repository, logger *zap.Logger) AuthService {
	return &authService{repo: repo, logger: logger}
}

// Login verifies the credentials and returns a signed token. Unknown emails
// and wrong passwords produce the same error so the response does not leak
// which one was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (string, *models.Professional, error) {
	p, err := s.repo.Professional.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !p.Active || !auth.CheckPasswordHash(password, p.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.CreateToken(p)
	if err != nil {
		s.logger.Error("token creation failed", zap.Error(err))
		return "", nil, err
	}
	return token, p, nil
}
