package service

import (
	"context"
	"crypto/sha256"
	"fmt"

	config "github.com/jemert1992/socialcontrol/configs"
	"github.com/jemert1992/socialcontrol/internal/models"
	"github.com/jemert1992/socialcontrol/internal/repository"
	"github.com/jemert1992/socialcontrol/internal/transfer"
	"github.com/jemert1992/socialcontrol/pkg/utils"
)

type AccountService interface {
	Create(ctx context.Context, ac *transfer.AccountCreation) (*models.SocialAccount, error)
	ListActive(ctx context.Context) ([]*models.SocialAccount, error)
}

type accountService struct {
	cfg config.Config
	ar  repository.SocialAccountRepository
}

func NewAccountService(cfg config.Config, ar repository.SocialAccountRepository) AccountService {
	return &accountService{cfg: cfg, ar: ar}
}

func (s *accountService) Create(ctx context.Context, ac *transfer.AccountCreation) (*models.SocialAccount, error) {
	if ac.Platform == "" {
		return nil, fmt.Errorf("platform is required: %w", ErrInvalidInput)
	}
	if ac.Username == "" {
		return nil, fmt.Errorf("username is required: %w", ErrInvalidInput)
	}

	account := &models.SocialAccount{
		Platform:  ac.Platform,
		Username:  ac.Username,
		AccountID: ac.AccountID,
		IsActive:  true,
	}

	// Credentials are sealed before they touch the database and never leave
	// it through any response DTO.
	var err error
	account.AccessToken, err = s.sealToken(ac.AccessToken)
	if err != nil {
		return nil, err
	}
	account.RefreshToken, err = s.sealToken(ac.RefreshToken)
	if err != nil {
		return nil, err
	}

	id, err := s.ar.Create(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("error creating social account: %w", err)
	}

	return s.ar.GetByID(ctx, id)
}

func (s *accountService) ListActive(ctx context.Context) ([]*models.SocialAccount, error) {
	return s.ar.ListActive(ctx)
}

func (s *accountService) sealToken(token string) (string, error) {
	if token == "" || s.cfg.SecretKey == "" {
		return token, nil
	}
	key := sha256.Sum256([]byte(s.cfg.SecretKey))
	return utils.Encrypt([]byte(token), key[:])
}
