package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	config "github.com/jemert1992/socialcontrol/configs"
	"github.com/jemert1992/socialcontrol/pkg/utils"
)

const sessionTokenDuration = 24 * time.Hour

// AuthService exchanges the configured API key for a short-lived session
// token.
type AuthService interface {
	IssueToken(ctx context.Context, apiKey string) (string, error)
}

type authService struct {
	cfg config.Config
}

func NewAuthService(cfg config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) IssueToken(ctx context.Context, apiKey string) (string, error) {
	if s.cfg.APIKey == "" || s.cfg.SecretKey == "" {
		return "", fmt.Errorf("token auth is not configured: %w", ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.cfg.APIKey)) != 1 {
		return "", fmt.Errorf("invalid api key: %w", ErrUnauthorized)
	}

	return utils.GenerateToken(s.cfg.SecretKey, sessionTokenDuration)
}
