package transfer

import (
	"time"

	"github.com/jemert1992/socialcontrol/internal/models"
)

type AccountCreation struct {
	Platform     string `json:"platform"`
	Username     string `json:"username"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	AccountID    string `json:"account_id"`
}

// AccountResponse deliberately carries no credential fields; tokens are
// write-only through the API.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Platform  string    `json:"platform"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToAccountResponse(sa *models.SocialAccount) *AccountResponse {
	return &AccountResponse{
		ID:        sa.ID,
		Platform:  sa.Platform,
		Username:  sa.Username,
		IsActive:  sa.IsActive,
		CreatedAt: sa.CreatedAt,
	}
}

func ToAccountResponses(accounts []*models.SocialAccount) []*AccountResponse {
	responses := make([]*AccountResponse, 0, len(accounts))
	for _, sa := range accounts {
		responses = append(responses, ToAccountResponse(sa))
	}
	return responses
}
