package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jemert1992/socialcontrol/internal/models"
	"github.com/jemert1992/socialcontrol/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountServiceStub struct {
	account  *models.SocialAccount
	accounts []*models.SocialAccount
	err      error

	lastCreation *transfer.AccountCreation
}

func (s *accountServiceStub) Create(ctx context.Context, ac *transfer.AccountCreation) (*models.SocialAccount, error) {
	s.lastCreation = ac
	return s.account, s.err
}

func (s *accountServiceStub) ListActive(ctx context.Context) ([]*models.SocialAccount, error) {
	return s.accounts, s.err
}

func newAccountApp(stub *accountServiceStub) *fiber.App {
	app := fiber.New()
	h := NewAccountHandler(stub)
	app.Post("/api/accounts", h.Create)
	app.Get("/api/accounts", h.List)
	return app
}

func TestCreateAccountOmitsCredentials(t *testing.T) {
	stub := &accountServiceStub{account: &models.SocialAccount{
		ID:          1,
		Platform:    "instagram",
		Username:    "creator",
		AccessToken: "super-secret-token",
		IsActive:    true,
		CreatedAt:   time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}}
	app := newAccountApp(stub)

	payload := `{"platform":"instagram","username":"creator","access_token":"super-secret-token"}`
	req := httptest.NewRequest(http.MethodPost, "/api/accounts", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "super-secret-token")
	assert.NotContains(t, string(body), "access_token")
	assert.Contains(t, string(body), "creator")

	require.NotNil(t, stub.lastCreation)
	assert.Equal(t, "super-secret-token", stub.lastCreation.AccessToken)
}

func TestListAccountsOmitsCredentials(t *testing.T) {
	stub := &accountServiceStub{accounts: []*models.SocialAccount{
		{ID: 1, Platform: "tiktok", Username: "creator", RefreshToken: "refresh-secret", IsActive: true},
	}}
	app := newAccountApp(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "refresh-secret")
	assert.NotContains(t, string(body), "refresh_token")
}
