package middleware

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/jemert1992/socialcontrol/configs"
	"github.com/jemert1992/socialcontrol/pkg/utils"
)

type AuthMiddleware struct {
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// AuthMiddleware accepts the configured API key or a session token issued by
// the auth handler. When neither a key nor a secret is configured the API is
// open; single-tenant deployments behind a private network run it that way.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.cfg.APIKey == "" && m.cfg.SecretKey == "" {
			return c.Next()
		}

		if apiKey := c.Query("api_key", c.Get("X-API-Key")); apiKey != "" && m.cfg.APIKey != "" {
			if subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.APIKey)) == 1 {
				return c.Next()
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid API key",
			})
		}

		tokenString := c.Cookies(m.cfg.CookieName)
		if header := c.Get(fiber.HeaderAuthorization); header != "" {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing credentials",
			})
		}

		if _, err := utils.ValidateToken(m.cfg.SecretKey, tokenString); err != nil {
			c.Cookie(&fiber.Cookie{
				Name:   m.cfg.CookieName,
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})

			slog.Info("token validation failed", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		return c.Next()
	}
}
