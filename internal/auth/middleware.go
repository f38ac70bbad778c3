package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Middleware validates bearer tokens, resolves the wrapped remote
// session secret and stores user_id, account_id, session_id and
// session in locals.
func (s *Service) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := s.parseToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secret, err := s.sessions.Get(c.Context(), claims.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "session expired")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("account_id", claims.AccountID)
		c.Locals("session_id", claims.ID)
		c.Locals("session", secret)
		return c.Next()
	}
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
