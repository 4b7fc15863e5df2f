package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aperturelabs/alms/internal/handler"
	"github.com/aperturelabs/alms/internal/response"
	"github.com/aperturelabs/alms/internal/service"
)

const (
	TokenHeader         = "token"
	AuthorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (service.AuthOutcome, error)
}

type AuthMiddleware struct {
	auth   TokenAuthenticator
	logger *slog.Logger
}

func NewAuthMiddleware(auth TokenAuthenticator, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		logger: logger,
	}
}

// Require rejects requests without an active session with 401 and a code
// naming the reason. Authenticated requests carry the employee and token in
// the context.
func (m *AuthMiddleware) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)

		outcome, err := m.auth.Authenticate(c.UserContext(), token)
		if err != nil {
			m.logger.Error("authentication failed",
				"error", err,
				"traceId", GetTraceID(c),
			)
			return response.DatabaseError(c)
		}

		switch outcome.Status {
		case service.AuthOK:
			handler.SetEmployeeInContext(c, outcome.Employee, token)
			return c.Next()
		case service.AuthTokenMissing:
			return response.Unauthorized(c, response.ErrCodeTokenMissing, "TOKEN MISSING")
		case service.AuthTokenExpired:
			return response.Unauthorized(c, response.ErrCodeTokenExpired, "TOKEN EXPIRED")
		default:
			return response.Unauthorized(c, response.ErrCodeTokenBad, "TOKEN BAD")
		}
	}
}

// TokenFromRequest reads the session token from the token header, falling
// back to an Authorization bearer token.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := strings.TrimSpace(c.Get(TokenHeader)); token != "" {
		return token
	}

	auth := c.Get(AuthorizationHeader)
	if len(auth) > len(bearerPrefix) && strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(auth[len(bearerPrefix):])
	}
	return ""
}
