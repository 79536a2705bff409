package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/filegram/panel/internal/infra/auth"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// identityKey is the fiber locals key the resolved identity lives under.
const identityKey = "identity"

// IdentityResolver turns a bearer token into an identity. *auth.Client
// satisfies it.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*auth.Identity, error)
}

// Authenticate verifies the Authorization bearer token against the auth
// provider and stores the resolved identity for downstream handlers. Missing
// or unverifiable tokens stop the request with 401.
func Authenticate(resolver IdentityResolver, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		identity, err := resolver.Resolve(c.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
			logger.Error("identity resolution failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Authentication unavailable",
			})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RequireRole stops the request with 403 unless the authenticated identity
// satisfies the required role. Owners satisfy every role.
func RequireRole(required auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := Identity(c)
		if identity == nil || !identity.Role.Satisfies(required) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}

// Identity returns the authenticated identity, or nil before Authenticate
// has run.
func Identity(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals(identityKey).(*auth.Identity)
	return identity
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
