package middleware

import (
	"errors"

	"pustaka/internal/httputil"
	"pustaka/internal/repositories"
	"pustaka/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired verifies the bearer token on every request and re-resolves
// the claimed user against the store, so a deleted account is rejected
// even while its tokens are still within their lifetime. On success the
// identity is attached to the request context for downstream handlers.
func AuthRequired(tokens *services.TokenService, users repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := services.ExtractBearer(c.Get("Authorization"))
		if !ok {
			return httputil.Unauthorized("MISSING_TOKEN", "Access token is required")
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				return httputil.Unauthorized("TOKEN_EXPIRED", "Token has expired")
			}
			return httputil.Unauthorized("INVALID_TOKEN", "Invalid token")
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return httputil.Unauthorized("USER_NOT_FOUND", "User not found")
			}
			return err
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_email", user.Email)
		return c.Next()
	}
}

// AuthOptional attaches the identity when a valid token is present and
// proceeds unauthenticated on any failure. Useful for routes that adapt
// their response to a logged-in user but do not require one.
func AuthOptional(tokens *services.TokenService, users repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := services.ExtractBearer(c.Get("Authorization"))
		if !ok {
			return c.Next()
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			return c.Next()
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			return c.Next()
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_email", user.Email)
		return c.Next()
	}
}
