package auth

import (
	"strings"
	"time"

	"station-api/internal/database"
	"station-api/internal/models"
	"station-api/internal/response"
	"station-api/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// resolveToken returns the user id and token hash for a valid,
// unrevoked bearer token.
func resolveToken(c *fiber.Ctx) (uint, string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, "", false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return 0, "", false
	}

	userID, err := utils.ParseJWT(tokenParts[1])
	if err != nil {
		return 0, "", false
	}

	// The signature alone is not enough; the hashed row is what logout
	// and password reset revoke.
	hash := utils.HashToken(tokenParts[1])
	var at models.AccessToken
	err = database.DB.
		Where("token_hash = ? AND user_id = ? AND expires_at > ?", hash, userID, time.Now()).
		First(&at).Error
	if err != nil {
		return 0, "", false
	}

	return userID, hash, true
}

// TokenProtected requires a valid bearer token.
func TokenProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, hash, ok := resolveToken(c)
		if !ok {
			return response.Unauthorized(c, "Unauthenticated.")
		}

		c.Locals("user_id", userID)
		c.Locals("token_hash", hash)
		return c.Next()
	}
}

// OptionalToken resolves the caller when a valid token is present but
// lets guests through. Show listing and show detail use it.
func OptionalToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, hash, ok := resolveToken(c); ok {
			c.Locals("user_id", userID)
			c.Locals("token_hash", hash)
		}
		return c.Next()
	}
}

// CurrentUserID reads the authenticated user id, 0 for guests.
func CurrentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(uint); ok {
		return id
	}
	return 0
}
