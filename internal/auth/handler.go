package auth

import (
	"station-api/internal/response"

	"github.com/gofiber/fiber/v2"
)

func LoginHandler(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	errors := map[string]string{}
	if body.Email == "" {
		errors["email"] = "email is required"
	}
	if body.Password == "" {
		errors["password"] = "password is required"
	}
	if len(errors) > 0 {
		return response.ValidationError(c, errors)
	}

	user, token, err := LoginUser(body.Email, body.Password)
	if err != nil {
		return response.Unauthorized(c, "Invalid login credentials")
	}

	return response.Success(c, fiber.Map{
		"user":         user,
		"access_token": token,
	})
}

func LogoutHandler(c *fiber.Ctx) error {
	hash, ok := c.Locals("token_hash").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated.")
	}

	if err := RevokeToken(hash); err != nil {
		return response.InternalError(c, err)
	}

	return response.Success(c, "User logged out successfully")
}
