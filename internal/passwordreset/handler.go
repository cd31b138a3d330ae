package passwordreset

import (
	"time"

	"station-api/internal/auth"
	"station-api/internal/database"
	"station-api/internal/models"
	"station-api/internal/response"
	"station-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const tokenTTL = 1 * time.Hour

// SendLinkHandler mints a reset token and mails the link. The token is
// stored hashed; the plain value only ever leaves through the email.
func SendLinkHandler(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		ResetURL string `json:"reset_url"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	errors := map[string]string{}
	if body.Email == "" {
		errors["email"] = "email is required"
	}
	if body.ResetURL == "" {
		errors["reset_url"] = "reset_url is required"
	}
	if len(errors) > 0 {
		return response.ValidationError(c, errors)
	}

	var user models.User
	if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		return response.ValidationError(c, map[string]string{
			"email": "the selected email is invalid",
		})
	}

	plainToken := utils.RandomString(64)
	reset := models.ResetToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(plainToken),
		ExpiresAt: time.Now().Add(tokenTTL),
	}

	if err := database.DB.Create(&reset).Error; err != nil {
		return response.ErrorWithDebug(c, fiber.StatusInternalServerError, "Unable to send reset link", err)
	}

	sendResetMail(user.Email, body.ResetURL+"/"+plainToken+"?email="+user.Email)

	return response.NoContent(c)
}

// ResetHandler redeems a token: new password in, every outstanding
// access token out.
func ResetHandler(c *fiber.Ctx) error {
	token := c.Params("token")

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
	if len(body.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	}
	if len(errors) > 0 {
		return response.ValidationError(c, errors)
	}

	var user models.User
	if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		return response.ValidationError(c, map[string]string{
			"email": "the selected email is invalid",
		})
	}

	var reset models.ResetToken
	err := database.DB.
		Where("token_hash = ? AND user_id = ?", utils.HashToken(token), user.ID).
		First(&reset).Error
	if err != nil {
		return response.BadRequest(c, "Unable to reset password")
	}

	if reset.ExpiresAt.Before(time.Now()) {
		database.DB.Delete(&reset)
		return response.BadRequest(c, "Unable to reset password")
	}

	hashedPassword, err := utils.HashPassword(body.Password)
	if err != nil {
		return response.InternalError(c, err)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("password", hashedPassword).Error; err != nil {
			return err
		}
		if err := tx.Delete(&reset).Error; err != nil {
			return err
		}
		return auth.RevokeUserTokens(tx, user.ID)
	})
	if err != nil {
		return response.ErrorWithDebug(c, fiber.StatusInternalServerError, "Unable to reset password", err)
	}

	return response.NoContent(c)
}
