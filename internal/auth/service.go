package auth

import (
	"fmt"
	"time"

	"station-api/internal/database"
	"station-api/internal/models"
	"station-api/internal/utils"

	"gorm.io/gorm"
)

func LoginUser(email, password string) (*models.User, string, error) {
	var user models.User
	if err := database.DB.Preload("Roles").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	token, err := IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// IssueToken mints a signed token and records its hash so it can be
// revoked later.
func IssueToken(userID uint) (string, error) {
	token, err := utils.GenerateJWT(userID)
	if err != nil {
		return "", err
	}

	at := models.AccessToken{
		UserID:    userID,
		TokenHash: utils.HashToken(token),
		ExpiresAt: time.Now().Add(utils.AccessTokenTTL),
	}
	if err := database.DB.Create(&at).Error; err != nil {
		return "", err
	}

	return token, nil
}

// RevokeToken drops a single token by its hash.
func RevokeToken(tokenHash string) error {
	return database.DB.Where("token_hash = ?", tokenHash).Delete(&models.AccessToken{}).Error
}

// RevokeUserTokens drops every outstanding token for a user. Password
// reset calls this so stolen sessions die with the old password.
func RevokeUserTokens(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&models.AccessToken{}).Error
}
