package utils_test

import (
	"testing"

	"station-api/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, utils.CheckPasswordHash("password123", hash))
	assert.False(t, utils.CheckPasswordHash("wrongpassword", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := utils.ParseJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	_, err = utils.ParseJWT("not.a.token")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	a := utils.HashToken("token-one")
	b := utils.HashToken("token-two")

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, utils.HashToken("token-one"))
}

func TestRandomString(t *testing.T) {
	a := utils.RandomString(64)
	b := utils.RandomString(64)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
