package auth_test

import (
	"testing"

	"station-api/internal/database"
	"station-api/internal/models"
	"station-api/internal/testutils"
	"station-api/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	testutils.CreateTestUser(t, database.DB, "listener@station.test", "password123")

	t.Run("Success - Valid credentials", func(t *testing.T) {
		body := map[string]interface{}{
			"email":    "listener@station.test",
			"password": "password123",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/v1/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var data map[string]interface{}
		testutils.ParseData(t, resp, &data)
		assert.NotEmpty(t, data["access_token"])

		user := data["user"].(map[string]interface{})
		assert.Equal(t, "listener@station.test", user["email"])
		assert.NotContains(t, user, "password")

		// The token must be backed by a revocable row.
		token := data["access_token"].(string)
		var at models.AccessToken
		err = database.DB.Where("token_hash = ?", utils.HashToken(token)).First(&at).Error
		assert.NoError(t, err)
	})

	t.Run("Error - Wrong password", func(t *testing.T) {
		body := map[string]interface{}{
			"email":    "listener@station.test",
			"password": "wrongpassword",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/v1/login", body, "")
		assert.NoError(t, err)
		testutils.AssertErrorMessage(t, resp, 401, "Invalid login credentials")
	})

	t.Run("Error - Unknown email", func(t *testing.T) {
		body := map[string]interface{}{
			"email":    "nobody@station.test",
			"password": "password123",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/v1/login", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})

	t.Run("Error - Missing fields", func(t *testing.T) {
		body := map[string]interface{}{
			"email": "listener@station.test",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/v1/login", body, "")
		assert.NoError(t, err)
		testutils.AssertValidationError(t, resp, "password")
	})
}

func TestLogoutHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	user := testutils.CreateTestUser(t, database.DB, "listener@station.test", "password123")
	token := testutils.GetAuthToken(t, user.ID)

	t.Run("Success - Logout revokes the token", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/v1/logout", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		// A revoked token no longer authenticates.
		resp, err = testutils.MakeRequest(app, "POST", "/api/v1/logout", nil, token)
		assert.NoError(t, err)
		testutils.AssertErrorMessage(t, resp, 401, "Unauthenticated.")
	})

	t.Run("Error - Logout without a token", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/v1/logout", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})

	t.Run("Error - Garbage token", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/v1/logout", nil, "not-a-token")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}
