package permission_test

import (
	"fmt"
	"testing"

	"station-api/internal/database"
	"station-api/internal/models"
	"station-api/internal/permissions"
	"station-api/internal/testutils"

	"github.com/stretchr/testify/assert"
)

func TestListPermissionsHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	admin := testutils.CreateTestUser(t, database.DB, "admin@station.test", "password123",
		permissions.CanShowRoles)
	token := testutils.GetAuthToken(t, admin.ID)

	t.Run("Success - Registry is listed", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/v1/permissions?per_page=50", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var perms []map[string]interface{}
		env := testutils.ParseData(t, resp, &perms)
		assert.Equal(t, int64(len(permissions.All())), env.Meta.Total)
		assert.Len(t, perms, len(permissions.All()))
	})

	t.Run("Success - Sorted by name descending", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/v1/permissions?sort=name:desc&per_page=1", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var perms []map[string]interface{}
		testutils.ParseData(t, resp, &perms)
		assert.Len(t, perms, 1)
		assert.Equal(t, permissions.CanUpdateUsersSelf, perms[0]["name"])
	})

	t.Run("Error - Unknown sort field", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/v1/permissions?sort=guard_name", nil, token)
		assert.NoError(t, err)
		testutils.AssertValidationError(t, resp, "sort")
	})

	t.Run("Error - Guest", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/v1/permissions", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}

func TestGetPermissionHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	admin := testutils.CreateTestUser(t, database.DB, "admin@station.test", "password123",
		permissions.CanShowRoles)
	token := testutils.GetAuthToken(t, admin.ID)

	var perm models.Permission
	database.DB.Where("name = ?", permissions.CanCreateShows).First(&perm)

	t.Run("Success", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/api/v1/permissions/%d", perm.ID), nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var got map[string]interface{}
		testutils.ParseData(t, resp, &got)
		assert.Equal(t, permissions.CanCreateShows, got["name"])
	})

	t.Run("Error - Unknown id", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/v1/permissions/99999", nil, token)
		assert.NoError(t, err)
		testutils.AssertErrorMessage(t, resp, 404, "No query results for model [Permission] 99999")
	})
}
