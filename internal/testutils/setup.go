package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"station-api/internal/auth"
	"station-api/internal/database"
	"station-api/internal/models"
	"station-api/internal/permissions"
	"station-api/internal/server"
	"station-api/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Show{},
		&models.ShowModerator{},
		&models.WishRequest{},
		&models.AccessToken{},
		&models.ResetToken{},
	)
	assert.NoError(t, err, "Failed to migrate test database")

	err = permissions.Seed(db)
	assert.NoError(t, err, "Failed to seed permissions")

	return db
}

func SetupTestApp(t *testing.T) *fiber.App {
	db := TestDB(t)
	database.DB = db

	app := server.New(db)
	return app
}

// CreateTestUser builds a user holding exactly the named permissions,
// wrapped in a role of its own.
func CreateTestUser(t *testing.T, db *gorm.DB, email, password string, permNames ...string) *models.User {
	hashedPassword, _ := utils.HashPassword(password)

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: hashedPassword,
	}
	err := db.Create(user).Error
	assert.NoError(t, err, "Failed to create test user")

	if len(permNames) > 0 {
		GrantPermissions(t, db, user, permNames...)
	}

	db.Preload("Roles.Permissions").First(user, user.ID)
	return user
}

// GrantPermissions attaches the named permissions to the user through a
// dedicated role.
func GrantPermissions(t *testing.T, db *gorm.DB, user *models.User, permNames ...string) {
	var perms []models.Permission
	err := db.Where("name IN ?", permNames).Find(&perms).Error
	assert.NoError(t, err, "Failed to load permissions")
	if len(perms) != len(permNames) {
		t.Fatalf("Unknown permission in %v. Make sure the registry is seeded.", permNames)
	}

	role := models.Role{Name: user.Email + "-role", GuardName: "web", Permissions: perms}
	err = db.Create(&role).Error
	assert.NoError(t, err, "Failed to create test role")

	err = db.Model(user).Association("Roles").Append(&role)
	assert.NoError(t, err, "Failed to attach role")
}

func GetAuthToken(t *testing.T, userID uint) string {
	token, err := auth.IssueToken(userID)
	assert.NoError(t, err, "Failed to issue test token")
	return token
}

func MakeRequest(app *fiber.App, method, url string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()

	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode

	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}

type SuccessEnvelope struct {
	Status    int             `json:"status"`
	Data      json.RawMessage `json:"data"`
	Meta      *Meta           `json:"meta"`
	Timestamp string          `json:"timestamp"`
}

type ErrorEnvelope struct {
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors"`
	Status    int               `json:"status"`
	Debug     string            `json:"debug"`
	Timestamp string            `json:"timestamp"`
}

type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// ParseData decodes the success envelope's data payload into v.
func ParseData(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) *SuccessEnvelope {
	var env SuccessEnvelope
	ParseResponse(t, resp, &env)
	if v != nil {
		err := json.Unmarshal(env.Data, v)
		assert.NoError(t, err, "Failed to parse data payload")
	}
	return &env
}

// AssertErrorMessage checks the status code and error envelope message.
func AssertErrorMessage(t *testing.T, resp *httptest.ResponseRecorder, status int, message string) {
	assert.Equal(t, status, resp.Code)
	var env ErrorEnvelope
	ParseResponse(t, resp, &env)
	assert.Equal(t, message, env.Message)
}

// AssertValidationError checks for a 422 carrying an error on the field.
func AssertValidationError(t *testing.T, resp *httptest.ResponseRecorder, field string) {
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.Code)
	var env ErrorEnvelope
	ParseResponse(t, resp, &env)
	assert.Equal(t, "The given data was invalid.", env.Message)
	assert.Contains(t, env.Errors, field)
}
