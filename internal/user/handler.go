package user

import (
	"station-api/internal/auth"
	"station-api/internal/database"
	"station-api/internal/middleware"
	"station-api/internal/models"
	"station-api/internal/permissions"
	"station-api/internal/query"
	"station-api/internal/response"
	"station-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var sortFields = []string{"id", "name", "email", "created_at"}

func ListUsersHandler(c *fiber.Ctx) error {
	order, ok := query.Sort(c.Query("sort"), sortFields, "id")
	if !ok {
		return response.ValidationError(c, map[string]string{
			"sort": "the selected sort is invalid",
		})
	}

	perPage, ok := query.PerPage(c, 15, 50)
	if !ok {
		return response.ValidationError(c, map[string]string{
			"per_page": "per_page must be between 1 and 50",
		})
	}
	page := query.Page(c)

	var total int64
	if err := database.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return response.InternalError(c, err)
	}

	var users []models.User
	err := database.DB.Preload("Roles").
		Order(order).
		Scopes(query.Paginate(page, perPage)).
		Find(&users).Error
	if err != nil {
		return response.InternalError(c, err)
	}

	return response.SuccessWithMeta(c, users, response.CalculateMeta(page, perPage, total))
}

func CreateUserHandler(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Roles    []uint `json:"roles"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	errors := map[string]string{}
	if body.Name == "" {
		errors["name"] = "name is required"
	}
	if body.Email == "" {
		errors["email"] = "email is required"
	}
	if len(body.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	}
	if len(errors) > 0 {
		return response.ValidationError(c, errors)
	}

	var existing models.User
	if err := database.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"email": "the email has already been taken",
		})
	}

	roles, ok := resolveRoles(body.Roles)
	if !ok {
		return response.ValidationError(c, map[string]string{
			"roles": "the selected roles are invalid",
		})
	}

	hashedPassword, err := utils.HashPassword(body.Password)
	if err != nil {
		return response.InternalError(c, err)
	}

	user := models.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: hashedPassword,
		Roles:    roles,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return response.InternalError(c, err)
	}

	database.DB.Preload("Roles").First(&user, user.ID)

	return response.Created(c, user)
}

func GetUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	authUserID := auth.CurrentUserID(c)

	// show-users alone only reaches the caller's own record.
	if uint(id) != authUserID && !middleware.HasPermissionTo(authUserID, permissions.CanListUsers) {
		return response.Forbidden(c, "You can only view your own user.")
	}

	var user models.User
	if err := database.DB.Preload("Roles").First(&user, id).Error; err != nil {
		return response.NotFoundModel(c, "User", id)
	}

	return response.Success(c, user)
}

func UpdateUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	authUserID := auth.CurrentUserID(c)
	if uint(id) != authUserID && !middleware.HasPermissionTo(authUserID, permissions.CanUpdateUsers) {
		return response.Forbidden(c, "You can only update your own user.")
	}

	var body struct {
		Name     string  `json:"name"`
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Roles    *[]uint `json:"roles"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	errors := map[string]string{}
	if body.Name == "" {
		errors["name"] = "name is required"
	}
	if body.Email == "" {
		errors["email"] = "email is required"
	}
	if body.Password != "" && len(body.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	}
	if len(errors) > 0 {
		return response.ValidationError(c, errors)
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return response.NotFoundModel(c, "User", id)
	}

	var emailTaken models.User
	if err := database.DB.Where("email = ? AND id != ?", body.Email, id).First(&emailTaken).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"email": "the email has already been taken",
		})
	}

	user.Name = body.Name
	user.Email = body.Email
	if body.Password != "" {
		hashedPassword, err := utils.HashPassword(body.Password)
		if err != nil {
			return response.InternalError(c, err)
		}
		user.Password = hashedPassword
	}

	var roles []models.Role
	if body.Roles != nil {
		var ok bool
		roles, ok = resolveRoles(*body.Roles)
		if !ok {
			return response.ValidationError(c, map[string]string{
				"roles": "the selected roles are invalid",
			})
		}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if body.Roles != nil {
			return tx.Model(&user).Association("Roles").Replace(roles)
		}
		return nil
	})
	if err != nil {
		return response.InternalError(c, err)
	}

	database.DB.Preload("Roles").First(&user, user.ID)

	return response.Success(c, user)
}

func DeleteUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return response.NotFoundModel(c, "User", id)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Association("Roles").Clear(); err != nil {
			return err
		}
		if err := tx.Where("moderator_id = ?", user.ID).Delete(&models.ShowModerator{}).Error; err != nil {
			return err
		}
		if err := auth.RevokeUserTokens(tx, user.ID); err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return response.InternalError(c, err)
	}

	return response.Success(c, "User deleted successfully.")
}

func resolveRoles(ids []uint) ([]models.Role, bool) {
	if len(ids) == 0 {
		return nil, true
	}

	var roles []models.Role
	if err := database.DB.Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, false
	}
	if len(roles) != len(ids) {
		return nil, false
	}
	return roles, true
}
