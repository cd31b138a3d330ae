package role

import (
	"station-api/internal/database"
	"station-api/internal/models"
	"station-api/internal/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListRolesHandler(c *fiber.Ctx) error {
	var roles []models.Role
	if err := database.DB.Preload("Permissions").Find(&roles).Error; err != nil {
		return response.InternalError(c, err)
	}

	return response.Success(c, roles)
}

func CreateRoleHandler(c *fiber.Ctx) error {
	var body struct {
		Name        string `json:"name"`
		Permissions []uint `json:"permissions"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if body.Name == "" {
		return response.ValidationError(c, map[string]string{
			"name": "name is required",
		})
	}

	var existing models.Role
	if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"name": "the name has already been taken",
		})
	}

	// Unknown permission ids fail validation before anything is written.
	perms, ok := resolvePermissions(body.Permissions)
	if !ok {
		return response.ValidationError(c, map[string]string{
			"permissions": "the selected permissions are invalid",
		})
	}

	role := models.Role{Name: body.Name, GuardName: "web"}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		return tx.Model(&role).Association("Permissions").Replace(perms)
	})
	if err != nil {
		return response.InternalError(c, err)
	}

	database.DB.Preload("Permissions").First(&role, role.ID)

	return response.Created(c, role)
}

func GetRoleHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	var role models.Role
	if err := database.DB.Preload("Permissions").First(&role, id).Error; err != nil {
		return response.NotFoundModel(c, "Role", id)
	}

	return response.Success(c, role)
}

func UpdateRoleHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	var body struct {
		Name        string `json:"name"`
		Permissions []uint `json:"permissions"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if body.Name == "" {
		return response.ValidationError(c, map[string]string{
			"name": "name is required",
		})
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		return response.NotFoundModel(c, "Role", id)
	}

	var taken models.Role
	if err := database.DB.Where("name = ? AND id != ?", body.Name, id).First(&taken).Error; err == nil {
		return response.ValidationError(c, map[string]string{
			"name": "the name has already been taken",
		})
	}

	perms, ok := resolvePermissions(body.Permissions)
	if !ok {
		return response.ValidationError(c, map[string]string{
			"permissions": "the selected permissions are invalid",
		})
	}

	// The permission set is replaced wholesale, never merged.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		role.Name = body.Name
		if err := tx.Save(&role).Error; err != nil {
			return err
		}
		return tx.Model(&role).Association("Permissions").Replace(perms)
	})
	if err != nil {
		return response.InternalError(c, err)
	}

	database.DB.Preload("Permissions").First(&role, role.ID)

	return response.Success(c, role)
}

func DeleteRoleHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		return response.NotFoundModel(c, "Role", id)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&role).Association("Permissions").Clear(); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_roles WHERE role_id = ?", role.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&role).Error
	})
	if err != nil {
		return response.InternalError(c, err)
	}

	return response.Success(c, "Role successfully deleted.")
}

func resolvePermissions(ids []uint) ([]models.Permission, bool) {
	if len(ids) == 0 {
		return nil, true
	}

	var perms []models.Permission
	if err := database.DB.Where("id IN ?", ids).Find(&perms).Error; err != nil {
		return nil, false
	}
	if len(perms) != len(ids) {
		return nil, false
	}
	return perms, true
}
