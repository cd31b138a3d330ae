package permission

import (
	"station-api/internal/database"
	"station-api/internal/models"
	"station-api/internal/query"
	"station-api/internal/response"

	"github.com/gofiber/fiber/v2"
)

var sortFields = []string{"id", "name"}

func ListPermissionsHandler(c *fiber.Ctx) error {
	order, ok := query.Sort(c.Query("sort"), sortFields, "id")
	if !ok {
		return response.ValidationError(c, map[string]string{
			"sort": "the selected sort is invalid",
		})
	}

	perPage, ok := query.PerPage(c, 25, 50)
	if !ok {
		return response.ValidationError(c, map[string]string{
			"per_page": "per_page must be between 1 and 50",
		})
	}
	page := query.Page(c)

	var total int64
	if err := database.DB.Model(&models.Permission{}).Count(&total).Error; err != nil {
		return response.InternalError(c, err)
	}

	var perms []models.Permission
	err := database.DB.Order(order).
		Scopes(query.Paginate(page, perPage)).
		Find(&perms).Error
	if err != nil {
		return response.InternalError(c, err)
	}

	return response.SuccessWithMeta(c, perms, response.CalculateMeta(page, perPage, total))
}

func GetPermissionHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid permission ID")
	}

	var perm models.Permission
	if err := database.DB.First(&perm, id).Error; err != nil {
		return response.NotFoundModel(c, "Permission", id)
	}

	return response.Success(c, perm)
}
