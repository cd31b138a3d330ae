package request

import (
	"station-api/internal/database"
	"station-api/internal/models"
	"station-api/internal/query"
	"station-api/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

var sortFields = []string{"id", "name", "created_at"}

// Wish messages come from an unauthenticated form; strip markup before
// anything is stored.
var policy = bluemonday.StrictPolicy()

func ListRequestsHandler(c *fiber.Ctx) error {
	order, ok := query.Sort(c.Query("sort"), sortFields, "created_at")
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
	if err := database.DB.Model(&models.WishRequest{}).Count(&total).Error; err != nil {
		return response.InternalError(c, err)
	}

	var requests []models.WishRequest
	err := database.DB.Order(order).
		Scopes(query.Paginate(page, perPage)).
		Find(&requests).Error
	if err != nil {
		return response.InternalError(c, err)
	}

	return response.SuccessWithMeta(c, requests, response.CalculateMeta(page, perPage, total))
}

func CreateRequestHandler(c *fiber.Ctx) error {
	var body struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	errors := map[string]string{}
	if body.Name == "" || len(body.Name) > 255 {
		errors["name"] = "name is required and may not be greater than 255 characters"
	}
	if body.Message == "" {
		errors["message"] = "message is required"
	}
	if len(errors) > 0 {
		return response.ValidationError(c, errors)
	}

	req := models.WishRequest{
		Name:    policy.Sanitize(body.Name),
		Message: policy.Sanitize(body.Message),
	}

	if err := database.DB.Create(&req).Error; err != nil {
		return response.ErrorWithDebug(c, fiber.StatusInternalServerError, "Failed to create request", err)
	}

	return response.Created(c, req)
}

func GetRequestHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req models.WishRequest
	if err := database.DB.First(&req, id).Error; err != nil {
		return response.NotFoundModel(c, "Request", id)
	}

	return response.Success(c, req)
}

func DeleteRequestHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var req models.WishRequest
	if err := database.DB.First(&req, id).Error; err != nil {
		return response.NotFoundModel(c, "Request", id)
	}

	if err := database.DB.Delete(&req).Error; err != nil {
		return response.ErrorWithDebug(c, fiber.StatusInternalServerError, "Failed to delete", err)
	}

	return response.NoContent(c)
}
