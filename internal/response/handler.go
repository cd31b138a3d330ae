package response

import (
	"fmt"
	"time"

	"station-api/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Envelope shapes mirror the API contract: successes carry
// {status, data, timestamp}, errors carry {message, status, timestamp}
// plus a debug payload when APP_DEBUG is on.

type SuccessResponse struct {
	Status    int         `json:"status"`
	Data      interface{} `json:"data"`
	Meta      *Meta       `json:"meta,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type ErrorResponse struct {
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Status    int               `json:"status"`
	Debug     string            `json:"debug,omitempty"`
	Timestamp string            `json:"timestamp"`
}

type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func now() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponse{
		Status:    fiber.StatusOK,
		Data:      data,
		Timestamp: now(),
	})
}

func SuccessWithMeta(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponse{
		Status:    fiber.StatusOK,
		Data:      data,
		Meta:      meta,
		Timestamp: now(),
	})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{
		Status:    fiber.StatusCreated,
		Data:      data,
		Timestamp: now(),
	})
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message:   message,
		Status:    status,
		Timestamp: now(),
	})
}

// ErrorWithDebug attaches the underlying error, but only when APP_DEBUG
// is enabled. Production responses never leak internals.
func ErrorWithDebug(c *fiber.Ctx, status int, message string, err error) error {
	resp := ErrorResponse{
		Message:   message,
		Status:    status,
		Timestamp: now(),
	}
	if err != nil && config.Debug() {
		resp.Debug = err.Error()
	}
	return c.Status(status).JSON(resp)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFoundModel masks existence the way the upstream framework does:
// the message names the model and id, nothing else.
func NotFoundModel(c *fiber.Ctx, model string, id interface{}) error {
	return Error(c, fiber.StatusNotFound, fmt.Sprintf("No query results for model [%s] %v", model, id))
}

func Locked(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusLocked, message)
}

func ValidationError(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Message:   "The given data was invalid.",
		Errors:    errors,
		Status:    fiber.StatusUnprocessableEntity,
		Timestamp: now(),
	})
}

func InternalError(c *fiber.Ctx, err error) error {
	return ErrorWithDebug(c, fiber.StatusInternalServerError, "Something went wrong.", err)
}

func CalculateMeta(page, perPage int, total int64) *Meta {
	totalPages := total / int64(perPage)
	if total%int64(perPage) > 0 {
		totalPages++
	}

	return &Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
