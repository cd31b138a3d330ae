// Package query holds the shared list-endpoint plumbing: whitelisted
// sorting and bounded pagination.
package query

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Sort turns "field" or "field:asc|desc" into an ORDER BY clause. Only
// whitelisted fields are accepted; direction defaults to ascending.
func Sort(raw string, fields []string, fallback string) (string, bool) {
	if raw == "" {
		return fallback + " asc", true
	}

	parts := strings.SplitN(raw, ":", 2)
	field := parts[0]
	dir := "asc"
	if len(parts) == 2 {
		dir = parts[1]
	}

	if dir != "asc" && dir != "desc" {
		return "", false
	}

	for _, f := range fields {
		if f == field {
			return field + " " + dir, true
		}
	}

	return "", false
}

// PerPage reads the per_page parameter, bounded to [1, max]. Out-of-range
// values are a validation failure, not a silent clamp.
func PerPage(c *fiber.Ctx, def, max int) (int, bool) {
	perPage := c.QueryInt("per_page", def)
	if perPage < 1 || perPage > max {
		return 0, false
	}
	return perPage, true
}

func Page(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate scopes a query to the given page.
func Paginate(page, perPage int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * perPage).Limit(perPage)
	}
}
