package utils

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// ErrorResponse carries a stable code so clients branch on kind, never on
// message text.
func ErrorResponse(c *fiber.Ctx, status int, code string, message string, data any) error {
	body := fiber.Map{
		"status":  "error",
		"code":    code,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		query = query.Offset(*limit * (*page - 1))
	}
	return query
}

func Ptr[T any](v T) *T {
	return &v
}
