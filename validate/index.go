package validate

import (
	"strconv"

	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetById parses a numeric path param and stashes it for the handler.
func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value, err := strconv.Atoi(c.Params(key))
		if err != nil || value <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "param "+key+" must be a positive number", nil)
		}
		c.Locals(key, uint(value))
		return c.Next()
	}
}

func parseBody[T any](c *fiber.Ctx, input *T) error {
	if err := c.BodyParser(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body: "+err.Error(), nil)
	}
	if err := validate.Struct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	}
	return nil
}
