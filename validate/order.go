package validate

import (
	"github.com/ciby9833/xspace-sub002/model"
	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("createOrderInput", input)
		return c.Next()
	}
}

func EditOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateOrderInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("updateOrderInput", input)
		return c.Next()
	}
}

func BatchOrderStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.BatchOrderStatusInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("batchOrderStatusInput", input)
		return c.Next()
	}
}

func CancelOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CancelOrderInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("cancelOrderInput", input)
		return c.Next()
	}
}

func FilterOrders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter model.FilterOrderInput
		if err := c.QueryParser(&filter); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid query: "+err.Error(), nil)
		}
		if err := validate.Struct(filter); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		}
		c.Locals("filterOrderInput", filter)
		return c.Next()
	}
}
