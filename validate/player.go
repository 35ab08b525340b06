package validate

import (
	"github.com/ciby9833/xspace-sub002/model"

	"github.com/gofiber/fiber/v2"
)

func CreatePlayer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePlayerInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("createPlayerInput", input)
		return c.Next()
	}
}

func BatchCreatePlayers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.BatchCreatePlayersInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("batchCreatePlayersInput", input)
		return c.Next()
	}
}

func EditPlayer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdatePlayerInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("updatePlayerInput", input)
		return c.Next()
	}
}

func PlayerPaymentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PlayerPaymentStatusInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("playerPaymentStatusInput", input)
		return c.Next()
	}
}

func BatchPlayerPaymentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.BatchPlayerPaymentStatusInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("batchPlayerPaymentStatusInput", input)
		return c.Next()
	}
}

func CopyPlayers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CopyPlayersInput
		if err := parseBody(c, &input); err != nil {
			return err
		}
		c.Locals("copyPlayersInput", input)
		return c.Next()
	}
}
