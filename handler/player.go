package handler

import (
	"fmt"

	"github.com/ciby9833/xspace-sub002/middleware"
	"github.com/ciby9833/xspace-sub002/model"
	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreatePlayer(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	input := c.Locals("createPlayerInput").(model.CreatePlayerInput)

	player, err := h.Players.Create(input, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, player)
}

func (h *Handler) BatchCreatePlayers(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	input := c.Locals("batchCreatePlayersInput").(model.BatchCreatePlayersInput)

	players, err := h.Players.CreateBatch(input, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, players)
}

func (h *Handler) GetPlayersByOrder(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	orderID := c.Locals("orderId").(uint)

	players, err := h.Players.ListByOrder(orderID, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, players)
}

func (h *Handler) UpdatePlayer(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	playerID := c.Locals("playerId").(uint)
	patch := c.Locals("updatePlayerInput").(model.UpdatePlayerInput)

	player, err := h.Players.Update(playerID, patch, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, player)
}

func (h *Handler) UpdatePlayerPaymentStatus(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	playerID := c.Locals("playerId").(uint)
	input := c.Locals("playerPaymentStatusInput").(model.PlayerPaymentStatusInput)

	player, err := h.Players.UpdatePaymentStatus(playerID, input.PaymentStatus, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, player)
}

func (h *Handler) BatchUpdatePlayerPaymentStatus(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	input := c.Locals("batchPlayerPaymentStatusInput").(model.BatchPlayerPaymentStatusInput)

	updated, err := h.Players.BatchUpdatePaymentStatus(input.IDs, input.PaymentStatus, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"updatedIds": updated,
		"message":    fmt.Sprintf("%d player(s) updated", len(updated)),
	})
}

func (h *Handler) DeletePlayer(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	playerID := c.Locals("playerId").(uint)

	if err := h.Players.Delete(playerID, actor); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Player deleted"})
}

func (h *Handler) GetNextSequence(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	orderID := c.Locals("orderId").(uint)

	next, err := h.Players.NextSequence(orderID, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"nextSequence": next})
}

func (h *Handler) CopyPlayers(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	input := c.Locals("copyPlayersInput").(model.CopyPlayersInput)

	players, err := h.Players.CopyToOrder(input, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, players)
}
