package handler

import (
	"github.com/ciby9833/xspace-sub002/middleware"
	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetPaymentStats(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	stats, err := h.Stats.PaymentStats(c.Query("startDate"), c.Query("endDate"), actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

func (h *Handler) GetRoleStats(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	rows, err := h.Stats.RoleStats(c.Query("startDate"), c.Query("endDate"), actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}
