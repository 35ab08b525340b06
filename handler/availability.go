package handler

import (
	"time"

	"github.com/ciby9833/xspace-sub002/middleware"
	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/gofiber/fiber/v2"
)

// GetRoomAvailability returns the occupancy view for a room and date: the
// occupied intervals in start order. Scoped like every other order read.
func (h *Handler) GetRoomAvailability(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	roomID := c.Locals("roomId").(uint)

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD", nil)
	}

	slots, err := h.Orders.Occupancy(roomID, date, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"roomId": roomID,
		"date":   date.Format("2006-01-02"),
		"slots":  slots,
	})
}

// CheckRoomSlot answers whether [start, end) is free on the room and date,
// listing the blocking slots when it is not.
func (h *Handler) CheckRoomSlot(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	roomID := c.Locals("roomId").(uint)

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD", nil)
	}
	startClock, err := time.Parse("15:04", c.Query("start"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "start must be HH:MM", nil)
	}
	endClock, err := time.Parse("15:04", c.Query("end"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "end must be HH:MM", nil)
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), startClock.Hour(), startClock.Minute(), 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), endClock.Hour(), endClock.Minute(), 0, 0, date.Location())
	if !end.After(start) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "end must be after start", nil)
	}

	conflicts, err := h.Orders.CheckSlot(roomID, date, start, end, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"available": len(conflicts) == 0,
		"conflicts": conflicts,
	})
}
