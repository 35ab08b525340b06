package handler

import (
	"encoding/base64"
	"fmt"
	"log"

	"github.com/ciby9833/xspace-sub002/middleware"
	"github.com/ciby9833/xspace-sub002/model"
	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	input := c.Locals("createOrderInput").(model.CreateOrderInput)

	order, err := h.Orders.Create(input, actor)
	if err != nil {
		return respondError(c, err)
	}

	go h.sendConfirmation(order)

	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

func (h *Handler) sendConfirmation(order *model.Order) {
	if order.CustomerEmail == "" {
		return
	}
	// Store/room names are display-only in the mail; lookups are best effort.
	var store model.Store
	var room model.Room
	if err := h.db.First(&store, order.StoreID).Error; err != nil {
		log.Printf("confirmation store lookup for order %s failed: %v", order.PublicCode, err)
	}
	if err := h.db.First(&room, order.RoomID).Error; err != nil {
		log.Printf("confirmation room lookup for order %s failed: %v", order.PublicCode, err)
	}
	utils.SendBookingConfirmation(order.CustomerEmail, utils.BookingConfirmationData{
		OrderCode:    order.PublicCode,
		CustomerName: order.CustomerName,
		StoreName:    store.Name,
		RoomName:     room.Name,
		Date:         order.OrderDate.Format("2006-01-02"),
		TimeWindow:   order.StartTime.Format("15:04") + " - " + order.EndTime.Format("15:04"),
		PlayerCount:  order.PlayerCount,
		TotalAmount:  order.TotalAmount,
	})
}

func (h *Handler) GetOrders(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	filter := c.Locals("filterOrderInput").(model.FilterOrderInput)

	result, err := h.Orders.List(filter, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) GetOrderById(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	orderID := c.Locals("orderId").(uint)

	order, err := h.Orders.Get(orderID, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetOrderByCode returns the order with a QR of its public code for
// front-desk check-in.
func (h *Handler) GetOrderByCode(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	code := c.Params("publicCode")

	order, err := h.Orders.GetByCode(code, actor)
	if err != nil {
		return respondError(c, err)
	}

	qrBase64 := ""
	if qrBytes, err := utils.GenerateQRCode(order.PublicCode, 400); err != nil {
		log.Printf("QR for order %s failed: %v", order.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":  order,
		"qrCode": qrBase64,
	})
}

func (h *Handler) UpdateOrder(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	orderID := c.Locals("orderId").(uint)
	patch := c.Locals("updateOrderInput").(model.UpdateOrderInput)

	order, err := h.Orders.Update(orderID, patch, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	orderID := c.Locals("orderId").(uint)

	if err := h.Orders.SoftDelete(orderID, actor); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Order deleted"})
}

func (h *Handler) BatchUpdateOrderStatus(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	input := c.Locals("batchOrderStatusInput").(model.BatchOrderStatusInput)

	updated, err := h.Orders.BatchUpdateStatus(input.IDs, input.Status, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"updatedIds": updated,
		"message":    fmt.Sprintf("%d order(s) updated", len(updated)),
	})
}

func (h *Handler) CancelOrder(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	orderID := c.Locals("orderId").(uint)
	input := c.Locals("cancelOrderInput").(model.CancelOrderInput)

	order, err := h.Orders.Cancel(orderID, input, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func (h *Handler) RecalculateOrder(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	orderID := c.Locals("orderId").(uint)

	players, err := h.Pricing.Recalculate(orderID, actor)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, players)
}
