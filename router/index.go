package router

import (
	"github.com/ciby9833/xspace-sub002/handler"
	"github.com/ciby9833/xspace-sub002/middleware"
	"github.com/ciby9833/xspace-sub002/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	order := v1.Group("/order", logger.New())
	order.Get("/", middleware.Protected(), validate.FilterOrders(), h.GetOrders)
	order.Get("/code/:publicCode", middleware.Protected(), h.GetOrderByCode)
	order.Get("/:orderId", middleware.Protected(), validate.GetById("orderId"), h.GetOrderById)
	order.Post("/", middleware.Protected(), validate.CreateOrder(), h.CreateOrder)
	order.Put("/:orderId", middleware.Protected(), validate.GetById("orderId"), validate.EditOrder(), h.UpdateOrder)
	order.Delete("/:orderId", middleware.Protected(), validate.GetById("orderId"), h.DeleteOrder)
	order.Patch("/status", middleware.Protected(), validate.BatchOrderStatus(), h.BatchUpdateOrderStatus)
	order.Post("/:orderId/cancel", middleware.Protected(), validate.GetById("orderId"), validate.CancelOrder(), h.CancelOrder)
	order.Post("/:orderId/recalculate", middleware.Protected(), validate.GetById("orderId"), h.RecalculateOrder)

	player := v1.Group("/player", logger.New())
	player.Get("/order/:orderId", middleware.Protected(), validate.GetById("orderId"), h.GetPlayersByOrder)
	player.Get("/next-sequence/:orderId", middleware.Protected(), validate.GetById("orderId"), h.GetNextSequence)
	player.Post("/", middleware.Protected(), validate.CreatePlayer(), h.CreatePlayer)
	player.Post("/batch", middleware.Protected(), validate.BatchCreatePlayers(), h.BatchCreatePlayers)
	player.Post("/copy", middleware.Protected(), validate.CopyPlayers(), h.CopyPlayers)
	player.Patch("/payment-status", middleware.Protected(), validate.BatchPlayerPaymentStatus(), h.BatchUpdatePlayerPaymentStatus)
	player.Patch("/:playerId/payment-status", middleware.Protected(), validate.GetById("playerId"), validate.PlayerPaymentStatus(), h.UpdatePlayerPaymentStatus)
	player.Put("/:playerId", middleware.Protected(), validate.GetById("playerId"), validate.EditPlayer(), h.UpdatePlayer)
	player.Delete("/:playerId", middleware.Protected(), validate.GetById("playerId"), h.DeletePlayer)

	room := v1.Group("/room", logger.New())
	room.Get("/:roomId/availability", middleware.Protected(), validate.GetById("roomId"), h.GetRoomAvailability)
	room.Get("/:roomId/check", middleware.Protected(), validate.GetById("roomId"), h.CheckRoomSlot)

	statistic := v1.Group("/statistic", logger.New())
	statistic.Get("/payment", middleware.Protected(), h.GetPaymentStats)
	statistic.Get("/role", middleware.Protected(), h.GetRoleStats)

	upload := v1.Group("/upload", logger.New())
	upload.Post("/order-images", middleware.Protected(), h.UploadOrderImages)
}
