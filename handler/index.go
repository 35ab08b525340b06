package handler

import (
	"errors"

	"github.com/ciby9833/xspace-sub002/service"
	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler wires the fiber surface to the services. Everything runs on the
// injected database handle.
type Handler struct {
	db *gorm.DB

	Orders  *service.OrderService
	Players *service.PlayerService
	Pricing *service.PricingService
	Stats   *service.StatsService

	Cloudinary *cloudinary.Cloudinary
}

func New(db *gorm.DB) *Handler {
	return &Handler{
		db:      db,
		Orders:  service.NewOrderService(db),
		Players: service.NewPlayerService(db),
		Pricing: service.NewPricingService(db),
		Stats:   service.NewStatsService(db),
	}
}

// respondError maps each service error kind to a stable code and status.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	var scErr *service.SlotConflictError
	var dsErr *service.DuplicateSequenceError

	switch {
	case errors.Is(err, service.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Record not found", nil)
	case errors.Is(err, service.ErrPermissionDenied):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "FORBIDDEN", "Insufficient permission", nil)
	case errors.As(err, &vErr):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", vErr.Error(), nil)
	case errors.As(err, &scErr):
		return utils.ErrorResponse(c, fiber.StatusConflict, "SLOT_CONFLICT", scErr.Error(),
			fiber.Map{"conflicts": scErr.Conflicts})
	case errors.As(err, &dsErr):
		return utils.ErrorResponse(c, fiber.StatusConflict, "DUPLICATE_SEQUENCE", dsErr.Error(),
			fiber.Map{"duplicates": dsErr.Duplicates})
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
