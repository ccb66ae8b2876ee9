package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/inventory"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// InventoryHandler consultas de stock y del libro de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.Service
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(uc *inventory.Service) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// locationFromQuery resuelve la ubicación consultada. Por defecto, la
// sucursal del llamador; location_type=company consulta el almacén central.
func locationFromQuery(c *fiber.Ctx) entity.Location {
	id := GetIdentity(c)
	if c.Query("location_type") == entity.LocationCompany {
		return entity.Location{Type: entity.LocationCompany, ID: id.CompanyID}
	}
	return entity.Location{Type: entity.LocationBranch, ID: id.BranchID}
}

// GetStock devuelve el stock actual de una variación en el pool consultado.
// GET /api/inventory/stock/:variationId
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.uc.GetStock(c.Context(), locationFromQuery(c), c.Params("variationId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements lista los asientos del libro para el pool consultado.
// GET /api/inventory/movements
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListMovements(c.Context(), locationFromQuery(c), c.Query("variation_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
