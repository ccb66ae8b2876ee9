package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/shift"
)

// ShiftHandler maneja turnos de caja y arqueos (protegido).
type ShiftHandler struct {
	uc *shift.Service
}

// NewShiftHandler construye el handler de turnos.
func NewShiftHandler(uc *shift.Service) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// CheckIn abre el turno del día para el biller.
// POST /api/shifts/check-in
func (h *ShiftHandler) CheckIn(c *fiber.Ctx) error {
	var in dto.CheckInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CheckIn(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CheckOut cierra el turno abierto. Exige un arqueo no rechazado del turno.
// POST /api/shifts/check-out
func (h *ShiftHandler) CheckOut(c *fiber.Ctx) error {
	var in dto.CheckOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CheckOut(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetOpen devuelve el turno abierto de hoy del biller.
// GET /api/shifts/open
func (h *ShiftHandler) GetOpen(c *fiber.Ctx) error {
	out, err := h.uc.GetOpenRegister(c.Context(), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateHandover registra la entrega de efectivo al manager (PENDING).
// POST /api/handovers
func (h *ShiftHandler) CreateHandover(c *fiber.Ctx) error {
	var in dto.CreateHandoverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateHandover(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ResolveHandover aprueba o rechaza el arqueo. La aprobación retira el
// efectivo de la caja de la sucursal.
// PUT /api/handovers/:id/resolve
func (h *ShiftHandler) ResolveHandover(c *fiber.Ctx) error {
	var in dto.ResolveHandoverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ResolveHandover(c.Context(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
