package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/stockrequest"
	"github.com/jhoicas/Comercio-api/internal/application/transfer"
)

// TransferHandler maneja traslados y solicitudes de reabastecimiento (protegido).
type TransferHandler struct {
	transfers *transfer.Service
	requests  *stockrequest.Service
}

// NewTransferHandler construye el handler de traslados.
func NewTransferHandler(transfers *transfer.Service, requests *stockrequest.Service) *TransferHandler {
	return &TransferHandler{transfers: transfers, requests: requests}
}

// Dispatch despacha un lote: descuenta el origen y deja los renglones en tránsito.
// POST /api/transfers
func (h *TransferHandler) Dispatch(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.transfers.TransferStock(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Acknowledge confirma la recepción del lote completo, con merma por renglón.
// POST /api/transfers/acknowledge
func (h *TransferHandler) Acknowledge(c *fiber.Ctx) error {
	var in dto.AcknowledgeTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.transfers.AcknowledgeStockTransfer(c.Context(), GetIdentity(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetBatch lista los renglones de un lote de traslado.
// GET /api/transfers/:batchId
func (h *TransferHandler) GetBatch(c *fiber.Ctx) error {
	out, err := h.transfers.ListBatch(c.Context(), c.Params("batchId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateRequest registra una solicitud de reabastecimiento sucursal → empresa.
// POST /api/stock-requests
func (h *TransferHandler) CreateRequest(c *fiber.Ctx) error {
	var in dto.CreateStockRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.requests.Create(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ResolveRequest decide una solicitud (aprobación total, parcial o rechazo).
// PUT /api/stock-requests/resolve
func (h *TransferHandler) ResolveRequest(c *fiber.Ctx) error {
	var in dto.ResolveStockRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.requests.Resolve(c.Context(), GetIdentity(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRequests lista las solicitudes de la sucursal del llamador.
// GET /api/stock-requests
func (h *TransferHandler) ListRequests(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.requests.ListByBranch(c.Context(), GetIdentity(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
