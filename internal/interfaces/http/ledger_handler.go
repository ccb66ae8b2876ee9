package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/ledger"
)

// LedgerHandler navegación de la auditoría financiera de la sucursal.
type LedgerHandler struct {
	reader *ledger.Reader
}

// NewLedgerHandler construye el handler del libro financiero.
func NewLedgerHandler(reader *ledger.Reader) *LedgerHandler {
	return &LedgerHandler{reader: reader}
}

// ListTransactions lista los movimientos de dinero de la sucursal del llamador.
// GET /api/ledger/transactions
func (h *LedgerHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "VALIDATION", Message: "paginación inválida"})
	}
	id := GetIdentity(c)
	out, err := h.reader.ListBranchTransactions(c.Context(), id.BranchID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
