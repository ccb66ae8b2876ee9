package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/sale"
	"github.com/jhoicas/Comercio-api/internal/application/salereturn"
)

// SaleHandler maneja ventas y devoluciones (protegido).
type SaleHandler struct {
	sales   *sale.Service
	returns *salereturn.Service
}

// NewSaleHandler construye el handler de ventas.
func NewSaleHandler(sales *sale.Service, returns *salereturn.Service) *SaleHandler {
	return &SaleHandler{sales: sales, returns: returns}
}

// Create confirma una venta: descuenta stock, numera la factura y asienta el pago.
// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.sales.CreateSale(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una venta con sus renglones.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.sales.GetSale(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista las ventas de la sucursal del llamador.
// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.sales.ListSales(c.Context(), GetIdentity(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadInvoice genera y descarga el PDF de la factura.
// GET /api/sales/:id/invoice.pdf
func (h *SaleHandler) DownloadInvoice(c *fiber.Ctx) error {
	pdf, err := h.sales.RenderInvoice(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice.pdf"`)
	return c.Send(pdf)
}

// CreateReturn registra una devolución sobre una venta.
// POST /api/sales/:id/returns
func (h *SaleHandler) CreateReturn(c *fiber.Ctx) error {
	var in dto.CreateSaleReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.SaleID = c.Params("id")
	out, err := h.returns.CreateSaleReturn(c.Context(), GetIdentity(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReturns lista las devoluciones de una venta.
// GET /api/sales/:id/returns
func (h *SaleHandler) ListReturns(c *fiber.Ctx) error {
	out, err := h.returns.ListBySale(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
