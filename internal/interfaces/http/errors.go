package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
)

// mapError traduce los errores centinela del dominio a status + message_code.
// Cualquier error no mapeado responde 500 INTERNAL.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return fiber.StatusConflict, "INSUFFICIENT_FUNDS"
	case errors.Is(err, domain.ErrInsufficientCredit):
		return fiber.StatusConflict, "INSUFFICIENT_CREDIT"
	case errors.Is(err, domain.ErrIntegrityMismatch):
		return fiber.StatusUnprocessableEntity, "INTEGRITY_MISMATCH"
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return fiber.StatusConflict, "INVALID_STATE"
	case errors.Is(err, domain.ErrReturnWindowClosed):
		return fiber.StatusUnprocessableEntity, "RETURN_WINDOW_CLOSED"
	case errors.Is(err, domain.ErrExceedsReturnable):
		return fiber.StatusUnprocessableEntity, "EXCEEDS_RETURNABLE"
	case errors.Is(err, domain.ErrMissingItems):
		return fiber.StatusUnprocessableEntity, "MISSING_ITEMS"
	case errors.Is(err, domain.ErrMismatchedQuantity):
		return fiber.StatusUnprocessableEntity, "MISMATCHED_QUANTITY"
	case errors.Is(err, domain.ErrShiftAlreadyOpen):
		return fiber.StatusConflict, "SHIFT_ALREADY_OPEN"
	case errors.Is(err, domain.ErrNoOpenShift):
		return fiber.StatusConflict, "NO_OPEN_SHIFT"
	case errors.Is(err, domain.ErrHandoverOutstanding):
		return fiber.StatusConflict, "HANDOVER_OUTSTANDING"
	case errors.Is(err, domain.ErrHandoverRequired):
		return fiber.StatusConflict, "HANDOVER_REQUIRED"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe el error con el formato estándar de la API.
func respondError(c *fiber.Ctx, err error) error {
	status, code := mapError(err)
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Code: code, Message: err.Error()})
}
