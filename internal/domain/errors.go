package domain

import "errors"

// Errores de dominio (sin dependencias externas). El núcleo solo emite
// estos sentinelas; el borde HTTP los traduce a message_code + status.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInsufficientFunds      = errors.New("saldo insuficiente en la cuenta")
	ErrInsufficientCredit     = errors.New("límite de crédito del cliente excedido")
	ErrIntegrityMismatch      = errors.New("los totales recalculados no coinciden con los enviados")
	ErrInvalidStateTransition = errors.New("transición de estado no permitida")

	// Devoluciones
	ErrReturnWindowClosed = errors.New("devolución fuera del mes de la venta")
	ErrExceedsReturnable  = errors.New("cantidad devuelta excede la vendida")

	// Traslados
	ErrMissingItems       = errors.New("la confirmación no cubre todas las variaciones del lote")
	ErrMismatchedQuantity = errors.New("recibido + perdido no igualan lo despachado")

	// Turnos / arqueo
	ErrShiftAlreadyOpen    = errors.New("ya existe un turno abierto hoy")
	ErrNoOpenShift         = errors.New("no hay turno abierto hoy")
	ErrHandoverOutstanding = errors.New("hay un arqueo pendiente o rechazado sin resolver")
	ErrHandoverRequired    = errors.New("se requiere un arqueo no rechazado antes del cierre")
)
