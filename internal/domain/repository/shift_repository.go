package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// ShiftRepository acceso a turnos de caja y arqueos.
type ShiftRepository interface {
	CreateRegister(r *entity.CounterRegister) error
	// GetOpenRegister devuelve el turno OPEN del biller para el día dado
	// (nil si no hay). day se interpreta como fecha de calendario local.
	GetOpenRegister(billerID string, day time.Time) (*entity.CounterRegister, error)
	// GetOpenRegisterForUpdate igual pero bloqueando la fila, para serializar
	// check-in/check-out concurrentes del mismo biller.
	GetOpenRegisterForUpdate(billerID string, day time.Time) (*entity.CounterRegister, error)
	GetRegisterByID(id string) (*entity.CounterRegister, error)
	CloseRegister(id string, closing decimal.Decimal, end time.Time) error

	CreateHandover(h *entity.CashHandover) error
	GetHandoverByID(id string) (*entity.CashHandover, error)
	// GetHandoverForUpdate bloquea la fila del arqueo para la transición de estado.
	GetHandoverForUpdate(id string) (*entity.CashHandover, error)
	// ListBlockingByBiller devuelve los arqueos que impiden un nuevo check-in:
	// PENDING siempre; REJECTED mientras ningún arqueo del mismo turno haya
	// sido APPROVED.
	ListBlockingByBiller(billerID string) ([]*entity.CashHandover, error)
	// GetNonRejectedByRegister devuelve un arqueo PENDING o APPROVED que
	// referencia el turno (nil si no hay). Habilita el check-out.
	GetNonRejectedByRegister(registerID string) (*entity.CashHandover, error)
	UpdateHandoverStatus(id, status, managerID, remarks string, at time.Time) error
}
