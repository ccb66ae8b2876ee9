package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// TransferRepository acceso a traslados de stock (dos fases).
type TransferRepository interface {
	Create(t *entity.StockTransfer) error
	ListByBatch(batchID string) ([]*entity.StockTransfer, error)
	// ListUnacknowledgedByBatch devuelve los renglones despachados y aún no
	// confirmados del lote, bloqueándolos (SELECT FOR UPDATE).
	ListUnacknowledgedByBatch(batchID string) ([]*entity.StockTransfer, error)
	MarkAcknowledged(id string, received, lost decimal.Decimal, at time.Time) error
}

// StockRequestRepository acceso a solicitudes de reabastecimiento.
type StockRequestRepository interface {
	Create(r *entity.StockRequest) error
	GetByID(id string) (*entity.StockRequest, error)
	ListByBatch(batchID string) ([]*entity.StockRequest, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.StockRequest, error)
	UpdateStatus(id, status string) error
}
