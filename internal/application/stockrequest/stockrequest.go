// Package stockrequest implementa solicitudes de reabastecimiento de una
// sucursal hacia el almacén central. Son consultivas: registran la necesidad
// y su resolución, pero no mueven stock (eso lo hace un traslado).
package stockrequest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Service casos de uso de solicitud de reabastecimiento.
type Service struct {
	requests repository.StockRequestRepository
}

// NewService construye el servicio.
func NewService(requests repository.StockRequestRepository) *Service {
	return &Service{requests: requests}
}

// Create registra un lote de solicitudes PENDING, uno por renglón, todos
// correlacionados por un batch_id nuevo.
func (s *Service) Create(ctx context.Context, id dto.Identity, in dto.CreateStockRequestRequest) (*dto.StockRequestResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.ItemID == "" || line.VariationID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	batchID := uuid.New().String()
	for _, line := range in.Items {
		if err := s.requests.Create(&entity.StockRequest{
			ID:          uuid.New().String(),
			BatchID:     batchID,
			BranchID:    id.BranchID,
			CompanyID:   id.CompanyID,
			ItemID:      line.ItemID,
			VariationID: line.VariationID,
			Quantity:    line.Quantity,
			Status:      entity.RequestPending,
			RequestDate: now,
			CreatedBy:   id.EmployeeID,
			UpdatedAt:   now,
		}); err != nil {
			return nil, err
		}
	}

	return &dto.StockRequestResponse{
		BatchID:     batchID,
		ItemCount:   len(in.Items),
		Status:      entity.RequestPending,
		RequestDate: now,
	}, nil
}

// Resolve cambia el estado de un renglón PENDING. Un renglón ya resuelto no
// admite una segunda decisión.
func (s *Service) Resolve(ctx context.Context, id dto.Identity, in dto.ResolveStockRequestRequest) error {
	switch in.Status {
	case entity.RequestPartiallyApproved, entity.RequestApproved, entity.RequestRejected:
	default:
		return domain.ErrInvalidInput
	}
	req, err := s.requests.GetByID(in.RequestID)
	if err != nil || req == nil {
		return domain.ErrNotFound
	}
	if req.CompanyID != id.CompanyID {
		return domain.ErrForbidden
	}
	if req.Status != entity.RequestPending {
		return domain.ErrInvalidStateTransition
	}
	return s.requests.UpdateStatus(in.RequestID, in.Status)
}

// ListByBranch lista las solicitudes de la sucursal, recientes primero.
func (s *Service) ListByBranch(ctx context.Context, id dto.Identity, page dto.PageRequest) ([]*entity.StockRequest, error) {
	page.DefaultPage()
	return s.requests.ListByBranch(id.BranchID, page.Limit, page.Offset)
}

// ListBatch lista los renglones de un lote.
func (s *Service) ListBatch(ctx context.Context, batchID string) ([]*entity.StockRequest, error) {
	rows, err := s.requests.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows, nil
}
