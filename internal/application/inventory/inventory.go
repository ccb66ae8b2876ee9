// Package inventory consultas de solo lectura sobre los pools y el libro de
// inventario. Las mutaciones viven en los motores de venta, devolución y
// traslado; aquí solo se navega el rastro.
package inventory

import (
	"context"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Service consultas de inventario.
type Service struct {
	reads repository.Tx
}

// NewService construye el servicio de consultas.
func NewService(reads repository.Tx) *Service {
	return &Service{reads: reads}
}

// GetStock devuelve el stock actual de un pool (cero si la fila no existe).
func (s *Service) GetStock(ctx context.Context, loc entity.Location, variationID string) (*dto.StockResponse, error) {
	if variationID == "" || (loc.Type != entity.LocationBranch && loc.Type != entity.LocationCompany) {
		return nil, domain.ErrInvalidInput
	}
	pool, err := s.reads.Inventory.Get(loc, variationID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		LocationType: pool.LocationType,
		LocationID:   pool.LocationID,
		VariationID:  pool.VariationID,
		Stock:        pool.Stock,
		MRP:          pool.MRP,
		Discount:     pool.Discount,
	}, nil
}

// ListMovements lista los asientos del libro para una ubicación, recientes
// primero. variationID vacío lista todas las variaciones.
func (s *Service) ListMovements(ctx context.Context, loc entity.Location, variationID string, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	if loc.Type != entity.LocationBranch && loc.Type != entity.LocationCompany {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	entries, err := s.reads.StockRegister.ListByLocation(loc, variationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.MovementResponse{
			ID:              e.ID,
			ReferenceID:     e.ReferenceID,
			ItemID:          e.ItemID,
			VariationID:     e.VariationID,
			TransactionType: e.TransactionType,
			FlowType:        e.FlowType,
			Quantity:        e.Quantity,
			LossQuantity:    e.LossQuantity,
			GrandTotal:      e.GrandTotal,
			BatchID:         e.BatchID,
			Remarks:         e.Remarks,
			TransactionDate: e.TransactionDate,
		})
	}
	return out, nil
}
