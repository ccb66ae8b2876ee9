// Package transfer implementa traslados de stock en dos fases: despacho en
// el origen (descuenta y asienta OUT) y confirmación en el destino (suma lo
// recibido, registra la merma y asienta IN). Un lote se confirma una sola vez.
package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/stockregister"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/money"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
	"github.com/jhoicas/Comercio-api/pkg/logger"
)

// Service casos de uso de traslado.
type Service struct {
	txRunner repository.TxRunner
	reads    repository.Tx
	recorder *stockregister.Recorder
	log      *logger.Logger
}

// NewService construye el servicio de traslados.
func NewService(txRunner repository.TxRunner, reads repository.Tx, recorder *stockregister.Recorder, log *logger.Logger) *Service {
	return &Service{txRunner: txRunner, reads: reads, recorder: recorder, log: log}
}

// TransferStock despacha un lote: por renglón revalida los montos, descuenta
// el pool origen y asienta OUT con un batch_id compartido. El destino aún no
// recibe nada hasta la confirmación.
func (s *Service) TransferStock(ctx context.Context, id dto.Identity, in dto.TransferStockRequest) (*dto.TransferResponse, error) {
	if in.ToBranchID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	from := entity.Location{Type: in.FromType}
	switch in.FromType {
	case entity.LocationBranch:
		if in.FromBranchID == "" || in.FromBranchID == in.ToBranchID {
			return nil, domain.ErrInvalidInput
		}
		from.ID = in.FromBranchID
	case entity.LocationCompany:
		from.ID = id.CompanyID
	default:
		return nil, domain.ErrInvalidInput
	}

	for _, line := range in.Items {
		if line.ItemID == "" || line.VariationID == "" ||
			!line.Quantity.GreaterThan(decimal.Zero) || line.Rate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		sub := money.LineSubtotal(line.Rate, line.Quantity)
		if !money.Equal(sub, line.SubTotal) {
			return nil, domain.ErrIntegrityMismatch
		}
		if !money.Equal(money.LineTotal(sub, line.GSTAmount), line.GrandTotal) {
			return nil, domain.ErrIntegrityMismatch
		}
	}

	if branch, err := s.reads.Branches.GetByID(in.ToBranchID); err != nil || branch == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	batchID := uuid.New().String()

	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		for _, line := range in.Items {
			variation, err := tx.Items.GetVariation(line.VariationID)
			if err != nil || variation == nil {
				return domain.ErrNotFound
			}
			if err := s.recorder.RecordInTx(tx, stockregister.Movement{
				Location:        from,
				ItemID:          line.ItemID,
				VariationID:     line.VariationID,
				FlowType:        entity.FlowOut,
				TransactionType: entity.TxnTransfer,
				Quantity:        line.Quantity,
				Rate:            line.Rate,
				SubTotal:        line.SubTotal,
				GSTRate:         line.GSTRate,
				GSTAmount:       line.GSTAmount,
				GrandTotal:      line.GrandTotal,
				ReferenceID:     batchID,
				BatchID:         batchID,
				Date:            now,
				CreatedBy:       id.EmployeeID,
				DefaultMRP:      variation.MRP,
				DefaultDiscount: variation.Discount,
			}); err != nil {
				return err
			}
			if err := tx.Transfers.Create(&entity.StockTransfer{
				ID:               uuid.New().String(),
				BatchID:          batchID,
				FromLocationType: from.Type,
				FromLocationID:   from.ID,
				ToBranchID:       in.ToBranchID,
				ItemID:           line.ItemID,
				VariationID:      line.VariationID,
				Quantity:         line.Quantity,
				Rate:             line.Rate,
				SubTotal:         line.SubTotal,
				GSTRate:          line.GSTRate,
				GSTAmount:        line.GSTAmount,
				GrandTotal:       line.GrandTotal,
				TransferDate:     now,
				CreatedBy:        id.EmployeeID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.TransferResponse{BatchID: batchID, ItemCount: len(in.Items), TransferDate: now}, nil
}

// AcknowledgeStockTransfer confirma un lote despachado. La confirmación debe
// cubrir exactamente las variaciones despachadas, y por renglón
// recibido + perdido debe igualar lo despachado. El destino suma solo lo
// recibido; la merma queda asentada en el IN, no se re-ingresa.
func (s *Service) AcknowledgeStockTransfer(ctx context.Context, id dto.Identity, in dto.AcknowledgeTransferRequest) error {
	if in.BatchID == "" || len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	acks := make(map[string]dto.AcknowledgeLineRequest, len(in.Items))
	for _, line := range in.Items {
		if line.VariationID == "" || line.ReceivedQuantity.IsNegative() || line.LostQuantity.IsNegative() {
			return domain.ErrInvalidInput
		}
		if _, dup := acks[line.VariationID]; dup {
			return domain.ErrInvalidInput
		}
		acks[line.VariationID] = line
	}

	now := time.Now()

	return s.txRunner.Run(ctx, func(tx repository.Tx) error {
		pending, err := tx.Transfers.ListUnacknowledgedByBatch(in.BatchID)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			all, err := tx.Transfers.ListByBatch(in.BatchID)
			if err != nil {
				return err
			}
			if len(all) == 0 {
				return domain.ErrNotFound
			}
			// El lote existe pero ya fue confirmado
			return domain.ErrInvalidStateTransition
		}

		// La confirmación debe cubrir el mismo conjunto de variaciones
		if len(acks) != len(pending) {
			return domain.ErrMissingItems
		}
		for _, row := range pending {
			if _, ok := acks[row.VariationID]; !ok {
				return domain.ErrMissingItems
			}
		}

		for _, row := range pending {
			ack := acks[row.VariationID]
			if !ack.ReceivedQuantity.Add(ack.LostQuantity).Equal(row.Quantity) {
				return domain.ErrMismatchedQuantity
			}

			variation, err := tx.Items.GetVariation(row.VariationID)
			if err != nil || variation == nil {
				return domain.ErrNotFound
			}

			sub := money.LineSubtotal(row.Rate, ack.ReceivedQuantity)
			gst := money.Round2(sub.Mul(row.GSTRate).Div(decimal.NewFromInt(100)))
			if err := s.recorder.RecordInTx(tx, stockregister.Movement{
				Location:        entity.Location{Type: entity.LocationBranch, ID: row.ToBranchID},
				ItemID:          row.ItemID,
				VariationID:     row.VariationID,
				FlowType:        entity.FlowIn,
				TransactionType: entity.TxnTransfer,
				Quantity:        ack.ReceivedQuantity,
				LossQuantity:    ack.LostQuantity,
				Rate:            row.Rate,
				SubTotal:        sub,
				GSTRate:         row.GSTRate,
				GSTAmount:       gst,
				GrandTotal:      money.LineTotal(sub, gst),
				ReferenceID:     row.ID,
				BatchID:         row.BatchID,
				Date:            now,
				CreatedBy:       id.EmployeeID,
				DefaultMRP:      variation.MRP,
				DefaultDiscount: variation.Discount,
			}); err != nil {
				return err
			}

			if err := tx.Transfers.MarkAcknowledged(row.ID, ack.ReceivedQuantity, ack.LostQuantity, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListBatch lista los renglones de un lote.
func (s *Service) ListBatch(ctx context.Context, batchID string) ([]*entity.StockTransfer, error) {
	rows, err := s.reads.Transfers.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows, nil
}
