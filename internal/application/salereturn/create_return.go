// Package salereturn implementa devoluciones sobre ventas confirmadas. La
// cota dura: por (venta, variación), lo devuelto acumulado nunca supera lo
// vendido, verificado contra el libro de inventario dentro de la transacción.
package salereturn

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/ledger"
	"github.com/jhoicas/Comercio-api/internal/application/stockregister"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/money"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
	"github.com/jhoicas/Comercio-api/pkg/logger"
)

// Service casos de uso de devolución.
type Service struct {
	txRunner repository.TxRunner
	reads    repository.Tx
	ledger   *ledger.Ledger
	recorder *stockregister.Recorder
	log      *logger.Logger
}

// NewService construye el servicio de devoluciones.
func NewService(txRunner repository.TxRunner, reads repository.Tx, lg *ledger.Ledger, recorder *stockregister.Recorder, log *logger.Logger) *Service {
	return &Service{txRunner: txRunner, reads: reads, ledger: lg, recorder: recorder, log: log}
}

// CreateSaleReturn valida y confirma una devolución. Para clientes B2C la
// fecha de devolución debe caer en el mismo mes calendario de la venta. El
// reingreso al pool, el asiento IN y el abono al cliente van en una sola
// transacción.
func (s *Service) CreateSaleReturn(ctx context.Context, id dto.Identity, in dto.CreateSaleReturnRequest) (*dto.SaleReturnResponse, error) {
	if in.SaleID == "" || len(in.Items) == 0 || !in.ReturnAmount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.VariationID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	returnDate := in.ReturnDate
	if returnDate.IsZero() {
		returnDate = time.Now()
	}

	returnID := uuid.New().String()
	var ret *entity.SaleReturn

	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		sale, err := tx.Sales.GetByID(in.SaleID)
		if err != nil || sale == nil {
			return domain.ErrNotFound
		}
		if sale.CompanyID != id.CompanyID {
			return domain.ErrForbidden
		}
		customer, err := tx.Customers.GetByID(sale.CustomerID)
		if err != nil || customer == nil {
			return domain.ErrNotFound
		}

		// Política retail: devolución B2C solo dentro del mes de la venta
		if customer.CustomerType == entity.CustomerTypeB2C {
			sy, sm, _ := sale.SaleDate.Date()
			ry, rm, _ := returnDate.Date()
			if sy != ry || sm != rm {
				return domain.ErrReturnWindowClosed
			}
		}

		loc := entity.Location{Type: sale.SaleBy, ID: sale.BranchID}
		if sale.SaleBy == entity.LocationCompany {
			loc.ID = sale.CompanyID
		}

		ret = &entity.SaleReturn{
			ID:           returnID,
			SaleID:       sale.ID,
			CustomerID:   sale.CustomerID,
			CompanyID:    sale.CompanyID,
			BranchID:     sale.BranchID,
			ManagerID:    id.EmployeeID,
			ReturnAmount: money.Round2(in.ReturnAmount),
			ReturnDate:   returnDate,
			CreatedAt:    time.Now(),
		}
		if err := tx.Returns.Create(ret); err != nil {
			return err
		}

		for _, line := range in.Items {
			entry, err := tx.StockRegister.GetSaleEntry(sale.ID, line.VariationID)
			if err != nil || entry == nil {
				return domain.ErrNotFound
			}
			already, err := tx.StockRegister.SumReturnedQuantity(sale.ID, line.VariationID)
			if err != nil {
				return err
			}
			if already.Add(line.Quantity).GreaterThan(entry.Quantity) {
				return domain.ErrExceedsReturnable
			}

			variation, err := tx.Items.GetVariation(line.VariationID)
			if err != nil || variation == nil {
				return domain.ErrNotFound
			}

			sub := money.LineSubtotal(entry.Rate, line.Quantity)
			gst := money.Round2(sub.Mul(entry.GSTRate).Div(decimal.NewFromInt(100)))
			if err := s.recorder.RecordInTx(tx, stockregister.Movement{
				Location:        loc,
				ItemID:          entry.ItemID,
				VariationID:     line.VariationID,
				FlowType:        entity.FlowIn,
				TransactionType: entity.TxnSaleReturn,
				Quantity:        line.Quantity,
				Rate:            entry.Rate,
				SubTotal:        sub,
				GSTRate:         entry.GSTRate,
				GSTAmount:       gst,
				GrandTotal:      money.LineTotal(sub, gst),
				ReferenceID:     returnID,
				Remarks:         "devolución sobre " + sale.InvoiceNumber,
				Date:            returnDate,
				CreatedBy:       id.EmployeeID,
				DefaultMRP:      variation.MRP,
				DefaultDiscount: variation.Discount,
			}); err != nil {
				return err
			}
		}

		// Abono al cliente: su saldo baja y puede quedar a favor
		return s.ledger.CreditCustomer(tx, sale.CustomerID, ret.ReturnAmount, ledger.Audit{
			TransactionType: entity.FinTxnSaleReturnRefund,
			ReferenceNumber: sale.InvoiceNumber,
			EmployeeID:      id.EmployeeID,
			BranchID:        sale.BranchID,
			CompanyID:       sale.CompanyID,
			Description:     "reembolso de devolución",
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.SaleReturnResponse{
		ID:           ret.ID,
		SaleID:       ret.SaleID,
		CustomerID:   ret.CustomerID,
		ReturnAmount: ret.ReturnAmount,
		ReturnDate:   ret.ReturnDate,
	}, nil
}

// ListBySale lista las devoluciones de una venta.
func (s *Service) ListBySale(ctx context.Context, id dto.Identity, saleID string) ([]*dto.SaleReturnResponse, error) {
	sale, err := s.reads.Sales.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != id.CompanyID {
		return nil, domain.ErrForbidden
	}
	returns, err := s.reads.Returns.ListBySale(saleID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleReturnResponse, 0, len(returns))
	for _, r := range returns {
		out = append(out, &dto.SaleReturnResponse{
			ID:           r.ID,
			SaleID:       r.SaleID,
			CustomerID:   r.CustomerID,
			ReturnAmount: r.ReturnAmount,
			ReturnDate:   r.ReturnDate,
		})
	}
	return out, nil
}
