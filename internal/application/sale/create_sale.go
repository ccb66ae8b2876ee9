// Package sale implementa el motor de ventas de punto de venta: revalida
// los renglones cotizados por el cliente, descuenta el pool de inventario,
// numera la factura y asienta el pago, todo en una sola transacción.
package sale

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

// SideEffects colaboradores post-commit de la venta (PDF, storage, WhatsApp).
// Cualquiera puede ser nil: el paso correspondiente se omite.
type SideEffects struct {
	Renderer    InvoiceRenderer
	Storage     ObjectStorage
	Notifier    Notifier
	InvoicePath string // prefijo de ruta en el bucket, ej. "invoices"
	TemplateID  string // plantilla WhatsApp de factura
}

// Service casos de uso de venta.
type Service struct {
	txRunner  repository.TxRunner
	reads     repository.Tx // repos fuera de tx, para lecturas sueltas
	companies repository.CompanyRepository
	employees repository.EmployeeRepository
	ledger    *ledger.Ledger
	recorder  *stockregister.Recorder
	fx        SideEffects
	log       *logger.Logger
}

// NewService construye el servicio de ventas.
func NewService(
	txRunner repository.TxRunner,
	reads repository.Tx,
	companies repository.CompanyRepository,
	employees repository.EmployeeRepository,
	lg *ledger.Ledger,
	recorder *stockregister.Recorder,
	fx SideEffects,
	log *logger.Logger,
) *Service {
	return &Service{
		txRunner:  txRunner,
		reads:     reads,
		companies: companies,
		employees: employees,
		ledger:    lg,
		recorder:  recorder,
		fx:        fx,
		log:       log,
	}
}

func validPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentCash, entity.PaymentUPI, entity.PaymentCard,
		entity.PaymentBalance, entity.PaymentSplit, entity.PaymentDue:
		return true
	}
	return false
}

// CreateSale valida y confirma una venta. Orden de validación: campos
// requeridos, integridad del split, existencia de entidades, recomputo por
// renglón, total general. El descuento de stock y el asiento de pago ocurren
// dentro de la transacción; cualquier fallo revierte la venta completa.
func (s *Service) CreateSale(ctx context.Context, id dto.Identity, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 || !validPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if in.SaleBy != entity.LocationBranch && in.SaleBy != entity.LocationCompany {
		return nil, domain.ErrInvalidInput
	}
	if in.TotalAmount.IsNegative() || in.DiscountAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.ItemID == "" || line.VariationID == "" ||
			!line.Quantity.GreaterThan(decimal.Zero) || line.Rate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	// Split: al menos dos componentes no negativos que sumen el total exacto
	if in.PaymentMethod == entity.PaymentSplit {
		if in.Split == nil {
			return nil, domain.ErrInvalidInput
		}
		sp := in.Split
		if sp.Cash.IsNegative() || sp.Bank.IsNegative() || sp.Balance.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		nonZero := 0
		for _, c := range []decimal.Decimal{sp.Cash, sp.Bank, sp.Balance} {
			if c.GreaterThan(decimal.Zero) {
				nonZero++
			}
		}
		if nonZero < 2 {
			return nil, domain.ErrInvalidInput
		}
		if !money.Equal(sp.Cash.Add(sp.Bank).Add(sp.Balance), in.TotalAmount) {
			return nil, domain.ErrIntegrityMismatch
		}
	}

	// Existencia de entidades
	customer, err := s.reads.Customers.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != id.CompanyID {
		return nil, domain.ErrForbidden
	}
	branch, err := s.reads.Branches.GetByID(id.BranchID)
	if err != nil || branch == nil {
		return nil, domain.ErrNotFound
	}
	company, err := s.companies.GetByID(id.CompanyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	biller, err := s.employees.GetByID(id.EmployeeID)
	if err != nil || biller == nil {
		return nil, domain.ErrNotFound
	}

	// Pago con saldo: el disponible debe cubrir el monto completo. Se
	// pre-verifica aquí para fallar sin efectos; la tx lo vuelve a exigir.
	if in.PaymentMethod == entity.PaymentBalance {
		if customer.Balance.Neg().LessThan(in.TotalAmount) {
			return nil, domain.ErrInsufficientFunds
		}
	}

	// Recomputo por renglón: el servidor no confía en los montos del cliente
	var sumSub, sumGST, sumTotal decimal.Decimal
	for _, line := range in.Items {
		sub := money.LineSubtotal(line.Rate, line.Quantity)
		if !money.Equal(sub, line.SubTotal) {
			return nil, domain.ErrIntegrityMismatch
		}
		lineTotal := money.LineTotal(sub, line.GSTAmount)
		if !money.Equal(lineTotal, line.TotalAmount) {
			return nil, domain.ErrIntegrityMismatch
		}
		sumSub = sumSub.Add(sub)
		sumGST = sumGST.Add(line.GSTAmount)
		sumTotal = sumTotal.Add(lineTotal)
	}

	// Total general: la suma exacta menos descuento, redondeada al entero,
	// debe igualar el total enviado. El delta se conserva como round_off.
	exact := sumTotal.Sub(in.DiscountAmount)
	rounded, roundOff := money.SplitRoundOff(exact)
	if !rounded.Equal(in.TotalAmount) {
		return nil, domain.ErrIntegrityMismatch
	}

	now := time.Now()
	saleID := uuid.New().String()
	loc := entity.Location{Type: in.SaleBy, ID: id.BranchID}
	if in.SaleBy == entity.LocationCompany {
		loc.ID = id.CompanyID
	}

	paymentStatus := entity.PaymentStatusPaid
	if in.PaymentMethod == entity.PaymentDue {
		paymentStatus = entity.PaymentStatusDue
	}

	var sale *entity.Sale
	saleItems := make([]*entity.SaleItem, 0, len(in.Items))

	err = s.txRunner.Run(ctx, func(tx repository.Tx) error {
		year := now.Year()
		seq, err := tx.Branches.NextInvoiceSeq(id.BranchID, year)
		if err != nil {
			return err
		}
		invoiceNumber := FormatInvoiceNumber(branch.InvoicePrefix, year, seq)

		// Descuento de pool + asiento OUT por renglón
		for _, line := range in.Items {
			variation, err := tx.Items.GetVariation(line.VariationID)
			if err != nil || variation == nil {
				return domain.ErrNotFound
			}
			if err := s.recorder.RecordInTx(tx, stockregister.Movement{
				Location:        loc,
				ItemID:          line.ItemID,
				VariationID:     line.VariationID,
				FlowType:        entity.FlowOut,
				TransactionType: entity.TxnSale,
				Quantity:        line.Quantity,
				Rate:            line.Rate,
				SubTotal:        line.SubTotal,
				GSTRate:         line.GSTRate,
				GSTAmount:       line.GSTAmount,
				GrandTotal:      line.TotalAmount,
				ReferenceID:     saleID,
				Date:            now,
				CreatedBy:       id.EmployeeID,
				DefaultMRP:      variation.MRP,
				DefaultDiscount: variation.Discount,
			}); err != nil {
				return err
			}
		}

		sale = &entity.Sale{
			ID:             saleID,
			InvoiceNumber:  invoiceNumber,
			CustomerID:     in.CustomerID,
			CompanyID:      id.CompanyID,
			BranchID:       id.BranchID,
			EmployeeID:     id.EmployeeID,
			SaleBy:         in.SaleBy,
			SubTotal:       money.Round2(sumSub),
			GSTAmount:      money.Round2(sumGST),
			DiscountAmount: money.Round2(in.DiscountAmount),
			TotalAmount:    in.TotalAmount,
			RoundOff:       roundOff,
			PaymentMethod:  in.PaymentMethod,
			PaymentStatus:  paymentStatus,
			SaleDate:       now,
			CreatedAt:      now,
		}
		if err := tx.Sales.Create(sale); err != nil {
			return err
		}
		for _, line := range in.Items {
			it := &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				ItemID:      line.ItemID,
				VariationID: line.VariationID,
				Quantity:    line.Quantity,
				Rate:        line.Rate,
				SubTotal:    line.SubTotal,
				GSTRate:     line.GSTRate,
				GSTAmount:   line.GSTAmount,
				TotalAmount: line.TotalAmount,
			}
			if err := tx.Sales.CreateItem(it); err != nil {
				return err
			}
			saleItems = append(saleItems, it)
		}

		return s.bookPayment(tx, id, in, invoiceNumber)
	})
	if err != nil {
		return nil, err
	}

	// Efectos post-commit: PDF, subida y notificación. Nunca revierten la venta.
	go s.deliverInvoice(sale, saleItems, company, branch, customer)

	return s.toResponse(sale, saleItems), nil
}

// bookPayment asienta el pago en el ledger según el método. En Split cada
// componente distinto de cero se asienta de forma independiente.
func (s *Service) bookPayment(tx repository.Tx, id dto.Identity, in dto.CreateSaleRequest, invoiceNumber string) error {
	audit := func(txnType, method, desc string) ledger.Audit {
		return ledger.Audit{
			TransactionType: txnType,
			PaymentMethod:   method,
			ReferenceNumber: invoiceNumber,
			EmployeeID:      id.EmployeeID,
			BranchID:        id.BranchID,
			CompanyID:       id.CompanyID,
			Description:     desc,
		}
	}

	switch in.PaymentMethod {
	case entity.PaymentDue:
		return s.ledger.ExtendCredit(tx, in.CustomerID, in.TotalAmount,
			audit(entity.FinTxnSaleCredit, entity.PaymentDue, "venta a crédito"))
	case entity.PaymentCash:
		_, err := s.ledger.AdjustAccount(tx, entity.AccountCash, id.BranchID, in.TotalAmount,
			audit(entity.FinTxnSalePayment, entity.PaymentCash, "venta de contado"))
		return err
	case entity.PaymentUPI, entity.PaymentCard:
		_, err := s.ledger.AdjustAccount(tx, entity.AccountBank, id.CompanyID, in.TotalAmount,
			audit(entity.FinTxnSalePayment, in.PaymentMethod, "venta electrónica"))
		return err
	case entity.PaymentBalance:
		return s.ledger.PayWithBalance(tx, in.CustomerID, in.TotalAmount,
			audit(entity.FinTxnSalePayment, entity.PaymentBalance, "venta contra saldo a favor"))
	case entity.PaymentSplit:
		sp := in.Split
		if sp.Cash.GreaterThan(decimal.Zero) {
			if _, err := s.ledger.AdjustAccount(tx, entity.AccountCash, id.BranchID, sp.Cash,
				audit(entity.FinTxnSalePayment, entity.PaymentCash, "componente efectivo de venta dividida")); err != nil {
				return err
			}
		}
		if sp.Bank.GreaterThan(decimal.Zero) {
			if _, err := s.ledger.AdjustAccount(tx, entity.AccountBank, id.CompanyID, sp.Bank,
				audit(entity.FinTxnSalePayment, entity.PaymentCard, "componente bancario de venta dividida")); err != nil {
				return err
			}
		}
		if sp.Balance.GreaterThan(decimal.Zero) {
			if err := s.ledger.PayWithBalance(tx, in.CustomerID, sp.Balance,
				audit(entity.FinTxnSalePayment, entity.PaymentBalance, "componente saldo de venta dividida")); err != nil {
				return err
			}
		}
		return nil
	}
	return domain.ErrInvalidInput
}

// buildInvoiceData arma los datos estructurados del PDF a partir de la venta
// confirmada y sus entidades relacionadas.
func (s *Service) buildInvoiceData(sale *entity.Sale, items []*entity.SaleItem, company *entity.Company, branch *entity.Branch, customer *entity.Customer) InvoiceData {
	lines := make([]InvoiceLine, 0, len(items))
	for _, it := range items {
		line := InvoiceLine{
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			SubTotal:    it.SubTotal,
			GSTRate:     it.GSTRate,
			GSTAmount:   it.GSTAmount,
			TotalAmount: it.TotalAmount,
		}
		if item, err := s.reads.Items.GetByID(it.ItemID); err == nil && item != nil {
			line.ItemName = item.Name
		}
		if v, err := s.reads.Items.GetVariation(it.VariationID); err == nil && v != nil {
			line.Variation = v.Name
			line.SKU = v.SKU
		}
		lines = append(lines, line)
	}

	return InvoiceData{
		InvoiceNumber:  sale.InvoiceNumber,
		SaleDate:       sale.SaleDate,
		CompanyName:    company.Name,
		CompanyGSTN:    company.GSTNumber,
		CompanyAddress: company.Address,
		BranchName:     branch.Name,
		BranchAddress:  branch.Address,
		CustomerName:   customer.Name,
		CustomerPhone:  customer.Phone,
		Lines:          lines,
		SubTotal:       sale.SubTotal,
		GSTAmount:      sale.GSTAmount,
		DiscountAmount: sale.DiscountAmount,
		RoundOff:       sale.RoundOff,
		TotalAmount:    sale.TotalAmount,
		PaymentMethod:  sale.PaymentMethod,
	}
}

// deliverInvoice genera el PDF, lo sube y lo envía por WhatsApp. Mejor
// esfuerzo: cada fallo se registra y se continúa con lo que sea posible.
func (s *Service) deliverInvoice(sale *entity.Sale, items []*entity.SaleItem, company *entity.Company, branch *entity.Branch, customer *entity.Customer) {
	if s.fx.Renderer == nil {
		return
	}
	ctx := context.Background()

	pdf, err := s.fx.Renderer.Render(s.buildInvoiceData(sale, items, company, branch, customer))
	if err != nil {
		s.log.Error().Err(err).Str("sale_id", sale.ID).Msg("no se pudo generar el PDF de la factura")
		return
	}

	var url string
	if s.fx.Storage != nil {
		url, err = s.fx.Storage.Store(ctx, s.fx.InvoicePath+"/"+sale.ID+".pdf", pdf, "application/pdf")
		if err != nil {
			s.log.Error().Err(err).Str("sale_id", sale.ID).Msg("no se pudo subir el PDF de la factura")
		}
	}

	if s.fx.Notifier != nil && customer.Phone != "" {
		placeholders := []string{customer.Name, sale.InvoiceNumber, sale.TotalAmount.StringFixed(2)}
		if err := s.fx.Notifier.Notify(ctx, s.fx.TemplateID, customer.Phone, placeholders, url); err != nil {
			s.log.Error().Err(err).Str("sale_id", sale.ID).Msg("no se pudo enviar la factura por WhatsApp")
		}
	}
}

// GetSale devuelve una venta con sus renglones.
func (s *Service) GetSale(ctx context.Context, id dto.Identity, saleID string) (*dto.SaleResponse, error) {
	sale, err := s.reads.Sales.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != id.CompanyID {
		return nil, domain.ErrForbidden
	}
	items, err := s.reads.Sales.GetItems(saleID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(sale, items), nil
}

// RenderInvoice genera el PDF de una venta existente bajo demanda.
func (s *Service) RenderInvoice(ctx context.Context, id dto.Identity, saleID string) ([]byte, error) {
	if s.fx.Renderer == nil {
		return nil, domain.ErrNotFound
	}
	sale, err := s.reads.Sales.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != id.CompanyID {
		return nil, domain.ErrForbidden
	}
	items, err := s.reads.Sales.GetItems(saleID)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.GetByID(sale.CompanyID)
	if err != nil {
		return nil, err
	}
	branch, err := s.reads.Branches.GetByID(sale.BranchID)
	if err != nil {
		return nil, err
	}
	customer, err := s.reads.Customers.GetByID(sale.CustomerID)
	if err != nil {
		return nil, err
	}
	return s.fx.Renderer.Render(s.buildInvoiceData(sale, items, company, branch, customer))
}

// ListSales lista las ventas de la sucursal del llamador, recientes primero.
func (s *Service) ListSales(ctx context.Context, id dto.Identity, page dto.PageRequest) ([]*dto.SaleResponse, error) {
	page.DefaultPage()
	sales, err := s.reads.Sales.ListByBranch(id.BranchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, sl := range sales {
		out = append(out, s.toResponse(sl, nil))
	}
	return out, nil
}

func (s *Service) toResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		CustomerID:    sale.CustomerID,
		BranchID:      sale.BranchID,
		SaleBy:        sale.SaleBy,
		SubTotal:      sale.SubTotal,
		GSTAmount:     sale.GSTAmount,
		TotalAmount:   sale.TotalAmount,
		RoundOff:      sale.RoundOff,
		PaymentMethod: sale.PaymentMethod,
		PaymentStatus: sale.PaymentStatus,
		SaleDate:      sale.SaleDate,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleLineResponse{
			ItemID:      it.ItemID,
			VariationID: it.VariationID,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			SubTotal:    it.SubTotal,
			GSTRate:     it.GSTRate,
			GSTAmount:   it.GSTAmount,
			TotalAmount: it.TotalAmount,
		})
	}
	return resp
}
