package ledger

import (
	"context"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Reader navegación de solo lectura de la auditoría financiera.
type Reader struct {
	accounts repository.AccountRepository
}

// NewReader construye el lector de auditoría.
func NewReader(accounts repository.AccountRepository) *Reader {
	return &Reader{accounts: accounts}
}

// ListBranchTransactions lista los movimientos de dinero de la sucursal,
// más reciente primero.
func (r *Reader) ListBranchTransactions(ctx context.Context, branchID string, page dto.PageRequest) ([]*dto.FinancialTransactionResponse, error) {
	page.DefaultPage()
	txns, err := r.accounts.ListFinancialTransactions(branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FinancialTransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, &dto.FinancialTransactionResponse{
			ID:              t.ID,
			TransactionType: t.TransactionType,
			Amount:          t.Amount,
			PaymentMethod:   t.PaymentMethod,
			ReferenceNumber: t.ReferenceNumber,
			EmployeeID:      t.EmployeeID,
			AccountID:       t.AccountID,
			Description:     t.Description,
			CreatedAt:       t.CreatedAt,
		})
	}
	return out, nil
}
