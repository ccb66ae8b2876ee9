// Package ledger implementa las primitivas de saldo: toda mutación de
// dinero pasa por aquí, dentro de la transacción del caso de uso que la
// origina, y deja su fila de auditoría en el mismo commit.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/money"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

// Ledger primitivas de ajuste de saldo. Sin estado: los métodos reciben los
// repositorios atados a la transacción del caller (misma tx, mismo commit).
type Ledger struct{}

// New construye el ledger.
func New() *Ledger { return &Ledger{} }

// Audit metadatos de la fila FinancialTransaction que acompaña cada ajuste.
type Audit struct {
	TransactionType string
	PaymentMethod   string
	ReferenceNumber string
	EmployeeID      string
	BranchID        string
	CompanyID       string
	Description     string
}

// AdjustAccount bloquea la cuenta (tipo, dueño), aplica delta con redondeo a
// 2 decimales y persiste. Las cuentas de caja/banco/caja menor no pueden
// quedar en negativo: retorna ErrInsufficientFunds sin efectos.
func (l *Ledger) AdjustAccount(tx repository.Tx, accType, ownerID string, delta decimal.Decimal, audit Audit) (*entity.MoneyAccount, error) {
	acc, err := tx.Accounts.GetForUpdate(accType, ownerID)
	if err != nil {
		return nil, err
	}
	newBalance := money.Round2(acc.Balance.Add(delta))
	if newBalance.IsNegative() {
		return nil, domain.ErrInsufficientFunds
	}
	if err := tx.Accounts.UpdateBalance(acc.ID, newBalance); err != nil {
		return nil, err
	}
	if err := l.writeAudit(tx, delta, acc.ID, audit); err != nil {
		return nil, err
	}
	acc.Balance = newBalance
	return acc, nil
}

// ExtendCredit aumenta la deuda del cliente (venta a crédito), acotada por
// su límite: balance + amount <= credit_limit, si no ErrInsufficientCredit.
func (l *Ledger) ExtendCredit(tx repository.Tx, customerID string, amount decimal.Decimal, audit Audit) error {
	c, err := tx.Customers.GetForUpdate(customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	newBalance := money.Round2(c.Balance.Add(amount))
	if newBalance.GreaterThan(c.CreditLimit) {
		return domain.ErrInsufficientCredit
	}
	if err := tx.Customers.UpdateBalance(c.ID, newBalance); err != nil {
		return err
	}
	return l.writeAudit(tx, amount, "", audit)
}

// PayWithBalance cobra contra el saldo a favor del cliente (balance negativo).
// El disponible |balance| debe cubrir el monto completo.
func (l *Ledger) PayWithBalance(tx repository.Tx, customerID string, amount decimal.Decimal, audit Audit) error {
	c, err := tx.Customers.GetForUpdate(customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	available := c.Balance.Neg()
	if available.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	newBalance := money.Round2(c.Balance.Add(amount))
	if err := tx.Customers.UpdateBalance(c.ID, newBalance); err != nil {
		return err
	}
	return l.writeAudit(tx, amount, "", audit)
}

// CreditCustomer abona al cliente (devolución): el saldo baja y puede quedar
// negativo (saldo a favor), sin cota inferior.
func (l *Ledger) CreditCustomer(tx repository.Tx, customerID string, amount decimal.Decimal, audit Audit) error {
	c, err := tx.Customers.GetForUpdate(customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	newBalance := money.Round2(c.Balance.Sub(amount))
	if err := tx.Customers.UpdateBalance(c.ID, newBalance); err != nil {
		return err
	}
	return l.writeAudit(tx, amount.Neg(), "", audit)
}

func (l *Ledger) writeAudit(tx repository.Tx, amount decimal.Decimal, accountID string, a Audit) error {
	return tx.Accounts.CreateFinancialTransaction(&entity.FinancialTransaction{
		ID:              uuid.New().String(),
		TransactionType: a.TransactionType,
		Amount:          money.Round2(amount),
		PaymentMethod:   a.PaymentMethod,
		ReferenceNumber: a.ReferenceNumber,
		EmployeeID:      a.EmployeeID,
		BranchID:        a.BranchID,
		CompanyID:       a.CompanyID,
		AccountID:       accountID,
		Description:     a.Description,
		CreatedAt:       time.Now(),
	})
}
