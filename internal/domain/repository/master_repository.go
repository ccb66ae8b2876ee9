package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// CompanyRepository acceso a empresas.
type CompanyRepository interface {
	GetByID(id string) (*entity.Company, error)
}

// BranchRepository acceso a sucursales y a la secuencia de facturación.
type BranchRepository interface {
	GetByID(id string) (*entity.Branch, error)
	List(companyID string) ([]*entity.Branch, error)
	// NextInvoiceSeq incrementa y devuelve la secuencia de factura de la
	// sucursal para el año dado (UPDATE ... RETURNING sobre una fila
	// contadora dedicada). Debe llamarse dentro de la tx de la venta.
	NextInvoiceSeq(branchID string, year int) (int64, error)
}

// EmployeeRepository acceso a empleados.
type EmployeeRepository interface {
	Create(e *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByEmail(companyID, email string) (*entity.Employee, error)
}

// ItemRepository acceso al catálogo (artículos y variaciones).
type ItemRepository interface {
	GetByID(id string) (*entity.Item, error)
	GetVariation(id string) (*entity.Variation, error)
}

// CustomerRepository acceso a clientes y su saldo.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetForUpdate bloquea la fila del cliente (SELECT FOR UPDATE) para
	// ajustar el saldo sin lost updates entre ventas concurrentes.
	GetForUpdate(id string) (*entity.Customer, error)
	UpdateBalance(id string, balance decimal.Decimal) error
	List(companyID string, limit, offset int) ([]*entity.Customer, error)
}
