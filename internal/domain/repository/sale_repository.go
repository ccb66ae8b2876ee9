package repository

import "github.com/jhoicas/Comercio-api/internal/domain/entity"

// SaleRepository acceso a ventas y sus renglones.
type SaleRepository interface {
	Create(s *entity.Sale) error
	CreateItem(it *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error)
}

// SaleReturnRepository acceso a devoluciones.
type SaleReturnRepository interface {
	Create(r *entity.SaleReturn) error
	GetByID(id string) (*entity.SaleReturn, error)
	ListBySale(saleID string) ([]*entity.SaleReturn, error)
}
