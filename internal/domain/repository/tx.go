package repository

import "context"

// Tx agrupa los repositorios atados a una misma transacción de BD.
// Todo el ciclo validar-confirmar de ventas, devoluciones, traslados y
// turnos corre dentro de un Tx: la corrección viene del aislamiento
// transaccional del almacenamiento, no de mutexes en memoria.
type Tx struct {
	Branches      BranchRepository
	Customers     CustomerRepository
	Items         ItemRepository
	Inventory     InventoryRepository
	StockRegister StockRegisterRepository
	Sales         SaleRepository
	Returns       SaleReturnRepository
	Accounts      AccountRepository
	Transfers     TransferRepository
	Shifts        ShiftRepository
}

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios
// atados a esa tx. Commit si fn retorna nil; Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Tx) error) error
}
