package entity

import "time"

// Roles de la aplicación (enum cerrado; viaja en el JWT).
const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleBiller      = "biller"
	RoleStorekeeper = "storekeeper"
)

// Employee empleado de una sucursal. El biller ejecuta ventas en punto de venta.
type Employee struct {
	ID           string
	CompanyID    string
	BranchID     string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
