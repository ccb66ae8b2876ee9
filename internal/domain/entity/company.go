package entity

import "time"

// Company empresa (tenant). El almacén central de la empresa es un pool de
// inventario propio, paralelo a los de las sucursales.
type Company struct {
	ID        string
	Name      string
	GSTNumber string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
