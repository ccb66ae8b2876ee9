package sale

import "fmt"

// FormatInvoiceNumber compone {prefijo}/{año}/{secuencia a 5 dígitos}.
// La secuencia viene de la fila contadora por sucursal y año, incrementada
// dentro de la misma transacción de la venta, así dos ventas concurrentes de
// la misma sucursal nunca comparten número.
func FormatInvoiceNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s/%d/%05d", prefix, year, seq)
}
