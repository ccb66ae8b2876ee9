// Package money centraliza el redondeo monetario: toda la aritmética de
// saldos y totales se hace con decimal de precisión fija a 2 decimales.
package money

import "github.com/shopspring/decimal"

// Round2 redondea a 2 decimales (half-up), la precisión de todos los saldos.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineSubtotal calcula round(rate*qty, 2).
func LineSubtotal(rate, qty decimal.Decimal) decimal.Decimal {
	return Round2(rate.Mul(qty))
}

// LineTotal calcula round(subTotal+gst, 2).
func LineTotal(subTotal, gst decimal.Decimal) decimal.Decimal {
	return Round2(subTotal.Add(gst))
}

// SplitRoundOff redondea la suma exacta de renglones al entero más cercano
// y devuelve también el delta (round_off). El delta se reporta al llamador,
// nunca se descarta en silencio.
func SplitRoundOff(exact decimal.Decimal) (rounded, roundOff decimal.Decimal) {
	rounded = exact.Round(0)
	roundOff = Round2(rounded.Sub(exact))
	return rounded, roundOff
}

// Equal compara dos montos tras normalizar a 2 decimales.
func Equal(a, b decimal.Decimal) bool {
	return Round2(a).Equal(Round2(b))
}
