package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormatoFechaVenta layout con el que el historial persiste sus fechas.
const FormatoFechaVenta = "2006-01-02 15:04:05"

// Venta es un registro inmutable del historial de ventas. Producto es el
// nombre denormalizado (no una referencia viva) y Total captura el precio
// al momento de la venta; nunca se recalcula.
type Venta struct {
	ID       string
	Producto string
	Cantidad int
	Fecha    time.Time
	Total    decimal.Decimal
}
