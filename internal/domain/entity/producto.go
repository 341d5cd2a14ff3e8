package entity

import "github.com/shopspring/decimal"

// StockMinimoDefecto umbral de alerta aplicado cuando el registro no trae uno.
const StockMinimoDefecto = 5

// Producto representa un artículo del catálogo. Stock nunca es negativo y
// Codigo es único en todo el catálogo.
type Producto struct {
	Codigo      string
	Nombre      string
	Categoria   string
	Costo       decimal.Decimal
	Precio      decimal.Decimal
	Stock       int
	StockMinimo int
}

// MargenGanancia devuelve el margen porcentual: (precio − costo) / precio × 100.
// Por definición vale 0 cuando el precio es 0.
func (p *Producto) MargenGanancia() decimal.Decimal {
	if p.Precio.IsZero() {
		return decimal.Zero
	}
	return p.Precio.Sub(p.Costo).Div(p.Precio).Mul(decimal.NewFromInt(100))
}

// StockBajo informa si el producto está en condición de alerta
// (stock <= stock mínimo, límite inclusive).
func (p *Producto) StockBajo() bool {
	return p.Stock <= p.StockMinimo
}
