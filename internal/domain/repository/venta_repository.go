package repository

import "github.com/jhoicas/gestion-stock/internal/domain/entity"

// VentaRepository define el puerto de persistencia snapshot para Venta (DIP).
// El historial es append-only; Guardar recibe siempre la colección completa.
type VentaRepository interface {
	Cargar() []*entity.Venta
	Guardar(ventas []*entity.Venta) error
}
