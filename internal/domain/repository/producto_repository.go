package repository

import "github.com/jhoicas/gestion-stock/internal/domain/entity"

// ProductoRepository define el puerto de persistencia snapshot para Producto (DIP).
type ProductoRepository interface {
	Cargar() []*entity.Producto
	Guardar(productos []*entity.Producto) error
}
