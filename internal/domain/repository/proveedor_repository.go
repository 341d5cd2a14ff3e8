package repository

import "github.com/jhoicas/gestion-stock/internal/domain/entity"

// ProveedorRepository define el puerto de persistencia snapshot para Proveedor (DIP).
type ProveedorRepository interface {
	Cargar() []*entity.Proveedor
	Guardar(proveedores []*entity.Proveedor) error
}
