package jsonstore

import (
	"github.com/jhoicas/gestion-stock/internal/domain/entity"
	"github.com/jhoicas/gestion-stock/internal/domain/repository"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

type proveedorJSON struct {
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

// ProveedorRepo implementación del puerto ProveedorRepository sobre proveedores.json.
type ProveedorRepo struct {
	store *store[proveedorJSON]
}

// NewProveedorRepository construye el adaptador de persistencia para proveedores.
func NewProveedorRepository(dir string, log *logger.Logger) *ProveedorRepo {
	return &ProveedorRepo{store: newStore[proveedorJSON](dir, ArchivoProveedores, log)}
}

// Cargar lee el registro de proveedores en orden de inserción.
func (r *ProveedorRepo) Cargar() []*entity.Proveedor {
	registros := r.store.cargar()
	proveedores := make([]*entity.Proveedor, 0, len(registros))
	for _, reg := range registros {
		proveedores = append(proveedores, &entity.Proveedor{
			Nombre:    reg.Nombre,
			Telefono:  reg.Telefono,
			Direccion: reg.Direccion,
		})
	}
	return proveedores
}

// Guardar sobreescribe proveedores.json con el snapshot recibido.
func (r *ProveedorRepo) Guardar(proveedores []*entity.Proveedor) error {
	registros := make([]proveedorJSON, 0, len(proveedores))
	for _, p := range proveedores {
		registros = append(registros, proveedorJSON{
			Nombre:    p.Nombre,
			Telefono:  p.Telefono,
			Direccion: p.Direccion,
		})
	}
	return r.store.guardar(registros)
}
