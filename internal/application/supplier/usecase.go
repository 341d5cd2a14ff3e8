// Package supplier implementa el registro de proveedores.
package supplier

import (
	"sync"

	"github.com/jhoicas/gestion-stock/internal/domain"
	"github.com/jhoicas/gestion-stock/internal/domain/entity"
	"github.com/jhoicas/gestion-stock/internal/domain/repository"
)

// Service casos de uso del registro de proveedores: lista append-only en
// orden de inserción, duplicados permitidos.
type Service struct {
	mu          sync.Mutex
	repo        repository.ProveedorRepository
	proveedores []*entity.Proveedor
}

// NewService construye el servicio y carga el registro desde el repositorio.
func NewService(repo repository.ProveedorRepository) *Service {
	return &Service{repo: repo, proveedores: repo.Cargar()}
}

// Add registra un proveedor. Los tres campos son obligatorios.
func (s *Service) Add(nombre, telefono, direccion string) (*entity.Proveedor, error) {
	if nombre == "" || telefono == "" || direccion == "" {
		return nil, domain.Errorf(domain.ErrValidacion, "todos los campos son obligatorios")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &entity.Proveedor{Nombre: nombre, Telefono: telefono, Direccion: direccion}
	s.proveedores = append(s.proveedores, p)
	if err := s.repo.Guardar(s.proveedores); err != nil {
		return nil, err
	}
	c := *p
	return &c, nil
}

// List devuelve los proveedores en orden de inserción.
func (s *Service) List() []*entity.Proveedor {
	s.mu.Lock()
	defer s.mu.Unlock()

	lista := make([]*entity.Proveedor, 0, len(s.proveedores))
	for _, p := range s.proveedores {
		c := *p
		lista = append(lista, &c)
	}
	return lista
}
