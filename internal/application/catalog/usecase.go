// Package catalog implementa el catálogo de productos y sus invariantes:
// código único, stock nunca negativo, umbral de alerta y margen.
package catalog

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock/internal/domain"
	"github.com/jhoicas/gestion-stock/internal/domain/entity"
	"github.com/jhoicas/gestion-stock/internal/domain/repository"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

// Config políticas del catálogo.
type Config struct {
	// MargenMinimo: si no es nil, Add rechaza productos cuyo margen quede por
	// debajo de este porcentaje. Es una política opcional; nil la desactiva.
	MargenMinimo *decimal.Decimal
}

// Service casos de uso del catálogo. Dueño exclusivo de la colección de
// productos en memoria; cada mutación termina en un Guardar.
type Service struct {
	mu           sync.Mutex
	repo         repository.ProductoRepository
	productos    []*entity.Producto
	margenMinimo *decimal.Decimal
	log          *logger.Logger
}

// NewService construye el servicio y carga el catálogo desde el repositorio.
func NewService(repo repository.ProductoRepository, cfg Config, log *logger.Logger) *Service {
	return &Service{
		repo:         repo,
		productos:    repo.Cargar(),
		margenMinimo: cfg.MargenMinimo,
		log:          log,
	}
}

// Add da de alta un producto. Rechaza código duplicado, montos negativos,
// stock o umbral negativos y, si la política está activa, margen insuficiente.
func (s *Service) Add(codigo, nombre, categoria string, costo, precio decimal.Decimal, stock, stockMinimo int) (*entity.Producto, error) {
	if codigo == "" || nombre == "" || categoria == "" {
		return nil, domain.Errorf(domain.ErrValidacion, "código, nombre y categoría son obligatorios")
	}
	if costo.IsNegative() || precio.IsNegative() {
		return nil, domain.Errorf(domain.ErrValidacion, "costo y precio no pueden ser negativos")
	}
	if stock < 0 || stockMinimo < 0 {
		return nil, domain.Errorf(domain.ErrValidacion, "stock y alerta mínima no pueden ser negativos")
	}
	p := &entity.Producto{
		Codigo:      codigo,
		Nombre:      nombre,
		Categoria:   categoria,
		Costo:       costo,
		Precio:      precio,
		Stock:       stock,
		StockMinimo: stockMinimo,
	}
	if s.margenMinimo != nil && p.MargenGanancia().LessThan(*s.margenMinimo) {
		return nil, domain.Errorf(domain.ErrValidacion,
			"margen %s%% por debajo del mínimo %s%%", p.MargenGanancia().StringFixed(2), s.margenMinimo)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buscarCodigo(codigo) != nil {
		return nil, domain.Errorf(domain.ErrDuplicado, "el código %s ya existe", codigo)
	}
	s.productos = append(s.productos, p)
	if err := s.repo.Guardar(s.productos); err != nil {
		return nil, err
	}
	return clonar(p), nil
}

// AdjustStock aplica un delta al stock. Un resultado negativo se rechaza con
// ErrEstado y deja el stock intacto; en otro caso aplica y persiste,
// devolviendo el stock resultante.
func (s *Service) AdjustStock(codigo string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.buscarCodigo(codigo)
	if p == nil {
		return 0, domain.Errorf(domain.ErrNoEncontrado, "producto %s no encontrado", codigo)
	}
	if p.Stock+delta < 0 {
		return p.Stock, domain.Errorf(domain.ErrEstado, "el ajuste dejaría el stock de %s en negativo", codigo)
	}
	p.Stock += delta
	if err := s.repo.Guardar(s.productos); err != nil {
		return p.Stock, err
	}
	return p.Stock, nil
}

// SetAlertThreshold fija el stock mínimo de alerta (>= 0).
func (s *Service) SetAlertThreshold(codigo string, minimo int) error {
	if minimo < 0 {
		return domain.Errorf(domain.ErrValidacion, "la alerta mínima no puede ser negativa")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.buscarCodigo(codigo)
	if p == nil {
		return domain.Errorf(domain.ErrNoEncontrado, "producto %s no encontrado", codigo)
	}
	p.StockMinimo = minimo
	return s.repo.Guardar(s.productos)
}

// Remove elimina un producto del catálogo.
func (s *Service) Remove(codigo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.productos {
		if p.Codigo == codigo {
			s.productos = append(s.productos[:i], s.productos[i+1:]...)
			return s.repo.Guardar(s.productos)
		}
	}
	return domain.Errorf(domain.ErrNoEncontrado, "producto %s no encontrado", codigo)
}

// LowStock devuelve los productos en condición de alerta
// (stock <= stock mínimo, límite inclusive) en orden de catálogo.
func (s *Service) LowStock() []*entity.Producto {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bajos []*entity.Producto
	for _, p := range s.productos {
		if p.StockBajo() {
			bajos = append(bajos, clonar(p))
		}
	}
	return bajos
}

// List devuelve el catálogo completo en orden de inserción.
func (s *Service) List() []*entity.Producto {
	s.mu.Lock()
	defer s.mu.Unlock()

	lista := make([]*entity.Producto, 0, len(s.productos))
	for _, p := range s.productos {
		lista = append(lista, clonar(p))
	}
	return lista
}

// Vender descuenta cantidad del stock del producto referido por nombre (o,
// si ningún nombre coincide, por código) y devuelve un snapshot con el precio
// vigente. Muta solo la memoria: el llamador (el libro de ventas) persiste
// después el catálogo con Guardar, de modo que el descuento y el registro de
// la venta queden siempre apareados.
func (s *Service) Vender(ref string, cantidad int) (*entity.Producto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.buscarNombre(ref)
	if p == nil {
		p = s.buscarCodigo(ref)
	}
	if p == nil {
		return nil, domain.Errorf(domain.ErrNoEncontrado, "producto %s no encontrado", ref)
	}
	if p.Stock < cantidad {
		return nil, domain.Errorf(domain.ErrStockInsuficiente, "no hay suficiente stock de %s", p.Nombre)
	}
	p.Stock -= cantidad
	return clonar(p), nil
}

// Guardar persiste el snapshot actual del catálogo.
func (s *Service) Guardar() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Guardar(s.productos)
}

// buscarNombre localiza por nombre. Requiere s.mu.
func (s *Service) buscarNombre(nombre string) *entity.Producto {
	for _, p := range s.productos {
		if p.Nombre == nombre {
			return p
		}
	}
	return nil
}

// buscarCodigo localiza por código. Requiere s.mu.
func (s *Service) buscarCodigo(codigo string) *entity.Producto {
	for _, p := range s.productos {
		if p.Codigo == codigo {
			return p
		}
	}
	return nil
}

func clonar(p *entity.Producto) *entity.Producto {
	c := *p
	return &c
}
