// Package sales implementa el libro de ventas: transacciones atómicas contra
// el catálogo, historial append-only y estadísticas agregadas.
package sales

import (
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/gestion-stock/internal/application/catalog"
	"github.com/jhoicas/gestion-stock/internal/domain"
	"github.com/jhoicas/gestion-stock/internal/domain/entity"
	"github.com/jhoicas/gestion-stock/internal/domain/repository"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

// Service casos de uso del libro de ventas. Dueño exclusivo del historial en
// memoria; el descuento de stock y el alta del registro ocurren dentro de una
// única sección crítica.
type Service struct {
	mu       sync.Mutex
	repo     repository.VentaRepository
	catalogo *catalog.Service
	ventas   []*entity.Venta
	log      *logger.Logger
	ahora    func() time.Time
}

// NewService construye el servicio y carga el historial desde el repositorio.
func NewService(repo repository.VentaRepository, catalogo *catalog.Service, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		catalogo: catalogo,
		ventas:   repo.Cargar(),
		log:      log,
		ahora:    time.Now,
	}
}

// RecordSale registra una venta del producto referido por nombre o código:
// valida cantidad y stock disponible, descuenta el stock, agrega exactamente
// un registro con total = cantidad × precio vigente, y persiste catálogo e
// historial. Las dos mutaciones en memoria ocurren juntas o no ocurre
// ninguna; un fallo de guardado se devuelve como ErrPersistencia con la
// memoria ya avanzada.
func (s *Service) RecordSale(ref string, cantidad int) (*entity.Venta, error) {
	if cantidad <= 0 {
		return nil, domain.Errorf(domain.ErrValidacion, "la cantidad debe ser mayor que cero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.catalogo.Vender(ref, cantidad)
	if err != nil {
		return nil, err
	}
	venta := &entity.Venta{
		ID:       uuid.New().String(),
		Producto: p.Nombre,
		Cantidad: cantidad,
		Fecha:    s.ahora(),
		Total:    p.Precio.Mul(decimal.NewFromInt(int64(cantidad))),
	}
	s.ventas = append(s.ventas, venta)

	if err := s.catalogo.Guardar(); err != nil {
		return nil, err
	}
	if err := s.repo.Guardar(s.ventas); err != nil {
		return nil, err
	}
	s.log.Debug().Str("producto", venta.Producto).Int("cantidad", cantidad).Msg("venta registrada")
	v := *venta
	return &v, nil
}

// Totals devuelve la suma de todos los totales y el ticket promedio
// (0 con historial vacío).
func (s *Service) Totals() (total, promedio decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.ventas {
		total = total.Add(v.Total)
	}
	if len(s.ventas) == 0 {
		return decimal.Zero, decimal.Zero
	}
	return total, total.Div(decimal.NewFromInt(int64(len(s.ventas))))
}

// Search devuelve las ventas cuyos campos (fecha, producto, cantidad, total)
// contienen la consulta, sin distinguir mayúsculas ni acentos, en el orden
// original del historial.
func (s *Service) Search(consulta string) []*entity.Venta {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := plegar(consulta)
	var resultado []*entity.Venta
	for _, v := range s.ventas {
		campos := []string{
			v.Fecha.Format(entity.FormatoFechaVenta),
			v.Producto,
			strconv.Itoa(v.Cantidad),
			v.Total.StringFixed(2),
		}
		for _, campo := range campos {
			if strings.Contains(plegar(campo), q) {
				c := *v
				resultado = append(resultado, &c)
				break
			}
		}
	}
	return resultado
}

// List devuelve el historial completo en su orden original.
func (s *Service) List() []*entity.Venta {
	s.mu.Lock()
	defer s.mu.Unlock()

	lista := make([]*entity.Venta, 0, len(s.ventas))
	for _, v := range s.ventas {
		c := *v
		lista = append(lista, &c)
	}
	return lista
}

// plegar normaliza para búsqueda: minúsculas y sin marcas diacríticas, de
// modo que "categoria" encuentre "Categoría".
func plegar(s string) string {
	quitarMarcas := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plano, _, err := transform.String(quitarMarcas, s)
	if err != nil {
		plano = s
	}
	return strings.ToLower(plano)
}
