package jsonstore

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock/internal/domain/entity"
	"github.com/jhoicas/gestion-stock/internal/domain/repository"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// registro con los nombres de campo del archivo legado. Costo y precio son
// números JSON (no strings) para que los archivos existentes sigan válidos.
type productoJSON struct {
	Codigo      string  `json:"codigo"`
	Nombre      string  `json:"nombre"`
	Categoria   string  `json:"categoria"`
	Costo       float64 `json:"costo"`
	Precio      float64 `json:"precio"`
	Stock       int     `json:"stock"`
	StockMinimo *int    `json:"stock_minimo,omitempty"`
}

// ProductoRepo implementación del puerto ProductoRepository sobre productos.json.
type ProductoRepo struct {
	store *store[productoJSON]
}

// NewProductoRepository construye el adaptador de persistencia para productos.
func NewProductoRepository(dir string, log *logger.Logger) *ProductoRepo {
	return &ProductoRepo{store: newStore[productoJSON](dir, ArchivoProductos, log)}
}

// Cargar lee el catálogo completo. Un registro sin stock_minimo recibe el
// umbral por defecto.
func (r *ProductoRepo) Cargar() []*entity.Producto {
	registros := r.store.cargar()
	productos := make([]*entity.Producto, 0, len(registros))
	for _, reg := range registros {
		minimo := entity.StockMinimoDefecto
		if reg.StockMinimo != nil {
			minimo = *reg.StockMinimo
		}
		productos = append(productos, &entity.Producto{
			Codigo:      reg.Codigo,
			Nombre:      reg.Nombre,
			Categoria:   reg.Categoria,
			Costo:       decimal.NewFromFloat(reg.Costo),
			Precio:      decimal.NewFromFloat(reg.Precio),
			Stock:       reg.Stock,
			StockMinimo: minimo,
		})
	}
	return productos
}

// Guardar sobreescribe productos.json con el snapshot recibido.
func (r *ProductoRepo) Guardar(productos []*entity.Producto) error {
	registros := make([]productoJSON, 0, len(productos))
	for _, p := range productos {
		minimo := p.StockMinimo
		registros = append(registros, productoJSON{
			Codigo:      p.Codigo,
			Nombre:      p.Nombre,
			Categoria:   p.Categoria,
			Costo:       p.Costo.InexactFloat64(),
			Precio:      p.Precio.InexactFloat64(),
			Stock:       p.Stock,
			StockMinimo: &minimo,
		})
	}
	return r.store.guardar(registros)
}
