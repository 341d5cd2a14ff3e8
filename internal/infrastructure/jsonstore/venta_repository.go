package jsonstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock/internal/domain/entity"
	"github.com/jhoicas/gestion-stock/internal/domain/repository"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// registro con los nombres de campo del archivo legado. El id es una adición
// posterior y puede faltar en historiales viejos.
type ventaJSON struct {
	ID       string  `json:"id,omitempty"`
	Producto string  `json:"producto"`
	Cantidad int     `json:"cantidad"`
	Fecha    string  `json:"fecha"`
	Total    float64 `json:"total"`
}

// VentaRepo implementación del puerto VentaRepository sobre ventas.json.
type VentaRepo struct {
	store *store[ventaJSON]
}

// NewVentaRepository construye el adaptador de persistencia para el historial.
func NewVentaRepository(dir string, log *logger.Logger) *VentaRepo {
	return &VentaRepo{store: newStore[ventaJSON](dir, ArchivoVentas, log)}
}

// Cargar lee el historial completo en su orden original.
func (r *VentaRepo) Cargar() []*entity.Venta {
	registros := r.store.cargar()
	ventas := make([]*entity.Venta, 0, len(registros))
	for _, reg := range registros {
		fecha, err := time.ParseInLocation(entity.FormatoFechaVenta, reg.Fecha, time.Local)
		if err != nil {
			r.store.log.Warn().Str("fecha", reg.Fecha).Msg("fecha de venta ilegible; el registro se conserva con fecha cero (0001-01-01)")
		}
		ventas = append(ventas, &entity.Venta{
			ID:       reg.ID,
			Producto: reg.Producto,
			Cantidad: reg.Cantidad,
			Fecha:    fecha,
			Total:    decimal.NewFromFloat(reg.Total),
		})
	}
	return ventas
}

// Guardar sobreescribe ventas.json con el snapshot recibido.
func (r *VentaRepo) Guardar(ventas []*entity.Venta) error {
	registros := make([]ventaJSON, 0, len(ventas))
	for _, v := range ventas {
		registros = append(registros, ventaJSON{
			ID:       v.ID,
			Producto: v.Producto,
			Cantidad: v.Cantidad,
			Fecha:    v.Fecha.Format(entity.FormatoFechaVenta),
			Total:    v.Total.InexactFloat64(),
		})
	}
	return r.store.guardar(registros)
}
