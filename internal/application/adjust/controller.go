// Package adjust implementa el ajuste repetido de stock mientras un control
// sigue presionado: un primer ajuste inmediato y luego ticks que se aceleran
// hasta un piso, cancelables de forma inmediata.
package adjust

import (
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/gestion-stock/internal/domain"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

// Cadencia heredada del programa original: 100ms inicial, 10ms menos por
// tick, piso de 50ms.
const (
	DelayInicial = 100 * time.Millisecond
	DelayPaso    = 10 * time.Millisecond
	DelayMinimo  = 50 * time.Millisecond
)

// Catalogo operaciones del catálogo que necesita el controlador.
type Catalogo interface {
	AdjustStock(codigo string, delta int) (int, error)
}

// Controller máquina de estados Idle/Repeating. Cada Start incrementa una
// generación; un tick programado captura la suya y no hace nada si al
// dispararse ya no es la vigente. Eso da cancelación sin depender del
// handle del timer.
type Controller struct {
	mu         sync.Mutex
	catalogo   Catalogo
	log        *logger.Logger
	generacion uint64
	activo     bool
	codigo     string
	direccion  int
	delay      time.Duration
	timer      *time.Timer
}

// NewController construye el controlador sobre el catálogo dado.
func NewController(catalogo Catalogo, log *logger.Logger) *Controller {
	return &Controller{catalogo: catalogo, log: log, delay: DelayInicial}
}

// Start pasa a Repeating para el producto dado: aplica un ajuste inmediato de
// ±1 y programa el primer tick. Si ya había una secuencia activa la detiene
// primero (nunca hay dos secuencias a la vez). Un producto inexistente
// devuelve ErrNoEncontrado sin programar nada; chocar contra el piso de stock
// no corta la secuencia, igual que mantener presionado el botón "-" en cero.
func (c *Controller) Start(codigo string, direccion int) error {
	if direccion != 1 && direccion != -1 {
		return domain.Errorf(domain.ErrValidacion, "la dirección debe ser +1 o -1")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.detener()
	if _, err := c.catalogo.AdjustStock(codigo, direccion); err != nil && !errors.Is(err, domain.ErrEstado) {
		return err
	}
	c.generacion++
	c.activo = true
	c.codigo = codigo
	c.direccion = direccion
	c.delay = DelayInicial
	c.programar(c.generacion)
	return nil
}

// Stop vuelve a Idle: cancela el tick pendiente y restablece la cadencia.
// Al retornar, ningún tick programado antes de la llamada volverá a ejecutar
// un ajuste.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detener()
}

// Repeating informa si hay una secuencia activa.
func (c *Controller) Repeating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activo
}

// detener invalida la generación vigente y cancela el timer. Requiere c.mu.
func (c *Controller) detener() {
	c.generacion++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.activo = false
	c.delay = DelayInicial
}

// programar agenda el próximo tick para la generación dada. Requiere c.mu.
func (c *Controller) programar(gen uint64) {
	c.timer = time.AfterFunc(c.delay, func() { c.tick(gen) })
}

// tick ejecuta un ajuste y reprograma acortando la cadencia. Corre bajo c.mu,
// igual que Stop: un tick en vuelo termina su ajuste antes de que Stop avance,
// y tras Stop su generación ya no es la vigente.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generacion || !c.activo {
		return
	}
	if _, err := c.catalogo.AdjustStock(c.codigo, c.direccion); err != nil && !errors.Is(err, domain.ErrEstado) {
		c.log.Warn().Err(err).Str("codigo", c.codigo).Msg("ajuste repetido interrumpido")
		c.detener()
		return
	}
	if c.delay-DelayPaso >= DelayMinimo {
		c.delay -= DelayPaso
	} else {
		c.delay = DelayMinimo
	}
	c.programar(gen)
}
