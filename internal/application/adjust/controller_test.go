package adjust_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-stock/internal/application/adjust"
	"github.com/jhoicas/gestion-stock/internal/domain"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

// catalogoFalso cuenta los ajustes por código; opcionalmente simula un
// producto inexistente o un stock en el piso.
type catalogoFalso struct {
	mu      sync.Mutex
	ajustes map[string]int
	falla   error
}

func nuevoCatalogoFalso() *catalogoFalso {
	return &catalogoFalso{ajustes: make(map[string]int)}
}

func (c *catalogoFalso) AdjustStock(codigo string, delta int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.falla != nil {
		return 0, c.falla
	}
	c.ajustes[codigo] += delta
	return c.ajustes[codigo], nil
}

func (c *catalogoFalso) total(codigo string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ajustes[codigo]
}

// TestStartStop_UnSoloAjuste Start aplica el ajuste inmediato; un Stop antes
// del primer tick deja exactamente ese ajuste, sin importar cuánto tiempo
// pase después.
func TestStartStop_UnSoloAjuste(t *testing.T) {
	falso := nuevoCatalogoFalso()
	ctrl := adjust.NewController(falso, logger.Nop())

	require.NoError(t, ctrl.Start("A1", 1))
	ctrl.Stop()
	assert.False(t, ctrl.Repeating())

	assert.Equal(t, 1, falso.total("A1"))
	time.Sleep(3 * adjust.DelayInicial)
	assert.Equal(t, 1, falso.total("A1"), "ningún tick debe ejecutar después de Stop")
}

// TestTicks_Repiten con el control sostenido los ticks siguen ajustando.
func TestTicks_Repiten(t *testing.T) {
	falso := nuevoCatalogoFalso()
	ctrl := adjust.NewController(falso, logger.Nop())

	require.NoError(t, ctrl.Start("A1", 1))
	time.Sleep(4 * adjust.DelayInicial)
	ctrl.Stop()

	total := falso.total("A1")
	assert.GreaterOrEqual(t, total, 2, "deben acumularse ajustes repetidos")

	time.Sleep(2 * adjust.DelayInicial)
	assert.Equal(t, total, falso.total("A1"), "tras Stop no hay más ajustes")
}

// TestStart_ReemplazaSecuencia iniciar sobre otro producto detiene primero la
// secuencia anterior: nunca hay dos repeticiones en paralelo.
func TestStart_ReemplazaSecuencia(t *testing.T) {
	falso := nuevoCatalogoFalso()
	ctrl := adjust.NewController(falso, logger.Nop())

	require.NoError(t, ctrl.Start("A1", 1))
	require.NoError(t, ctrl.Start("B2", -1))

	antesA1 := falso.total("A1")
	time.Sleep(4 * adjust.DelayInicial)
	ctrl.Stop()

	assert.Equal(t, antesA1, falso.total("A1"), "la secuencia vieja no debe seguir ajustando")
	assert.Less(t, falso.total("B2"), 0, "la nueva secuencia decrementa")
}

// TestStart_DireccionInvalida solo ±1 son direcciones válidas.
func TestStart_DireccionInvalida(t *testing.T) {
	ctrl := adjust.NewController(nuevoCatalogoFalso(), logger.Nop())

	assert.ErrorIs(t, ctrl.Start("A1", 0), domain.ErrValidacion)
	assert.ErrorIs(t, ctrl.Start("A1", 2), domain.ErrValidacion)
	assert.False(t, ctrl.Repeating())
}

// TestStart_ProductoInexistente no se programa nada si el ajuste inmediato
// falla con no-encontrado.
func TestStart_ProductoInexistente(t *testing.T) {
	falso := nuevoCatalogoFalso()
	falso.falla = domain.Errorf(domain.ErrNoEncontrado, "producto Z9 no encontrado")
	ctrl := adjust.NewController(falso, logger.Nop())

	assert.ErrorIs(t, ctrl.Start("Z9", 1), domain.ErrNoEncontrado)
	assert.False(t, ctrl.Repeating())
}

// TestStart_PisoDeStock chocar contra el piso (ErrEstado) no corta la
// secuencia, igual que mantener presionado "-" con stock en cero.
func TestStart_PisoDeStock(t *testing.T) {
	falso := nuevoCatalogoFalso()
	falso.falla = domain.Errorf(domain.ErrEstado, "el ajuste dejaría el stock en negativo")
	ctrl := adjust.NewController(falso, logger.Nop())

	require.NoError(t, ctrl.Start("A1", -1))
	assert.True(t, ctrl.Repeating())
	ctrl.Stop()
}
