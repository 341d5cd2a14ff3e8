package jsonstore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-stock/internal/domain"
	"github.com/jhoicas/gestion-stock/internal/domain/entity"
	"github.com/jhoicas/gestion-stock/internal/infrastructure/jsonstore"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

// TestProductoRoundTrip_Martillo verifica que un producto guardado y recargado
// conserva todos sus campos (los montos como números JSON, el stock como
// entero) y que el margen derivado da el valor esperado.
func TestProductoRoundTrip_Martillo(t *testing.T) {
	dir := t.TempDir()
	repo := jsonstore.NewProductoRepository(dir, logger.Nop())

	martillo := &entity.Producto{
		Codigo:      "A1",
		Nombre:      "Martillo",
		Categoria:   "Herramientas",
		Costo:       decimal.NewFromInt(10),
		Precio:      decimal.NewFromInt(15),
		Stock:       20,
		StockMinimo: 5,
	}
	require.NoError(t, repo.Guardar([]*entity.Producto{martillo}))

	cargados := repo.Cargar()
	require.Len(t, cargados, 1)
	p := cargados[0]
	assert.Equal(t, "A1", p.Codigo)
	assert.Equal(t, "Martillo", p.Nombre)
	assert.Equal(t, "Herramientas", p.Categoria)
	assert.True(t, p.Costo.Equal(decimal.NewFromInt(10)), "costo: %s", p.Costo)
	assert.True(t, p.Precio.Equal(decimal.NewFromInt(15)), "precio: %s", p.Precio)
	assert.Equal(t, 20, p.Stock)
	assert.Equal(t, 5, p.StockMinimo)
	assert.Equal(t, "33.33", p.MargenGanancia().StringFixed(2))
}

// TestRoundTrip_ColeccionVacia un snapshot vacío también viaja ida y vuelta.
func TestRoundTrip_ColeccionVacia(t *testing.T) {
	dir := t.TempDir()
	repo := jsonstore.NewProveedorRepository(dir, logger.Nop())

	require.NoError(t, repo.Guardar(nil))
	assert.Empty(t, repo.Cargar())
}

// TestCargar_ArchivoAusente un archivo que no existe produce colección vacía
// y deja creado un archivo vacío para la próxima vez.
func TestCargar_ArchivoAusente(t *testing.T) {
	dir := t.TempDir()
	repo := jsonstore.NewUsuarioRepository(dir, logger.Nop())

	assert.Empty(t, repo.Cargar())

	data, err := os.ReadFile(filepath.Join(dir, jsonstore.ArchivoUsuarios))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

// TestCargar_ArchivoCorrupto contenido ilegible degrada a colección vacía;
// el llamador nunca recibe un error de carga.
func TestCargar_ArchivoCorrupto(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonstore.ArchivoProductos), []byte("{esto no es json"), 0o644))

	repo := jsonstore.NewProductoRepository(dir, logger.Nop())
	assert.Empty(t, repo.Cargar())
}

// TestCargar_StockMinimoPorDefecto un registro legado sin stock_minimo
// recibe el umbral por defecto al cargar.
func TestCargar_StockMinimoPorDefecto(t *testing.T) {
	dir := t.TempDir()
	legado := `[{"codigo":"B2","nombre":"Tornillo","categoria":"Ferretería","costo":1.5,"precio":2.0,"stock":100}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonstore.ArchivoProductos), []byte(legado), 0o644))

	repo := jsonstore.NewProductoRepository(dir, logger.Nop())
	cargados := repo.Cargar()
	require.Len(t, cargados, 1)
	assert.Equal(t, entity.StockMinimoDefecto, cargados[0].StockMinimo)
}

// TestGuardar_FalloDeEscritura cuando el archivo no se puede escribir el
// error sale clasificado como ErrPersistencia. Un directorio con el nombre
// del archivo provoca el fallo sin depender de permisos.
func TestGuardar_FalloDeEscritura(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, jsonstore.ArchivoProveedores), 0o755))

	repo := jsonstore.NewProveedorRepository(dir, logger.Nop())
	err := repo.Guardar([]*entity.Proveedor{{Nombre: "Ferretería Sur", Telefono: "555-0101", Direccion: "Av. Central 12"}})
	assert.ErrorIs(t, err, domain.ErrPersistencia)
}

// TestCargar_FechaIlegible una fecha que no respeta el layout legado no
// descarta la venta: el registro se conserva con fecha cero.
func TestCargar_FechaIlegible(t *testing.T) {
	dir := t.TempDir()
	legado := `[{"producto":"Martillo","cantidad":1,"fecha":"ayer por la tarde","total":15}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonstore.ArchivoVentas), []byte(legado), 0o644))

	repo := jsonstore.NewVentaRepository(dir, logger.Nop())
	cargadas := repo.Cargar()
	require.Len(t, cargadas, 1)
	v := cargadas[0]
	assert.Equal(t, "Martillo", v.Producto)
	assert.True(t, v.Fecha.IsZero(), "fecha: %s", v.Fecha)
	assert.True(t, v.Total.Equal(decimal.NewFromInt(15)), "total: %s", v.Total)
}

// TestVentaRoundTrip_FechaYTotal la fecha persiste con el layout del
// historial legado y el total vuelve con el mismo valor.
func TestVentaRoundTrip_FechaYTotal(t *testing.T) {
	dir := t.TempDir()
	repo := jsonstore.NewVentaRepository(dir, logger.Nop())

	fecha := time.Date(2026, 8, 31, 14, 30, 0, 0, time.Local)
	venta := &entity.Venta{
		ID:       "v-1",
		Producto: "Martillo",
		Cantidad: 3,
		Fecha:    fecha,
		Total:    decimal.NewFromInt(45),
	}
	require.NoError(t, repo.Guardar([]*entity.Venta{venta}))

	cargadas := repo.Cargar()
	require.Len(t, cargadas, 1)
	v := cargadas[0]
	assert.Equal(t, "v-1", v.ID)
	assert.Equal(t, "Martillo", v.Producto)
	assert.Equal(t, 3, v.Cantidad)
	assert.True(t, v.Fecha.Equal(fecha), "fecha: %s", v.Fecha)
	assert.True(t, v.Total.Equal(decimal.NewFromInt(45)), "total: %s", v.Total)
}

// TestUsuarioRoundTrip los nombres de campo del archivo (usuario, contrasena,
// clave_recuperacion, rol) se conservan tal cual.
func TestUsuarioRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := jsonstore.NewUsuarioRepository(dir, logger.Nop())

	u := &entity.Usuario{
		Usuario:           "carla",
		Contrasena:        "digest",
		ClaveRecuperacion: "clave",
		Rol:               entity.RolAdmin,
	}
	require.NoError(t, repo.Guardar([]*entity.Usuario{u}))

	data, err := os.ReadFile(filepath.Join(dir, jsonstore.ArchivoUsuarios))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"usuario":"carla","contrasena":"digest","clave_recuperacion":"clave","rol":"admin"}]`, string(data))

	cargados := repo.Cargar()
	require.Len(t, cargados, 1)
	assert.Equal(t, u, cargados[0])
}
