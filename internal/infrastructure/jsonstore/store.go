// Package jsonstore implementa los puertos de persistencia sobre archivos
// JSON planos: una colección por archivo, guardada siempre como snapshot
// completo (sin diffs incrementales ni historial de versiones).
package jsonstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/gestion-stock/internal/domain"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

// Nombres de los archivos de datos, heredados del programa original.
const (
	ArchivoUsuarios    = "usuarios.json"
	ArchivoProductos   = "productos.json"
	ArchivoVentas      = "ventas.json"
	ArchivoProveedores = "proveedores.json"
)

// store persiste una colección de registros R como snapshot JSON.
type store[R any] struct {
	path string
	log  *logger.Logger
}

func newStore[R any](dir, archivo string, log *logger.Logger) *store[R] {
	return &store[R]{path: filepath.Join(dir, archivo), log: log}
}

// cargar lee la colección completa. Tolera archivo ausente (crea uno vacío y
// devuelve colección vacía) y contenido corrupto (colección vacía más un
// warning); nunca aborta al llamador.
func (s *store[R]) cargar() []R {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if werr := os.WriteFile(s.path, []byte("[]"), 0o644); werr != nil {
			s.log.Warn().Err(werr).Str("archivo", s.path).Msg("no se pudo crear el archivo de datos")
		}
		return nil
	}
	if err != nil {
		s.log.Warn().Err(err).Str("archivo", s.path).Msg("no se pudo leer el archivo de datos")
		return nil
	}
	var registros []R
	if err := json.Unmarshal(data, &registros); err != nil {
		s.log.Warn().Err(err).Str("archivo", s.path).Msg("archivo de datos corrupto, se ignora")
		return nil
	}
	return registros
}

// guardar sobreescribe el archivo con el snapshot recibido. El último
// guardado gana; un fallo se devuelve como ErrPersistencia sin reintentos.
func (s *store[R]) guardar(registros []R) error {
	if registros == nil {
		registros = []R{}
	}
	data, err := json.MarshalIndent(registros, "", "    ")
	if err != nil {
		return domain.Errorf(domain.ErrPersistencia, "serializar %s: %v", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return domain.Errorf(domain.ErrPersistencia, "escribir %s: %v", s.path, err)
	}
	return nil
}
