package domain

import (
	"errors"
	"fmt"
)

// Clases de error del motor (sin dependencias externas). Toda operación
// pública devuelve un valor de éxito o un error que envuelve una de estas
// clases; nunca un pánico cruza el límite del componente.
var (
	ErrValidacion        = errors.New("entrada inválida")
	ErrDuplicado         = errors.New("recurso duplicado")
	ErrNoEncontrado      = errors.New("recurso no encontrado")
	ErrAutorizacion      = errors.New("acceso denegado")
	ErrAutenticacion     = errors.New("credenciales inválidas")
	ErrPersistencia      = errors.New("error de persistencia")
	ErrEstado            = errors.New("operación inválida para el estado actual")
	ErrStockInsuficiente = errors.New("stock insuficiente")
)

// Error adjunta un mensaje legible para la capa de presentación a una clase
// de error del dominio. errors.Is contra la clase sigue funcionando.
type Error struct {
	clase error
	msg   string
}

// Errorf construye un *Error de la clase dada con mensaje formateado.
func Errorf(clase error, format string, args ...any) error {
	return &Error{clase: clase, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.clase.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.clase }
