package repository

import "github.com/jhoicas/gestion-stock/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia snapshot para Usuario (DIP).
// Cargar degrada ante archivo ausente o corrupto (colección vacía, nunca
// aborta); Guardar sobreescribe la colección completa.
type UsuarioRepository interface {
	Cargar() []*entity.Usuario
	Guardar(usuarios []*entity.Usuario) error
}
