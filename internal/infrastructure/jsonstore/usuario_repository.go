package jsonstore

import (
	"github.com/jhoicas/gestion-stock/internal/domain/entity"
	"github.com/jhoicas/gestion-stock/internal/domain/repository"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// registro con los nombres de campo del archivo legado.
type usuarioJSON struct {
	Usuario           string `json:"usuario"`
	Contrasena        string `json:"contrasena"`
	ClaveRecuperacion string `json:"clave_recuperacion"`
	Rol               string `json:"rol"`
}

// UsuarioRepo implementación del puerto UsuarioRepository sobre usuarios.json.
type UsuarioRepo struct {
	store *store[usuarioJSON]
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(dir string, log *logger.Logger) *UsuarioRepo {
	return &UsuarioRepo{store: newStore[usuarioJSON](dir, ArchivoUsuarios, log)}
}

// Cargar lee todos los usuarios; colección vacía si el archivo falta o está corrupto.
func (r *UsuarioRepo) Cargar() []*entity.Usuario {
	registros := r.store.cargar()
	usuarios := make([]*entity.Usuario, 0, len(registros))
	for _, reg := range registros {
		usuarios = append(usuarios, &entity.Usuario{
			Usuario:           reg.Usuario,
			Contrasena:        reg.Contrasena,
			ClaveRecuperacion: reg.ClaveRecuperacion,
			Rol:               reg.Rol,
		})
	}
	return usuarios
}

// Guardar sobreescribe usuarios.json con el snapshot recibido.
func (r *UsuarioRepo) Guardar(usuarios []*entity.Usuario) error {
	registros := make([]usuarioJSON, 0, len(usuarios))
	for _, u := range usuarios {
		registros = append(registros, usuarioJSON{
			Usuario:           u.Usuario,
			Contrasena:        u.Contrasena,
			ClaveRecuperacion: u.ClaveRecuperacion,
			Rol:               u.Rol,
		})
	}
	return r.store.guardar(registros)
}
