package entity

// Roles válidos para Usuario.
const (
	RolNormal = "normal"
	RolAdmin  = "admin"
	RolSuper  = "super"
)

// SuperUsuario nombre de la cuenta super de arranque: única, siempre
// presente, nunca eliminable.
const SuperUsuario = "super"

// Usuario representa una cuenta del sistema.
type Usuario struct {
	Usuario           string // nombre único, sensible a mayúsculas
	Contrasena        string // digest argon2id; archivos legados traen SHA-256 hex
	ClaveRecuperacion string // secreto en claro, solo para restablecer contraseña
	Rol               string // normal, admin, super
}

// RolValido informa si rol es uno de los tres roles conocidos.
func RolValido(rol string) bool {
	return rol == RolNormal || rol == RolAdmin || rol == RolSuper
}
