// Package auth implementa el control de acceso: cuentas, autenticación y
// operaciones de cuenta restringidas por rol.
package auth

import (
	"sync"

	"github.com/jhoicas/gestion-stock/internal/domain"
	"github.com/jhoicas/gestion-stock/internal/domain/entity"
	"github.com/jhoicas/gestion-stock/internal/domain/repository"
	"github.com/jhoicas/gestion-stock/pkg/config"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

// Config políticas del control de acceso.
type Config struct {
	// LoginPolicy: config.LoginConRol exige que el rol suministrado en Login
	// coincida con el almacenado (contrato original); config.LoginSinRol lo
	// ignora y toma el rol del registro.
	LoginPolicy string
}

// Credenciales secretos provisionados en el arranque; se devuelven una sola
// vez y no quedan en claro en ningún otro lado.
type Credenciales struct {
	Usuario           string
	Contrasena        string
	ClaveRecuperacion string
}

// Service casos de uso del control de acceso. Es dueño exclusivo de la
// colección de usuarios en memoria; cada mutación termina en un Guardar.
type Service struct {
	mu       sync.Mutex
	repo     repository.UsuarioRepository
	usuarios []*entity.Usuario
	policy   string
	log      *logger.Logger
}

// NewService construye el servicio y carga la colección desde el repositorio.
func NewService(repo repository.UsuarioRepository, cfg Config, log *logger.Logger) *Service {
	policy := cfg.LoginPolicy
	if policy == "" {
		policy = config.LoginConRol
	}
	return &Service{
		repo:     repo,
		usuarios: repo.Cargar(),
		policy:   policy,
		log:      log,
	}
}

// Bootstrap garantiza que exista exactamente una cuenta super. Si falta, la
// crea con la contraseña dada (o una generada si viene vacía) y una clave de
// recuperación generada, y devuelve esos secretos una única vez. Si la cuenta
// ya existe devuelve (nil, nil).
func (s *Service) Bootstrap(contrasena string) (*Credenciales, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buscar(entity.SuperUsuario) != nil {
		return nil, nil
	}
	var err error
	if contrasena == "" {
		if contrasena, err = secretoAleatorio(12); err != nil {
			return nil, domain.Errorf(domain.ErrEstado, "provisionar superusuario: %v", err)
		}
	}
	clave, err := secretoAleatorio(12)
	if err != nil {
		return nil, domain.Errorf(domain.ErrEstado, "provisionar superusuario: %v", err)
	}
	digest, err := hashContrasena(contrasena)
	if err != nil {
		return nil, domain.Errorf(domain.ErrEstado, "provisionar superusuario: %v", err)
	}
	s.usuarios = append(s.usuarios, &entity.Usuario{
		Usuario:           entity.SuperUsuario,
		Contrasena:        digest,
		ClaveRecuperacion: clave,
		Rol:               entity.RolSuper,
	})
	if err := s.repo.Guardar(s.usuarios); err != nil {
		return nil, err
	}
	s.log.Info().Str("usuario", entity.SuperUsuario).Msg("superusuario provisionado")
	return &Credenciales{
		Usuario:           entity.SuperUsuario,
		Contrasena:        contrasena,
		ClaveRecuperacion: clave,
	}, nil
}

// Login autentica por usuario y contraseña. Con la política role-checked el
// rol suministrado también debe coincidir con el almacenado; con role-free se
// ignora. Cualquier desajuste devuelve ErrAutenticacion sin distinguir causa.
func (s *Service) Login(usuario, contrasena, rol string) (*entity.Usuario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.buscar(usuario)
	if u == nil || !verificarContrasena(u.Contrasena, contrasena) {
		return nil, domain.Errorf(domain.ErrAutenticacion, "credenciales inválidas")
	}
	if s.policy != config.LoginSinRol && u.Rol != rol {
		return nil, domain.Errorf(domain.ErrAutenticacion, "credenciales inválidas")
	}
	return publico(u), nil
}

// Register crea una cuenta nueva. Crear un admin exige solicitante admin o
// super; crear un segundo super está vedado para cualquiera. Devuelve la
// cuenta y su clave de recuperación generada (visible solo aquí).
func (s *Service) Register(usuario, contrasena, rol string, solicitante *entity.Usuario) (*entity.Usuario, string, error) {
	if usuario == "" || contrasena == "" {
		return nil, "", domain.Errorf(domain.ErrValidacion, "usuario y contraseña son obligatorios")
	}
	if rol == "" {
		rol = entity.RolNormal
	}
	if !entity.RolValido(rol) {
		return nil, "", domain.Errorf(domain.ErrValidacion, "rol desconocido: %s", rol)
	}
	if rol == entity.RolSuper {
		return nil, "", domain.Errorf(domain.ErrAutorizacion, "no se puede crear otra cuenta super")
	}
	if rol == entity.RolAdmin {
		if solicitante == nil || (solicitante.Rol != entity.RolAdmin && solicitante.Rol != entity.RolSuper) {
			return nil, "", domain.Errorf(domain.ErrAutorizacion, "solo admin o super pueden crear cuentas admin")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buscar(usuario) != nil {
		return nil, "", domain.Errorf(domain.ErrDuplicado, "el usuario %s ya existe", usuario)
	}
	clave, err := secretoAleatorio(8)
	if err != nil {
		return nil, "", domain.Errorf(domain.ErrEstado, "generar clave de recuperación: %v", err)
	}
	digest, err := hashContrasena(contrasena)
	if err != nil {
		return nil, "", domain.Errorf(domain.ErrEstado, "derivar contraseña: %v", err)
	}
	u := &entity.Usuario{
		Usuario:           usuario,
		Contrasena:        digest,
		ClaveRecuperacion: clave,
		Rol:               rol,
	}
	s.usuarios = append(s.usuarios, u)
	if err := s.repo.Guardar(s.usuarios); err != nil {
		return nil, "", err
	}
	return publico(u), clave, nil
}

// ResetPassword restablece la contraseña si la clave de recuperación coincide
// exactamente con la almacenada.
func (s *Service) ResetPassword(usuario, claveRecuperacion, nueva string) error {
	if nueva == "" {
		return domain.Errorf(domain.ErrValidacion, "la contraseña nueva es obligatoria")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.buscar(usuario)
	if u == nil || u.ClaveRecuperacion != claveRecuperacion {
		return domain.Errorf(domain.ErrAutenticacion, "datos de recuperación inválidos")
	}
	digest, err := hashContrasena(nueva)
	if err != nil {
		return domain.Errorf(domain.ErrEstado, "derivar contraseña: %v", err)
	}
	u.Contrasena = digest
	return s.repo.Guardar(s.usuarios)
}

// EditUser cambia contraseña y/o rol de una cuenta. Cadena vacía deja el
// campo como está. El rol de la cuenta super no se toca, y ninguna cuenta
// puede ser ascendida a super.
func (s *Service) EditUser(usuario, nuevaContrasena, nuevoRol string) error {
	if nuevoRol != "" {
		if !entity.RolValido(nuevoRol) {
			return domain.Errorf(domain.ErrValidacion, "rol desconocido: %s", nuevoRol)
		}
		if nuevoRol == entity.RolSuper {
			return domain.Errorf(domain.ErrAutorizacion, "no se puede ascender una cuenta a super")
		}
		if usuario == entity.SuperUsuario {
			return domain.Errorf(domain.ErrAutorizacion, "el rol de la cuenta super es fijo")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.buscar(usuario)
	if u == nil {
		return domain.Errorf(domain.ErrNoEncontrado, "usuario %s no encontrado", usuario)
	}
	if nuevaContrasena != "" {
		digest, err := hashContrasena(nuevaContrasena)
		if err != nil {
			return domain.Errorf(domain.ErrEstado, "derivar contraseña: %v", err)
		}
		u.Contrasena = digest
	}
	if nuevoRol != "" {
		u.Rol = nuevoRol
	}
	return s.repo.Guardar(s.usuarios)
}

// DeleteUser elimina una cuenta. La cuenta super de arranque está protegida
// contra borrado sin importar quién lo pida (incluida ella misma); borrar
// cualquier otra cuenta exige solicitante super.
func (s *Service) DeleteUser(usuario string, solicitante *entity.Usuario) error {
	if usuario == entity.SuperUsuario {
		return domain.Errorf(domain.ErrAutorizacion, "la cuenta super no se puede eliminar")
	}
	if solicitante == nil || solicitante.Rol != entity.RolSuper {
		return domain.Errorf(domain.ErrAutorizacion, "solo super puede eliminar cuentas")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.usuarios {
		if u.Usuario == usuario {
			s.usuarios = append(s.usuarios[:i], s.usuarios[i+1:]...)
			return s.repo.Guardar(s.usuarios)
		}
	}
	return domain.Errorf(domain.ErrNoEncontrado, "usuario %s no encontrado", usuario)
}

// buscar localiza por nombre exacto (sensible a mayúsculas). Requiere s.mu.
func (s *Service) buscar(usuario string) *entity.Usuario {
	for _, u := range s.usuarios {
		if u.Usuario == usuario {
			return u
		}
	}
	return nil
}

// publico devuelve una copia sin secretos para entregar fuera del componente.
func publico(u *entity.Usuario) *entity.Usuario {
	return &entity.Usuario{Usuario: u.Usuario, Rol: u.Rol}
}
