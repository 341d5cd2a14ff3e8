package auth_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-stock/internal/application/auth"
	"github.com/jhoicas/gestion-stock/internal/domain"
	"github.com/jhoicas/gestion-stock/internal/domain/entity"
	"github.com/jhoicas/gestion-stock/internal/infrastructure/jsonstore"
	"github.com/jhoicas/gestion-stock/pkg/config"
	"github.com/jhoicas/gestion-stock/pkg/logger"
)

func nuevoServicio(t *testing.T, policy string) *auth.Service {
	t.Helper()
	repo := jsonstore.NewUsuarioRepository(t.TempDir(), logger.Nop())
	return auth.NewService(repo, auth.Config{LoginPolicy: policy}, logger.Nop())
}

// superActivo provisiona la cuenta super y devuelve sus credenciales.
func superActivo(t *testing.T, s *auth.Service) *auth.Credenciales {
	t.Helper()
	cred, err := s.Bootstrap("")
	require.NoError(t, err)
	require.NotNil(t, cred)
	return cred
}

// TestBootstrap_CreaSuperUnaSolaVez la primera llamada crea la cuenta y
// entrega secretos generados; la segunda no hace nada.
func TestBootstrap_CreaSuperUnaSolaVez(t *testing.T) {
	s := nuevoServicio(t, config.LoginConRol)

	cred, err := s.Bootstrap("")
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, entity.SuperUsuario, cred.Usuario)
	assert.NotEmpty(t, cred.Contrasena)
	assert.NotEmpty(t, cred.ClaveRecuperacion)

	otra, err := s.Bootstrap("")
	require.NoError(t, err)
	assert.Nil(t, otra, "la segunda llamada no debe provisionar nada")

	u, err := s.Login(cred.Usuario, cred.Contrasena, entity.RolSuper)
	require.NoError(t, err)
	assert.Equal(t, entity.RolSuper, u.Rol)
}

// usuarioRepoFallado repositorio de usuarios que falla al guardar cuando
// está armado.
type usuarioRepoFallado struct {
	armado bool
}

func (r *usuarioRepoFallado) Cargar() []*entity.Usuario { return nil }

func (r *usuarioRepoFallado) Guardar([]*entity.Usuario) error {
	if r.armado {
		return domain.Errorf(domain.ErrPersistencia, "disco lleno")
	}
	return nil
}

// TestRegister_FalloDeGuardado un fallo al persistir las cuentas sale
// clasificado como ErrPersistencia; la cuenta queda en memoria y el login
// posterior funciona.
func TestRegister_FalloDeGuardado(t *testing.T) {
	repo := &usuarioRepoFallado{}
	s := auth.NewService(repo, auth.Config{LoginPolicy: config.LoginConRol}, logger.Nop())

	repo.armado = true
	_, _, err := s.Register("ana", "secreta", entity.RolNormal, nil)
	assert.ErrorIs(t, err, domain.ErrPersistencia)

	u, err := s.Login("ana", "secreta", entity.RolNormal)
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Usuario)
}

// TestLogin_PoliticaConRol con role-checked el rol suministrado es parte de
// las credenciales: la misma contraseña con rol equivocado falla.
func TestLogin_PoliticaConRol(t *testing.T) {
	s := nuevoServicio(t, config.LoginConRol)
	_, _, err := s.Register("ana", "secreta", entity.RolNormal, nil)
	require.NoError(t, err)

	_, err = s.Login("ana", "secreta", entity.RolAdmin)
	assert.ErrorIs(t, err, domain.ErrAutenticacion)

	u, err := s.Login("ana", "secreta", entity.RolNormal)
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Usuario)
	assert.Empty(t, u.Contrasena, "el digest no sale del componente")
}

// TestLogin_PoliticaSinRol con role-free el rol suministrado se ignora.
func TestLogin_PoliticaSinRol(t *testing.T) {
	s := nuevoServicio(t, config.LoginSinRol)
	_, _, err := s.Register("ana", "secreta", entity.RolNormal, nil)
	require.NoError(t, err)

	u, err := s.Login("ana", "secreta", entity.RolAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RolNormal, u.Rol)
}

// TestLogin_DigestLegado una cuenta guardada con el SHA-256 hex sin sal del
// programa original sigue pudiendo entrar.
func TestLogin_DigestLegado(t *testing.T) {
	dir := t.TempDir()
	repo := jsonstore.NewUsuarioRepository(dir, logger.Nop())
	suma := sha256.Sum256([]byte("vieja123"))
	require.NoError(t, repo.Guardar([]*entity.Usuario{{
		Usuario:           "viejo",
		Contrasena:        hex.EncodeToString(suma[:]),
		ClaveRecuperacion: "clave_temp",
		Rol:               entity.RolNormal,
	}}))

	s := auth.NewService(repo, auth.Config{LoginPolicy: config.LoginConRol}, logger.Nop())
	_, err := s.Login("viejo", "vieja123", entity.RolNormal)
	assert.NoError(t, err)

	_, err = s.Login("viejo", "otra", entity.RolNormal)
	assert.ErrorIs(t, err, domain.ErrAutenticacion)
}

// TestRegister_Duplicado el nombre de usuario es único y sensible a mayúsculas.
func TestRegister_Duplicado(t *testing.T) {
	s := nuevoServicio(t, config.LoginConRol)
	_, _, err := s.Register("ana", "secreta", entity.RolNormal, nil)
	require.NoError(t, err)

	_, _, err = s.Register("ana", "otra", entity.RolNormal, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicado)

	_, _, err = s.Register("Ana", "otra", entity.RolNormal, nil)
	assert.NoError(t, err, "mayúsculas distintas son otro usuario")
}

// TestRegister_AdminExigePrivilegio un usuario normal no puede crear admins;
// el super sí.
func TestRegister_AdminExigePrivilegio(t *testing.T) {
	s := nuevoServicio(t, config.LoginConRol)
	cred := superActivo(t, s)

	normal, _, err := s.Register("ana", "secreta", entity.RolNormal, nil)
	require.NoError(t, err)

	_, _, err = s.Register("jefe", "secreta", entity.RolAdmin, normal)
	assert.ErrorIs(t, err, domain.ErrAutorizacion)

	superU, err := s.Login(cred.Usuario, cred.Contrasena, entity.RolSuper)
	require.NoError(t, err)
	_, _, err = s.Register("jefe", "secreta", entity.RolAdmin, superU)
	assert.NoError(t, err)
}

// TestRegister_SegundoSuperVedado nadie crea otra cuenta super por registro.
func TestRegister_SegundoSuperVedado(t *testing.T) {
	s := nuevoServicio(t, config.LoginConRol)
	cred := superActivo(t, s)
	superU, err := s.Login(cred.Usuario, cred.Contrasena, entity.RolSuper)
	require.NoError(t, err)

	_, _, err = s.Register("otro-super", "secreta", entity.RolSuper, superU)
	assert.ErrorIs(t, err, domain.ErrAutorizacion)
}

// TestResetPassword exige coincidencia exacta de la clave de recuperación.
func TestResetPassword(t *testing.T) {
	s := nuevoServicio(t, config.LoginConRol)
	_, clave, err := s.Register("ana", "secreta", entity.RolNormal, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.ResetPassword("ana", "clave-equivocada", "nueva"), domain.ErrAutenticacion)

	require.NoError(t, s.ResetPassword("ana", clave, "nueva"))
	_, err = s.Login("ana", "nueva", entity.RolNormal)
	assert.NoError(t, err)
	_, err = s.Login("ana", "secreta", entity.RolNormal)
	assert.ErrorIs(t, err, domain.ErrAutenticacion)
}

// TestEditUser cambia contraseña y rol; la cuenta super queda fuera de alcance.
func TestEditUser(t *testing.T) {
	s := nuevoServicio(t, config.LoginConRol)
	superActivo(t, s)
	_, _, err := s.Register("ana", "secreta", entity.RolNormal, nil)
	require.NoError(t, err)

	require.NoError(t, s.EditUser("ana", "nueva", entity.RolAdmin))
	u, err := s.Login("ana", "nueva", entity.RolAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RolAdmin, u.Rol)

	assert.ErrorIs(t, s.EditUser("ana", "", entity.RolSuper), domain.ErrAutorizacion)
	assert.ErrorIs(t, s.EditUser(entity.SuperUsuario, "", entity.RolNormal), domain.ErrAutorizacion)
	assert.ErrorIs(t, s.EditUser("nadie", "x", ""), domain.ErrNoEncontrado)
}

// TestDeleteUser_SuperProtegido la cuenta super no se borra nunca, ni aun
// pidiéndolo ella misma; borrar otras cuentas exige solicitante super.
func TestDeleteUser_SuperProtegido(t *testing.T) {
	s := nuevoServicio(t, config.LoginConRol)
	cred := superActivo(t, s)
	superU, err := s.Login(cred.Usuario, cred.Contrasena, entity.RolSuper)
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteUser(entity.SuperUsuario, superU), domain.ErrAutorizacion)

	normal, _, err := s.Register("ana", "secreta", entity.RolNormal, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteUser("ana", normal), domain.ErrAutorizacion)
	assert.ErrorIs(t, s.DeleteUser("ana", nil), domain.ErrAutorizacion)

	require.NoError(t, s.DeleteUser("ana", superU))
	_, err = s.Login("ana", "secreta", entity.RolNormal)
	assert.ErrorIs(t, err, domain.ErrAutenticacion)

	assert.ErrorIs(t, s.DeleteUser("ana", superU), domain.ErrNoEncontrado)
}
