package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gestion-stock/internal/domain/entity"
)

var (
	usuarioNombre     string
	usuarioContrasena string
	loginRol          string
	registroRol       string
	editarRol         string
	usuarioClave      string
	usuarioNueva      string
	solicitanteNombre string
	solicitantePass   string
	solicitanteRol    string
)

var usuarioCmd = &cobra.Command{
	Use:   "usuario",
	Short: "Cuentas y control de acceso",
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Provisiona la cuenta super si aún no existe",
	Long: `Crea la única cuenta super del sistema en el primer arranque. La
contraseña puede suministrarse con --contrasena; si se omite se genera una
aleatoria. Los secretos generados se muestran una sola vez.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		cred, err := e.auth.Bootstrap(usuarioContrasena)
		if err != nil {
			return err
		}
		if cred == nil {
			fmt.Println("la cuenta super ya existe; nada que hacer")
			return nil
		}
		fmt.Printf("cuenta super provisionada\n  usuario: %s\n  contraseña: %s\n  clave de recuperación: %s\n",
			cred.Usuario, cred.Contrasena, cred.ClaveRecuperacion)
		fmt.Println("guarde estos secretos; no volverán a mostrarse")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verifica credenciales",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		u, err := e.auth.Login(usuarioNombre, usuarioContrasena, loginRol)
		if err != nil {
			return err
		}
		fmt.Printf("sesión válida: %s (rol %s)\n", u.Usuario, u.Rol)
		return nil
	},
}

var usuarioRegistrarCmd = &cobra.Command{
	Use:   "registrar",
	Short: "Crea una cuenta nueva",
	Long: `Crea una cuenta. Para rol admin hace falta un solicitante con rol
admin o super, autenticado con --solicitante y --solicitante-contrasena.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		solicitante, err := autenticarSolicitante(e)
		if err != nil {
			return err
		}
		u, clave, err := e.auth.Register(usuarioNombre, usuarioContrasena, registroRol, solicitante)
		if err != nil {
			return err
		}
		fmt.Printf("cuenta creada: %s (rol %s)\n  clave de recuperación: %s\n", u.Usuario, u.Rol, clave)
		return nil
	},
}

var usuarioResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restablece la contraseña con la clave de recuperación",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.auth.ResetPassword(usuarioNombre, usuarioClave, usuarioNueva); err != nil {
			return err
		}
		fmt.Println("contraseña restablecida")
		return nil
	},
}

var usuarioEditarCmd = &cobra.Command{
	Use:   "editar",
	Short: "Cambia contraseña y/o rol de una cuenta",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		if err := e.auth.EditUser(usuarioNombre, usuarioNueva, editarRol); err != nil {
			return err
		}
		fmt.Println("cuenta actualizada")
		return nil
	},
}

var usuarioEliminarCmd = &cobra.Command{
	Use:   "eliminar",
	Short: "Elimina una cuenta (solo super; la cuenta super es intocable)",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := buildEngine()
		if err != nil {
			return err
		}
		solicitante, err := autenticarSolicitante(e)
		if err != nil {
			return err
		}
		if err := e.auth.DeleteUser(usuarioNombre, solicitante); err != nil {
			return err
		}
		fmt.Printf("cuenta %s eliminada\n", usuarioNombre)
		return nil
	},
}

// autenticarSolicitante valida las credenciales del solicitante cuando se
// suministran; sin flags devuelve nil (operación sin privilegios).
func autenticarSolicitante(e *engine) (*entity.Usuario, error) {
	if solicitanteNombre == "" {
		return nil, nil
	}
	return e.auth.Login(solicitanteNombre, solicitantePass, solicitanteRol)
}

func init() {
	rootCmd.AddCommand(bootstrapCmd, loginCmd, usuarioCmd)
	usuarioCmd.AddCommand(usuarioRegistrarCmd, usuarioResetCmd, usuarioEditarCmd, usuarioEliminarCmd)

	bootstrapCmd.Flags().StringVar(&usuarioContrasena, "contrasena", "", "contraseña inicial de la cuenta super (vacío = generada)")

	loginCmd.Flags().StringVar(&usuarioNombre, "usuario", "", "nombre de usuario")
	loginCmd.Flags().StringVar(&usuarioContrasena, "contrasena", "", "contraseña")
	loginCmd.Flags().StringVar(&loginRol, "rol", entity.RolNormal, "rol declarado (política role-checked)")

	for _, c := range []*cobra.Command{usuarioRegistrarCmd, usuarioResetCmd, usuarioEditarCmd, usuarioEliminarCmd} {
		c.Flags().StringVar(&usuarioNombre, "usuario", "", "nombre de usuario")
	}
	usuarioRegistrarCmd.Flags().StringVar(&usuarioContrasena, "contrasena", "", "contraseña de la cuenta nueva")
	usuarioRegistrarCmd.Flags().StringVar(&registroRol, "rol", entity.RolNormal, "rol de la cuenta nueva")
	usuarioResetCmd.Flags().StringVar(&usuarioClave, "clave", "", "clave de recuperación")
	usuarioResetCmd.Flags().StringVar(&usuarioNueva, "nueva", "", "contraseña nueva")
	usuarioEditarCmd.Flags().StringVar(&usuarioNueva, "contrasena", "", "contraseña nueva (vacío = sin cambio)")
	usuarioEditarCmd.Flags().StringVar(&editarRol, "rol", "", "rol nuevo (vacío = sin cambio)")

	for _, c := range []*cobra.Command{usuarioRegistrarCmd, usuarioEliminarCmd} {
		c.Flags().StringVar(&solicitanteNombre, "solicitante", "", "usuario que autoriza la operación")
		c.Flags().StringVar(&solicitantePass, "solicitante-contrasena", "", "contraseña del solicitante")
		c.Flags().StringVar(&solicitanteRol, "solicitante-rol", entity.RolSuper, "rol declarado del solicitante")
	}
}
