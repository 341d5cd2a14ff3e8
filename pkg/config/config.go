package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Políticas de login soportadas (ver AccessControl).
const (
	LoginConRol = "role-checked" // el rol suministrado debe coincidir (comportamiento original)
	LoginSinRol = "role-free"    // el rol se ignora y se toma del registro
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	Datos DatosConfig
	Motor MotorConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DatosConfig ubicación de los archivos JSON de datos.
type DatosConfig struct {
	Dir string // directorio con usuarios.json, productos.json, ventas.json, proveedores.json
}

// MotorConfig políticas del motor de negocio.
type MotorConfig struct {
	LoginPolicy  string  // role-checked | role-free
	MargenMinimo float64 // % mínimo exigido al crear productos; <0 desactiva la regla
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, LOG_LEVEL, DATA_DIR, LOGIN_POLICY, MARGEN_MINIMO.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gestion-stock"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Datos: DatosConfig{
			Dir: getString(v, "DATA_DIR", "."),
		},
		Motor: MotorConfig{
			LoginPolicy:  getString(v, "LOGIN_POLICY", LoginConRol),
			MargenMinimo: getFloat(v, "MARGEN_MINIMO", -1),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			f, err := strconv.ParseFloat(v.GetString(key), 64)
			if err != nil {
				return def
			}
			return f
		default:
			return v.GetFloat64(key)
		}
	}
	return def
}
