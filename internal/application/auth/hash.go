package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Parámetros Argon2id recomendados por OWASP: 1 iteración, 64 MiB,
// 4 hilos, clave de 256 bits, sal de 16 bytes.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16

	prefijoArgon = "argon2id"
)

// hashContrasena deriva un digest salado: "argon2id$<sal b64>$<clave b64>".
// El contrato es el de siempre: determinista para la misma sal, irreversible
// y comparable por igualdad.
func hashContrasena(contrasena string) (string, error) {
	sal := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, sal); err != nil {
		return "", fmt.Errorf("generar sal: %w", err)
	}
	clave := argon2.IDKey([]byte(contrasena), sal, argonTime, argonMemory, argonThreads, argonKeyLen)
	return strings.Join([]string{
		prefijoArgon,
		base64.RawStdEncoding.EncodeToString(sal),
		base64.RawStdEncoding.EncodeToString(clave),
	}, "$"), nil
}

// verificarContrasena compara la contraseña contra el digest almacenado.
// Acepta además los digests SHA-256 hex sin sal de los archivos de usuarios
// antiguos; esas cuentas se re-hashean en el próximo cambio de contraseña.
func verificarContrasena(digest, contrasena string) bool {
	partes := strings.Split(digest, "$")
	if len(partes) == 3 && partes[0] == prefijoArgon {
		sal, err := base64.RawStdEncoding.DecodeString(partes[1])
		if err != nil {
			return false
		}
		clave, err := base64.RawStdEncoding.DecodeString(partes[2])
		if err != nil {
			return false
		}
		calculada := argon2.IDKey([]byte(contrasena), sal, argonTime, argonMemory, argonThreads, argonKeyLen)
		return subtle.ConstantTimeCompare(clave, calculada) == 1
	}

	// digest legado: SHA-256 hex de 64 caracteres
	if len(digest) == 64 {
		suma := sha256.Sum256([]byte(contrasena))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(suma[:])), []byte(digest)) == 1
	}
	return false
}

// secretoAleatorio genera un secreto hex apto para contraseñas y claves de
// recuperación provisionadas por el sistema.
func secretoAleatorio(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("generar secreto: %w", err)
	}
	return hex.EncodeToString(b), nil
}
