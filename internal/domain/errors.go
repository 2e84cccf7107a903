package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrSaldoInsuficiente  = errors.New("saldo insuficiente en la cuenta")
)

// ValidationError agrupa errores de validación por campo. Siempre es local y
// recuperable: se resuelve en el borde donde ocurre y nunca viaja por la red.
type ValidationError struct {
	Campos map[string]string // campo -> mensaje
}

// NewValidationError construye un error de validación vacío listo para acumular campos.
func NewValidationError() *ValidationError {
	return &ValidationError{Campos: make(map[string]string)}
}

// Add registra el mensaje para un campo (el primero gana si se repite).
func (e *ValidationError) Add(campo, mensaje string) {
	if _, ok := e.Campos[campo]; !ok {
		e.Campos[campo] = mensaje
	}
}

// HasErrors indica si se acumuló al menos un campo inválido.
func (e *ValidationError) HasErrors() bool { return len(e.Campos) > 0 }

func (e *ValidationError) Error() string {
	if len(e.Campos) == 0 {
		return "validación: sin errores"
	}
	campos := make([]string, 0, len(e.Campos))
	for c := range e.Campos {
		campos = append(campos, c)
	}
	sort.Strings(campos)
	var b strings.Builder
	b.WriteString("validación: ")
	for i, c := range campos {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", c, e.Campos[c])
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// LookupError indica que una operación de consulta falló contra el backend
// (red, DB). Distinto de "no encontrado", que es un resultado normal nil.
type LookupError struct {
	Operacion string
	Err       error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("consulta %s falló: %v", e.Operacion, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// IssuanceError indica que la emisión del comprobante fue rechazada por el
// proveedor externo o falló la red. Nunca se reintenta automáticamente: el
// riesgo de re-emisión es del usuario.
type IssuanceError struct {
	Mensaje string // mensaje del proveedor, si lo hubo
	Err     error  // causa subyacente (puede ser nil si el rechazo fue de negocio)
}

func (e *IssuanceError) Error() string {
	if e.Mensaje != "" {
		return "emisión rechazada: " + e.Mensaje
	}
	if e.Err != nil {
		return "emisión fallida: " + e.Err.Error()
	}
	return "emisión fallida"
}

func (e *IssuanceError) Unwrap() error { return e.Err }
