package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	// ErrConflict cubre los choques de concurrencia detectados por la capa de
	// persistencia (constraint único al confirmar). El caller debe recargar el
	// estado y reintentar.
	ErrConflict = errors.New("conflicto con el estado actual")
)

// UserError es un error de regla de negocio con mensaje legible que nombra los
// registros afectados (líneas ya asignadas, movimiento ya aplicado, ...).
// Nunca se ignora en silencio: siempre aborta la operación completa.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// NewUserError construye un UserError con formato.
func NewUserError(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUserError indica si err es un error de regla de negocio.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}
