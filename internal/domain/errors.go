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
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// ValidationError agrupa los errores de campo de una entrada, al estilo
// campo → lista de mensajes. Se construye por request durante la validación
// y no se muta después de devolverse.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError crea un acumulador de errores de campo vacío.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add agrega un mensaje de error para un campo.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reporta si se acumuló al menos un error de campo.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error resume los errores de campo en orden determinista.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(ErrInvalidInput.Error())
	for _, f := range fields {
		b.WriteString("; ")
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Fields[f], ", "))
	}
	return b.String()
}

// Is clasifica todo ValidationError como ErrInvalidInput para errors.Is,
// sin perder el detalle por campo accesible vía errors.As.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StateError indica un intento de modificar una venta cuyo estado no lo
// permite (delivered y canceled son terminales).
type StateError struct {
	Status string
}

// Error implementa error.
func (e *StateError) Error() string {
	return fmt.Sprintf("no se puede modificar una venta en estado %s", e.Status)
}

// Is clasifica todo StateError como ErrConflict para errors.Is.
func (e *StateError) Is(target error) bool {
	return target == ErrConflict
}
