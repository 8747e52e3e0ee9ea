package application

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Maxito7/barberias_backend/internal/domain"
)

// Validator contiene funciones de validación de datos
type Validator struct{}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail valida el formato de un email
func (v *Validator) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: el email es requerido", domain.ErrValidation)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: el formato del email '%s' no es válido", domain.ErrValidation, email)
	}

	return nil
}

// ValidatePassword valida la longitud mínima del password
func (v *Validator) ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("%w: el password debe tener al menos 6 caracteres", domain.ErrValidation)
	}
	return nil
}

// ValidateRequired valida que un campo de texto no esté vacío
func (v *Validator) ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: el campo %s es requerido", domain.ErrValidation, fieldName)
	}
	return nil
}

// ValidateCalificacion valida que una calificación esté entre 1 y 5 estrellas
func (v *Validator) ValidateCalificacion(calificacion int) error {
	if calificacion < 1 || calificacion > 5 {
		return fmt.Errorf("%w: la calificación debe estar entre 1 y 5", domain.ErrValidation)
	}
	return nil
}
