package domain

import "errors"

// Errores centinela compartidos entre repositorios, servicios y handlers.
// Los handlers los traducen a códigos HTTP con errors.Is.
var (
	ErrNotFound      = errors.New("registro no encontrado")
	ErrConflict      = errors.New("registro duplicado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrValidation    = errors.New("datos inválidos")
	ErrTokenExpirado = errors.New("token expirado")
	ErrTokenInvalido = errors.New("token inválido")
)
