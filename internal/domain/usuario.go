package domain

import "time"

// Usuario represents a registered account
type Usuario struct {
	ID             int        `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	NombreCompleto string     `json:"nombre_completo"`
	Telefono       string     `json:"telefono"`
	FechaRegistro  time.Time  `json:"fecha_registro"`
	UltimoAcceso   *time.Time `json:"ultimo_acceso"`
	Activo         bool       `json:"activo"`
	EsAdmin        bool       `json:"es_admin"`
}

// UsuarioRepository defines the interface for account data operations
type UsuarioRepository interface {
	// Create inserts a new user; ErrConflict when username or email already exist
	Create(u *Usuario) error
	FindByUsername(username string) (*Usuario, error)
	FindByID(id int) (*Usuario, error)
	// UpdatePerfil updates nombre completo, teléfono and email
	UpdatePerfil(id int, nombreCompleto, telefono, email string) error
	UpdatePassword(id int, passwordHash string) error
	// TouchUltimoAcceso stamps the last successful login
	TouchUltimoAcceso(id int) error
	// CalificacionesDeUsuario returns the user's ratings newest-first
	CalificacionesDeUsuario(usuarioID int) ([]CalificacionConBarberia, error)
}
