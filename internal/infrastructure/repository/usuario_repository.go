package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Maxito7/barberias_backend/internal/domain"
	"github.com/lib/pq"
)

type usuarioRepository struct {
	db *sql.DB
}

// NewUsuarioRepository creates a new instance of usuarioRepository
func NewUsuarioRepository(db *sql.DB) domain.UsuarioRepository {
	return &usuarioRepository{
		db: db,
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint error
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Create implements domain.UsuarioRepository
func (r *usuarioRepository) Create(u *domain.Usuario) error {
	err := r.db.QueryRow(
		`INSERT INTO usuario (username, email, password_hash, nombre_completo, telefono, activo, es_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, fecha_registro`,
		u.Username, u.Email, u.PasswordHash, u.NombreCompleto, u.Telefono, u.Activo, u.EsAdmin,
	).Scan(&u.ID, &u.FechaRegistro)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el username o email ya está registrado", domain.ErrConflict)
		}
		return fmt.Errorf("error inserting usuario: %w", err)
	}
	return nil
}

const usuarioColumns = `
	id,
	username,
	email,
	password_hash,
	nombre_completo,
	telefono,
	fecha_registro,
	ultimo_acceso,
	activo,
	es_admin`

func scanUsuario(scanner interface{ Scan(...any) error }) (*domain.Usuario, error) {
	var u domain.Usuario
	var ultimoAcceso sql.NullTime

	err := scanner.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.NombreCompleto,
		&u.Telefono,
		&u.FechaRegistro,
		&ultimoAcceso,
		&u.Activo,
		&u.EsAdmin,
	)
	if err != nil {
		return nil, err
	}

	if ultimoAcceso.Valid {
		u.UltimoAcceso = &ultimoAcceso.Time
	}
	return &u, nil
}

// FindByUsername implements domain.UsuarioRepository
func (r *usuarioRepository) FindByUsername(username string) (*domain.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuario WHERE username = $1;`

	u, err := scanUsuario(r.db.QueryRow(query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error querying usuario: %w", err)
	}
	return u, nil
}

// FindByID implements domain.UsuarioRepository
func (r *usuarioRepository) FindByID(id int) (*domain.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuario WHERE id = $1;`

	u, err := scanUsuario(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error querying usuario: %w", err)
	}
	return u, nil
}

// UpdatePerfil implements domain.UsuarioRepository
func (r *usuarioRepository) UpdatePerfil(id int, nombreCompleto, telefono, email string) error {
	result, err := r.db.Exec(
		`UPDATE usuario SET nombre_completo = $1, telefono = $2, email = $3 WHERE id = $4`,
		nombreCompleto, telefono, email, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el email ya está registrado", domain.ErrConflict)
		}
		return fmt.Errorf("error updating perfil: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePassword implements domain.UsuarioRepository
func (r *usuarioRepository) UpdatePassword(id int, passwordHash string) error {
	result, err := r.db.Exec(`UPDATE usuario SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TouchUltimoAcceso implements domain.UsuarioRepository
func (r *usuarioRepository) TouchUltimoAcceso(id int) error {
	_, err := r.db.Exec(`UPDATE usuario SET ultimo_acceso = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error updating ultimo_acceso: %w", err)
	}
	return nil
}

// CalificacionesDeUsuario implements domain.UsuarioRepository
func (r *usuarioRepository) CalificacionesDeUsuario(usuarioID int) ([]domain.CalificacionConBarberia, error) {
	query := `
		SELECT
			c.id,
			c.barberia_id,
			c.usuario_id,
			c.calificacion,
			c.comentario,
			c.fecha,
			b.nombre
		FROM calificacion c
		JOIN barberia b ON b.id = c.barberia_id
		WHERE c.usuario_id = $1
		ORDER BY c.fecha DESC;`

	rows, err := r.db.Query(query, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("error querying calificaciones de usuario: %w", err)
	}
	defer rows.Close()

	calificaciones := make([]domain.CalificacionConBarberia, 0)
	for rows.Next() {
		var c domain.CalificacionConBarberia
		var uid int
		if err := rows.Scan(&c.ID, &c.BarberiaID, &uid, &c.Calificacion.Calificacion, &c.Comentario, &c.Fecha, &c.BarberiaNombre); err != nil {
			return nil, fmt.Errorf("error scanning calificacion de usuario: %w", err)
		}
		c.UsuarioID = &uid
		calificaciones = append(calificaciones, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calificacion rows: %w", err)
	}

	return calificaciones, nil
}
