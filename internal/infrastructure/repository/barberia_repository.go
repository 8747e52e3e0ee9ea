package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Maxito7/barberias_backend/internal/domain"
)

type barberiaRepository struct {
	db *sql.DB
}

// NewBarberiaRepository creates a new instance of barberiaRepository
func NewBarberiaRepository(db *sql.DB) domain.BarberiaRepository {
	return &barberiaRepository{
		db: db,
	}
}

const barberiaColumns = `
	id,
	nombre,
	direccion,
	telefono,
	horario,
	latitud,
	longitud,
	calificacion_promedio,
	total_calificaciones,
	fecha_creacion,
	google_place_id`

func scanBarberia(scanner interface{ Scan(...any) error }) (domain.Barberia, error) {
	var b domain.Barberia
	var lat, lng sql.NullFloat64
	var placeID sql.NullString

	err := scanner.Scan(
		&b.ID,
		&b.Nombre,
		&b.Direccion,
		&b.Telefono,
		&b.Horario,
		&lat,
		&lng,
		&b.CalificacionPromedio,
		&b.TotalCalificaciones,
		&b.FechaCreacion,
		&placeID,
	)
	if err != nil {
		return b, err
	}

	if lat.Valid {
		b.Latitud = &lat.Float64
	}
	if lng.Valid {
		b.Longitud = &lng.Float64
	}
	if placeID.Valid {
		b.GooglePlaceID = &placeID.String
	}
	return b, nil
}

// GetAll implements domain.BarberiaRepository
func (r *barberiaRepository) GetAll() ([]domain.Barberia, error) {
	query := `SELECT ` + barberiaColumns + ` FROM barberia ORDER BY id;`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying barberias: %w", err)
	}
	defer rows.Close()

	var barberias []domain.Barberia
	for rows.Next() {
		b, err := scanBarberia(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning barberia: %w", err)
		}
		barberias = append(barberias, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating barberia rows: %w", err)
	}

	return barberias, nil
}

// Create implements domain.BarberiaRepository
func (r *barberiaRepository) Create(b domain.Barberia) (int, error) {
	var newID int
	err := r.db.QueryRow(
		`INSERT INTO barberia (nombre, direccion, telefono, horario, latitud, longitud, google_place_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		b.Nombre, b.Direccion, b.Telefono, b.Horario, b.Latitud, b.Longitud, b.GooglePlaceID,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("error inserting barberia: %w", err)
	}
	return newID, nil
}

// GetByID implements domain.BarberiaRepository. Ratings come newest-first.
func (r *barberiaRepository) GetByID(id int) (*domain.Barberia, []domain.Calificacion, error) {
	query := `SELECT ` + barberiaColumns + ` FROM barberia WHERE id = $1;`

	b, err := scanBarberia(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("error querying barberia: %w", err)
	}

	calificaciones, err := r.calificacionesDeBarberia(id)
	if err != nil {
		return nil, nil, err
	}

	return &b, calificaciones, nil
}

func (r *barberiaRepository) calificacionesDeBarberia(barberiaID int) ([]domain.Calificacion, error) {
	query := `
		SELECT
			c.id,
			c.barberia_id,
			c.usuario_id,
			COALESCE(NULLIF(c.nombre_usuario, ''), u.username, '') AS nombre_usuario,
			c.calificacion,
			c.comentario,
			c.fecha
		FROM calificacion c
		LEFT JOIN usuario u ON u.id = c.usuario_id
		WHERE c.barberia_id = $1
		ORDER BY c.fecha DESC;`

	rows, err := r.db.Query(query, barberiaID)
	if err != nil {
		return nil, fmt.Errorf("error querying calificaciones: %w", err)
	}
	defer rows.Close()

	calificaciones := make([]domain.Calificacion, 0)
	for rows.Next() {
		var c domain.Calificacion
		var usuarioID sql.NullInt64
		if err := rows.Scan(&c.ID, &c.BarberiaID, &usuarioID, &c.NombreUsuario, &c.Calificacion, &c.Comentario, &c.Fecha); err != nil {
			return nil, fmt.Errorf("error scanning calificacion: %w", err)
		}
		if usuarioID.Valid {
			uid := int(usuarioID.Int64)
			c.UsuarioID = &uid
		}
		calificaciones = append(calificaciones, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calificacion rows: %w", err)
	}

	return calificaciones, nil
}

// SearchText implements domain.BarberiaRepository
func (r *barberiaRepository) SearchText(q string) ([]domain.Barberia, error) {
	query := `SELECT ` + barberiaColumns + `
		FROM barberia
		WHERE nombre ILIKE '%' || $1 || '%' OR direccion ILIKE '%' || $1 || '%'
		ORDER BY id;`

	rows, err := r.db.Query(query, q)
	if err != nil {
		return nil, fmt.Errorf("error searching barberias: %w", err)
	}
	defer rows.Close()

	var barberias []domain.Barberia
	for rows.Next() {
		b, err := scanBarberia(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning barberia: %w", err)
		}
		barberias = append(barberias, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating barberia rows: %w", err)
	}

	return barberias, nil
}

// Calificar appends a rating and recomputes the aggregate inside one transaction.
// The FOR UPDATE lock serializes concurrent submissions against the same shop so
// the rescan always sees every committed rating plus the one just inserted.
func (r *barberiaRepository) Calificar(barberiaID, calificacion int, comentario string, atribucion domain.Atribucion) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var lockedID int
	err = tx.QueryRow(`SELECT id FROM barberia WHERE id = $1 FOR UPDATE`, barberiaID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotFound
			return err
		}
		return fmt.Errorf("error locking barberia: %w", err)
	}

	var usuarioID any
	var nombreUsuario string
	if id, ok := atribucion.UsuarioID(); ok {
		usuarioID = id
	} else {
		nombreUsuario, _ = atribucion.NombreUsuario()
	}

	_, err = tx.Exec(
		`INSERT INTO calificacion (barberia_id, usuario_id, nombre_usuario, calificacion, comentario)
		 VALUES ($1, $2, $3, $4, $5)`,
		barberiaID, usuarioID, nombreUsuario, calificacion, comentario,
	)
	if err != nil {
		return fmt.Errorf("error inserting calificacion: %w", err)
	}

	// Rescan completo en vez de promedio incremental: tolera promedios
	// desincronizados previos a costa de un O(n) por envío
	var suma float64
	var total int
	err = tx.QueryRow(
		`SELECT COALESCE(SUM(calificacion), 0), COUNT(*) FROM calificacion WHERE barberia_id = $1`,
		barberiaID,
	).Scan(&suma, &total)
	if err != nil {
		return fmt.Errorf("error recomputing promedio: %w", err)
	}

	promedio := 0.0
	if total > 0 {
		promedio = suma / float64(total)
	}

	_, err = tx.Exec(
		`UPDATE barberia SET calificacion_promedio = $1, total_calificaciones = $2 WHERE id = $3`,
		promedio, total, barberiaID,
	)
	if err != nil {
		return fmt.Errorf("error updating promedio: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing tx: %w", err)
	}

	return nil
}
