package repository

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the tables when they do not exist yet, mirroring the
// startup bootstrap of the original deployment
func InitSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS usuario (
			id SERIAL PRIMARY KEY,
			username VARCHAR(80) NOT NULL UNIQUE,
			email VARCHAR(120) NOT NULL UNIQUE,
			password_hash VARCHAR(200) NOT NULL,
			nombre_completo VARCHAR(100) NOT NULL,
			telefono VARCHAR(20) NOT NULL DEFAULT '',
			fecha_registro TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			ultimo_acceso TIMESTAMPTZ,
			activo BOOLEAN NOT NULL DEFAULT TRUE,
			es_admin BOOLEAN NOT NULL DEFAULT FALSE
		);`,
		`CREATE TABLE IF NOT EXISTS barberia (
			id SERIAL PRIMARY KEY,
			nombre VARCHAR(100) NOT NULL,
			direccion VARCHAR(200) NOT NULL,
			telefono VARCHAR(20) NOT NULL DEFAULT '',
			horario VARCHAR(100) NOT NULL DEFAULT '',
			latitud DOUBLE PRECISION,
			longitud DOUBLE PRECISION,
			calificacion_promedio DOUBLE PRECISION NOT NULL DEFAULT 0.0,
			total_calificaciones INTEGER NOT NULL DEFAULT 0,
			fecha_creacion TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			google_place_id VARCHAR(255) UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS calificacion (
			id SERIAL PRIMARY KEY,
			barberia_id INTEGER NOT NULL REFERENCES barberia(id) ON DELETE CASCADE,
			usuario_id INTEGER REFERENCES usuario(id) ON DELETE CASCADE,
			nombre_usuario VARCHAR(50) NOT NULL DEFAULT '',
			calificacion INTEGER NOT NULL CHECK (calificacion BETWEEN 1 AND 5),
			comentario TEXT NOT NULL DEFAULT '',
			fecha TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (usuario_id IS NOT NULL OR nombre_usuario <> '')
		);`,
		`CREATE INDEX IF NOT EXISTS idx_calificacion_barberia ON calificacion (barberia_id, fecha DESC);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
	}
	return nil
}
