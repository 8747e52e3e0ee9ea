package main

import (
	"database/sql"
	"log"

	"github.com/Maxito7/barberias_backend/internal/config"
	"github.com/Maxito7/barberias_backend/internal/domain"
	"github.com/Maxito7/barberias_backend/internal/infrastructure/repository"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Datos de ejemplo equivalentes a los del despliegue original
func barberiasEjemplo() []domain.Barberia {
	coords := func(lat, lng float64) (*float64, *float64) { return &lat, &lng }

	b1Lat, b1Lng := coords(19.4326, -99.1332)
	b2Lat, b2Lng := coords(19.4342, -99.1312)
	b3Lat, b3Lng := coords(19.4306, -99.1352)

	return []domain.Barberia{
		{
			Nombre:    "Barbería Clásica",
			Direccion: "Av. Principal 123",
			Telefono:  "555-0101",
			Horario:   "Lun-Sáb 9:00-19:00",
			Latitud:   b1Lat,
			Longitud:  b1Lng,
		},
		{
			Nombre:    "Corte Moderno",
			Direccion: "Calle Central 456",
			Telefono:  "555-0202",
			Horario:   "Lun-Vie 8:00-18:00",
			Latitud:   b2Lat,
			Longitud:  b2Lng,
		},
		{
			Nombre:    "Estilo Urbano",
			Direccion: "Plaza Mayor 789",
			Telefono:  "555-0303",
			Horario:   "Mar-Dom 10:00-20:00",
			Latitud:   b3Lat,
			Longitud:  b3Lng,
		},
	}
}

type usuarioSemilla struct {
	username       string
	email          string
	password       string
	nombreCompleto string
	telefono       string
	esAdmin        bool
}

func usuariosEjemplo() []usuarioSemilla {
	return []usuarioSemilla{
		{"admin", "admin@barberias.com", "admin123", "Administrador del Sistema", "555-0001", true},
		{"juan_perez", "juan.perez@email.com", "password123", "Juan Pérez", "555-0002", false},
		{"maria_garcia", "maria.garcia@email.com", "password123", "María García", "555-0003", false},
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDBConnString())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}

	if err := repository.InitSchema(db); err != nil {
		log.Fatalf("Error initializing schema: %v", err)
	}

	seedBarberias(db)
	seedUsuarios(db)

	log.Println("Seed completado")
}

func seedBarberias(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM barberia`).Scan(&count); err != nil {
		log.Fatalf("Error counting barberias: %v", err)
	}
	if count > 0 {
		log.Printf("Ya existen %d barberías, saltando seed de barberías", count)
		return
	}

	repo := repository.NewBarberiaRepository(db)
	for _, b := range barberiasEjemplo() {
		id, err := repo.Create(b)
		if err != nil {
			log.Fatalf("Error seeding barberia %q: %v", b.Nombre, err)
		}
		log.Printf("Barbería %q creada con id %d", b.Nombre, id)
	}
}

func seedUsuarios(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM usuario`).Scan(&count); err != nil {
		log.Fatalf("Error counting usuarios: %v", err)
	}
	if count > 0 {
		log.Printf("Ya existen %d usuarios, saltando seed de usuarios", count)
		return
	}

	repo := repository.NewUsuarioRepository(db)
	for _, u := range usuariosEjemplo() {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Error hashing password for %q: %v", u.username, err)
		}

		usuario := &domain.Usuario{
			Username:       u.username,
			Email:          u.email,
			PasswordHash:   string(hash),
			NombreCompleto: u.nombreCompleto,
			Telefono:       u.telefono,
			Activo:         true,
			EsAdmin:        u.esAdmin,
		}
		if err := repo.Create(usuario); err != nil {
			log.Fatalf("Error seeding usuario %q: %v", u.username, err)
		}
		log.Printf("Usuario %q creado con id %d", u.username, usuario.ID)
	}
}
