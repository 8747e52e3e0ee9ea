package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/Maxito7/barberias_backend/internal/application"
	"github.com/Maxito7/barberias_backend/internal/config"
	"github.com/Maxito7/barberias_backend/internal/email"
	"github.com/Maxito7/barberias_backend/internal/infrastructure/repository"
	handlers "github.com/Maxito7/barberias_backend/internal/interfaces/http"
	"github.com/Maxito7/barberias_backend/internal/places"
	services "github.com/Maxito7/barberias_backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/lib/pq"
)

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

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Barberías
	barberiaRepo := repository.NewBarberiaRepository(db)
	barberiaService := application.NewBarberiaService(barberiaRepo)
	barberiaHandler := handlers.NewBarberiaHandler(barberiaService)

	// Búsqueda combinada local + Google Places
	placesClient := places.NewClient(cfg.GoogleMapsAPIKey, places.DefaultCacheSize)
	busquedaService := application.NewBusquedaService(barberiaRepo, placesClient)
	busquedaHandler := handlers.NewBusquedaHandler(busquedaService, cfg.DefaultSearchRadius, cfg.MaxSearchRadius)

	// Email Client
	var emailClient *email.Client
	if cfg.SMTPHost != "" {
		emailClient, err = email.NewClient(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPassword,
			cfg.SMTPFromName,
			cfg.SMTPFromEmail,
		)
		if err != nil {
			log.Printf("Warning: Email client initialization failed: %v", err)
			emailClient = nil // Continuar sin email
		}
	}

	// Autenticación
	usuarioRepo := repository.NewUsuarioRepository(db)
	loginLimiter := application.NewRateLimiter(1*time.Minute, 5)
	authService := application.NewAuthService(usuarioRepo, cfg.JWTSecretKey, loginLimiter, emailClient)
	authHandler := handlers.NewAuthHandler(authService)
	authMiddleware := handlers.NewAuthMiddleware(authService)

	// S3 (opcional)
	s3Service, err := services.NewS3Service()
	if err != nil {
		log.Printf("Warning: S3 service initialization failed: %v", err)
		s3Service = nil
	}
	s3Handler := handlers.NewS3Handler(s3Service)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas de barberías
	barberias := api.Group("/barberias")
	barberias.Get("/", barberiaHandler.GetAll)
	barberias.Post("/", barberiaHandler.Create)
	barberias.Get("/buscar", busquedaHandler.Buscar)
	barberias.Get("/cercanas", busquedaHandler.Cercanas)
	barberias.Get("/:id", barberiaHandler.GetByID)
	barberias.Post("/:id/calificar", authMiddleware.OptionalAuth, barberiaHandler.Calificar)

	// Rutas de autenticación
	auth := api.Group("/auth")
	auth.Post("/registro", authHandler.Registro)
	auth.Post("/login", authHandler.Login)
	auth.Get("/perfil", authMiddleware.RequireAuth, authHandler.Perfil)
	auth.Put("/perfil", authMiddleware.RequireAuth, authHandler.ActualizarPerfil)
	auth.Post("/cambiar-password", authMiddleware.RequireAuth, authHandler.CambiarPassword)
	auth.Get("/mis-calificaciones", authMiddleware.RequireAuth, authHandler.MisCalificaciones)

	// Rutas de S3
	s3 := api.Group("/upload")
	s3.Post("/imagenes", s3Handler.HandleUploadFile)

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
