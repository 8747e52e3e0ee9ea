package http

import (
	"github.com/Maxito7/barberias_backend/internal/application"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service *application.AuthService
}

func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

type registroRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	NombreCompleto string `json:"nombre_completo"`
	Telefono       string `json:"telefono"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type perfilRequest struct {
	NombreCompleto string `json:"nombre_completo"`
	Telefono       string `json:"telefono"`
	Email          string `json:"email"`
}

type cambiarPasswordRequest struct {
	PasswordActual string `json:"password_actual"`
	PasswordNuevo  string `json:"password_nuevo"`
}

// Registro maneja POST /api/auth/registro
func (h *AuthHandler) Registro(c *fiber.Ctx) error {
	var req registroRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos JSON requeridos"})
	}

	usuario, err := h.service.Registro(req.Username, req.Email, req.Password, req.NombreCompleto, req.Telefono)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensaje": "Usuario registrado exitosamente",
		"usuario": usuario,
	})
}

// Login maneja POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos JSON requeridos"})
	}

	token, usuario, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"mensaje": "Login exitoso",
		"token":   token,
		"usuario": usuario,
	})
}

// Perfil maneja GET /api/auth/perfil
func (h *AuthHandler) Perfil(c *fiber.Ctx) error {
	usuario, ok := usuarioAutenticado(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no autorizado"})
	}
	return c.JSON(usuario)
}

// ActualizarPerfil maneja PUT /api/auth/perfil
func (h *AuthHandler) ActualizarPerfil(c *fiber.Ctx) error {
	usuario, ok := usuarioAutenticado(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no autorizado"})
	}

	var req perfilRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos JSON requeridos"})
	}

	actualizado, err := h.service.ActualizarPerfil(usuario.ID, req.NombreCompleto, req.Telefono, req.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"mensaje": "Perfil actualizado exitosamente",
		"usuario": actualizado,
	})
}

// CambiarPassword maneja POST /api/auth/cambiar-password
func (h *AuthHandler) CambiarPassword(c *fiber.Ctx) error {
	usuario, ok := usuarioAutenticado(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no autorizado"})
	}

	var req cambiarPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos JSON requeridos"})
	}

	if err := h.service.CambiarPassword(usuario.ID, req.PasswordActual, req.PasswordNuevo); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"mensaje": "Password actualizado exitosamente",
	})
}

// MisCalificaciones maneja GET /api/auth/mis-calificaciones
func (h *AuthHandler) MisCalificaciones(c *fiber.Ctx) error {
	usuario, ok := usuarioAutenticado(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "no autorizado"})
	}

	calificaciones, err := h.service.MisCalificaciones(usuario.ID)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]fiber.Map, 0, len(calificaciones))
	for _, cal := range calificaciones {
		items = append(items, fiber.Map{
			"id":              cal.ID,
			"barberia_id":     cal.BarberiaID,
			"barberia_nombre": cal.BarberiaNombre,
			"calificacion":    cal.Calificacion.Calificacion,
			"comentario":      cal.Comentario,
			"fecha":           cal.Fecha.Format(fechaFormato),
		})
	}

	return c.JSON(items)
}
