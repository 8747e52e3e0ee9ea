package http

import (
	"log"
	"strings"

	"github.com/Maxito7/barberias_backend/internal/application"
	"github.com/Maxito7/barberias_backend/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// usuarioLocalKey es la clave de c.Locals donde se inyecta el usuario autenticado
const usuarioLocalKey = "usuario"

// AuthMiddleware protege endpoints que requieren un bearer token válido
type AuthMiddleware struct {
	authService *application.AuthService
}

// NewAuthMiddleware crea una nueva instancia del middleware de autenticación
func NewAuthMiddleware(authService *application.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// extractBearerToken obtiene el token del header Authorization ("Bearer <token>")
func extractBearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth rechaza con 401 cualquier request sin token válido y deja el
// usuario resuelto en c.Locals para el handler protegido
func (m *AuthMiddleware) RequireAuth(c *fiber.Ctx) error {
	token, ok := extractBearerToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token de autorización requerido"})
	}

	usuarioID, err := m.authService.VerificarToken(token)
	if err != nil {
		return respondError(c, err)
	}

	usuario, err := m.authService.Perfil(usuarioID)
	if err != nil {
		// El token es válido pero la cuenta ya no existe
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token inválido"})
	}

	c.Locals(usuarioLocalKey, usuario)
	return c.Next()
}

// OptionalAuth resuelve el usuario cuando llega un token válido y continúa como
// anónimo en cualquier otro caso; lo usan los endpoints de calificación
func (m *AuthMiddleware) OptionalAuth(c *fiber.Ctx) error {
	token, ok := extractBearerToken(c)
	if !ok {
		return c.Next()
	}

	usuarioID, err := m.authService.VerificarToken(token)
	if err != nil {
		log.Printf("Token opcional inválido, continuando como anónimo: %v", err)
		return c.Next()
	}

	if usuario, err := m.authService.Perfil(usuarioID); err == nil {
		c.Locals(usuarioLocalKey, usuario)
	}

	return c.Next()
}

// usuarioAutenticado retorna el usuario inyectado por RequireAuth/OptionalAuth
func usuarioAutenticado(c *fiber.Ctx) (*domain.Usuario, bool) {
	usuario, ok := c.Locals(usuarioLocalKey).(*domain.Usuario)
	return usuario, ok
}
