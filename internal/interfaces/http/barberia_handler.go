package http

import (
	"strconv"

	"github.com/Maxito7/barberias_backend/internal/application"
	"github.com/Maxito7/barberias_backend/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// fechaFormato es el formato de fecha de las calificaciones en la API
const fechaFormato = "02/01/2006 15:04"

type BarberiaHandler struct {
	service *application.BarberiaService
}

func NewBarberiaHandler(service *application.BarberiaService) *BarberiaHandler {
	return &BarberiaHandler{
		service: service,
	}
}

type barberiaRequest struct {
	Nombre    string   `json:"nombre"`
	Direccion string   `json:"direccion"`
	Telefono  string   `json:"telefono"`
	Horario   string   `json:"horario"`
	Latitud   *float64 `json:"latitud"`
	Longitud  *float64 `json:"longitud"`
}

type calificarRequest struct {
	NombreUsuario string `json:"nombre_usuario"`
	Calificacion  int    `json:"calificacion"`
	Comentario    string `json:"comentario"`
}

// GetAll lista todas las barberías locales
func (h *BarberiaHandler) GetAll(c *fiber.Ctx) error {
	barberias, err := h.service.GetAll()
	if err != nil {
		return respondError(c, err)
	}

	if barberias == nil {
		barberias = []domain.Barberia{}
	}
	return c.JSON(barberias)
}

// Create registra una barbería local nueva
func (h *BarberiaHandler) Create(c *fiber.Ctx) error {
	var req barberiaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos JSON requeridos"})
	}

	barberia := domain.Barberia{
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Telefono:  req.Telefono,
		Horario:   req.Horario,
		Latitud:   req.Latitud,
		Longitud:  req.Longitud,
	}

	newID, err := h.service.Create(barberia)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensaje": "Barbería creada exitosamente",
		"id":      newID,
	})
}

// GetByID retorna el detalle de una barbería con sus calificaciones
func (h *BarberiaHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id inválido"})
	}

	barberia, calificaciones, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]fiber.Map, 0, len(calificaciones))
	for _, cal := range calificaciones {
		items = append(items, fiber.Map{
			"id":             cal.ID,
			"nombre_usuario": cal.NombreUsuario,
			"calificacion":   cal.Calificacion,
			"comentario":     cal.Comentario,
			"fecha":          cal.Fecha.Format(fechaFormato),
		})
	}

	return c.JSON(fiber.Map{
		"id":                    barberia.ID,
		"nombre":                barberia.Nombre,
		"direccion":             barberia.Direccion,
		"telefono":              barberia.Telefono,
		"horario":               barberia.Horario,
		"latitud":               barberia.Latitud,
		"longitud":              barberia.Longitud,
		"calificacion_promedio": barberia.CalificacionPromedio,
		"total_calificaciones":  barberia.TotalCalificaciones,
		"calificaciones":        items,
	})
}

// Calificar agrega una calificación, atribuida al usuario autenticado cuando
// hay token o al nombre libre enviado en el body
func (h *BarberiaHandler) Calificar(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id inválido"})
	}

	var req calificarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos JSON requeridos"})
	}

	var atribucion domain.Atribucion
	if usuario, ok := usuarioAutenticado(c); ok {
		atribucion = domain.NuevaAtribucionUsuario(usuario.ID)
	} else {
		atribucion = domain.NuevaAtribucionAnonima(req.NombreUsuario)
	}

	if err := h.service.Calificar(id, req.Calificacion, req.Comentario, atribucion); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mensaje": "Calificación agregada exitosamente",
	})
}
