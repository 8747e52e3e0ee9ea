package http

import (
	"strconv"

	"github.com/Maxito7/barberias_backend/internal/application"
	"github.com/Maxito7/barberias_backend/internal/domain"
	"github.com/gofiber/fiber/v2"
)

type BusquedaHandler struct {
	service *application.BusquedaService

	defaultRadius int
	maxRadius     int
}

func NewBusquedaHandler(service *application.BusquedaService, defaultRadius, maxRadius int) *BusquedaHandler {
	return &BusquedaHandler{
		service:       service,
		defaultRadius: defaultRadius,
		maxRadius:     maxRadius,
	}
}

// parseCoord interpreta un parámetro de coordenada opcional
func parseCoord(value string) *float64 {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// Buscar maneja GET /api/barberias/buscar?q=&lat=&lng=
func (h *BusquedaHandler) Buscar(c *fiber.Ctx) error {
	query := c.Query("q")
	lat := parseCoord(c.Query("lat"))
	lng := parseCoord(c.Query("lng"))

	resultados, err := h.service.BuscarPorTexto(c.Context(), query, lat, lng)
	if err != nil {
		return respondError(c, err)
	}

	if resultados == nil {
		resultados = []domain.ResultadoBusqueda{}
	}
	return c.JSON(resultados)
}

// Cercanas maneja GET /api/barberias/cercanas?lat=&lng=&radio=
func (h *BusquedaHandler) Cercanas(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lat inválida"})
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lng inválida"})
	}

	radio := h.defaultRadius
	if radioStr := c.Query("radio"); radioStr != "" {
		parsed, err := strconv.Atoi(radioStr)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "radio inválido"})
		}
		radio = parsed
	}
	if radio > h.maxRadius {
		radio = h.maxRadius
	}

	resultados, err := h.service.BuscarCercanas(c.Context(), lat, lng, radio)
	if err != nil {
		return respondError(c, err)
	}

	if resultados == nil {
		resultados = []domain.ResultadoBusqueda{}
	}
	return c.JSON(resultados)
}
