package http

import (
	"log"

	services "github.com/Maxito7/barberias_backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type S3Handler struct {
	service *services.S3Service
}

func NewS3Handler(service *services.S3Service) *S3Handler {
	return &S3Handler{
		service: service,
	}
}

// HandleUploadFile sube la foto de una barbería y retorna su URL pública
func (h *S3Handler) HandleUploadFile(c *fiber.Ctx) error {
	if h.service == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "la subida de imágenes no está configurada",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "archivo requerido en el campo 'file'",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open file %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "error al abrir el archivo",
		})
	}
	defer file.Close()

	url, err := h.service.UploadFile(file, fileHeader)
	if err != nil {
		log.Printf("Failed to upload file %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "error al subir el archivo",
		})
	}

	return c.JSON(fiber.Map{
		"url": url,
	})
}
