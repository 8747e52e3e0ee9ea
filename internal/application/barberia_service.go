package application

import (
	"fmt"

	"github.com/Maxito7/barberias_backend/internal/domain"
)

// BarberiaService expone las operaciones CRUD del directorio local
type BarberiaService struct {
	barberiaRepo domain.BarberiaRepository
	validator    Validator
}

// NewBarberiaService crea una nueva instancia del servicio de barberías
func NewBarberiaService(barberiaRepo domain.BarberiaRepository) *BarberiaService {
	return &BarberiaService{
		barberiaRepo: barberiaRepo,
	}
}

// GetAll returns every local barbershop with its average rounded to one decimal
func (s *BarberiaService) GetAll() ([]domain.Barberia, error) {
	barberias, err := s.barberiaRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("error al obtener barberías: %w", err)
	}

	for i := range barberias {
		barberias[i].CalificacionPromedio = redondearPromedio(barberias[i].CalificacionPromedio)
	}
	return barberias, nil
}

// Create registers a new local barbershop and returns its id
func (s *BarberiaService) Create(b domain.Barberia) (int, error) {
	if err := s.validator.ValidateRequired(b.Nombre, "nombre"); err != nil {
		return 0, err
	}
	if err := s.validator.ValidateRequired(b.Direccion, "direccion"); err != nil {
		return 0, err
	}

	id, err := s.barberiaRepo.Create(b)
	if err != nil {
		return 0, fmt.Errorf("error al crear barbería: %w", err)
	}
	return id, nil
}

// GetByID returns a barbershop with its ratings ordered newest-first
func (s *BarberiaService) GetByID(id int) (*domain.Barberia, []domain.Calificacion, error) {
	barberia, calificaciones, err := s.barberiaRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}

	barberia.CalificacionPromedio = redondearPromedio(barberia.CalificacionPromedio)
	return barberia, calificaciones, nil
}

// Calificar validates and submits a rating; the repository recomputes the
// aggregate atomically
func (s *BarberiaService) Calificar(barberiaID, calificacion int, comentario string, atribucion domain.Atribucion) error {
	if err := s.validator.ValidateCalificacion(calificacion); err != nil {
		return err
	}
	return s.barberiaRepo.Calificar(barberiaID, calificacion, comentario, atribucion)
}
