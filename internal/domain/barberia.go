package domain

import "time"

// Fuentes de los resultados de búsqueda combinados
const (
	FuenteLocal  = "local"
	FuenteGoogle = "google"
)

// Barberia represents a barbershop stored in the local directory
type Barberia struct {
	ID                   int      `json:"id"`
	Nombre               string   `json:"nombre"`
	Direccion            string   `json:"direccion"`
	Telefono             string   `json:"telefono"`
	Horario              string   `json:"horario"`
	Latitud              *float64 `json:"latitud"`
	Longitud             *float64 `json:"longitud"`
	CalificacionPromedio float64  `json:"calificacion_promedio"`
	TotalCalificaciones  int      `json:"total_calificaciones"`
	FechaCreacion        time.Time `json:"-"`
	// GooglePlaceID enlaza la barbería con su lugar de Google (único cuando existe)
	GooglePlaceID *string `json:"google_place_id,omitempty"`
}

// Calificacion represents a single 1-5 star review of a barbershop
type Calificacion struct {
	ID            int       `json:"id"`
	BarberiaID    int       `json:"-"`
	UsuarioID     *int      `json:"usuario_id,omitempty"`
	NombreUsuario string    `json:"nombre_usuario"`
	Calificacion  int       `json:"calificacion"`
	Comentario    string    `json:"comentario"`
	Fecha         time.Time `json:"-"`
}

// CalificacionConBarberia es una calificación junto al nombre de su barbería,
// usada en el listado de calificaciones propias del usuario
type CalificacionConBarberia struct {
	Calificacion
	BarberiaNombre string `json:"barberia_nombre"`
}

// Atribucion identifica al autor de una calificación: un usuario autenticado
// o un nombre libre para calificaciones anónimas. Nunca ambos.
type Atribucion struct {
	usuarioID     *int
	nombreUsuario string
}

// NuevaAtribucionUsuario crea la atribución de un usuario autenticado
func NuevaAtribucionUsuario(usuarioID int) Atribucion {
	return Atribucion{usuarioID: &usuarioID}
}

// NuevaAtribucionAnonima crea la atribución de una calificación anónima.
// Un nombre vacío se reemplaza por "Anónimo".
func NuevaAtribucionAnonima(nombre string) Atribucion {
	if nombre == "" {
		nombre = "Anónimo"
	}
	return Atribucion{nombreUsuario: nombre}
}

// UsuarioID retorna el id del usuario autenticado, si la atribución lo tiene
func (a Atribucion) UsuarioID() (int, bool) {
	if a.usuarioID == nil {
		return 0, false
	}
	return *a.usuarioID, true
}

// NombreUsuario retorna el nombre libre de una atribución anónima
func (a Atribucion) NombreUsuario() (string, bool) {
	if a.usuarioID != nil {
		return "", false
	}
	return a.nombreUsuario, true
}

// ResultadoBusqueda es un elemento de la lista combinada local + Google.
// El ID es numérico para barberías locales y "gm_<place_id>" para las externas.
type ResultadoBusqueda struct {
	ID                   any      `json:"id"`
	Nombre               string   `json:"nombre"`
	Direccion            string   `json:"direccion"`
	Telefono             string   `json:"telefono"`
	Horario              string   `json:"horario"`
	Latitud              *float64 `json:"latitud"`
	Longitud             *float64 `json:"longitud"`
	CalificacionPromedio float64  `json:"calificacion_promedio"`
	TotalCalificaciones  int      `json:"total_calificaciones"`
	Fuente               string   `json:"fuente"`
	GooglePlaceID        string   `json:"google_place_id,omitempty"`
	Distancia            *float64 `json:"distancia,omitempty"`
}

// BarberiaRepository defines the interface for barbershop data operations
type BarberiaRepository interface {
	// GetAll returns every barbershop in the local directory
	GetAll() ([]Barberia, error)
	// Create inserts a new barbershop and returns its id
	Create(b Barberia) (int, error)
	// GetByID returns a barbershop and its ratings ordered newest-first
	GetByID(id int) (*Barberia, []Calificacion, error)
	// SearchText matches nombre or direccion case-insensitively
	SearchText(q string) ([]Barberia, error)
	// Calificar appends a rating and recomputes the aggregate atomically
	Calificar(barberiaID, calificacion int, comentario string, atribucion Atribucion) error
}
