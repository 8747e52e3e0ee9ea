package application

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/Maxito7/barberias_backend/internal/domain"
	"github.com/Maxito7/barberias_backend/internal/places"
)

// Coordenadas por defecto (Ciudad de México) cuando el cliente no envía ubicación
const (
	DefaultLat = 19.432608
	DefaultLng = -99.133209
)

// fanOutThreshold: por encima de este radio Nearby Search deja de devolver
// resultados confiables y se reparte la búsqueda en Text Search por keyword
const fanOutThreshold = 25000

// fanOutKeywords son las categorías fijas del fan-out de radio amplio
var fanOutKeywords = []string{"barbería", "peluquería", "salón de belleza", "estética"}

// PlacesSearcher is the slice of the Google Places client the engine needs
type PlacesSearcher interface {
	BuscarCercanas(ctx context.Context, lat, lng float64, radioMetros int) ([]places.Barberia, error)
	BuscarPorTexto(ctx context.Context, query string, lat, lng float64) ([]places.Barberia, error)
}

// BusquedaService combina candidatos de Google Places con las barberías locales
// en una sola lista de resultados
type BusquedaService struct {
	barberiaRepo domain.BarberiaRepository
	placesClient PlacesSearcher
}

// NewBusquedaService crea una nueva instancia del servicio de búsqueda
func NewBusquedaService(barberiaRepo domain.BarberiaRepository, placesClient PlacesSearcher) *BusquedaService {
	return &BusquedaService{
		barberiaRepo: barberiaRepo,
		placesClient: placesClient,
	}
}

// BuscarCercanas returns local and external barbershops around a point, ordered
// by ascending distance. External candidates already stored locally (same
// google_place_id) are dropped in favor of the local copy. Items without
// coordinates sort last instead of being excluded.
func (s *BusquedaService) BuscarCercanas(ctx context.Context, lat, lng float64, radioMetros int) ([]domain.ResultadoBusqueda, error) {
	externas := s.buscarExternas(ctx, lat, lng, radioMetros)

	locales, err := s.barberiaRepo.GetAll()
	if err != nil {
		return nil, err
	}

	// La copia local gana: conserva las calificaciones acumuladas aquí
	placeIDsLocales := make(map[string]struct{})
	for _, b := range locales {
		if b.GooglePlaceID != nil && *b.GooglePlaceID != "" {
			placeIDsLocales[*b.GooglePlaceID] = struct{}{}
		}
	}

	resultados := make([]domain.ResultadoBusqueda, 0, len(externas)+len(locales))
	for _, e := range externas {
		if _, ok := placeIDsLocales[e.GooglePlaceID]; ok {
			continue
		}
		resultados = append(resultados, resultadoDesdeExterna(e))
	}
	for _, b := range locales {
		resultados = append(resultados, resultadoDesdeLocal(b))
	}

	for i := range resultados {
		if resultados[i].Latitud != nil && resultados[i].Longitud != nil {
			d := CalcularDistancia(lat, lng, *resultados[i].Latitud, *resultados[i].Longitud)
			resultados[i].Distancia = &d
		}
	}

	// Orden estable: los empates y los elementos sin coordenadas (distancia
	// infinita) conservan su orden de entrada
	sort.SliceStable(resultados, func(i, j int) bool {
		return distanciaOrden(resultados[i]) < distanciaOrden(resultados[j])
	})

	return resultados, nil
}

// BuscarPorTexto returns local substring matches followed by Google Text Search
// results. This path intentionally keeps the two sources unmerged and unsorted;
// clients wanting distance order sort on their side.
func (s *BusquedaService) BuscarPorTexto(ctx context.Context, query string, lat, lng *float64) ([]domain.ResultadoBusqueda, error) {
	locales, err := s.barberiaRepo.SearchText(query)
	if err != nil {
		return nil, err
	}

	resultados := make([]domain.ResultadoBusqueda, 0, len(locales))
	for _, b := range locales {
		resultados = append(resultados, resultadoDesdeLocal(b))
	}

	if strings.TrimSpace(query) != "" {
		biasLat, biasLng := DefaultLat, DefaultLng
		if lat != nil && lng != nil {
			biasLat, biasLng = *lat, *lng
		}

		externas, err := s.placesClient.BuscarPorTexto(ctx, query, biasLat, biasLng)
		if err != nil {
			log.Printf("Error al buscar en Google Places Text Search: %v", err)
			externas = nil
		}
		for _, e := range externas {
			resultados = append(resultados, resultadoDesdeExterna(e))
		}
	}

	if lat != nil && lng != nil {
		for i := range resultados {
			if resultados[i].Latitud != nil && resultados[i].Longitud != nil {
				d := CalcularDistancia(*lat, *lng, *resultados[i].Latitud, *resultados[i].Longitud)
				resultados[i].Distancia = &d
			}
		}
	}

	return resultados, nil
}

// buscarExternas consulta Google Places degradando cualquier fallo a cero
// resultados; la búsqueda combinada nunca falla por el proveedor externo
func (s *BusquedaService) buscarExternas(ctx context.Context, lat, lng float64, radioMetros int) []places.Barberia {
	if radioMetros > fanOutThreshold {
		return s.buscarExternasAmplio(ctx, lat, lng)
	}

	externas, err := s.placesClient.BuscarCercanas(ctx, lat, lng, radioMetros)
	if err != nil {
		log.Printf("Error al buscar en Google Places: %v", err)
		return nil
	}
	return externas
}

// buscarExternasAmplio reparte una búsqueda de radio amplio en una llamada de
// Text Search por keyword y concatena deduplicando por place_id
func (s *BusquedaService) buscarExternasAmplio(ctx context.Context, lat, lng float64) []places.Barberia {
	seen := make(map[string]struct{})
	var externas []places.Barberia

	for _, keyword := range fanOutKeywords {
		parciales, err := s.placesClient.BuscarPorTexto(ctx, keyword, lat, lng)
		if err != nil {
			log.Printf("Error en fan-out de Google Places (%s): %v", keyword, err)
			continue
		}
		for _, e := range parciales {
			if _, ok := seen[e.GooglePlaceID]; ok {
				continue
			}
			seen[e.GooglePlaceID] = struct{}{}
			externas = append(externas, e)
		}
	}

	return externas
}

func distanciaOrden(r domain.ResultadoBusqueda) float64 {
	if r.Distancia == nil {
		return math.Inf(1)
	}
	return *r.Distancia
}

func resultadoDesdeLocal(b domain.Barberia) domain.ResultadoBusqueda {
	return domain.ResultadoBusqueda{
		ID:                   b.ID,
		Nombre:               b.Nombre,
		Direccion:            b.Direccion,
		Telefono:             b.Telefono,
		Horario:              b.Horario,
		Latitud:              b.Latitud,
		Longitud:             b.Longitud,
		CalificacionPromedio: redondearPromedio(b.CalificacionPromedio),
		TotalCalificaciones:  b.TotalCalificaciones,
		Fuente:               domain.FuenteLocal,
	}
}

func resultadoDesdeExterna(e places.Barberia) domain.ResultadoBusqueda {
	return domain.ResultadoBusqueda{
		ID:                   e.ID,
		Nombre:               e.Nombre,
		Direccion:            e.Direccion,
		Telefono:             e.Telefono,
		Horario:              e.Horario,
		Latitud:              e.Latitud,
		Longitud:             e.Longitud,
		CalificacionPromedio: e.CalificacionPromedio,
		TotalCalificaciones:  e.TotalCalificaciones,
		Fuente:               domain.FuenteGoogle,
		GooglePlaceID:        e.GooglePlaceID,
	}
}
