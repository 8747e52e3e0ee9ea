package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	nearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	textSearchURL   = "https://maps.googleapis.com/maps/api/place/textsearch/json"

	// Palabras clave de la búsqueda cercana, igual que la app original
	nearbyKeyword = `barbería OR peluquería OR "salón de belleza"`

	// Radio fijo de la búsqueda por texto, en metros
	textSearchRadius = 25000
)

// Barberia es un candidato externo normalizado al vocabulario del directorio.
// Nunca se persiste; Places Nearby no entrega teléfono ni horario.
type Barberia struct {
	ID                   string
	Nombre               string
	Direccion            string
	Telefono             string
	Horario              string
	Latitud              *float64
	Longitud             *float64
	CalificacionPromedio float64
	TotalCalificaciones  int
	GooglePlaceID        string
}

// Client handles Google Places API requests
type Client struct {
	apiKey     string
	httpClient *http.Client
	cache      *nearbyCache

	// URLs sustituibles en pruebas
	nearbyURL string
	textURL   string
}

// NewClient creates a Google Places client with a bounded nearby-search cache.
// An empty apiKey disables external enrichment: every search returns no results.
func NewClient(apiKey string, cacheSize int) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      newNearbyCache(cacheSize),
		nearbyURL:  nearbySearchURL,
		textURL:    textSearchURL,
	}
}

type placesResponse struct {
	Status  string        `json:"status"`
	Results []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID          string `json:"place_id"`
	Name             string `json:"name"`
	Vicinity         string `json:"vicinity"`
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
}

// BuscarCercanas finds barbershops near the given coordinates using Nearby Search.
// Results are cached by (lat, lng, radio) for repeated identical queries.
func (c *Client) BuscarCercanas(ctx context.Context, lat, lng float64, radioMetros int) ([]Barberia, error) {
	if c.apiKey == "" {
		log.Println("API Key de Google no configurada. Saltando búsqueda en Google Places.")
		return []Barberia{}, nil
	}

	if cached, ok := c.cache.Get(lat, lng, radioMetros); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Add("location", fmt.Sprintf("%.6f,%.6f", lat, lng))
	params.Add("radius", fmt.Sprintf("%d", radioMetros))
	params.Add("keyword", nearbyKeyword)
	params.Add("language", "es")
	params.Add("key", c.apiKey)

	result, err := c.doSearch(ctx, c.nearbyURL, params)
	if err != nil {
		return nil, err
	}

	barberias := normalizePlaces(result.Results)
	c.cache.Set(lat, lng, radioMetros, barberias)
	return barberias, nil
}

// BuscarPorTexto finds barbershops matching a free-text query using Text Search,
// biased toward the given location and restricted to hair-care businesses.
func (c *Client) BuscarPorTexto(ctx context.Context, query string, lat, lng float64) ([]Barberia, error) {
	if c.apiKey == "" {
		log.Println("API Key de Google no configurada. Saltando búsqueda en Google Places.")
		return []Barberia{}, nil
	}

	params := url.Values{}
	params.Add("query", query+" barbería peluquería")
	params.Add("location", fmt.Sprintf("%.6f,%.6f", lat, lng))
	params.Add("radius", fmt.Sprintf("%d", textSearchRadius))
	params.Add("language", "es")
	params.Add("type", "hair_care")
	params.Add("key", c.apiKey)

	result, err := c.doSearch(ctx, c.textURL, params)
	if err != nil {
		return nil, err
	}

	return normalizePlaces(result.Results), nil
}

func (c *Client) doSearch(ctx context.Context, baseURL string, params url.Values) (*placesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creando request de Google Places: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error llamando a Google Places: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Google Places respondió %d: %s", resp.StatusCode, string(body))
	}

	var result placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parseando respuesta de Google Places: %w", err)
	}

	if result.Status != "OK" && result.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("Google Places status %q", result.Status)
	}

	return &result, nil
}

// normalizePlaces maps raw API results to candidates, dropping in-response
// duplicates by place_id
func normalizePlaces(results []placeResult) []Barberia {
	seen := make(map[string]struct{}, len(results))
	barberias := make([]Barberia, 0, len(results))

	for _, place := range results {
		if place.PlaceID == "" {
			continue
		}
		if _, ok := seen[place.PlaceID]; ok {
			continue
		}
		seen[place.PlaceID] = struct{}{}

		direccion := place.FormattedAddress
		if direccion == "" {
			direccion = place.Vicinity
		}
		if direccion == "" {
			direccion = "Dirección no disponible"
		}

		nombre := place.Name
		if nombre == "" {
			nombre = "Establecimiento"
		}

		barberias = append(barberias, Barberia{
			ID:                   "gm_" + place.PlaceID,
			Nombre:               nombre,
			Direccion:            direccion,
			Telefono:             "No disponible",
			Horario:              "No disponible",
			Latitud:              place.Geometry.Location.Lat,
			Longitud:             place.Geometry.Location.Lng,
			CalificacionPromedio: place.Rating,
			TotalCalificaciones:  place.UserRatingsTotal,
			GooglePlaceID:        place.PlaceID,
		})
	}

	return barberias
}
