package places

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize es la capacidad por defecto del caché de búsquedas cercanas
const DefaultCacheSize = 32

// nearbyCache es un caché LRU acotado de respuestas de Nearby Search, keyed por
// (lat, lng, radio). Las coordenadas se cuantizan a 4 decimales (~11 m) antes de
// formar la clave para que diferencias de precisión insignificantes no generen
// entradas distintas.
type nearbyCache struct {
	lru *lru.Cache[string, []Barberia]
}

func newNearbyCache(size int) *nearbyCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// New solo falla con tamaño no positivo, ya descartado arriba
	cache, _ := lru.New[string, []Barberia](size)
	return &nearbyCache{lru: cache}
}

func cacheKey(lat, lng float64, radioMetros int) string {
	return fmt.Sprintf("%.4f,%.4f,%d", lat, lng, radioMetros)
}

func (c *nearbyCache) Get(lat, lng float64, radioMetros int) ([]Barberia, bool) {
	return c.lru.Get(cacheKey(lat, lng, radioMetros))
}

func (c *nearbyCache) Set(lat, lng float64, radioMetros int, barberias []Barberia) {
	c.lru.Add(cacheKey(lat, lng, radioMetros), barberias)
}

// Len retorna el número de entradas vivas en el caché
func (c *nearbyCache) Len() int {
	return c.lru.Len()
}
