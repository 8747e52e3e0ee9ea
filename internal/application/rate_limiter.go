package application

import (
	"sync"
	"time"
)

// RateLimitEntry representa una entrada en el rate limiter
type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter implementa un rate limiter simple basado en ventanas de tiempo,
// usado para acotar los intentos de login por username
type RateLimiter struct {
	limits map[string]*RateLimitEntry
	mu     sync.Mutex
	window time.Duration
	limit  int
}

// NewRateLimiter crea un nuevo rate limiter
// window: duración de la ventana de tiempo (ej: 1 minuto)
// limit: número máximo de intentos permitidos en la ventana
func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	rl := &RateLimiter{
		limits: make(map[string]*RateLimitEntry),
		window: window,
		limit:  limit,
	}

	go rl.cleanupLoop()

	return rl
}

// Allow verifica si se permite un intento para el identificador dado
func (rl *RateLimiter) Allow(identifier string) bool {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, exists := rl.limits[identifier]

	// Si no existe o la ventana ha expirado, crear nueva entrada
	if !exists || now.After(entry.ResetTime) {
		rl.limits[identifier] = &RateLimitEntry{
			Count:     1,
			ResetTime: now.Add(rl.window),
		}
		return true
	}

	if entry.Count >= rl.limit {
		return false
	}

	entry.Count++
	return true
}

// Reset resetea el contador para un identificador específico
func (rl *RateLimiter) Reset(identifier string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.limits, identifier)
}

// cleanupLoop limpia entradas expiradas periódicamente
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, entry := range rl.limits {
		if now.After(entry.ResetTime) {
			delete(rl.limits, key)
		}
	}
}
