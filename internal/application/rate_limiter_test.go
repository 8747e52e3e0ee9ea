package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBloqueaAlSuperarElLimite(t *testing.T) {
	rl := NewRateLimiter(1*time.Minute, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("juan_perez"))
	}
	assert.False(t, rl.Allow("juan_perez"))

	// Identificadores distintos tienen ventanas independientes
	assert.True(t, rl.Allow("maria_garcia"))
}

func TestRateLimiterResetLiberaLaVentana(t *testing.T) {
	rl := NewRateLimiter(1*time.Minute, 1)

	assert.True(t, rl.Allow("juan_perez"))
	assert.False(t, rl.Allow("juan_perez"))

	rl.Reset("juan_perez")
	assert.True(t, rl.Allow("juan_perez"))
}

func TestRateLimiterVentanaExpirada(t *testing.T) {
	rl := NewRateLimiter(10*time.Millisecond, 1)

	assert.True(t, rl.Allow("juan_perez"))
	assert.False(t, rl.Allow("juan_perez"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("juan_perez"))
}
