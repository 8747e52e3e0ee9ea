package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcularDistanciaMismoPunto(t *testing.T) {
	d := CalcularDistancia(19.432608, -99.133209, 19.432608, -99.133209)
	assert.Equal(t, 0.0, d)
}

func TestCalcularDistanciaEsSimetrica(t *testing.T) {
	ida := CalcularDistancia(19.4326, -99.1332, 19.4978, -99.1269)
	vuelta := CalcularDistancia(19.4978, -99.1269, 19.4326, -99.1332)
	assert.InDelta(t, ida, vuelta, 1e-9)
}

func TestCalcularDistanciaUnGradoDeLatitud(t *testing.T) {
	// Un grado de latitud son ~111.19 km sobre una esfera de radio 6371 km
	d := CalcularDistancia(19.0, -99.0, 20.0, -99.0)
	assert.InDelta(t, 111.19, d, 0.05)
}

func TestRedondearPromedio(t *testing.T) {
	assert.Equal(t, 4.7, redondearPromedio(4.666666))
	assert.Equal(t, 4.6, redondearPromedio(4.64))
	assert.Equal(t, 0.0, redondearPromedio(0))
	assert.Equal(t, 5.0, redondearPromedio(5))
}
