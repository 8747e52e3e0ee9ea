package application

import "math"

// radioTierraKm es el radio de la Tierra usado por la fórmula de Haversine
const radioTierraKm = 6371.0

// CalcularDistancia returns the great-circle distance in kilometers between two
// coordinates in degrees, using the Haversine formula
func CalcularDistancia(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lng1Rad := lng1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lng2Rad := lng2 * math.Pi / 180

	dlat := lat2Rad - lat1Rad
	dlng := lng2Rad - lng1Rad

	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dlng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radioTierraKm * c
}

// redondearPromedio rounds an average rating to one decimal for API responses
func redondearPromedio(promedio float64) float64 {
	return math.Round(promedio*10) / 10
}
