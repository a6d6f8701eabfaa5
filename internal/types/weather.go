package types

// WeatherReport is the current weather at a coordinate.
type WeatherReport struct {
	TemperatureC float64 `json:"temperature_c"`
	WindspeedKmh float64 `json:"windspeed_kmh"`
}
