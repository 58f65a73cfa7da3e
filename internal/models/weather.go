package models

// HourlyWeather holds the hourly forecast series returned by open-meteo
type HourlyWeather struct {
	Time          []string  `json:"time"`
	Temperature2M []float64 `json:"temperature_2m"`
	Precipitation []float64 `json:"precipitation"`
}

// CityWeather is the aggregated forecast for one city
type CityWeather struct {
	City      string        `json:"city"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Weather   HourlyWeather `json:"weather"`
}
