package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/krishisethu/backend/internal/models"
	"go.uber.org/zap"
)

// keralaCities is the fixed list of cities the forecast is aggregated for
var keralaCities = []string{"Thiruvananthapuram", "Kochi", "Kozhikode", "Kollam", "Kannur"}

// weatherService aggregates open-meteo geocoding and forecast data.
// Stateless pass-through: nothing is cached or persisted, and any upstream
// failure fails the whole request.
type weatherService struct {
	client       *http.Client
	geocodingURL string
	forecastURL  string
	cities       []string
	logger       *zap.Logger
}

// NewWeatherService creates a new weather service
func NewWeatherService(geocodingURL, forecastURL string, timeout time.Duration, logger *zap.Logger) *weatherService {
	return &weatherService{
		client:       &http.Client{Timeout: timeout},
		geocodingURL: geocodingURL,
		forecastURL:  forecastURL,
		cities:       keralaCities,
		logger:       logger,
	}
}

// geocodingResponse is the subset of the open-meteo geocoding payload we read
type geocodingResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// forecastResponse is the subset of the open-meteo forecast payload we read
type forecastResponse struct {
	Hourly models.HourlyWeather `json:"hourly"`
}

// GetWeather fetches the hourly forecast for every configured city.
// Cities the geocoder does not know are skipped; any HTTP or decode failure
// aborts the aggregation.
func (s *weatherService) GetWeather(ctx context.Context) ([]models.CityWeather, error) {
	weather := make([]models.CityWeather, 0, len(s.cities))

	for _, city := range s.cities {
		latitude, longitude, found, err := s.geocode(ctx, city)
		if err != nil {
			return nil, fmt.Errorf("failed to geocode %s: %w", city, err)
		}
		if !found {
			s.logger.Warn("city not found by geocoder", zap.String("city", city))
			continue
		}

		hourly, err := s.forecast(ctx, latitude, longitude)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch forecast for %s: %w", city, err)
		}

		weather = append(weather, models.CityWeather{
			City:      city,
			Latitude:  latitude,
			Longitude: longitude,
			Weather:   *hourly,
		})
	}

	return weather, nil
}

// geocode resolves a city name to coordinates
func (s *weatherService) geocode(ctx context.Context, city string) (float64, float64, bool, error) {
	params := url.Values{}
	params.Set("name", city)

	var resp geocodingResponse
	if err := s.getJSON(ctx, s.geocodingURL+"?"+params.Encode(), &resp); err != nil {
		return 0, 0, false, err
	}

	if len(resp.Results) == 0 {
		return 0, 0, false, nil
	}

	return resp.Results[0].Latitude, resp.Results[0].Longitude, true, nil
}

// forecast fetches the hourly temperature and precipitation series
func (s *weatherService) forecast(ctx context.Context, latitude, longitude float64) (*models.HourlyWeather, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", latitude))
	params.Set("longitude", fmt.Sprintf("%g", longitude))
	params.Set("hourly", "temperature_2m,precipitation")
	params.Set("timezone", "Asia/Kolkata")

	var resp forecastResponse
	if err := s.getJSON(ctx, s.forecastURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	return &resp.Hourly, nil
}

// getJSON performs a GET request and decodes the JSON response body
func (s *weatherService) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
