package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/krishisethu/backend/internal/models"
	"go.uber.org/zap"
)

// WeatherService is the interface that wraps the weather aggregation logic.
type WeatherService interface {
	// Method GetWeather fetches the hourly forecast for the configured cities.
	GetWeather(ctx context.Context) ([]models.CityWeather, error)
}

// WeatherHandler handles weather-related HTTP requests
type WeatherHandler struct {
	BaseHandler
	weatherService WeatherService
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherService WeatherService, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		weatherService: weatherService,
	}
}

// RegisterRoutes registers all weather handler routes
// Note: This assumes the router is already scoped to /api
func (h *WeatherHandler) RegisterRoutes(r chi.Router) {
	r.Get("/weather", h.GetWeather)
}

// GetWeather handles GET /weather
// @Summary Get Kerala weather
// @Description Return the hourly forecast for the fixed Kerala city list, aggregated from open-meteo.
// @Tags weather
// @Produce json
// @Success 200 {array} models.CityWeather "Forecast per city"
// @Failure 500 {object} map[string]string "Upstream weather API failure"
// @Router /weather [get]
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	weather, err := h.weatherService.GetWeather(r.Context())
	if err != nil {
		h.Logger.Error("failed to fetch weather", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "unable to fetch weather")
		return
	}

	h.RespondJSON(w, http.StatusOK, weather)
}
