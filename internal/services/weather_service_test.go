package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCoordinates drives the fake geocoder; cities absent from the map
// geocode to an empty result set.
var fakeCoordinates = map[string][2]float64{
	"Thiruvananthapuram": {8.5241, 76.9366},
	"Kochi":              {9.9312, 76.2673},
	"Kozhikode":          {11.2588, 75.7804},
	"Kollam":             {8.8932, 76.6141},
	"Kannur":             {11.8745, 75.3704},
}

func newFakeGeocoder(t *testing.T, coords map[string][2]float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		w.Header().Set("Content-Type", "application/json")
		if c, ok := coords[name]; ok {
			fmt.Fprintf(w, `{"results":[{"latitude":%g,"longitude":%g}]}`, c[0], c[1])
			return
		}
		// open-meteo omits "results" entirely for unknown places
		fmt.Fprint(w, `{"generationtime_ms":0.5}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newFakeForecaster(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func forecastPayload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"hourly": map[string]any{
			"time":           []string{"2026-08-28T00:00", "2026-08-28T01:00"},
			"temperature_2m": []float64{27.4, 26.9},
			"precipitation":  []float64{0.2, 1.1},
		},
	})
}

func TestWeatherService_GetWeather(t *testing.T) {
	t.Run("aggregates every configured city", func(t *testing.T) {
		geocoder := newFakeGeocoder(t, fakeCoordinates)
		forecaster := newFakeForecaster(t, forecastPayload)

		svc := NewWeatherService(geocoder.URL, forecaster.URL, 5*time.Second, zap.NewNop())

		weather, err := svc.GetWeather(context.Background())
		require.NoError(t, err)
		require.Len(t, weather, len(keralaCities))

		for i, city := range keralaCities {
			assert.Equal(t, city, weather[i].City)
			assert.Equal(t, fakeCoordinates[city][0], weather[i].Latitude)
			assert.Equal(t, fakeCoordinates[city][1], weather[i].Longitude)
			require.Len(t, weather[i].Weather.Time, 2)
			assert.Equal(t, 27.4, weather[i].Weather.Temperature2M[0])
			assert.Equal(t, 1.1, weather[i].Weather.Precipitation[1])
		}
	})

	t.Run("forecast request carries hourly params and timezone", func(t *testing.T) {
		geocoder := newFakeGeocoder(t, fakeCoordinates)
		forecaster := newFakeForecaster(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "temperature_2m,precipitation", r.URL.Query().Get("hourly"))
			assert.Equal(t, "Asia/Kolkata", r.URL.Query().Get("timezone"))
			assert.NotEmpty(t, r.URL.Query().Get("latitude"))
			assert.NotEmpty(t, r.URL.Query().Get("longitude"))
			forecastPayload(w, r)
		})

		svc := NewWeatherService(geocoder.URL, forecaster.URL, 5*time.Second, zap.NewNop())

		_, err := svc.GetWeather(context.Background())
		require.NoError(t, err)
	})

	t.Run("skips cities the geocoder does not know", func(t *testing.T) {
		// Only two of the five cities resolve
		geocoder := newFakeGeocoder(t, map[string][2]float64{
			"Kochi":  fakeCoordinates["Kochi"],
			"Kannur": fakeCoordinates["Kannur"],
		})
		forecaster := newFakeForecaster(t, forecastPayload)

		svc := NewWeatherService(geocoder.URL, forecaster.URL, 5*time.Second, zap.NewNop())

		weather, err := svc.GetWeather(context.Background())
		require.NoError(t, err)
		require.Len(t, weather, 2)
		assert.Equal(t, "Kochi", weather[0].City)
		assert.Equal(t, "Kannur", weather[1].City)
	})

	t.Run("geocoder failure aborts the aggregation", func(t *testing.T) {
		geocoder := newFakeForecaster(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		forecaster := newFakeForecaster(t, forecastPayload)

		svc := NewWeatherService(geocoder.URL, forecaster.URL, 5*time.Second, zap.NewNop())

		_, err := svc.GetWeather(context.Background())
		assert.Error(t, err)
	})

	t.Run("forecast failure aborts the aggregation", func(t *testing.T) {
		geocoder := newFakeGeocoder(t, fakeCoordinates)
		forecaster := newFakeForecaster(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		svc := NewWeatherService(geocoder.URL, forecaster.URL, 5*time.Second, zap.NewNop())

		_, err := svc.GetWeather(context.Background())
		assert.Error(t, err)
	})

	t.Run("malformed forecast body aborts the aggregation", func(t *testing.T) {
		geocoder := newFakeGeocoder(t, fakeCoordinates)
		forecaster := newFakeForecaster(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>not json</html>")
		})

		svc := NewWeatherService(geocoder.URL, forecaster.URL, 5*time.Second, zap.NewNop())

		_, err := svc.GetWeather(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled context aborts the aggregation", func(t *testing.T) {
		geocoder := newFakeGeocoder(t, fakeCoordinates)
		forecaster := newFakeForecaster(t, forecastPayload)

		svc := NewWeatherService(geocoder.URL, forecaster.URL, 5*time.Second, zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.GetWeather(ctx)
		assert.Error(t, err)
	})
}
