package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/im-vedant/llm4s"
)

func newTestServers(t *testing.T) (*httptest.Server, *httptest.Server) {
	t.Helper()

	geocode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		if r.URL.Query().Get("name") == "Nowhere" {
			w.Write([]byte(`{"results": []}`))
			return
		}
		w.Write([]byte(`{"results": [
			{"name": "Paris", "country": "France", "latitude": 48.8566, "longitude": 2.3522}
		]}`))
	}))
	t.Cleanup(geocode.Close)

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "48.8566", r.URL.Query().Get("latitude"))
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		w.Write([]byte(`{"current_weather": {
			"temperature": 21.5, "windspeed": 12.3, "weathercode": 2, "time": "2026-08-27T12:00"
		}}`))
	}))
	t.Cleanup(forecast.Close)

	return geocode, forecast
}

func invoke(t *testing.T, geocode, forecast *httptest.Server, args string) ai.ToolResult {
	t.Helper()
	fn, err := New(WithGeocodeURL(geocode.URL), WithForecastURL(forecast.URL))
	require.NoError(t, err)
	return fn.Invoke(context.Background(), ai.ToolCall{
		ID:        "call_1",
		Name:      "get_weather",
		Arguments: args,
	})
}

func TestWeather(t *testing.T) {
	t.Run("geocodes then fetches current conditions", func(t *testing.T) {
		geocode, forecast := newTestServers(t)

		result := invoke(t, geocode, forecast, `{"city": "Paris"}`)
		require.False(t, result.IsError, result.Content)

		var out struct {
			City        string  `json:"city"`
			Country     string  `json:"country"`
			Temperature float64 `json:"temperature"`
			Unit        string  `json:"unit"`
			Condition   string  `json:"condition"`
		}
		require.NoError(t, json.Unmarshal([]byte(result.Content), &out))
		assert.Equal(t, "Paris", out.City)
		assert.Equal(t, "France", out.Country)
		assert.Equal(t, 21.5, out.Temperature)
		assert.Equal(t, "celsius", out.Unit)
		assert.Equal(t, "partly cloudy", out.Condition)
	})

	t.Run("unit is forwarded to the forecast request", func(t *testing.T) {
		geocode, _ := newTestServers(t)
		forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "fahrenheit", r.URL.Query().Get("temperature_unit"))
			w.Write([]byte(`{"current_weather": {"temperature": 70.7, "windspeed": 5, "weathercode": 0}}`))
		}))
		defer forecast.Close()

		result := invoke(t, geocode, forecast, `{"city": "Paris", "unit": "fahrenheit"}`)
		require.False(t, result.IsError, result.Content)
		assert.Contains(t, result.Content, `"unit":"fahrenheit"`)
	})

	t.Run("unknown city folds into the result", func(t *testing.T) {
		geocode, forecast := newTestServers(t)

		result := invoke(t, geocode, forecast, `{"city": "Nowhere"}`)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "no location found")
	})

	t.Run("invalid unit folds into the result", func(t *testing.T) {
		geocode, forecast := newTestServers(t)

		result := invoke(t, geocode, forecast, `{"city": "Paris", "unit": "kelvin"}`)
		assert.True(t, result.IsError)
	})

	t.Run("geocode server error folds into the result", func(t *testing.T) {
		geocode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer geocode.Close()
		_, forecast := newTestServers(t)

		result := invoke(t, geocode, forecast, `{"city": "Paris"}`)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "500")
	})
}

func TestDescribeWeatherCode(t *testing.T) {
	assert.Equal(t, "clear sky", describeWeatherCode(0))
	assert.Equal(t, "partly cloudy", describeWeatherCode(2))
	assert.Equal(t, "fog", describeWeatherCode(45))
	assert.Equal(t, "rain", describeWeatherCode(63))
	assert.Equal(t, "snow", describeWeatherCode(73))
	assert.Equal(t, "thunderstorm", describeWeatherCode(95))
	assert.Equal(t, "unknown", describeWeatherCode(120))
}
