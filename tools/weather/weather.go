// Package weather provides a current-conditions lookup tool backed by the
// Open-Meteo API, which requires no API key. A city name is geocoded first,
// then the coordinates are used to fetch the forecast.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/im-vedant/llm4s/schema"
	"github.com/im-vedant/llm4s/tool"
)

const (
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com"
	defaultForecastURL = "https://api.open-meteo.com"
)

// Option configures the weather tool.
type Option func(*config)

type config struct {
	client          *http.Client
	geocodeURL      string
	forecastURL     string
	maxResponseSize int64
	timeout         time.Duration
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) {
		cfg.client = c
	}
}

// WithGeocodeURL overrides the geocoding API base URL.
func WithGeocodeURL(u string) Option {
	return func(cfg *config) {
		cfg.geocodeURL = u
	}
}

// WithForecastURL overrides the forecast API base URL.
func WithForecastURL(u string) Option {
	return func(cfg *config) {
		cfg.forecastURL = u
	}
}

// WithTimeout sets the request timeout.
// Default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = d
	}
}

func applyOpts(opts []Option) *config {
	cfg := &config{
		geocodeURL:      defaultGeocodeURL,
		forecastURL:     defaultForecastURL,
		maxResponseSize: 1024 * 1024, // 1MB default
		timeout:         30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.client == nil {
		cfg.client = &http.Client{
			Timeout: cfg.timeout,
		}
	}
	return cfg
}

// New creates the weather lookup tool.
func New(opts ...Option) (*tool.Function, error) {
	cfg := applyOpts(opts)

	params, err := schema.Object("Weather lookup parameters").
		Property("city", schema.String("City name, e.g. Paris or New York")).
		OptionalProperty("unit", schema.String("Temperature unit", "celsius", "fahrenheit")).
		Build()
	if err != nil {
		return nil, err
	}

	return tool.NewBuilder().
		Name("get_weather").
		Description("Get the current weather for a city.").
		Schema(params).
		Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
			city, err := args.String("city")
			if err != nil {
				return "", err
			}
			unit, err := args.StringOr("unit", "celsius")
			if err != nil {
				return "", err
			}

			loc, err := cfg.geocode(ctx, city)
			if err != nil {
				return "", err
			}
			current, err := cfg.forecast(ctx, loc, unit)
			if err != nil {
				return "", err
			}

			out, err := json.Marshal(struct {
				City          string  `json:"city"`
				Country       string  `json:"country,omitempty"`
				Temperature   float64 `json:"temperature"`
				Unit          string  `json:"unit"`
				WindSpeed     float64 `json:"wind_speed_kmh"`
				Condition     string  `json:"condition"`
				WeatherCode   int     `json:"weather_code"`
				ObservationAt string  `json:"observation_at,omitempty"`
			}{
				City:          loc.Name,
				Country:       loc.Country,
				Temperature:   current.Temperature,
				Unit:          unit,
				WindSpeed:     current.WindSpeed,
				Condition:     describeWeatherCode(current.WeatherCode),
				WeatherCode:   current.WeatherCode,
				ObservationAt: current.Time,
			})
			if err != nil {
				return "", err
			}
			return string(out), nil
		}).
		Build()
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *tool.Function {
	fn, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return fn
}

type location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c *config) geocode(ctx context.Context, city string) (location, error) {
	q := url.Values{}
	q.Set("name", city)
	q.Set("count", "1")

	var payload struct {
		Results []location `json:"results"`
	}
	if err := c.getJSON(ctx, c.geocodeURL+"/v1/search?"+q.Encode(), &payload); err != nil {
		return location{}, err
	}
	if len(payload.Results) == 0 {
		return location{}, fmt.Errorf("weather: no location found for %q", city)
	}
	return payload.Results[0], nil
}

type currentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
}

func (c *config) forecast(ctx context.Context, loc location, unit string) (currentWeather, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", loc.Latitude))
	q.Set("longitude", fmt.Sprintf("%.4f", loc.Longitude))
	q.Set("current_weather", "true")
	q.Set("temperature_unit", unit)

	var payload struct {
		CurrentWeather currentWeather `json:"current_weather"`
	}
	if err := c.getJSON(ctx, c.forecastURL+"/v1/forecast?"+q.Encode(), &payload); err != nil {
		return currentWeather{}, err
	}
	return payload.CurrentWeather, nil
}

func (c *config) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather: %s returned %d: %s", req.URL.Path, resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}

// describeWeatherCode translates a WMO weather code into a short phrase.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code <= 3:
		return "partly cloudy"
	case code <= 48:
		return "fog"
	case code <= 57:
		return "drizzle"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "rain showers"
	case code <= 86:
		return "snow showers"
	case code <= 99:
		return "thunderstorm"
	default:
		return "unknown"
	}
}
