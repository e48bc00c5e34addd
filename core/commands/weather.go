package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com"
	defaultForecastBaseURL  = "https://api.open-meteo.com"

	// DefaultCity is reported when no city is given.
	DefaultCity = "Mumbai"
)

// wmoConditions maps WMO weather interpretation codes to descriptions.
var wmoConditions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Foggy",
	51: "Light drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	80: "Rain showers",
	95: "Thunderstorm",
}

// WeatherConfig carries the endpoint material for weather reports.
type WeatherConfig struct {
	// GeocodingBaseURL resolves city names to coordinates. Defaults to the
	// Open-Meteo geocoding API.
	GeocodingBaseURL string
	// ForecastBaseURL serves current conditions. Defaults to the Open-Meteo
	// forecast API.
	ForecastBaseURL string
}

// WeatherClient reports current conditions through Open-Meteo, which needs
// no credential.
type WeatherClient struct {
	config     WeatherConfig
	httpClient *http.Client
}

func NewWeatherClient(config WeatherConfig) *WeatherClient {
	if config.GeocodingBaseURL == "" {
		config.GeocodingBaseURL = defaultGeocodingBaseURL
	}
	if config.ForecastBaseURL == "" {
		config.ForecastBaseURL = defaultForecastBaseURL
	}
	config.GeocodingBaseURL = strings.TrimRight(config.GeocodingBaseURL, "/")
	config.ForecastBaseURL = strings.TrimRight(config.ForecastBaseURL, "/")

	return &WeatherClient{
		config: config,
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return operationName + " " + request.URL.Path
			}),
		)},
	}
}

// Report renders current conditions for the city. An empty city falls back
// to the default.
func (c *WeatherClient) Report(ctx context.Context, city string) (string, error) {
	ctx, span := tracer.Start(ctx, "Weather Report")
	defer span.End()

	if strings.TrimSpace(city) == "" {
		city = DefaultCity
	}

	location, err := c.geocode(ctx, city)
	if err != nil {
		return "", err
	}

	current, err := c.currentConditions(ctx, location.Latitude, location.Longitude)
	if err != nil {
		return "", err
	}

	condition, ok := wmoConditions[current.WeatherCode]
	if !ok {
		condition = "Unknown"
	}

	return fmt.Sprintf("Weather in %s:\n%s\nTemperature: %d°C (Feels like %d°C)\nHumidity: %d%%\nWind: %d km/h",
		location.Name,
		condition,
		int(math.Round(current.Temperature)),
		int(math.Round(current.ApparentTemperature)),
		current.Humidity,
		int(math.Round(current.WindSpeed)),
	), nil
}

type geoLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c *WeatherClient) geocode(ctx context.Context, city string) (*geoLocation, error) {
	queryParams := url.Values{}
	queryParams.Set("name", city)
	queryParams.Set("count", "1")
	queryParams.Set("language", "en")
	queryParams.Set("format", "json")

	var geoResponse struct {
		Results []geoLocation `json:"results"`
	}
	if err := c.get(ctx, c.config.GeocodingBaseURL+"/v1/search?"+queryParams.Encode(), &geoResponse); err != nil {
		return nil, fmt.Errorf("failed to geocode city: %w", err)
	}

	if len(geoResponse.Results) == 0 {
		return nil, fmt.Errorf("city not found: %q", city)
	}
	return &geoResponse.Results[0], nil
}

type currentConditions struct {
	Temperature         float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Humidity            int     `json:"relative_humidity_2m"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
}

func (c *WeatherClient) currentConditions(ctx context.Context, latitude, longitude float64) (*currentConditions, error) {
	queryParams := url.Values{}
	queryParams.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	queryParams.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	queryParams.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m")
	queryParams.Set("timezone", "auto")

	var forecastResponse struct {
		Current currentConditions `json:"current"`
	}
	if err := c.get(ctx, c.config.ForecastBaseURL+"/v1/forecast?"+queryParams.Encode(), &forecastResponse); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	return &forecastResponse.Current, nil
}

func (c *WeatherClient) get(ctx context.Context, requestURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
