package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type weatherFixture struct {
	geoResults string
	current    string

	geocodedCity string
}

func newWeatherClient(t *testing.T, fixture *weatherFixture) *WeatherClient {
	t.Helper()

	geoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fixture.geocodedCity = r.URL.Query().Get("name")
		fmt.Fprintf(w, `{"results":[%s]}`, fixture.geoResults)
	}))
	t.Cleanup(geoServer.Close)

	forecastServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"current":%s}`, fixture.current)
	}))
	t.Cleanup(forecastServer.Close)

	return NewWeatherClient(WeatherConfig{
		GeocodingBaseURL: geoServer.URL,
		ForecastBaseURL:  forecastServer.URL,
	})
}

func TestReportRendersCurrentConditions(t *testing.T) {
	client := newWeatherClient(t, &weatherFixture{
		geoResults: `{"name":"Mumbai","latitude":19.07,"longitude":72.88}`,
		current:    `{"temperature_2m":31.4,"apparent_temperature":36.6,"relative_humidity_2m":74,"weather_code":2,"wind_speed_10m":14.5}`,
	})

	result, err := client.Report(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("expected a weather report, got %v", err)
	}

	want := "Weather in Mumbai:\nPartly cloudy\nTemperature: 31°C (Feels like 37°C)\nHumidity: 74%\nWind: 15 km/h"
	if result != want {
		t.Fatalf("unexpected report:\n%q\nwant:\n%q", result, want)
	}
}

func TestReportDefaultsTheCity(t *testing.T) {
	fixture := &weatherFixture{
		geoResults: `{"name":"Mumbai","latitude":19.07,"longitude":72.88}`,
		current:    `{"temperature_2m":30,"apparent_temperature":33,"relative_humidity_2m":70,"weather_code":0,"wind_speed_10m":10}`,
	}
	client := newWeatherClient(t, fixture)

	if _, err := client.Report(context.Background(), "  "); err != nil {
		t.Fatalf("expected a weather report, got %v", err)
	}
	if fixture.geocodedCity != DefaultCity {
		t.Fatalf("expected the default city to be geocoded, got %q", fixture.geocodedCity)
	}
}

func TestReportDescribesUnknownWeatherCodes(t *testing.T) {
	client := newWeatherClient(t, &weatherFixture{
		geoResults: `{"name":"Pune","latitude":18.52,"longitude":73.85}`,
		current:    `{"temperature_2m":25,"apparent_temperature":25,"relative_humidity_2m":60,"weather_code":77,"wind_speed_10m":5}`,
	})

	result, err := client.Report(context.Background(), "Pune")
	if err != nil {
		t.Fatalf("expected a weather report, got %v", err)
	}
	if !strings.Contains(result, "\nUnknown\n") {
		t.Fatalf("expected an unknown condition line, got %q", result)
	}
}

func TestReportFailsWhenTheCityIsNotFound(t *testing.T) {
	client := newWeatherClient(t, &weatherFixture{
		geoResults: ``,
		current:    `{}`,
	})

	if _, err := client.Report(context.Background(), "Atlantis"); err == nil {
		t.Fatalf("expected an error for an unknown city")
	}
}
