// Package commands implements the built-in utility commands: arithmetic,
// wikipedia lookups, and weather reports.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Kind identifies one of the built-in commands.
type Kind string

const (
	KindCalculate Kind = "calculate"
	KindWikipedia Kind = "wikipedia"
	KindWeather   Kind = "weather"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrEmptyInput     = errors.New("command input is empty")
)

// Dispatcher routes command input to the matching handler.
type Dispatcher struct {
	wikipedia *WikipediaClient
	weather   *WeatherClient
}

type DispatcherOption func(*Dispatcher)

func WithWikipediaClient(client *WikipediaClient) DispatcherOption {
	return func(d *Dispatcher) {
		if client != nil {
			d.wikipedia = client
		}
	}
}

func WithWeatherClient(client *WeatherClient) DispatcherOption {
	return func(d *Dispatcher) {
		if client != nil {
			d.weather = client
		}
	}
}

func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	dispatcher := &Dispatcher{
		wikipedia: NewWikipediaClient(WikipediaConfig{}),
		weather:   NewWeatherClient(WeatherConfig{}),
	}
	for _, opt := range opts {
		opt(dispatcher)
	}

	return dispatcher
}

// Execute runs the command against the given input and returns the
// rendered result. The weather command tolerates empty input, every other
// command rejects it.
func (d *Dispatcher) Execute(ctx context.Context, kind Kind, input string) (string, error) {
	ctx, span := tracer.Start(ctx, "Execute Command")
	defer span.End()
	span.SetAttributes(attribute.String("command.kind", string(kind)))

	if strings.TrimSpace(input) == "" && kind != KindWeather {
		return "", ErrEmptyInput
	}

	result, err := func() (string, error) {
		switch kind {
		case KindCalculate:
			return Calculate(input), nil
		case KindWikipedia:
			return d.wikipedia.Lookup(ctx, input)
		case KindWeather:
			return d.weather.Report(ctx, input)
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, kind)
	}()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "command failed")
		return "", err
	}

	return result, nil
}
