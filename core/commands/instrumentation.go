package commands

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

const scopeName = "github.com/jayviklabs/jarvis-core/core/commands"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)
)
