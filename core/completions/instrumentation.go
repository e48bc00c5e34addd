package completions

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

const scopeName = "github.com/jayviklabs/jarvis-core/core/completions"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)
)
