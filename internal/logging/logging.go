package logging

import (
	"context"
	"maps"

	"github.com/dogbodymind/go-site/pkg/interfaces"
)

const (
	rootModule    = "site"
	routerModule  = "site.router"
	contentModule = "site.content"
	sanityModule  = "site.sanity"
	httpModule    = "site.http"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// RouterLogger returns the logger namespace reserved for routing decisions.
func RouterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, routerModule)
}

// ContentLogger returns the logger namespace reserved for resolution sessions.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// SanityLogger returns the logger namespace reserved for the document client.
func SanityLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sanityModule)
}

// HTTPLogger returns the logger namespace reserved for the delivery surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithFields attaches structured fields when the logger supports the optional
// FieldsLogger extension. Nil loggers and empty maps are safe to pass.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithContext(context.Context) interfaces.Logger { return n }

func (n noopLogger) WithFields(map[string]any) interfaces.Logger { return n }
