// Package gologger backs the site's logging contract with go-logger. The
// runtime config selects this provider by name; tests and embedders that want
// silence use the no-op provider instead.
package gologger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/dogbodymind/go-site/internal/logging"
	"github.com/dogbodymind/go-site/pkg/interfaces"
)

// Config narrows go-logger's option surface to what the site configures:
// a level, an output format, and source annotation.
type Config struct {
	Level     string
	Format    string
	AddSource bool
}

// levels maps config names onto go-logger levels. "warning" is accepted as an
// alias since env files commonly spell it out.
var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider hands out named child loggers from one configured root.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the root logger from runtime configuration. Unknown
// levels and formats are rejected rather than silently defaulted; the runtime
// config validates the same sets up front.
func NewProvider(cfg Config) (*Provider, error) {
	var options []glog.Option

	if raw := strings.ToLower(strings.TrimSpace(cfg.Level)); raw != "" {
		level, ok := levels[raw]
		if !ok {
			return nil, fmt.Errorf("logging: unsupported level %q", cfg.Level)
		}
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}
	return &Provider{root: glog.NewLogger(options...)}, nil
}

// GetLogger returns the named child logger, or the root for an empty name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return glogAdapter{inner: p.root}
	}
	child := p.root.GetLogger(name)
	if child == nil {
		return logging.NoOp()
	}
	return glogAdapter{inner: child}
}

// glogAdapter narrows a go-logger logger to the site Logger contract.
type glogAdapter struct {
	inner glog.Logger
}

func (l glogAdapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l glogAdapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l glogAdapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l glogAdapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l glogAdapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l glogAdapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l glogAdapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if fl, ok := l.inner.(glog.FieldsLogger); ok {
		clone := make(map[string]any, len(fields))
		for key, value := range fields {
			clone[key] = value
		}
		return glogAdapter{inner: fl.WithFields(clone)}
	}
	// Not a FieldsLogger: flatten to sorted key/value pairs so output stays
	// deterministic.
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	if with, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return glogAdapter{inner: with.With(args...)}
	}
	return l
}

func (l glogAdapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	if inner := l.inner.WithContext(ctx); inner != nil {
		return glogAdapter{inner: inner}
	}
	return l
}
