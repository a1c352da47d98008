package httpvalidator

import (
	"github.com/erraggy/swaggerguard/oaserrors"
	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

// defaultMaxBodySize is used when no limit is configured.
const defaultMaxBodySize int64 = 10 << 20

// Option is a functional option for configuring a Validator.
type Option func(*config) error

// config holds the configuration for validation operations.
type config struct {
	compiler    *validator.Compiler
	logger      schema.Logger
	maxBodySize int64
	metrics     *Metrics
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		compiler:    validator.Default(),
		maxBodySize: defaultMaxBodySize,
	}
}

// WithCompiler sets the validator compiler, and with it the format
// registries parameters are checked against.
func WithCompiler(c *validator.Compiler) Option {
	return func(cfg *config) error {
		if c == nil {
			return &oaserrors.ConfigError{Option: "WithCompiler", Message: "compiler cannot be nil"}
		}
		cfg.compiler = c
		return nil
	}
}

// WithLogger sets a structured logger. Rejected requests are logged at
// debug level.
func WithLogger(l schema.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxBodySize sets the maximum request body size in bytes.
// Bodies exceeding this limit make the request invalid.
// Zero selects the default of 10 MiB.
func WithMaxBodySize(n int64) Option {
	return func(cfg *config) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "WithMaxBodySize", Value: n, Message: "cannot be negative"}
		}
		if n == 0 {
			n = defaultMaxBodySize
		}
		cfg.maxBodySize = n
		return nil
	}
}

// WithMetrics reports every validated request to m. See NewMetrics.
func WithMetrics(m *Metrics) Option {
	return func(cfg *config) error {
		if m == nil {
			return &oaserrors.ConfigError{Option: "WithMetrics", Message: "metrics cannot be nil"}
		}
		cfg.metrics = m
		return nil
	}
}
