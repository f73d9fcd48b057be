// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// GraphConfig holds settings for the SQLite research graph.
type GraphConfig struct {
	// Path is the SQLite database file (default "data/graph.db").
	Path string `json:"path" yaml:"path" mapstructure:"path" validate:"required"`

	// QueryTimeout bounds each signal query. Zero disables the bound and
	// leaves cancellation to the caller's context.
	QueryTimeout time.Duration `json:"query_timeout" yaml:"query_timeout" mapstructure:"query_timeout" validate:"gte=0"`
}

// RecommendConfig holds settings for the ranking pass.
type RecommendConfig struct {
	// DefaultLimit is used when a caller asks for zero results (default 10).
	DefaultLimit int `json:"default_limit" yaml:"default_limit" mapstructure:"default_limit" validate:"gte=1"`

	// MaxLimit caps the number of recommendations per request (default 100).
	MaxLimit int `json:"max_limit" yaml:"max_limit" mapstructure:"max_limit" validate:"gtefield=DefaultLimit"`

	// PopularityScale is the incoming-citation count at which popularity
	// saturates to 1.0 (default 100).
	PopularityScale float64 `json:"popularity_scale" yaml:"popularity_scale" mapstructure:"popularity_scale" validate:"gt=0"`
}

// ServerConfig holds settings for the HTTP surface.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr" validate:"required"`

	// ReadTimeout and WriteTimeout bound request handling.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"omitempty,oneof=trace debug info warn warning error disabled"`

	// Format is json or console (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"omitempty,oneof=json console"`
}

// Config groups all settings for the service.
type Config struct {
	Graph     GraphConfig     `json:"graph" yaml:"graph" mapstructure:"graph"`
	Recommend RecommendConfig `json:"recommend" yaml:"recommend" mapstructure:"recommend"`
	Server    ServerConfig    `json:"server" yaml:"server" mapstructure:"server"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() Config {
	return Config{
		Graph: GraphConfig{
			Path:         "data/graph.db",
			QueryTimeout: 5 * time.Second,
		},
		Recommend: RecommendConfig{
			DefaultLimit:    10,
			MaxLimit:        100,
			PopularityScale: 100,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
