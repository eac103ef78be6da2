package config

import "time"

// Config is the server configuration.
type Config struct {
	Server      ServerConfig           `koanf:"server"`
	Log         LogConfig              `koanf:"log"`
	Strict      bool                   `koanf:"strict"`
	Normalizers map[string]RangeConfig `koanf:"normalizers" validate:"required,min=1,dive"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int           `koanf:"port"             validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `koanf:"read_timeout"     validate:"gt=0"`
	WriteTimeout   time.Duration `koanf:"write_timeout"    validate:"gt=0"`
	MaxRequestSize int           `koanf:"max_request_size" validate:"gt=0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	File string `koanf:"file"`
	JSON bool   `koanf:"json"`
}

// RangeConfig describes one named normalizer.
type RangeConfig struct {
	Type string  `koanf:"type" validate:"required,oneof=linear log logarithmic"`
	Min  float64 `koanf:"min"`
	Max  float64 `koanf:"max"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxRequestSize: 1024 * 1024,
		},
		Log: LogConfig{
			JSON: true,
		},
		Normalizers: DefaultNormalizers(),
	}
}

// DefaultNormalizers is used when no normalizer is configured.
func DefaultNormalizers() map[string]RangeConfig {
	return map[string]RangeConfig{
		"percent":   {Type: "linear", Min: 0, Max: 100},
		"frequency": {Type: "log", Min: 20, Max: 20000},
	}
}
