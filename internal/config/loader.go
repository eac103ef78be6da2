package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables read by the loader.
const EnvPrefix = "RANGENORM_"

// Loader merges defaults, an optional YAML file and the environment.
// Later sources take precedence.
type Loader struct {
	koanf     *koanf.Koanf
	validator *validator.Validate
	path      string
}

// NewLoader creates a loader. An empty path skips the file source.
func NewLoader(path string) *Loader {
	return &Loader{
		koanf:     koanf.New("."),
		validator: validator.New(),
		path:      path,
	}
}

// Load reads and validates the configuration.
func Load(path string) (*Config, error) {
	return NewLoader(path).Load()
}

// Load reads and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, err
	}
	if err := l.loadFile(); err != nil {
		return nil, err
	}
	if err := l.loadEnvironment(); err != nil {
		return nil, err
	}
	return l.unmarshalAndValidate()
}

// defaults holds the sections loaded through the structs provider.
type defaults struct {
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`
	Strict bool         `koanf:"strict"`
}

func (l *Loader) loadDefaults() error {
	d := Default()
	if err := l.koanf.Load(structs.Provider(defaults{
		Server: d.Server,
		Log:    d.Log,
		Strict: d.Strict,
	}, "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	normalizers := make(map[string]any, len(d.Normalizers))
	for name, rc := range d.Normalizers {
		normalizers[name] = map[string]any{
			"type": rc.Type,
			"min":  rc.Min,
			"max":  rc.Max,
		}
	}
	if err := l.koanf.Load(rawMap{"normalizers": normalizers}, nil); err != nil {
		return fmt.Errorf("failed to load default normalizers: %w", err)
	}
	return nil
}

// loadFile merges the YAML file. A normalizers section in the file replaces
// the default set instead of extending it.
func (l *Loader) loadFile() error {
	if l.path == "" {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	raw = filterNilValues(raw)
	if _, ok := raw["normalizers"]; ok {
		l.koanf.Delete("normalizers")
	}
	if err := l.koanf.Load(rawMap(raw), nil); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	return nil
}

// normalizerFields are the keys a normalizer entry accepts from the environment.
var normalizerFields = map[string]bool{"type": true, "min": true, "max": true}

// transformEnvKey converts RANGENORM_SERVER_READ_TIMEOUT into server.read_timeout
// and RANGENORM_NORMALIZERS_SAMPLE_RATE_MIN into normalizers.sample_rate.min.
// An empty result makes the variable ignored.
func transformEnvKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' })
	switch len(parts) {
	case 0:
		return ""
	case 1:
		if parts[0] == "normalizers" {
			return ""
		}
		return parts[0]
	}

	if parts[0] == "normalizers" {
		field := parts[len(parts)-1]
		if len(parts) < 3 || !normalizerFields[field] {
			return ""
		}
		return "normalizers." + strings.Join(parts[1:len(parts)-1], "_") + "." + field
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

func (l *Loader) loadEnvironment() error {
	if err := l.koanf.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(key), value
		},
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

func (l *Loader) unmarshalAndValidate() (*Config, error) {
	var cfg Config
	if err := l.koanf.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if len(cfg.Normalizers) == 0 {
		cfg.Normalizers = DefaultNormalizers()
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks struct tags and normalizer names.
func (l *Loader) Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("configuration cannot be nil")
	}
	if err := l.validator.Struct(cfg); err != nil {
		return err
	}
	for name := range cfg.Normalizers {
		if strings.TrimSpace(name) == "" {
			return errors.New("normalizer name must not be empty")
		}
	}
	return nil
}

// filterNilValues drops nil entries so they do not override defaults.
func filterNilValues(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			if filtered := filterNilValues(nested); len(filtered) > 0 {
				result[k] = filtered
			}
			continue
		}
		result[k] = v
	}
	return result
}

// rawMap is a koanf.Provider adapter for already decoded map data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, errors.New("ReadBytes not implemented")
}
