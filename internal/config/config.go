package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Prettier PrettierConfig `yaml:"prettier"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// PrettierConfig holds caller overrides for the response prettier. Nil
// fields keep the compiled-in defaults.
type PrettierConfig struct {
	Decorator             *string        `yaml:"decorator"`
	Query                 *QueryTrigger  `yaml:"query"`
	AlwaysOn              *bool          `yaml:"always_on"`
	FallbackOnError       *bool          `yaml:"fallback_on_error"`
	EnableOnSendHook      *bool          `yaml:"enable_on_send_hook"`
	OverrideContentLength *bool          `yaml:"override_content_length"`
	FormatterOptions      map[string]any `yaml:"formatter_options"`
}

// QueryTrigger names the query parameter that switches formatting on for a
// single request. A disabled trigger never matches.
type QueryTrigger struct {
	Name     string
	Value    string
	Disabled bool
}

// UnmarshalYAML decodes the prettier section. yaml.v3 leaves a pointer nil
// for an explicit null without calling its unmarshaler, so "query: null" is
// picked out of the node here and disables query triggering.
func (p *PrettierConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain PrettierConfig
	var out plain
	if err := node.Decode(&out); err != nil {
		return err
	}
	*p = PrettierConfig(out)

	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "query" && node.Content[i+1].Tag == "!!null" {
			p.Query = &QueryTrigger{Disabled: true}
		}
	}
	return nil
}

// UnmarshalYAML accepts a mapping with name and value, or false (or an empty
// string) which disables query triggering.
func (q *QueryTrigger) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			*q = QueryTrigger{Disabled: true}
			return nil
		}
		on, err := strconv.ParseBool(node.Value)
		if err != nil || on {
			return errors.Errorf("line %d: query must be a mapping or false", node.Line)
		}
		*q = QueryTrigger{Disabled: true}
		return nil
	case yaml.MappingNode:
		var out QueryTrigger
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if val.Kind != yaml.ScalarNode {
				return errors.Errorf("line %d: query.%s must be a scalar", val.Line, key.Value)
			}
			switch key.Value {
			case "name":
				out.Name = val.Value
			case "value":
				out.Value = val.Value
			}
		}
		*q = out
		return nil
	default:
		return errors.Errorf("line %d: query must be a mapping or false", node.Line)
	}
}

// Bool returns a pointer to b, for building PrettierConfig literals.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s, for building PrettierConfig literals.
func String(s string) *string { return &s }

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:8080"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file (if present) before reading env vars. A missing
// config file is not an error; defaults are used instead.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(err, "SERVER_PORT")
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if err := applyPrettierEnv(&cfg.Prettier); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyPrettierEnv(p *PrettierConfig) error {
	if v := os.Getenv("PRETTIER_DECORATOR"); v != "" {
		p.Decorator = String(v)
	}

	bools := []struct {
		env string
		dst **bool
	}{
		{"PRETTIER_ALWAYS_ON", &p.AlwaysOn},
		{"PRETTIER_FALLBACK_ON_ERROR", &p.FallbackOnError},
		{"PRETTIER_ENABLE_ON_SEND_HOOK", &p.EnableOnSendHook},
		{"PRETTIER_OVERRIDE_CONTENT_LENGTH", &p.OverrideContentLength},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, b.env)
		}
		*b.dst = Bool(parsed)
	}

	if v := os.Getenv("PRETTIER_QUERY_DISABLED"); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "PRETTIER_QUERY_DISABLED")
		}
		if disabled {
			p.Query = &QueryTrigger{Disabled: true}
		}
	}
	name, value := os.Getenv("PRETTIER_QUERY_NAME"), os.Getenv("PRETTIER_QUERY_VALUE")
	if name != "" || value != "" {
		q := QueryTrigger{}
		if p.Query != nil {
			q = *p.Query
		}
		if name != "" {
			q.Name = name
		}
		if value != "" {
			q.Value = value
		}
		q.Disabled = false
		p.Query = &q
	}

	if v := os.Getenv("PRETTIER_GRAMMAR"); v != "" {
		setOption(p, "grammar", strings.ToLower(v))
	}
	if v := os.Getenv("PRETTIER_INDENT_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "PRETTIER_INDENT_WIDTH")
		}
		setOption(p, "indentWidth", n)
	}
	return nil
}

func setOption(p *PrettierConfig, key string, v any) {
	if p.FormatterOptions == nil {
		p.FormatterOptions = make(map[string]any)
	}
	p.FormatterOptions[key] = v
}
