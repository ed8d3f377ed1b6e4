package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are filled from Defaults by Finalize.
type Config struct {
	Addr    string `json:"addr" yaml:"addr" toml:"addr" envconfig:"ADDR" validate:"required"`
	Backend string `json:"backend" yaml:"backend" toml:"backend" envconfig:"BACKEND" validate:"oneof=prose remote"`

	// ModelDir/ModelName select an on-disk prose model; empty ModelName uses the embedded one.
	ModelDir        string   `json:"model_dir" yaml:"model_dir" toml:"model_dir" envconfig:"MODEL_DIR"`
	ModelName       string   `json:"model_name" yaml:"model_name" toml:"model_name" envconfig:"MODEL_NAME"`
	ModelURL        string   `json:"model_url" yaml:"model_url" toml:"model_url" envconfig:"MODEL_URL" validate:"omitempty,url"`
	DownloadRetries int      `json:"download_retries" yaml:"download_retries" toml:"download_retries" envconfig:"DOWNLOAD_RETRIES" validate:"gte=0"`
	DownloadTimeout Duration `json:"download_timeout" yaml:"download_timeout" toml:"download_timeout" envconfig:"DOWNLOAD_TIMEOUT" validate:"gte=0"`

	RemoteURL     string   `json:"remote_url" yaml:"remote_url" toml:"remote_url" envconfig:"REMOTE_URL" validate:"required_if=Backend remote,omitempty,url"`
	RemoteTimeout Duration `json:"remote_timeout" yaml:"remote_timeout" toml:"remote_timeout" envconfig:"REMOTE_TIMEOUT" validate:"gte=0"`

	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" envconfig:"MAX_BODY_BYTES" validate:"gte=0"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error off"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format" envconfig:"LOG_FORMAT" validate:"oneof=json console"`

	CORSEnabled        bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" envconfig:"CORS_ENABLED"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins" envconfig:"CORS_ALLOWED_ORIGINS"`

	OTLPEndpoint string `json:"otlp_endpoint" yaml:"otlp_endpoint" toml:"otlp_endpoint" envconfig:"OTLP_ENDPOINT"`
}

// Duration is a time.Duration that reads "30s"-style strings from every config source.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
