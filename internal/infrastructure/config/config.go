package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (e.g. WUNDER_API_KEY)
const EnvPrefix = "WUNDER"

// Config holds all application configuration
type Config struct {
	BaseURL           string            `mapstructure:"base_url" validate:"required,url"`
	APIKey            string            `mapstructure:"api_key" validate:"required"`
	PullOrderSettings PullOrderSettings `mapstructure:"pull_order_settings"`
	HTTP              HTTPConfig        `mapstructure:"http"`
	Log               LogConfig         `mapstructure:"log"`
	Archive           ArchiveConfig     `mapstructure:"archive"`
	Telemetry         TelemetryConfig   `mapstructure:"telemetry"`
}

// PullOrderSettings holds the order listing filter and the download directory
type PullOrderSettings struct {
	OrderStateCodes []string `mapstructure:"order_state_codes" validate:"min=1,dive,required"`
	OrderPath       string   `mapstructure:"order_path" validate:"required"`
}

// HTTPConfig holds marketplace client settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"` // 0 = no overall timeout
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	Output string `mapstructure:"output" validate:"oneof=stdout stderr"`
	File   string `mapstructure:"file"` // empty disables the log file
}

// ArchiveConfig holds the optional S3 mirror of downloaded orders
type ArchiveConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Bucket       string `mapstructure:"bucket" validate:"required_if=Enabled true"`
	Endpoint     string `mapstructure:"endpoint" validate:"omitempty,url"`
	Region       string `mapstructure:"region"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
	Prefix       string `mapstructure:"prefix"`
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	CollectorEndpoint string        `mapstructure:"collector_endpoint" validate:"required_if=Enabled true"`
	SamplingRatio     float64       `mapstructure:"sampling_ratio" validate:"gte=0,lte=1"`
	ServiceName       string        `mapstructure:"service_name"`
	Insecure          bool          `mapstructure:"insecure"`
	MetricsInterval   time.Duration `mapstructure:"metrics_interval" validate:"gte=0"`
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with WUNDER_ prefix (e.g., WUNDER_API_KEY)
// 2. The file at path, or config.toml found in . or the user config dir
// 3. Built-in defaults
//
// An explicit path must exist; a missing config.toml in the search paths is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "wunder"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		BaseURL: v.GetString("base_url"),
		APIKey:  v.GetString("api_key"),
		PullOrderSettings: PullOrderSettings{
			OrderStateCodes: splitList(v.GetStringSlice("pull_order_settings.order_state_codes")),
			OrderPath:       v.GetString("pull_order_settings.order_path"),
		},
		HTTP: HTTPConfig{
			Timeout: v.GetDuration("http.timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
			File:   DefaultLogFile,
		},
		Archive: ArchiveConfig{
			Enabled:      v.GetBool("archive.enabled"),
			Bucket:       v.GetString("archive.bucket"),
			Endpoint:     v.GetString("archive.endpoint"),
			Region:       v.GetString("archive.region"),
			AccessKey:    v.GetString("archive.access_key"),
			SecretKey:    v.GetString("archive.secret_key"),
			UsePathStyle: v.GetBool("archive.use_path_style"),
			Prefix:       v.GetString("archive.prefix"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
		},
	}
	// log.file = "" turns file logging off, so only an unset key gets the default
	if v.IsSet("log.file") {
		cfg.Log.File = v.GetString("log.file")
	}
	if !v.IsSet("telemetry.sampling_ratio") {
		cfg.Telemetry.SamplingRatio = 1.0
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultLogFile is appended to on every run unless log.file says otherwise
const DefaultLogFile = "wunder.log"

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.PullOrderSettings.OrderPath == "" {
		cfg.PullOrderSettings.OrderPath = "orders"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Archive.Region == "" {
		cfg.Archive.Region = "us-east-1"
	}
	if cfg.Archive.Prefix == "" {
		cfg.Archive.Prefix = "orders"
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "wunder"
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 15 * time.Second
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report config keys instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, validationMessage(e))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

// validationMessage returns a human-readable message keyed by the config path
func validationMessage(e validator.FieldError) string {
	key := e.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}

	switch e.Tag() {
	case "required", "required_if":
		return key + " is required"
	case "url":
		return key + " must be an absolute URL"
	case "min":
		return key + " must contain at least " + e.Param() + " value(s)"
	case "oneof":
		return key + " must be one of: " + e.Param()
	case "gte":
		return key + " must be greater than or equal to " + e.Param()
	case "lte":
		return key + " must be less than or equal to " + e.Param()
	default:
		return key + " is invalid"
	}
}

// splitList accepts both TOML arrays and comma separated env values
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
