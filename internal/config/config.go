// Package config provides configuration loading and validation for the wizard server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendFS       = "fs"
	BackendS3       = "s3"
	BackendLog      = "log"
	BackendAMQP     = "amqp"
)

// Duration is a time.Duration that reads "2s"-style strings from JSON and YAML.
type Duration time.Duration

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"2s\": %w", err)
	}
	return d.parse(s)
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.parse(node.Value)
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// SettingsConfig selects the settings store backend.
type SettingsConfig struct {
	Backend    string `json:"backend,omitempty" yaml:"backend,omitempty"`
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
}

// BlobConfig selects where uploaded resumes are kept.
type BlobConfig struct {
	Backend   string `json:"backend,omitempty" yaml:"backend,omitempty"`
	Dir       string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`
	PathStyle bool   `json:"path_style,omitempty" yaml:"path_style,omitempty"`
}

// HandoffConfig selects where completed profiles are delivered.
type HandoffConfig struct {
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	AMQPURL string `json:"amqp_url,omitempty" yaml:"amqp_url,omitempty"`
	Queue   string `json:"queue,omitempty" yaml:"queue,omitempty"`
}

// Config is the server configuration. All fields are optional; missing values
// are filled by MergeWithDefaults.
type Config struct {
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL

	Settings SettingsConfig `json:"settings,omitempty" yaml:"settings,omitempty"`
	Blob     BlobConfig     `json:"blob,omitempty" yaml:"blob,omitempty"`
	Handoff  HandoffConfig  `json:"handoff,omitempty" yaml:"handoff,omitempty"`

	// Wizard timing
	AutosaveDelay  Duration `json:"autosave_delay,omitempty" yaml:"autosave_delay,omitempty"`
	MilestoneTTL   Duration `json:"milestone_ttl,omitempty" yaml:"milestone_ttl,omitempty"`
	ErrorTTL       Duration `json:"error_ttl,omitempty" yaml:"error_ttl,omitempty"`
	SessionIdleTTL Duration `json:"session_idle_ttl,omitempty" yaml:"session_idle_ttl,omitempty"`

	MaxUploadBytes int64 `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty"`

	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // text or json
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// Defaults is the configuration used for any field left unset.
func Defaults() Config {
	return Config{
		Port:           8080,
		Settings:       SettingsConfig{Backend: BackendSQLite, SQLitePath: "wizard.db"},
		Blob:           BlobConfig{Backend: BackendFS, Dir: "data/resumes", Region: "auto"},
		Handoff:        HandoffConfig{Backend: BackendLog, Queue: "profile.completed"},
		AutosaveDelay:  Duration(2 * time.Second),
		MilestoneTTL:   Duration(4 * time.Second),
		ErrorTTL:       Duration(5 * time.Second),
		SessionIdleTTL: Duration(30 * time.Minute),
		MaxUploadBytes: 10 << 20,
		LogFormat:      "text",
		LogLevel:       "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Empty fields are accepted; they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	for name, d := range map[string]Duration{
		"autosave_delay":   c.AutosaveDelay,
		"milestone_ttl":    c.MilestoneTTL,
		"error_ttl":        c.ErrorTTL,
		"session_idle_ttl": c.SessionIdleTTL,
	} {
		if d < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", name)
		}
	}

	if err := oneOf("settings.backend", c.Settings.Backend, BackendMemory, BackendSQLite, BackendPostgres); err != nil {
		return err
	}
	if err := oneOf("blob.backend", c.Blob.Backend, BackendMemory, BackendFS, BackendS3); err != nil {
		return err
	}
	if err := oneOf("handoff.backend", c.Handoff.Backend, BackendLog, BackendAMQP, BackendPostgres); err != nil {
		return err
	}
	if err := oneOf("log_format", c.LogFormat, "text", "json"); err != nil {
		return err
	}

	// Backend requirements
	if c.Settings.Backend == BackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: settings backend 'postgres' requires 'database_url'")
	}
	if c.Handoff.Backend == BackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: handoff backend 'postgres' requires 'database_url'")
	}
	if c.Handoff.Backend == BackendAMQP && c.Handoff.AMQPURL == "" {
		return fmt.Errorf("config error: handoff backend 'amqp' requires 'handoff.amqp_url'")
	}
	if c.Blob.Backend == BackendS3 && c.Blob.Bucket == "" {
		return fmt.Errorf("config error: blob backend 's3' requires 'blob.bucket'")
	}

	return nil
}

func oneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("config error: '%s' must be one of %s, got %q", field, strings.Join(allowed, ", "), value)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.Settings.Backend == "" {
		result.Settings.Backend = defaults.Settings.Backend
	}
	if result.Settings.SQLitePath == "" {
		result.Settings.SQLitePath = defaults.Settings.SQLitePath
	}

	if result.Blob.Backend == "" {
		result.Blob.Backend = defaults.Blob.Backend
	}
	if result.Blob.Dir == "" {
		result.Blob.Dir = defaults.Blob.Dir
	}
	if result.Blob.Region == "" {
		result.Blob.Region = defaults.Blob.Region
	}

	if result.Handoff.Backend == "" {
		result.Handoff.Backend = defaults.Handoff.Backend
	}
	if result.Handoff.Queue == "" {
		result.Handoff.Queue = defaults.Handoff.Queue
	}

	if result.AutosaveDelay == 0 {
		result.AutosaveDelay = defaults.AutosaveDelay
	}
	if result.MilestoneTTL == 0 {
		result.MilestoneTTL = defaults.MilestoneTTL
	}
	if result.ErrorTTL == 0 {
		result.ErrorTTL = defaults.ErrorTTL
	}
	if result.SessionIdleTTL == 0 {
		result.SessionIdleTTL = defaults.SessionIdleTTL
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	return result
}

// ApplyEnv overrides fields from environment variables. Unset or unparsable
// variables leave the field unchanged.
func (c *Config) ApplyEnv() {
	c.Port = getEnvInt("PORT", c.Port)
	c.DatabaseURL = getEnvString("DATABASE_URL", c.DatabaseURL)

	c.Settings.Backend = getEnvString("SETTINGS_BACKEND", c.Settings.Backend)
	c.Settings.SQLitePath = getEnvString("SETTINGS_SQLITE_PATH", c.Settings.SQLitePath)

	c.Blob.Backend = getEnvString("BLOB_BACKEND", c.Blob.Backend)
	c.Blob.Dir = getEnvString("BLOB_DIR", c.Blob.Dir)
	c.Blob.Bucket = getEnvString("BLOB_S3_BUCKET", c.Blob.Bucket)
	c.Blob.Region = getEnvString("BLOB_S3_REGION", c.Blob.Region)
	c.Blob.Endpoint = getEnvString("BLOB_S3_ENDPOINT", c.Blob.Endpoint)
	c.Blob.AccessKey = getEnvString("BLOB_S3_ACCESS_KEY", c.Blob.AccessKey)
	c.Blob.SecretKey = getEnvString("BLOB_S3_SECRET_KEY", c.Blob.SecretKey)
	c.Blob.PathStyle = getEnvBool("BLOB_S3_PATH_STYLE", c.Blob.PathStyle)

	c.Handoff.Backend = getEnvString("HANDOFF_BACKEND", c.Handoff.Backend)
	c.Handoff.AMQPURL = getEnvString("AMQP_URL", c.Handoff.AMQPURL)
	c.Handoff.Queue = getEnvString("HANDOFF_QUEUE", c.Handoff.Queue)

	c.AutosaveDelay = Duration(getEnvDuration("AUTOSAVE_DELAY", c.AutosaveDelay.D()))
	c.SessionIdleTTL = Duration(getEnvDuration("SESSION_IDLE_TTL", c.SessionIdleTTL.D()))
	c.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(c.MaxUploadBytes)))

	c.LogFormat = getEnvString("LOG_FORMAT", c.LogFormat)
	c.LogLevel = getEnvString("LOG_LEVEL", c.LogLevel)
}

// Load reads path (if non-empty), applies environment overrides, fills
// defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg.MergeWithDefaults(Defaults()), nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
