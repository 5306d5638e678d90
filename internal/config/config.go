// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// Default values used when neither the config file nor a flag sets a field
const (
	DefaultContentDir    = "resume-points"
	DefaultStore         = "file"
	DefaultStatePath     = ".resume-builder/state.json"
	DefaultBadgerPath    = ".resume-builder/badger"
	DefaultExporter      = "chrome"
	DefaultExportTimeout = 60
	DefaultOutput        = "resume.pdf"
	DefaultHost          = "127.0.0.1"
	DefaultPort          = 8080
)

// Environment variables consulted for the database URL, in order
var databaseURLEnv = []string{"RESUME_DATABASE_URL", "DATABASE_URL"}

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Content and state
	ContentDir  string `json:"content_dir,omitempty" yaml:"content_dir,omitempty"`                                          // Directory holding experience/, projects/, education/, skills/
	Store       string `json:"store,omitempty" yaml:"store,omitempty" validate:"omitempty,oneof=memory file badger postgres"` // State backend
	StatePath   string `json:"state_path,omitempty" yaml:"state_path,omitempty"`                                            // State file (file) or directory (badger)
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`                                        // PostgreSQL connection URL

	// Export
	Exporter             string `json:"exporter,omitempty" yaml:"exporter,omitempty" validate:"omitempty,oneof=chrome fpdf"`
	ExportTimeoutSeconds int    `json:"export_timeout_seconds,omitempty" yaml:"export_timeout_seconds,omitempty"`
	Output               string `json:"output,omitempty" yaml:"output,omitempty"`           // Default PDF output path
	ChromePath           string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"` // Chrome binary; empty means search PATH

	// Header printed at the top of the page
	Name  string   `json:"name,omitempty" yaml:"name,omitempty"`
	Email string   `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Phone string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Links []string `json:"links,omitempty" yaml:"links,omitempty"`

	// Local editor API
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

var validate = validator.New()

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		ContentDir:           DefaultContentDir,
		Store:                DefaultStore,
		Exporter:             DefaultExporter,
		ExportTimeoutSeconds: DefaultExportTimeout,
		Output:               DefaultOutput,
		Host:                 DefaultHost,
		Port:                 DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// The document is checked against the config schema before decoding.
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
	var document map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	if document != nil {
		if err := schemas.ValidateConfig(document); err != nil {
			return nil, fmt.Errorf("config file %s does not match schema: %w", path, err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Validate numeric ranges
	if c.ExportTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'export_timeout_seconds' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.Store == "postgres" && c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required when store is postgres")
	}

	// Validate the content directory exists (if specified)
	if c.ContentDir != "" {
		if info, err := os.Stat(c.ContentDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: content_dir is not a directory: %s", c.ContentDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ContentDir == "" {
		result.ContentDir = defaults.ContentDir
	}
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.StatePath == "" {
		result.StatePath = defaults.StatePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Exporter == "" {
		result.Exporter = defaults.Exporter
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.Name == "" {
		result.Name = defaults.Name
	}
	if result.Email == "" {
		result.Email = defaults.Email
	}
	if result.Phone == "" {
		result.Phone = defaults.Phone
	}
	if len(result.Links) == 0 {
		result.Links = defaults.Links
	}
	if result.Host == "" {
		result.Host = defaults.Host
	}

	// Int fields: use default if zero
	if result.ExportTimeoutSeconds == 0 {
		result.ExportTimeoutSeconds = defaults.ExportTimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills the database URL from RESUME_DATABASE_URL or DATABASE_URL when unset
func (c *Config) ApplyEnv() {
	if c.DatabaseURL != "" {
		return
	}
	for _, key := range databaseURLEnv {
		if v := os.Getenv(key); v != "" {
			c.DatabaseURL = v
			return
		}
	}
}

// ResolvedStatePath returns the state location for the configured backend
func (c *Config) ResolvedStatePath() string {
	if c.StatePath != "" {
		return c.StatePath
	}
	if c.Store == "badger" {
		return DefaultBadgerPath
	}
	return DefaultStatePath
}

// ExportTimeout returns the export timeout as a duration
func (c *Config) ExportTimeout() time.Duration {
	if c.ExportTimeoutSeconds <= 0 {
		return DefaultExportTimeout * time.Second
	}
	return time.Duration(c.ExportTimeoutSeconds) * time.Second
}

// Contact returns the page header built from the configuration
func (c *Config) Contact() types.Contact {
	return types.Contact{
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
		Links: append([]string(nil), c.Links...),
	}
}

// Addr returns the host:port the editor API listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
