package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/pozitronik/fpdb"
)

// EscapeNone disables brace escaping when used as the escape character.
const EscapeNone = "none"

// Config holds the configuration of the fpdb command.
// Configuration can come from a YAML or JSON file, or environment variables.
// Environment variables always override file values.
type Config struct {
	// Template rendering settings
	Template TemplateConfig `yaml:"template" json:"template"`

	// Optional MySQL connection used to execute rendered queries
	Database DatabaseConfig `yaml:"database" json:"database"`

	// Logging level: debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level" env:"FPDB_LOG_LEVEL" env-default:"info"`
}

// TemplateConfig mirrors the fields of fpdb.Builder.
type TemplateConfig struct {
	ValueQuote string `yaml:"value_quote" json:"value_quote" env:"FPDB_VALUE_QUOTE" env-default:"'"`
	IdentQuote string "yaml:\"ident_quote\" json:\"ident_quote\" env:\"FPDB_IDENT_QUOTE\" env-default:\"`\""

	// A single character, or "none" to disable brace escaping.
	EscapeChar string `yaml:"escape_char" json:"escape_char" env:"FPDB_ESCAPE_CHAR" env-default:"/"`

	// Disables "??" as a literal question mark.
	NoMarkerEscape bool `yaml:"no_marker_escape" json:"no_marker_escape" env:"FPDB_NO_MARKER_ESCAPE"`

	// String arguments equal to this are treated as the skip sentinel.
	SkipMarker string `yaml:"skip_marker" json:"skip_marker" env:"FPDB_SKIP_MARKER" env-default:"/*!IGNORE!*/"`

	SkipQuoted bool `yaml:"skip_quoted" json:"skip_quoted" env:"FPDB_SKIP_QUOTED"`
	NoCache    bool `yaml:"no_cache" json:"no_cache" env:"FPDB_NO_CACHE"`
}

// DatabaseConfig holds the MySQL connection settings.
type DatabaseConfig struct {
	// Data source name in the go-sql-driver/mysql format. Empty disables execution.
	DSN     string        `yaml:"dsn" json:"dsn" env:"FPDB_DSN"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" env:"FPDB_TIMEOUT" env-default:"30s"`
}

// Load reads configuration from the given file with environment variable
// overrides. An empty path reads only the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Template.EscapeChar != EscapeNone && len(c.Template.EscapeChar) != 1 {
		return fmt.Errorf("escape_char must be a single byte or %q, got %q", EscapeNone, c.Template.EscapeChar)
	}
	if c.Database.Timeout < 0 {
		return fmt.Errorf("database timeout must not be negative, got %v", c.Database.Timeout)
	}
	return nil
}

// Builder returns a template builder configured from the template settings.
func (c *Config) Builder() fpdb.Builder {
	bui := fpdb.New()
	bui.ValueQuote = c.Template.ValueQuote
	bui.IdentQuote = c.Template.IdentQuote
	bui.EscapeChar = c.escapeChar()
	bui.MarkerEscape = !c.Template.NoMarkerEscape
	bui.SkipQuoted = c.Template.SkipQuoted
	bui.NoCache = c.Template.NoCache
	if c.Template.SkipMarker != "" {
		bui.SkipMarker = c.Template.SkipMarker
	}
	return bui
}

func (c *Config) escapeChar() byte {
	if c.Template.EscapeChar == EscapeNone || c.Template.EscapeChar == "" {
		return 0
	}
	return c.Template.EscapeChar[0]
}
