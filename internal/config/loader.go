package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/tsawler/pna/format"
	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/source"
	"github.com/tsawler/pna/tables"
	"github.com/tsawler/pna/validate"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("validation failed")

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Read populates a Config from environment variables and defaults
// without validating it, so callers can apply overrides first.
func Read() (*Config, error) {
	cfg := &Config{}
	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	return cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main() where early termination is desired.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeOf(time.Time{}) {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		envAlt := field.Tag.Get("envAlt")
		defaultVal := field.Tag.Get("default")
		required := field.Tag.Get("required") == "true"

		if envName == "" {
			continue
		}

		// Try primary env var, then alternate
		value := os.Getenv(envName)
		if value == "" && envAlt != "" {
			value = os.Getenv(envAlt)
		}

		if value == "" {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = defaultVal
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer: %w", err)
			}
			field.SetInt(i)
		}

	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		field.Set(reflect.ValueOf(SplitList(value)))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// SplitList splits a comma-separated value and drops empty items.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.Input.PDFPath == "" {
		errs = append(errs, "PDF_PATH is required")
	}
	if _, err := format.Parse(c.Input.Format); err != nil {
		errs = append(errs, fmt.Sprintf("SOURCE_FORMAT: %v", err))
	}
	if _, _, err := source.ParsePageRange(c.Input.PageRange); err != nil {
		errs = append(errs, fmt.Sprintf("PAGE_RANGE: %v", err))
	}
	if _, err := source.Decoding(c.Input.RawEncoding); err != nil {
		errs = append(errs, fmt.Sprintf("RAW_ENCODING: %v", err))
	}

	if c.Output.Path == "" {
		errs = append(errs, "OUTPUT_PATH is required")
	}
	if _, err := c.SuppressedFlags(); err != nil {
		errs = append(errs, fmt.Sprintf("SUPPRESS_FLAGS: %v", err))
	}

	if _, ok := tables.GetProfile(c.Extraction.Profile); !ok {
		errs = append(errs, fmt.Sprintf("LAYOUT_PROFILE (%q) must be one of: %s",
			c.Extraction.Profile, strings.Join(tables.ListProfiles(), ", ")))
	}
	if _, _, err := c.Layout(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Extraction.RowTolerance < 0 {
		errs = append(errs, "ROW_TOLERANCE must be non-negative")
	}
	if c.Extraction.OCRDPI <= 0 {
		errs = append(errs, "OCR_DPI must be positive")
	}

	if c.Validation.MaxFieldLength <= 0 {
		errs = append(errs, "MAX_FIELD_LENGTH must be positive")
	}
	if _, err := c.Allowlist(); err != nil {
		errs = append(errs, fmt.Sprintf("NUMERAL_ALLOWLIST: %v", err))
	}

	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "PNA_SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalid, strings.Join(errs, "\n  - "))
	}

	return nil
}

// PageRange returns the configured inclusive page range; 0, 0 means all pages.
func (c *Config) PageRange() (start, end int, err error) {
	return source.ParsePageRange(c.Input.PageRange)
}

// Layout parses the table area and column separator overrides. Unset
// values are returned as a zero area and nil separators.
func (c *Config) Layout() (area model.BBox, separators []float64, err error) {
	if c.Extraction.TableArea != "" {
		if area, err = tables.ParseArea(c.Extraction.TableArea); err != nil {
			return model.BBox{}, nil, fmt.Errorf("TABLE_AREA: %w", err)
		}
	}
	if c.Extraction.ColumnSeparators != "" {
		if separators, err = tables.ParseSeparators(c.Extraction.ColumnSeparators); err != nil {
			return model.BBox{}, nil, fmt.Errorf("COLUMN_SEPARATORS: %w", err)
		}
	}
	return area, separators, nil
}

// SuppressedFlags parses SuppressFlags.
func (c *Config) SuppressedFlags() (model.FlagSet, error) {
	var set model.FlagSet
	for _, name := range c.Output.SuppressFlags {
		k, err := model.ParseFlagKind(name)
		if err != nil {
			return 0, err
		}
		set = set.Add(k)
	}
	return set, nil
}

// Allowlist returns the numeral allowlist, or the default when none is
// configured.
func (c *Config) Allowlist() (validate.Allowlist, error) {
	if len(c.Validation.NumeralAllowlist) == 0 {
		return validate.DefaultAllowlist(), nil
	}
	return validate.ParseAllowlist(c.Validation.NumeralAllowlist)
}

// ValidateConfig returns the validation settings derived from the config.
func (c *Config) ValidateConfig() (validate.Config, error) {
	allow, err := c.Allowlist()
	if err != nil {
		return validate.Config{}, err
	}
	vc := validate.DefaultConfig()
	vc.MaxFieldLength = c.Validation.MaxFieldLength
	vc.Allowlist = allow
	return vc, nil
}

// String returns a safe string representation of the config for logging.
// The database password is masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Input: {Path: %q, Format: %q, Pages: %q}, ",
		c.Input.PDFPath, c.Input.Format, c.Input.PageRange))
	b.WriteString(fmt.Sprintf("Output: {Path: %q, RawDump: %q, SkipFlags: %v}, ",
		c.Output.Path, c.Output.RawDumpPath, c.Output.SkipValidationFlags))
	b.WriteString(fmt.Sprintf("Extraction: {Profile: %q, RepairGmina: %v}, ",
		c.Extraction.Profile, c.Extraction.RepairGmina))
	b.WriteString(fmt.Sprintf("Database: {URL: %s, Table: %q}, ",
		maskURL(c.Database.URL), c.Database.Table))
	b.WriteString(fmt.Sprintf("Server: {Addr: %q}, ", c.Server.Addr))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q, Verbose: %v}",
		c.Logging.Level, c.Logging.Format, c.Logging.Verbose))
	b.WriteString("}")
	return b.String()
}

func maskURL(raw string) string {
	if raw == "" {
		return `""`
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[MASKED]"
	}
	return u.Redacted()
}
