// Package config provides configuration for the pna command. Values come
// from environment variables (optionally via a .env file) with defaults,
// and command-line flags override them.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Input      InputConfig
	Output     OutputConfig
	Extraction ExtractionConfig
	Validation ValidationConfig
	Database   DatabaseConfig
	Server     ServerConfig
	Logging    LoggingConfig
}

// InputConfig selects the register source.
type InputConfig struct {
	// PDFPath is the register PDF, scan directory or raw dump to read
	PDFPath string `env:"PNA_PDF_PATH" envAlt:"PDF_PATH" default:"data/oficjalny_spis_pna_2025.pdf"`

	// Format is auto, pdf, raw-csv, image or images (default: auto)
	Format string `env:"PNA_SOURCE_FORMAT" envAlt:"SOURCE_FORMAT" default:"auto"`

	// PageRange is the inclusive page range "start-end"; empty reads every page
	PageRange string `env:"PNA_PAGE_RANGE" envAlt:"PAGE_RANGE" default:"3-1672"`

	// RawEncoding is the text encoding of raw dumps read back
	RawEncoding string `env:"PNA_RAW_ENCODING" envAlt:"RAW_ENCODING" default:"utf-8"`

	// Preflight validates the PDF structure before extraction
	Preflight bool `env:"PNA_PREFLIGHT" envAlt:"PREFLIGHT" default:"false"`
}

// OutputConfig selects what is written.
type OutputConfig struct {
	// Path is the record CSV destination
	Path string `env:"PNA_OUTPUT_PATH" envAlt:"OUTPUT_PATH" default:"postal_codes_poland.csv"`

	// RawDumpPath persists the unreconciled rows when set
	RawDumpPath string `env:"PNA_RAW_DUMP_PATH" envAlt:"RAW_DUMP_PATH"`

	// HTMLReportPath writes a review report when set
	HTMLReportPath string `env:"PNA_HTML_REPORT_PATH" envAlt:"HTML_REPORT_PATH"`

	// SkipValidationFlags omits every flag column
	SkipValidationFlags bool `env:"PNA_SKIP_VALIDATION_FLAGS" envAlt:"SKIP_VALIDATION_FLAGS" default:"false"`

	// SuppressFlags omits individual flag columns (comma-separated names)
	SuppressFlags []string `env:"PNA_SUPPRESS_FLAGS" envAlt:"SUPPRESS_FLAGS"`
}

// ExtractionConfig tunes the raw row source.
type ExtractionConfig struct {
	// Profile is the column layout name (default: spis-pna-2025)
	Profile string `env:"PNA_LAYOUT_PROFILE" envAlt:"LAYOUT_PROFILE" default:"spis-pna-2025"`

	// TableArea overrides the profile's table area as "x1,y1,x2,y2"
	TableArea string `env:"PNA_TABLE_AREA" envAlt:"TABLE_AREA"`

	// ColumnSeparators overrides the profile's column separators
	// (comma-separated X positions, as printed by "pna calibrate")
	ColumnSeparators string `env:"PNA_COLUMN_SEPARATORS" envAlt:"COLUMN_SEPARATORS"`

	// RowTolerance overrides the profile's row grouping tolerance in points
	RowTolerance float64 `env:"PNA_ROW_TOLERANCE" envAlt:"ROW_TOLERANCE"`

	// OCRLanguage is the Tesseract language for scans (default: pol)
	OCRLanguage string `env:"PNA_OCR_LANGUAGE" envAlt:"OCR_LANGUAGE" default:"pol"`

	// OCRDPI is the resolution of the scans (default: 300)
	OCRDPI int `env:"PNA_OCR_DPI" envAlt:"OCR_DPI" default:"300"`

	// RepairGmina moves gmina names merged into number ranges back
	RepairGmina bool `env:"PNA_REPAIR_GMINA" envAlt:"REPAIR_GMINA" default:"false"`
}

// ValidationConfig tunes record validation.
type ValidationConfig struct {
	// MaxFieldLength is the rune limit per field (default: 120)
	MaxFieldLength int `env:"PNA_MAX_FIELD_LENGTH" envAlt:"MAX_FIELD_LENGTH" default:"120"`

	// NumeralAllowlist replaces the accepted numeral patterns
	// (comma-separated regular expressions)
	NumeralAllowlist []string `env:"PNA_NUMERAL_ALLOWLIST" envAlt:"NUMERAL_ALLOWLIST"`
}

// DatabaseConfig holds the optional PostgreSQL sink settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string; empty disables the sink
	URL string `env:"PNA_DATABASE_URL" envAlt:"DATABASE_URL"`

	// Table receives the records (default: pna_records)
	Table string `env:"PNA_DATABASE_TABLE" envAlt:"DATABASE_TABLE" default:"pna_records"`
}

// ServerConfig holds review API settings.
type ServerConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `env:"PNA_SERVER_ADDR" envAlt:"SERVER_ADDR" default:":8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"PNA_SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"PNA_SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"PNA_SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"PNA_SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"PNA_LOG_LEVEL" envAlt:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"PNA_LOG_FORMAT" envAlt:"LOG_FORMAT" default:"text"`

	// Verbose logs progress and diagnostics; it implies level debug
	Verbose bool `env:"PNA_VERBOSE" envAlt:"VERBOSE" default:"false"`
}

// EffectiveLevel returns the log level after applying Verbose.
func (c LoggingConfig) EffectiveLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.Level
}
