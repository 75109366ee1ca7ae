package pna

import (
	"log/slog"

	"github.com/tsawler/pna/internal/logging"
	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/tables"
	"github.com/tsawler/pna/validate"
)

// processOptions holds the configuration of a Processor.
type processOptions struct {
	// Page selection (1-indexed, nil means all pages)
	pages []int

	// Source settings
	profile      string
	rowTolerance float64
	area         model.BBox
	separators   []float64
	encoding     string
	ocrLanguage  string
	ocrDPI       int
	preflight    bool

	// Pipeline settings
	rawDumpPath string
	maxPasses   int
	repairGmina bool
	validation  validate.Config

	logger *slog.Logger
}

// defaultOptions returns the default processing options.
func defaultOptions() processOptions {
	return processOptions{
		pages:      nil,
		profile:    tables.DefaultProfile,
		validation: validate.DefaultConfig(),
		logger:     logging.Discard(),
	}
}

// clone creates a deep copy of processOptions.
func (o processOptions) clone() processOptions {
	newOpts := o

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	if o.separators != nil {
		newOpts.separators = make([]float64, len(o.separators))
		copy(newOpts.separators, o.separators)
	}

	if o.validation.FieldLimits != nil {
		newOpts.validation.FieldLimits = make(map[model.Field]int, len(o.validation.FieldLimits))
		for f, n := range o.validation.FieldLimits {
			newOpts.validation.FieldLimits[f] = n
		}
	}

	return newOpts
}
