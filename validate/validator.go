package validate

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pna/model"
)

// Config holds validation configuration
type Config struct {
	// MaxFieldLength is the default rune limit for every field (default: 120)
	MaxFieldLength int

	// FieldLimits overrides MaxFieldLength per field
	// (default: number_range 400)
	FieldLimits map[model.Field]int

	// Allowlist lists the numeral tokens accepted in place names
	Allowlist Allowlist

	// Regions is the closed set of voivodeship names (default: [Regions])
	Regions []string

	// Workers bounds the per-record check goroutines (default: GOMAXPROCS)
	Workers int

	// ChunkSize is the number of records checked per goroutine (default: 1024)
	ChunkSize int
}

// DefaultConfig returns the default validation configuration
func DefaultConfig() Config {
	return Config{
		MaxFieldLength: 120,
		FieldLimits:    map[model.Field]int{model.NumberRange: 400},
		Allowlist:      DefaultAllowlist(),
		Regions:        Regions(),
		Workers:        runtime.GOMAXPROCS(0),
		ChunkSize:      1024,
	}
}

func (c Config) limit(f model.Field) int {
	if n, ok := c.FieldLimits[f]; ok && n > 0 {
		return n
	}
	if c.MaxFieldLength > 0 {
		return c.MaxFieldLength
	}
	return DefaultConfig().MaxFieldLength
}

// Validator flags records. It is safe for concurrent use.
type Validator struct {
	config  Config
	regions regionSet
}

// New creates a Validator. Zero fields of cfg fall back to the defaults.
func New(cfg Config) *Validator {
	def := DefaultConfig()
	if cfg.MaxFieldLength <= 0 {
		cfg.MaxFieldLength = def.MaxFieldLength
	}
	if cfg.FieldLimits == nil {
		cfg.FieldLimits = def.FieldLimits
	}
	if cfg.Allowlist == nil {
		cfg.Allowlist = def.Allowlist
	}
	if len(cfg.Regions) == 0 {
		cfg.Regions = def.Regions
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	return &Validator{config: cfg, regions: newRegionSet(cfg.Regions)}
}

// Config returns the effective configuration.
func (v *Validator) Config() Config {
	return v.config
}

// Validate returns a copy of records with flags added. Existing flags are
// kept. The result has the same length and order as the input.
func (v *Validator) Validate(records []model.Record) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)

	var g errgroup.Group
	g.SetLimit(v.config.Workers)
	for start := 0; start < len(out); start += v.config.ChunkSize {
		end := start + v.config.ChunkSize
		if end > len(out) {
			end = len(out)
		}
		chunk := out[start:end]
		g.Go(func() error {
			for i := range chunk {
				chunk[i].Flags = chunk[i].Flags.Union(v.checkRecord(chunk[i]))
			}
			return nil
		})
	}
	// Checks never fail; Wait is the barrier before the duplicate pass.
	_ = g.Wait()

	idx := BuildIndex(out)
	for i := range out {
		if idx.Conflicting(out[i].PostalCode) {
			out[i].Flags = out[i].Flags.Add(model.DuplicatePNACrossWojewodztwo)
		}
	}
	return out
}

// Validate flags records with the default configuration.
func Validate(records []model.Record) []model.Record {
	return New(DefaultConfig()).Validate(records)
}
