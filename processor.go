package pna

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/pna/format"
	"github.com/tsawler/pna/layout"
	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/reconcile"
	"github.com/tsawler/pna/repair"
	"github.com/tsawler/pna/report"
	"github.com/tsawler/pna/sink"
	"github.com/tsawler/pna/source"
	"github.com/tsawler/pna/tables"
	"github.com/tsawler/pna/validate"
)

// Result is the outcome of a processing run.
type Result struct {
	// RunID identifies the run in database sinks and reports
	RunID uuid.UUID

	// Records are the reconciled, validated records in document order
	Records []model.Record

	// RawRows is the number of physical rows read
	RawRows int

	// Pages is the number of pages read
	Pages int

	// Passes is the number of reconciliation passes
	Passes int

	// Converged is false when reconciliation hit its pass limit
	Converged bool

	// Fixes lists the gmina repairs applied
	Fixes []repair.Fix

	// Summary holds counts over Records
	Summary report.Summary

	// Duration is the wall time of the run
	Duration time.Duration
}

// Processor provides a fluent interface for turning the register into
// records. Each configuration method returns a new Processor, so a
// configured Processor can be reused as a template.
type Processor struct {
	// Source
	path   string
	format format.Format
	src    source.Source

	// Lifecycle
	ownsSource bool // true if we opened the source and should close it
	srcOpened  bool

	// Configuration
	options processOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Processor with a deep copy of options.
func (p *Processor) clone() *Processor {
	return &Processor{
		path:       p.path,
		format:     p.format,
		src:        p.src,
		ownsSource: p.ownsSource,
		srcOpened:  p.srcOpened,
		options:    p.options.clone(),
		err:        p.err,
	}
}

// ensureSource opens the source if not already open.
func (p *Processor) ensureSource() error {
	if p.srcOpened {
		return nil
	}
	if p.path == "" {
		return fmt.Errorf("no input specified")
	}

	fm := p.format
	if fm == format.Unknown {
		detected, err := format.DetectPath(p.path)
		if err != nil {
			return fmt.Errorf("failed to detect format: %w", err)
		}
		fm = detected
	}

	if p.options.preflight && fm == format.PDF {
		rep, err := source.Preflight(p.path)
		if err != nil {
			return err
		}
		p.options.logger.Debug("preflight passed", "path", p.path, "pages", rep.PageCount)
	}

	opts, err := p.sourceOptions()
	if err != nil {
		return err
	}
	src, err := source.Open(p.path, fm, opts)
	if err != nil {
		return err
	}

	p.src = src
	p.ownsSource = true
	p.srcOpened = true
	return nil
}

func (p *Processor) sourceOptions() (source.Options, error) {
	opts := source.DefaultOptions()

	profile, ok := tables.GetProfile(p.options.profile)
	if !ok {
		return opts, fmt.Errorf("unknown layout profile %q", p.options.profile)
	}
	if p.options.rowTolerance > 0 {
		profile.RowTolerance = p.options.rowTolerance
	}
	if !p.options.area.IsZero() {
		profile.Area = p.options.area
	}
	if len(p.options.separators) > 0 {
		profile.Separators = p.options.separators
	}
	if err := profile.Validate(); err != nil {
		return opts, err
	}
	opts.Profile = profile

	if p.options.encoding != "" {
		opts.Encoding = p.options.encoding
	}
	if p.options.ocrLanguage != "" {
		opts.OCRLanguage = p.options.ocrLanguage
	}
	if p.options.ocrDPI > 0 {
		opts.DPI = p.options.ocrDPI
	}
	return opts, nil
}

// Close releases the source if the Processor opened it.
// It is safe to call Close multiple times.
func (p *Processor) Close() error {
	if p.ownsSource && p.src != nil {
		err := p.src.Close()
		p.src = nil
		p.ownsSource = false
		p.srcOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Processor instance)
// ============================================================================

// Pages selects pages to read (1-indexed). Multiple calls are cumulative.
//
// Example:
//
//	res, _, err := pna.Open("spis.pdf").Pages(3, 4, 5).Process(ctx)
func (p *Processor) Pages(pages ...int) *Processor {
	np := p.clone()
	np.options.pages = append(np.options.pages, pages...)
	return np
}

// PageRange selects a range of pages (1-indexed, inclusive).
//
// Example:
//
//	res, _, err := pna.Open("spis.pdf").PageRange(3, 1672).Process(ctx)
func (p *Processor) PageRange(start, end int) *Processor {
	np := p.clone()
	for i := start; i <= end; i++ {
		np.options.pages = append(np.options.pages, i)
	}
	return np
}

// Format forces the source format instead of detecting it from the path.
func (p *Processor) Format(fm format.Format) *Processor {
	np := p.clone()
	np.format = fm
	return np
}

// Profile selects a registered column layout by name.
func (p *Processor) Profile(name string) *Processor {
	np := p.clone()
	if _, ok := tables.GetProfile(name); !ok && np.err == nil {
		np.err = fmt.Errorf("unknown layout profile %q", name)
	}
	np.options.profile = name
	return np
}

// RowTolerance overrides the profile's row grouping tolerance in points.
func (p *Processor) RowTolerance(points float64) *Processor {
	np := p.clone()
	np.options.rowTolerance = points
	return np
}

// Layout overrides the profile's table area and column separators. A zero
// area or an empty separator list keeps the profile's value.
func (p *Processor) Layout(area model.BBox, separators []float64) *Processor {
	np := p.clone()
	np.options.area = area
	np.options.separators = append([]float64(nil), separators...)
	return np
}

// Encoding sets the text encoding of a raw dump source.
func (p *Processor) Encoding(name string) *Processor {
	np := p.clone()
	if _, err := source.Decoding(name); err != nil && np.err == nil {
		np.err = err
	}
	np.options.encoding = name
	return np
}

// OCR sets the Tesseract language and scan resolution for image sources.
func (p *Processor) OCR(language string, dpi int) *Processor {
	np := p.clone()
	np.options.ocrLanguage = language
	np.options.ocrDPI = dpi
	return np
}

// Preflight validates the PDF structure before extraction.
func (p *Processor) Preflight() *Processor {
	np := p.clone()
	np.options.preflight = true
	return np
}

// RawDump persists the unreconciled rows to path.
//
// Example:
//
//	res, _, err := pna.Open("spis.pdf").RawDump("raw.csv").Process(ctx)
func (p *Processor) RawDump(path string) *Processor {
	np := p.clone()
	np.options.rawDumpPath = path
	return np
}

// MaxPasses bounds the reconciliation passes; zero uses the default.
func (p *Processor) MaxPasses(n int) *Processor {
	np := p.clone()
	np.options.maxPasses = n
	return np
}

// RepairGmina moves gmina names merged into the number range back into
// the gmina field before validation.
func (p *Processor) RepairGmina() *Processor {
	np := p.clone()
	np.options.repairGmina = true
	return np
}

// Validation replaces the validation configuration.
func (p *Processor) Validation(cfg validate.Config) *Processor {
	np := p.clone()
	np.options.validation = cfg
	np.options = np.options.clone()
	return np
}

// Logger sets the logger for progress and diagnostics. Processing is
// silent by default.
func (p *Processor) Logger(l *slog.Logger) *Processor {
	np := p.clone()
	if l != nil {
		np.options.logger = l
	}
	return np
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the source.
func (p *Processor) PageCount(ctx context.Context) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	if err := p.ensureSource(); err != nil {
		return 0, err
	}
	defer p.Close()

	return p.src.PageCount(ctx)
}

// Calibrate derives column separators for the selected profile from the
// text of the selected pages. Only PDF and image sources support it.
func (p *Processor) Calibrate(ctx context.Context, cfg layout.ColumnConfig) (tables.Profile, error) {
	if p.err != nil {
		return tables.Profile{}, p.err
	}
	if err := p.ensureSource(); err != nil {
		return tables.Profile{}, err
	}
	defer p.Close()

	c, ok := p.src.(source.Calibrator)
	if !ok {
		return tables.Profile{}, fmt.Errorf("%T source cannot be calibrated", p.src)
	}
	return c.Calibrate(ctx, p.options.pages, cfg)
}

// RawRows reads the raw rows of the selected pages and writes the raw
// dump when one is configured.
func (p *Processor) RawRows(ctx context.Context) ([]model.RawRow, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	if err := p.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer p.Close()

	rows, warnings, _, err := p.readRows(ctx)
	return rows, warnings, err
}

// Process runs the whole pipeline: read rows, write the optional raw dump,
// reconcile, optionally repair, validate.
//
// Example:
//
//	res, warnings, err := pna.Open("spis.pdf").PageRange(3, 1672).Process(ctx)
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pna.FormatWarnings(warnings))
//	}
func (p *Processor) Process(ctx context.Context) (*Result, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	if err := p.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer p.Close()

	start := time.Now()
	log := p.options.logger
	res := &Result{RunID: uuid.New()}

	rows, warnings, pages, err := p.readRows(ctx)
	if err != nil {
		return nil, nil, err
	}
	res.RawRows = len(rows)
	res.Pages = pages

	recOpts := reconcile.DefaultOptions()
	recOpts.MaxPasses = p.options.maxPasses
	rec := reconcile.Reconcile(rows, recOpts)
	res.Passes = rec.Passes
	res.Converged = rec.Converged
	log.Debug("reconciled rows", "records", len(rec.Records), "passes", rec.Passes, "converged", rec.Converged)

	records := rec.Records
	if orphans := countOrphans(records); orphans > 0 {
		warnings = append(warnings, Warning{
			Code:    WarnOrphanRows,
			Message: fmt.Sprintf("%d continuation rows had no record to join", orphans),
		})
	}
	if !rec.Converged {
		warnings = append(warnings, Warning{
			Code: WarnUnconverged,
			Message: fmt.Sprintf("reconciliation stopped after %d passes; %d records marked unreconciled",
				rec.Passes, len(rec.Unconverged())),
		})
	}

	if p.options.repairGmina {
		records, res.Fixes = repair.Gmina(records)
		for _, fix := range res.Fixes {
			log.Debug("repaired gmina", "record", fix.Index, "gmina", fix.Gmina, "number_range", fix.After)
		}
		if len(res.Fixes) > 0 {
			warnings = append(warnings, Warning{
				Code:    WarnGminaRepaired,
				Message: fmt.Sprintf("moved gmina out of number_range in %d records", len(res.Fixes)),
			})
		}
	}

	res.Records = validate.New(p.options.validation).Validate(records)
	res.Summary = report.Summarize(res.Records)
	if n := res.Summary.PerFlag[model.DuplicatePNACrossWojewodztwo.String()]; n > 0 {
		warnings = append(warnings, Warning{
			Code:    WarnDuplicateCodes,
			Message: fmt.Sprintf("%d records share a postal code with another voivodeship", n),
		})
	}
	res.Duration = time.Since(start)

	log.Debug("validated records",
		"records", res.Summary.Records,
		"unique_postal_codes", res.Summary.UniquePostalCodes,
		"flagged", res.Summary.Flagged,
	)
	for _, woj := range res.Summary.Wojewodztwa() {
		log.Debug("records per voivodeship", "wojewodztwo", woj, "records", res.Summary.PerWojewodztwo[woj])
	}

	return res, warnings, nil
}

// readRows reads the selected pages and writes the raw dump. It returns
// the number of pages read.
func (p *Processor) readRows(ctx context.Context) ([]model.RawRow, []Warning, int, error) {
	log := p.options.logger

	count, err := p.src.PageCount(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to get page count: %w", err)
	}
	pages, err := source.ResolvePages(p.options.pages, count)
	if err != nil {
		return nil, nil, 0, err
	}
	log.Debug("reading pages", "first", pages[0], "last", pages[len(pages)-1], "count", len(pages))

	rows, srcWarnings, err := p.src.Rows(ctx, pages)
	if err != nil {
		return nil, nil, 0, err
	}
	log.Debug("read raw rows", "rows", len(rows), "pages", len(pages))

	warnings := make([]Warning, 0, len(srcWarnings))
	for _, w := range srcWarnings {
		warnings = append(warnings, Warning{Code: WarnExtraction, Message: w.Message, Page: w.Page})
	}

	if p.options.rawDumpPath != "" {
		if err := sink.WriteRawRowsFile(p.options.rawDumpPath, rows); err != nil {
			return nil, nil, 0, err
		}
		log.Debug("wrote raw dump", "path", p.options.rawDumpPath, "rows", len(rows))
	}

	return rows, warnings, len(pages), nil
}

func countOrphans(records []model.Record) int {
	n := 0
	for _, r := range records {
		if r.Orphan {
			n++
		}
	}
	return n
}
