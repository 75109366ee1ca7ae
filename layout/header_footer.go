package layout

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// RegionType indicates whether a line sits in the header or footer zone
type RegionType int

const (
	Body RegionType = iota
	Header
	Footer
)

func (r RegionType) String() string {
	switch r {
	case Header:
		return "header"
	case Footer:
		return "footer"
	default:
		return "body"
	}
}

// HeaderFooterConfig holds configuration for header/footer detection
type HeaderFooterConfig struct {
	// Keywords drop any line whose text starts with one of them, wherever it
	// sits. Register rows start with a cell value, so a place name that
	// equals a label word further along the line does not match.
	// Default: the register's title, column header and publisher labels.
	Keywords []string

	// HeaderRegionHeight is the height from top of page to consider as header zone
	// Default: 72 points (1 inch)
	HeaderRegionHeight float64

	// FooterRegionHeight is the height from bottom of page to consider as footer zone
	// Default: 72 points (1 inch)
	FooterRegionHeight float64

	// MinOccurrenceRatio is the minimum fraction of pages a text must appear on
	// to be considered a header/footer (0.0 to 1.0)
	// Default: 0.5 (50% of pages)
	MinOccurrenceRatio float64

	// PositionTolerance is the maximum Y difference for text to be considered same position
	// Default: 5 points
	PositionTolerance float64

	// MinPages is the minimum number of pages required for repetition detection
	// Default: 2
	MinPages int
}

// DefaultHeaderFooterConfig returns sensible default configuration
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		Keywords: []string{
			"Poczta Polska",
			"Oficjalny Spis",
			"PNA Miejscowość",
			"Copyright",
		},
		HeaderRegionHeight: 72.0,
		FooterRegionHeight: 72.0,
		MinOccurrenceRatio: 0.5,
		PositionTolerance:  5.0,
		MinPages:           2,
	}
}

// PageLines holds the detected lines of one page
type PageLines struct {
	Page   int
	Height float64
	Lines  []Line
}

// HeaderFooterDetector detects headers and footers across pages
type HeaderFooterDetector struct {
	config HeaderFooterConfig
}

// NewHeaderFooterDetector creates a new detector with default configuration
func NewHeaderFooterDetector() *HeaderFooterDetector {
	return &HeaderFooterDetector{
		config: DefaultHeaderFooterConfig(),
	}
}

// NewHeaderFooterDetectorWithConfig creates a detector with custom configuration
func NewHeaderFooterDetectorWithConfig(config HeaderFooterConfig) *HeaderFooterDetector {
	return &HeaderFooterDetector{
		config: config,
	}
}

// HeaderFooterResult contains the detection results
type HeaderFooterResult struct {
	// Repeating counts the pages each header or footer line was seen on,
	// keyed by zone, position and exact text. Only keys at or above the
	// occurrence threshold are present.
	Repeating map[string]int

	// Config used for detection
	Config HeaderFooterConfig
}

// Detect analyzes lines from multiple pages to find repeating headers and
// footers. Keyword matching needs no detection and is applied by Filter.
func (d *HeaderFooterDetector) Detect(pages []PageLines) *HeaderFooterResult {
	result := &HeaderFooterResult{Repeating: make(map[string]int), Config: d.config}
	if len(pages) < d.config.MinPages {
		return result
	}

	counts := make(map[string]map[int]bool)
	for _, p := range pages {
		for _, line := range p.Lines {
			region := d.config.regionOf(line, p.Height)
			if region == Body {
				continue
			}
			key := d.config.positionKey(region, line)
			if counts[key] == nil {
				counts[key] = make(map[int]bool)
			}
			counts[key][p.Page] = true
		}
	}

	threshold := int(math.Ceil(float64(len(pages)) * d.config.MinOccurrenceRatio))
	if threshold < d.config.MinPages {
		threshold = d.config.MinPages
	}
	for key, seen := range counts {
		if len(seen) >= threshold {
			result.Repeating[key] = len(seen)
		}
	}
	return result
}

// Filter splits a page's lines into kept body lines and dropped
// header/footer lines.
func (r *HeaderFooterResult) Filter(page PageLines) (kept, dropped []Line) {
	for _, line := range page.Lines {
		if r.isHeaderFooter(line, page.Height) {
			dropped = append(dropped, line)
		} else {
			kept = append(kept, line)
		}
	}
	return kept, dropped
}

func (r *HeaderFooterResult) isHeaderFooter(line Line, pageHeight float64) bool {
	if r.Config.matchesKeyword(line.Text) {
		return true
	}
	region := r.Config.regionOf(line, pageHeight)
	if region == Body {
		return false
	}
	if isPageNumberPattern(normalizeForComparison(line.Text)) {
		return true
	}
	_, ok := r.Repeating[r.Config.positionKey(region, line)]
	return ok
}

// HasRepeating reports whether any repeating header or footer was found.
func (r *HeaderFooterResult) HasRepeating() bool {
	return len(r.Repeating) > 0
}

func (c HeaderFooterConfig) matchesKeyword(text string) bool {
	for _, kw := range c.Keywords {
		if kw != "" && strings.HasPrefix(strings.TrimSpace(text), kw) {
			return true
		}
	}
	return false
}

func (c HeaderFooterConfig) regionOf(line Line, pageHeight float64) RegionType {
	if pageHeight <= 0 {
		return Body
	}
	switch {
	case line.Baseline >= pageHeight-c.HeaderRegionHeight:
		return Header
	case line.Baseline <= c.FooterRegionHeight:
		return Footer
	}
	return Body
}

func (c HeaderFooterConfig) positionKey(region RegionType, line Line) string {
	tol := c.PositionTolerance
	if tol <= 0 {
		tol = 1
	}
	bucket := int(math.Round(line.Baseline / tol))
	return fmt.Sprintf("%s|%d|%s", region, bucket, CleanText(line.Text))
}

var digitRun = regexp.MustCompile(`\d+`)

// normalizeForComparison normalizes text for comparison by replacing numbers
func normalizeForComparison(text string) string {
	return digitRun.ReplaceAllString(CleanText(text), "#")
}

// isPageNumberPattern checks if normalized text looks like a page label
func isPageNumberPattern(normalizedText string) bool {
	patterns := []string{
		"Strona # z #",
		"Strona #",
		"str. #",
		"- # -",
		"Page # of #",
		"Page #",
	}

	trimmed := strings.TrimSpace(normalizedText)
	for _, pattern := range patterns {
		if strings.EqualFold(trimmed, pattern) {
			return true
		}
	}
	return false
}
