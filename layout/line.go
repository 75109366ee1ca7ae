package layout

import (
	"sort"

	"github.com/tsawler/pna/model"
)

// Line represents a single line of text on a page
type Line struct {
	// BBox is the bounding box of the line
	BBox model.BBox

	// Fragments are the text fragments that make up this line (sorted left to right)
	Fragments []Fragment

	// Text is the assembled text content of the line
	Text string

	// Index is the line's position on the page (0-based, top to bottom)
	Index int

	// Baseline is the average Y coordinate of the fragments
	Baseline float64
}

// LineConfig holds configuration for line detection
type LineConfig struct {
	// Tolerance is the maximum baseline distance, in points, for two fragments
	// to share a line. Zero selects an adaptive tolerance of
	// LineHeightTolerance times the average fragment height.
	Tolerance float64

	// LineHeightTolerance is the adaptive tolerance as a fraction of
	// fragment height (default: 0.5)
	LineHeightTolerance float64

	// SkipEmpty drops fragments with no visible text (default: true)
	SkipEmpty bool
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		Tolerance:           0,
		LineHeightTolerance: 0.5,
		SkipEmpty:           true,
	}
}

// LineDetector detects text lines on a page
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// Detect groups fragments into lines, top to bottom.
func (d *LineDetector) Detect(fragments []Fragment) []Line {
	if d.config.SkipEmpty {
		kept := make([]Fragment, 0, len(fragments))
		for _, f := range fragments {
			if CleanText(f.Text) != "" {
				kept = append(kept, f)
			}
		}
		fragments = kept
	}
	if len(fragments) == 0 {
		return nil
	}

	groups := d.groupIntoLines(fragments)
	lines := make([]Line, 0, len(groups))
	for i, g := range groups {
		lines = append(lines, Line{
			BBox:      boundingBox(g),
			Fragments: g,
			Text:      AssembleText(g),
			Index:     i,
			Baseline:  averageLineY(g),
		})
	}
	return lines
}

// groupIntoLines groups fragments into horizontal lines based on Y position
func (d *LineDetector) groupIntoLines(fragments []Fragment) [][]Fragment {
	tolerance := d.tolerance(fragments)

	// Sort fragments by Y (descending, top to bottom in PDF coords) only.
	// X sorting happens per line.
	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].Y - sorted[j].Y
		if absFloat64(yDiff) > tolerance {
			return yDiff > 0 // Higher Y first (top of page)
		}
		return false
	})

	var lines [][]Fragment
	var current []Fragment
	for _, frag := range sorted {
		if len(current) == 0 {
			current = append(current, frag)
			continue
		}

		// Compare against the running average so slanted baselines stay together
		if absFloat64(frag.Y-averageLineY(current)) <= tolerance {
			current = append(current, frag)
			continue
		}

		SortByX(current)
		lines = append(lines, current)
		current = []Fragment{frag}
	}
	if len(current) > 0 {
		SortByX(current)
		lines = append(lines, current)
	}
	return lines
}

// tolerance returns the configured Y tolerance or derives one from the
// average fragment height.
func (d *LineDetector) tolerance(fragments []Fragment) float64 {
	if d.config.Tolerance > 0 {
		return d.config.Tolerance
	}

	total := 0.0
	for _, f := range fragments {
		h := f.Height
		if h <= 0 {
			h = f.FontSize
		}
		total += h
	}
	avg := total / float64(len(fragments))
	if avg <= 0 {
		return 2.0 // Default minimum
	}

	ratio := d.config.LineHeightTolerance
	if ratio <= 0 {
		ratio = DefaultLineConfig().LineHeightTolerance
	}
	return avg * ratio
}

// averageLineY returns the average Y coordinate of fragments in a line
func averageLineY(fragments []Fragment) float64 {
	if len(fragments) == 0 {
		return 0
	}
	total := 0.0
	for _, f := range fragments {
		total += f.Y
	}
	return total / float64(len(fragments))
}

// boundingBox returns the union of the fragments' boxes.
func boundingBox(fragments []Fragment) model.BBox {
	if len(fragments) == 0 {
		return model.BBox{}
	}
	minX, minY := fragments[0].X, fragments[0].Y
	maxX, maxY := fragments[0].Right(), fragments[0].Y+fragments[0].Height
	for _, f := range fragments[1:] {
		if f.X < minX {
			minX = f.X
		}
		if f.Y < minY {
			minY = f.Y
		}
		if f.Right() > maxX {
			maxX = f.Right()
		}
		if top := f.Y + f.Height; top > maxY {
			maxY = top
		}
	}
	return model.NewBBox(minX, minY, maxX-minX, maxY-minY)
}
