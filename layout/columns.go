package layout

import (
	"math"
	"sort"
)

// ColumnConfig holds configuration for gutter detection
type ColumnConfig struct {
	// MinGapWidth is the minimum whitespace width (points) of a gutter
	// Default: 3 points
	MinGapWidth float64

	// MinClearRatio is the fraction of lines that must leave a gutter empty
	// (0.0 to 1.0). Lines that overflow into the next column lower it.
	// Default: 0.9
	MinClearRatio float64

	// MaxColumns is the maximum number of columns to detect
	// Default: 12
	MaxColumns int
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		MinGapWidth:   3.0,
		MinClearRatio: 0.9,
		MaxColumns:    12,
	}
}

// ColumnDetector finds the vertical gutters between table columns
type ColumnDetector struct {
	config ColumnConfig
}

// NewColumnDetector creates a new column detector with default configuration
func NewColumnDetector() *ColumnDetector {
	return &ColumnDetector{
		config: DefaultColumnConfig(),
	}
}

// NewColumnDetectorWithConfig creates a column detector with custom configuration
func NewColumnDetectorWithConfig(config ColumnConfig) *ColumnDetector {
	return &ColumnDetector{
		config: config,
	}
}

// Gap represents a vertical whitespace gap
type Gap struct {
	Left  float64 // Left edge of gap
	Right float64 // Right edge of gap

	// Clear is the fraction of lines that leave the gap empty
	Clear float64
}

// Width returns the width of the gap
func (g Gap) Width() float64 {
	return g.Right - g.Left
}

// Center returns the X center of the gap
func (g Gap) Center() float64 {
	return (g.Left + g.Right) / 2
}

// slab is a horizontal range covered by text
type slab struct {
	left, right float64
}

// Detect returns the gutters between the text of the given lines, left to
// right. Only gaps strictly between covered regions are returned, never the
// margins. When more than MaxColumns-1 gutters qualify, the clearest ones
// are kept.
func (d *ColumnDetector) Detect(lines []Line) []Gap {
	if len(lines) == 0 {
		return nil
	}

	// Covered X ranges per line, then how many lines cover each point
	lo, hi := math.Inf(1), math.Inf(-1)
	perLine := make([][]slab, 0, len(lines))
	for _, line := range lines {
		var slabs []slab
		for _, f := range line.Fragments {
			if f.Width <= 0 {
				continue
			}
			slabs = append(slabs, slab{left: f.X, right: f.Right()})
			lo = math.Min(lo, f.X)
			hi = math.Max(hi, f.Right())
		}
		if len(slabs) > 0 {
			perLine = append(perLine, mergeSlabs(slabs))
		}
	}
	if len(perLine) == 0 {
		return nil
	}

	start := int(math.Floor(lo))
	coverage := make([]int, int(math.Ceil(hi))-start+1)
	for _, slabs := range perLine {
		for _, s := range slabs {
			for x := int(math.Floor(s.left)); x < int(math.Ceil(s.right)); x++ {
				coverage[x-start]++
			}
		}
	}

	maxBlocked := int(float64(len(perLine)) * (1 - d.config.MinClearRatio))

	var gaps []Gap
	for i := 0; i < len(coverage); {
		if coverage[i] > maxBlocked {
			i++
			continue
		}
		j, blocked := i, 0
		for j < len(coverage) && coverage[j] <= maxBlocked {
			blocked = max(blocked, coverage[j])
			j++
		}
		// Gaps touching either end are margins
		if i > 0 && j < len(coverage) && float64(j-i) >= d.config.MinGapWidth {
			gaps = append(gaps, Gap{
				Left:  float64(start + i),
				Right: float64(start + j),
				Clear: 1 - float64(blocked)/float64(len(perLine)),
			})
		}
		i = j
	}

	if d.config.MaxColumns > 0 && len(gaps) > d.config.MaxColumns-1 {
		sort.SliceStable(gaps, func(a, b int) bool {
			if gaps[a].Clear != gaps[b].Clear {
				return gaps[a].Clear > gaps[b].Clear
			}
			return gaps[a].Width() > gaps[b].Width()
		})
		gaps = gaps[:d.config.MaxColumns-1]
		sort.Slice(gaps, func(a, b int) bool { return gaps[a].Left < gaps[b].Left })
	}

	return gaps
}

// mergeSlabs merges overlapping horizontal slabs
func mergeSlabs(slabs []slab) []slab {
	if len(slabs) == 0 {
		return nil
	}
	sort.Slice(slabs, func(i, j int) bool {
		return slabs[i].left < slabs[j].left
	})

	merged := []slab{slabs[0]}
	for _, current := range slabs[1:] {
		last := &merged[len(merged)-1]
		if current.left <= last.right {
			if current.right > last.right {
				last.right = current.right
			}
		} else {
			merged = append(merged, current)
		}
	}
	return merged
}
