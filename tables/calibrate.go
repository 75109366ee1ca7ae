package tables

import (
	"fmt"
	"math"

	"github.com/tsawler/pna/layout"
)

// Calibrate derives column separators from the text of sample lines. The
// result keeps base's area, column fields and tolerance; each separator is
// the center of a detected gutter, rounded to a whole point. Calibration
// fails unless exactly one gutter separates every pair of columns.
func Calibrate(base Profile, lines []layout.Line, cfg layout.ColumnConfig) (Profile, error) {
	want := len(base.Columns) - 1
	if cfg.MaxColumns == 0 || cfg.MaxColumns > len(base.Columns) {
		cfg.MaxColumns = len(base.Columns)
	}

	gaps := layout.NewColumnDetectorWithConfig(cfg).Detect(lines)
	if len(gaps) != want {
		return Profile{}, fmt.Errorf("calibrate %s: found %d column gaps in %d lines, need %d",
			base.Name, len(gaps), len(lines), want)
	}

	p := base
	p.Name = base.Name + "-calibrated"
	p.Separators = make([]float64, len(gaps))
	for i, g := range gaps {
		p.Separators[i] = math.Round(g.Center())
	}
	p.Columns = append(p.Columns[:0:0], base.Columns...)

	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
