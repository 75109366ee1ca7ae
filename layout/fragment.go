package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/pna/model"
)

// Fragment is a piece of text positioned on a page, in PDF user space
// (origin bottom left, Y growing upwards).
type Fragment struct {
	Text     string
	X        float64 // left edge
	Y        float64 // baseline
	Width    float64
	Height   float64
	FontSize float64
}

// Right returns the right edge X coordinate.
func (f Fragment) Right() float64 {
	return f.X + f.Width
}

// BBox returns the fragment's bounding box.
func (f Fragment) BBox() model.BBox {
	return model.NewBBox(f.X, f.Y, f.Width, f.Height)
}

// Center returns the middle of the fragment's baseline.
func (f Fragment) Center() model.Point {
	return model.Point{X: f.X + f.Width/2, Y: f.Y}
}

// Tolerance for X position comparison as a fraction of font size.
// Fragments closer than this keep their stream order.
const xTolerance = 0.25

// spaceGap is the gap, as a fraction of font size, above which a space is
// inserted between two fragments.
const spaceGap = 0.3

// SortByX sorts fragments left to right, keeping stream order for
// fragments whose X positions nearly coincide.
func SortByX(frags []Fragment) {
	sort.SliceStable(frags, func(i, j int) bool {
		xTol := frags[i].FontSize * xTolerance
		if absFloat64(frags[i].X-frags[j].X) < xTol {
			return false // Treat as equal, preserve stream order
		}
		return frags[i].X < frags[j].X
	})
}

// AssembleText joins fragments that are already sorted left to right.
// A space is inserted when the gap to the previous fragment exceeds 30% of
// the font size, unless either side already carries whitespace. Runs of
// whitespace are collapsed and the result is trimmed.
func AssembleText(frags []Fragment) string {
	if len(frags) == 0 {
		return ""
	}

	var b strings.Builder
	lastEndX := 0.0
	for i, frag := range frags {
		if i > 0 {
			gap := frag.X - lastEndX
			fontSize := frag.FontSize
			if fontSize <= 0 {
				fontSize = frag.Height
			}
			if gap > fontSize*spaceGap {
				b.WriteByte(' ')
			}
		}
		b.WriteString(frag.Text)
		if end := frag.Right(); end > lastEndX || i == 0 {
			lastEndX = end
		}
	}
	return CleanText(b.String())
}

// CleanText removes line breaks and collapses whitespace.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsCharacterLevel reports whether more than 60% of fragments hold a single
// character, as happens with PDF producers that position every glyph.
func IsCharacterLevel(frags []Fragment) bool {
	if len(frags) < 10 {
		return false // Not enough data to determine
	}

	single := 0
	for _, f := range frags {
		if len([]rune(strings.TrimSpace(f.Text))) <= 1 {
			single++
		}
	}
	return float64(single)/float64(len(frags)) > 0.6
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
