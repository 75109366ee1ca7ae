package tables

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tsawler/pna/model"
)

// Profile describes the fixed column layout of one register edition
type Profile struct {
	// Name identifies the profile in the registry
	Name string

	// Area is the table region on every page; zero means the whole page
	Area model.BBox

	// Separators are the X positions between adjacent columns (points, ascending)
	Separators []float64

	// Columns is the field printed in each column, left to right
	Columns []model.Field

	// RowTolerance is the baseline distance (points) within which fragments
	// form one physical row
	RowTolerance float64
}

// Validate checks the profile for consistency
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if len(p.Columns) != len(p.Separators)+1 {
		return fmt.Errorf("profile %s: %d columns need %d separators, got %d",
			p.Name, len(p.Columns), len(p.Columns)-1, len(p.Separators))
	}
	if !sort.Float64sAreSorted(p.Separators) {
		return fmt.Errorf("profile %s: separators must be ascending", p.Name)
	}
	seen := make(map[model.Field]bool)
	for _, f := range p.Columns {
		if !f.Valid() {
			return fmt.Errorf("profile %s: invalid field %d", p.Name, int(f))
		}
		if seen[f] {
			return fmt.Errorf("profile %s: field %s appears twice", p.Name, f)
		}
		seen[f] = true
	}
	if p.RowTolerance < 0 {
		return fmt.Errorf("profile %s: negative row tolerance", p.Name)
	}
	return nil
}

// SpisPNA2025 is the layout of the 2025 official postal code register:
// columns PNA, Miejscowość, Ulica, Numery, Gmina, Powiat, Województwo on an
// A4 page.
func SpisPNA2025() Profile {
	return Profile{
		Name:       "spis-pna-2025",
		Area:       model.NewBBoxFromCorners(28, 813, 567, 27),
		Separators: []float64{60, 144, 267, 332, 422, 497},
		Columns: []model.Field{
			model.PostalCode,
			model.PlaceName,
			model.Street,
			model.NumberRange,
			model.Gmina,
			model.Powiat,
			model.Wojewodztwo,
		},
		RowTolerance: 3,
	}
}

// ParseArea reads a table area written as "x1,y1,x2,y2" (two opposite corners).
func ParseArea(s string) (model.BBox, error) {
	vals, err := parseFloats(s)
	if err != nil {
		return model.BBox{}, fmt.Errorf("table area: %w", err)
	}
	if len(vals) != 4 {
		return model.BBox{}, fmt.Errorf("table area: want 4 numbers, got %d", len(vals))
	}
	return model.NewBBoxFromCorners(vals[0], vals[1], vals[2], vals[3]), nil
}

// ParseSeparators reads comma separated column separator positions.
func ParseSeparators(s string) ([]float64, error) {
	vals, err := parseFloats(s)
	if err != nil {
		return nil, fmt.Errorf("column separators: %w", err)
	}
	return vals, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

// ProfileRegistry holds registered profiles
type ProfileRegistry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewRegistry creates a new profile registry
func NewRegistry() *ProfileRegistry {
	return &ProfileRegistry{
		profiles: make(map[string]Profile),
	}
}

// Register registers a profile, replacing any profile with the same name
func (r *ProfileRegistry) Register(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Name] = p
	return nil
}

// Get retrieves a profile by name
func (r *ProfileRegistry) Get(name string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[name]
	return p, ok
}

// List returns all registered profile names, sorted
func (r *ProfileRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterProfile registers a profile globally
func RegisterProfile(p Profile) error {
	return globalRegistry.Register(p)
}

// GetProfile retrieves a profile by name
func GetProfile(name string) (Profile, bool) {
	return globalRegistry.Get(name)
}

// ListProfiles returns all registered profile names
func ListProfiles() []string {
	return globalRegistry.List()
}

// DefaultProfile is the name of the profile used when none is configured
const DefaultProfile = "spis-pna-2025"

func init() {
	// Register default profiles
	if err := RegisterProfile(SpisPNA2025()); err != nil {
		panic(err)
	}
}
