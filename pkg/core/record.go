// Package core provides the record model, schema names and error taxonomy
// shared by every SpectraC package.
package core

import (
	"fmt"
	"strings"
)

// Record is a single peak assignment: one row of an input file, or one
// derived row of an averaged view.
type Record struct {
	// Elemental composition
	C, H, N, O int

	DBE     float64 // Double bond equivalent
	DBEPerC float64 // DBE / C#
	HC      float64 // H/C ratio

	Sample      string // From the file name prefix
	Description string // From the file name suffix
	Formula     string // Whitespace-trimmed formula, key within a group

	Mass            float64 // Observed mass
	TheoreticalMass float64
	Error           float64 // Signed mass error

	Family string

	// Intensity holds the value of the table's active intensity column:
	// absolute or relative, and for averaged views the combined average.
	Intensity float64

	// GroupIntensity is only set on averaged rows; it is aligned with the
	// owning table's Groups and must not be modified once published.
	GroupIntensity []float64

	// Occurrence is the ordinal of this record among the loaded records
	// sharing its (Sample, Description, Formula) triple.
	Occurrence int
}

// Group returns the sample group the record was loaded from.
func (r *Record) Group() Group {
	return Group{Sample: r.Sample, Description: r.Description}
}

// Key returns the record's (Sample, Description, Formula) triple.
func (r *Record) Key() Key {
	return Key{Sample: r.Sample, Description: r.Description, Formula: r.Formula}
}

// Group identifies one loaded source file.
type Group struct {
	Sample      string
	Description string
}

// Label returns the "<Sample>_<Description>" form used in column names.
func (g Group) Label() string {
	return g.Sample + "_" + g.Description
}

func (g Group) String() string {
	return g.Sample + " - " + g.Description
}

// ParseGroup parses a "<Sample>_<Description>" label.
func ParseGroup(label string) (Group, error) {
	parts := strings.Split(strings.TrimSpace(label), "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Group{}, Errorf(KindInvalidQuery, "parse group", "invalid group '%s', expected 'Sample_Description'", label)
	}
	return Group{Sample: parts[0], Description: parts[1]}, nil
}

// Key is the (Sample, Description, Formula) triple.
type Key struct {
	Sample      string
	Description string
	Formula     string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Sample, k.Description, k.Formula)
}

// AssignOccurrences numbers records sharing a triple in slice order.
func AssignOccurrences(records []Record) {
	seen := make(map[Key]int, len(records))
	for i := range records {
		k := records[i].Key()
		records[i].Occurrence = seen[k]
		seen[k]++
	}
}

// Selection is an immutable set of sample groups.
type Selection struct {
	set   map[Group]struct{}
	order []Group
}

// NewSelection builds a selection; duplicates are ignored.
func NewSelection(groups ...Group) Selection {
	s := Selection{set: make(map[Group]struct{}, len(groups))}
	for _, g := range groups {
		if _, ok := s.set[g]; ok {
			continue
		}
		s.set[g] = struct{}{}
		s.order = append(s.order, g)
	}
	return s
}

// Contains reports whether g is selected.
func (s Selection) Contains(g Group) bool {
	_, ok := s.set[g]
	return ok
}

// Len returns the number of selected groups.
func (s Selection) Len() int {
	return len(s.order)
}

// Groups returns the selected groups in the order they were given.
func (s Selection) Groups() []Group {
	out := make([]Group, len(s.order))
	copy(out, s.order)
	return out
}

// ViewKind tags which derivation produced a table.
type ViewKind int

const (
	Raw ViewKind = iota
	Averaged
	CommonSpecies
)

func (k ViewKind) String() string {
	switch k {
	case Raw:
		return "raw"
	case Averaged:
		return "averaged"
	case CommonSpecies:
		return "common-species"
	default:
		return "unknown"
	}
}

// IsDerived reports whether the view lost its Sample/Description columns.
func (k ViewKind) IsDerived() bool {
	return k != Raw
}

// IntensityMode selects between absolute and relative intensities.
type IntensityMode int

const (
	Absolute IntensityMode = iota
	Relative
)

func (m IntensityMode) String() string {
	if m == Relative {
		return "relative"
	}
	return "absolute"
}

// Column returns the base intensity column name for the mode.
func (m IntensityMode) Column() string {
	if m == Relative {
		return ColRelativeIntensity
	}
	return ColAbsoluteIntensity
}

// GroupColumn returns the per-group intensity column name of an averaged view.
func (m IntensityMode) GroupColumn(g Group) string {
	return m.Column() + " (" + g.Label() + ")"
}

// AverageColumn returns the combined intensity column name of an averaged view.
func (m IntensityMode) AverageColumn() string {
	return m.Column() + " " + averageSuffix
}
