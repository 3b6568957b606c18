// Package filter provides row filtering over record tables
package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

// Range is a closed numeric interval
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether min <= v <= max
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Criteria holds the filter configuration. A nil or empty predicate matches
// nothing: an unchecked family list or a missing range excludes every row.
type Criteria struct {
	Families   []string // Keep rows whose family is listed
	CRange     *Range   // Base C# range
	CRanges    []Range  // Additional C# ranges, ORed with the base
	MassRange  *Range   // Base mass range
	MassRanges []Range  // Additional mass ranges, ORed with the base
	Intensity  *Range   // Range on the active intensity column
}

// Apply returns the rows of t matching all four predicates. An empty result
// is returned as an empty table, not an error.
func (c *Criteria) Apply(t table.Table) (table.Table, error) {
	if t.Kind == core.CommonSpecies {
		return table.Table{}, core.Errorf(core.KindNotSupportedOnDerivedView, "filter", "filtering is not available on a common species view")
	}

	families := make(map[string]struct{}, len(c.Families))
	for _, f := range c.Families {
		families[strings.TrimSpace(f)] = struct{}{}
	}
	cRanges := c.carbonRanges()
	massRanges := c.massRanges()

	return t.Where(func(r *core.Record) bool {
		if _, ok := families[r.Family]; !ok {
			return false
		}
		if !anyContains(cRanges, float64(r.C)) {
			return false
		}
		if !anyContains(massRanges, r.Mass) {
			return false
		}
		return c.Intensity != nil && c.Intensity.Contains(r.Intensity)
	}), nil
}

func (c *Criteria) carbonRanges() []Range {
	return joinRanges(c.CRange, c.CRanges)
}

func (c *Criteria) massRanges() []Range {
	return joinRanges(c.MassRange, c.MassRanges)
}

func joinRanges(base *Range, extra []Range) []Range {
	out := make([]Range, 0, len(extra)+1)
	if base != nil {
		out = append(out, *base)
	}
	return append(out, extra...)
}

func anyContains(ranges []Range, v float64) bool {
	for _, r := range ranges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// ParseRange parses a min/max pair. Blank input yields a nil range.
func ParseRange(min, max string) (*Range, error) {
	min, max = strings.TrimSpace(min), strings.TrimSpace(max)
	if min == "" && max == "" {
		return nil, nil
	}
	lo, err := strconv.ParseFloat(min, 64)
	if err != nil {
		return nil, core.Errorf(core.KindInvalidRange, "parse range", "invalid minimum '%s'", min)
	}
	hi, err := strconv.ParseFloat(max, 64)
	if err != nil {
		return nil, core.Errorf(core.KindInvalidRange, "parse range", "invalid maximum '%s'", max)
	}
	return &Range{Min: lo, Max: hi}, nil
}

// ParseRanges parses comma-separated "min-max" ranges such as "5-10,20-30".
// Negative bounds are not supported; a leading '-' is a parse error.
func ParseRanges(s string) ([]Range, error) {
	var ranges []Range
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.Split(part, "-")
		if len(bounds) != 2 {
			return nil, core.Errorf(core.KindInvalidRange, "parse ranges", "invalid range '%s', expected 'min-max'", part)
		}
		r, err := ParseRange(bounds[0], bounds[1])
		if err != nil || r == nil {
			return nil, core.Errorf(core.KindInvalidRange, "parse ranges", "invalid range '%s', expected 'min-max'", part)
		}
		ranges = append(ranges, *r)
	}
	return ranges, nil
}

// Limits holds the extent of the filterable columns over a set of rows.
type Limits struct {
	C         Range
	Mass      Range
	Intensity Range
}

// Bounds returns the min/max C#, mass and active intensity over the rows of
// t whose family is in families. It reports false when no row matches.
func Bounds(t table.Table, families []string) (Limits, bool) {
	wanted := make(map[string]struct{}, len(families))
	for _, f := range families {
		wanted[f] = struct{}{}
	}

	l := Limits{
		C:         Range{Min: math.Inf(1), Max: math.Inf(-1)},
		Mass:      Range{Min: math.Inf(1), Max: math.Inf(-1)},
		Intensity: Range{Min: math.Inf(1), Max: math.Inf(-1)},
	}
	found := false
	for i := range t.Rows {
		r := &t.Rows[i]
		if _, ok := wanted[r.Family]; !ok {
			continue
		}
		found = true
		l.C.extend(float64(r.C))
		l.Mass.extend(r.Mass)
		l.Intensity.extend(r.Intensity)
	}
	if !found {
		return Limits{}, false
	}
	return l, true
}

func (r *Range) extend(v float64) {
	r.Min = math.Min(r.Min, v)
	r.Max = math.Max(r.Max, v)
}
