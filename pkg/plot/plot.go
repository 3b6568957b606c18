// Package plot turns record tables into scatter series, reference guides and
// family analysis bars, and renders them through a Sink.
package plot

import (
	"strings"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

// Kind selects the axes of a scatter plot.
type Kind int

const (
	DBEvsC Kind = iota
	HvsC
	HCvsMass
	AIvsC
)

// Kinds lists every plot kind.
var Kinds = []Kind{DBEvsC, HvsC, HCvsMass, AIvsC}

// String returns the "Y vs X" label of the kind.
func (k Kind) String() string {
	switch k {
	case DBEvsC:
		return "DBE vs C#"
	case HvsC:
		return "H# vs C#"
	case HCvsMass:
		return "H/C vs Mass"
	case AIvsC:
		return "AI vs C#"
	default:
		return "unknown"
	}
}

// ParseKind accepts a "Y vs X" label or a short name (dbe, h, hc, ai).
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	switch strings.ToLower(s) {
	case "dbe":
		return DBEvsC, nil
	case "h", "h#":
		return HvsC, nil
	case "hc", "h/c":
		return HCvsMass, nil
	case "ai":
		return AIvsC, nil
	}
	return 0, core.Errorf(core.KindInvalidQuery, "plot", "unknown plot kind '%s'", s)
}

// Labels splits the kind's label into its x and y axis names.
func (k Kind) Labels() (x, y string) {
	parts := strings.SplitN(k.String(), " vs ", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[1], parts[0]
}

func (k Kind) values(r *core.Record) (x, y float64) {
	switch k {
	case DBEvsC:
		return float64(r.C), r.DBE
	case HvsC:
		return float64(r.C), float64(r.H)
	case HCvsMass:
		return r.Mass, r.HC
	default:
		return float64(r.C), r.AI()
	}
}

// Point is one plotted record; Z carries its active intensity.
type Point struct {
	X, Y, Z float64
}

// Series is a named set of points.
type Series struct {
	Name    string
	Group   core.Group // Zero for derived views
	Species string
	Points  []Point
}

// Scatter builds one series per (group, species group) for raw tables and
// one per species group for derived views. An empty sel keeps every group
// and an empty species list keeps every species group. Records outside the
// CH/CHN/CHO/CHNO species groups are not plotted.
func Scatter(t table.Table, kind Kind, sel core.Selection, species []string) ([]Series, error) {
	wanted := make(map[string]bool, len(core.SpeciesGroups))
	for _, sp := range core.SpeciesGroups {
		wanted[sp] = len(species) == 0
	}
	for _, sp := range species {
		if _, ok := wanted[sp]; !ok {
			return nil, core.Errorf(core.KindInvalidQuery, "plot", "unknown species group '%s'", sp)
		}
		wanted[sp] = true
	}

	var groups []core.Group
	if t.Kind.IsDerived() {
		groups = []core.Group{{}}
	} else {
		for _, g := range t.SampleGroups() {
			if sel.Len() == 0 || sel.Contains(g) {
				groups = append(groups, g)
			}
		}
	}

	var series []Series
	for _, g := range groups {
		for _, sp := range core.SpeciesGroups {
			if !wanted[sp] {
				continue
			}
			s := Series{Name: seriesName(g, sp), Group: g, Species: sp}
			for i := range t.Rows {
				r := &t.Rows[i]
				if core.SpeciesGroupOf(r.Family) != sp {
					continue
				}
				if !t.Kind.IsDerived() && r.Group() != g {
					continue
				}
				x, y := kind.values(r)
				s.Points = append(s.Points, Point{X: x, Y: y, Z: r.Intensity})
			}
			if len(s.Points) > 0 {
				series = append(series, s)
			}
		}
	}

	if len(series) == 0 {
		return nil, core.Errorf(core.KindNoMatch, "plot", "nothing to plot for %s", kind)
	}
	return series, nil
}

func seriesName(g core.Group, species string) string {
	if g == (core.Group{}) {
		return species
	}
	return g.Sample + " " + g.Description + ", " + species
}

// Flatten concatenates the points of every series.
func Flatten(series []Series) []Point {
	var out []Point
	for _, s := range series {
		out = append(out, s.Points...)
	}
	return out
}
