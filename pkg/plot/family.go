package plot

import (
	"math"
	"sort"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

// FamilyGroup holds the per-family totals of one sample group, or of the
// whole table for derived views.
type FamilyGroup struct {
	Label     string
	Intensity []float64 // Sum of active intensity, aligned with Families
	Species   []float64 // Distinct formula count, aligned with Families
}

// FamilyReport is the data behind the family analysis bar charts.
type FamilyReport struct {
	Families []string
	Groups   []FamilyGroup
}

// FamilyAnalysis sums the active intensity and counts distinct formulas per
// family. Families are put in display order; families without rows in a
// group are zero.
func FamilyAnalysis(t table.Table, families []string, sel core.Selection) (FamilyReport, error) {
	if len(families) == 0 {
		return FamilyReport{}, core.Errorf(core.KindInvalidQuery, "family analysis", "select at least one family")
	}
	ordered := append([]string(nil), families...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return core.FamilyRank(ordered[i]) < core.FamilyRank(ordered[j])
	})
	pos := make(map[string]int, len(ordered))
	for i, f := range ordered {
		pos[f] = i
	}

	var labels []string
	byLabel := make(map[string]*familyAcc)
	accFor := func(label string) *familyAcc {
		a, ok := byLabel[label]
		if !ok {
			a = &familyAcc{
				intensity: make([]float64, len(ordered)),
				formulas:  make([]map[string]struct{}, len(ordered)),
			}
			byLabel[label] = a
			labels = append(labels, label)
		}
		return a
	}

	for i := range t.Rows {
		r := &t.Rows[i]
		j, ok := pos[r.Family]
		if !ok {
			continue
		}
		label := "Average"
		if !t.Kind.IsDerived() {
			if sel.Len() > 0 && !sel.Contains(r.Group()) {
				continue
			}
			label = r.Sample + ", " + r.Description
		}
		a := accFor(label)
		a.intensity[j] += r.Intensity
		if a.formulas[j] == nil {
			a.formulas[j] = make(map[string]struct{})
		}
		a.formulas[j][r.Formula] = struct{}{}
	}

	if len(labels) == 0 {
		return FamilyReport{}, core.Errorf(core.KindNoMatch, "family analysis", "no rows in the selected families")
	}

	report := FamilyReport{Families: ordered}
	for _, label := range labels {
		a := byLabel[label]
		g := FamilyGroup{Label: label, Intensity: a.intensity, Species: make([]float64, len(ordered))}
		for j, set := range a.formulas {
			g.Species[j] = float64(len(set))
		}
		report.Groups = append(report.Groups, g)
	}
	return report, nil
}

type familyAcc struct {
	intensity []float64
	formulas  []map[string]struct{}
}

// Bar is one labelled bar value.
type Bar struct {
	Label string
	Value float64
}

// IntensityBars flattens the intensity sums into bars, skipping zeros. With
// logScale the values are log10 of the sums.
func (r FamilyReport) IntensityBars(logScale bool) []Bar {
	return r.bars(func(g FamilyGroup) []float64 { return g.Intensity }, logScale)
}

// SpeciesBars flattens the species counts into bars, skipping zeros.
func (r FamilyReport) SpeciesBars() []Bar {
	return r.bars(func(g FamilyGroup) []float64 { return g.Species }, false)
}

func (r FamilyReport) bars(values func(FamilyGroup) []float64, logScale bool) []Bar {
	var out []Bar
	for _, g := range r.Groups {
		for j, v := range values(g) {
			if v <= 0 {
				continue
			}
			if logScale {
				v = math.Log10(v)
			}
			label := r.Families[j]
			if len(r.Groups) > 1 || g.Label != "Average" {
				label = g.Label + ": " + label
			}
			out = append(out, Bar{Label: label, Value: v})
		}
	}
	return out
}
