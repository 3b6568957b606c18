// Package compare builds averaged and common-species views across sample
// groups.
package compare

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/index"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

// Average combines the selected groups into one row per formula.
//
// For every formula the representative of each group is the record with
// the smallest absolute mass error. Mass and error are the sum over the
// representatives divided by the number of records carrying the formula in
// the selected data, duplicates included. The combined intensity is the sum
// of the per-group intensities divided by the number of selected groups,
// counting absent groups as zero.
func Average(t table.Table, sel core.Selection) (table.Table, error) {
	idx, restricted, err := restrict("average", t, sel)
	if err != nil {
		return table.Table{}, err
	}
	return build(core.Averaged, restricted, idx, idx.FormulaOrder(), sel), nil
}

// CommonSpecies is Average restricted to the formulas present in every
// selected group. A selected group with no rows makes the intersection
// empty.
func CommonSpecies(t table.Table, sel core.Selection) (table.Table, error) {
	idx, restricted, err := restrict("common species", t, sel)
	if err != nil {
		return table.Table{}, err
	}

	var common []string
	for _, f := range idx.FormulaOrder() {
		if inAll(idx, sel.Groups(), f) {
			common = append(common, f)
		}
	}
	if len(common) == 0 {
		return table.Table{}, core.Errorf(core.KindNoMatch, "common species", "no species common to %d groups", sel.Len())
	}
	return build(core.CommonSpecies, restricted, idx, common, sel), nil
}

func restrict(op string, t table.Table, sel core.Selection) (*index.Index, table.Table, error) {
	if sel.Len() == 0 {
		return nil, table.Table{}, core.Errorf(core.KindNoGroupsSelected, op, "select at least one sample group")
	}
	if t.Kind.IsDerived() {
		return nil, table.Table{}, core.Errorf(core.KindNotSupportedOnDerivedView, op, "the current view is already %s", t.Kind)
	}

	restricted := t.Select(sel)
	if restricted.IsEmpty() {
		return nil, table.Table{}, core.Errorf(core.KindNoMatch, op, "no rows for the selected groups")
	}
	return index.Build(restricted.Rows), restricted, nil
}

func inAll(idx *index.Index, groups []core.Group, formula string) bool {
	for _, g := range groups {
		if !idx.Has(g, formula) {
			return false
		}
	}
	return true
}

func build(kind core.ViewKind, restricted table.Table, idx *index.Index, formulas []string, sel core.Selection) table.Table {
	groups := idx.Groups()
	rows := make([]core.Record, 0, len(formulas))

	for _, f := range formulas {
		var (
			first     *core.Record
			masses    []float64
			errs      []float64
			intensity = make([]float64, len(groups))
		)
		for i, g := range groups {
			rep, ok := idx.Representative(g, f)
			if !ok {
				continue
			}
			if first == nil {
				first = &rep
			}
			masses = append(masses, rep.Mass)
			errs = append(errs, rep.Error)
			intensity[i] = rep.Intensity
		}
		if first == nil {
			continue
		}

		count := float64(idx.Count(f))
		rows = append(rows, core.Record{
			C:               first.C,
			H:               first.H,
			N:               first.N,
			O:               first.O,
			DBE:             first.DBE,
			DBEPerC:         first.DBEPerC,
			HC:              first.HC,
			Formula:         f,
			Mass:            floats.Sum(masses) / count,
			TheoreticalMass: first.TheoreticalMass,
			Error:           floats.Sum(errs) / count,
			Family:          first.Family,
			GroupIntensity:  intensity,
			Intensity:       floats.Sum(intensity) / float64(sel.Len()),
		})
	}

	return table.Table{
		Kind:   kind,
		Mode:   restricted.Mode,
		Groups: groups,
		Rows:   rows,
	}
}
