// Package index groups records by sample group and formula.
package index

import (
	"math"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
)

// Index maps (group, formula) to the records that carry it.
type Index struct {
	groups   []core.Group
	byGroup  map[core.Group]map[string][]int
	rows     []core.Record
	counts   map[string]int
	formulas []string
}

// Build indexes rows. The rows slice is retained and must not be modified.
func Build(rows []core.Record) *Index {
	idx := &Index{
		byGroup: make(map[core.Group]map[string][]int),
		rows:    rows,
		counts:  make(map[string]int),
	}

	for i := range rows {
		r := &rows[i]
		g := r.Group()
		forms, ok := idx.byGroup[g]
		if !ok {
			forms = make(map[string][]int)
			idx.byGroup[g] = forms
			idx.groups = append(idx.groups, g)
		}
		forms[r.Formula] = append(forms[r.Formula], i)

		if idx.counts[r.Formula] == 0 {
			idx.formulas = append(idx.formulas, r.Formula)
		}
		idx.counts[r.Formula]++
	}
	return idx
}

// Groups returns the indexed groups in first-seen order.
func (idx *Index) Groups() []core.Group {
	return append([]core.Group(nil), idx.groups...)
}

// FormulaOrder returns every indexed formula in first-seen order.
func (idx *Index) FormulaOrder() []string {
	return append([]string(nil), idx.formulas...)
}

// Count returns the number of records carrying formula across all groups.
func (idx *Index) Count(formula string) int {
	return idx.counts[formula]
}

// Formulas returns the set of formulas present in group g.
func (idx *Index) Formulas(g core.Group) map[string]struct{} {
	forms := idx.byGroup[g]
	set := make(map[string]struct{}, len(forms))
	for f := range forms {
		set[f] = struct{}{}
	}
	return set
}

// Has reports whether group g carries formula.
func (idx *Index) Has(g core.Group, formula string) bool {
	_, ok := idx.byGroup[g][formula]
	return ok
}

// Representative returns the record of formula in group g with the smallest
// absolute mass error; ties go to the first record in input order.
func (idx *Index) Representative(g core.Group, formula string) (core.Record, bool) {
	positions, ok := idx.byGroup[g][formula]
	if !ok || len(positions) == 0 {
		return core.Record{}, false
	}

	best := positions[0]
	bestErr := math.Abs(idx.rows[best].Error)
	for _, p := range positions[1:] {
		if e := math.Abs(idx.rows[p].Error); e < bestErr {
			best, bestErr = p, e
		}
	}
	return idx.rows[best], true
}
