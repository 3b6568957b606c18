// Package normalize switches tables between absolute and relative intensity.
package normalize

import (
	"gonum.org/v1/gonum/floats"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

// Memo holds the absolute intensities of the loaded data. Records sharing a
// (Sample, Description, Formula) triple are told apart by their occurrence.
type Memo struct {
	values map[core.Key][]float64
}

// NewMemo records the absolute intensity of every row.
func NewMemo(rows []core.Record) *Memo {
	m := &Memo{values: make(map[core.Key][]float64)}
	for i := range rows {
		r := &rows[i]
		k := r.Key()
		vals := m.values[k]
		for len(vals) <= r.Occurrence {
			vals = append(vals, 0)
		}
		vals[r.Occurrence] = r.Intensity
		m.values[k] = vals
	}
	return m
}

// Lookup returns the absolute intensity recorded for r.
func (m *Memo) Lookup(r *core.Record) (float64, error) {
	vals, ok := m.values[r.Key()]
	if !ok || r.Occurrence >= len(vals) {
		return 0, core.Errorf(core.KindKeyNotFound, "lookup", "no absolute intensity for %s", r.Key())
	}
	return vals[r.Occurrence], nil
}

// Len returns the number of distinct keys.
func (m *Memo) Len() int {
	return len(m.values)
}

// ToRelative rescales each group to percent of its most intense row. A group
// whose maximum is zero maps to zero.
func ToRelative(t table.Table) (table.Table, error) {
	if t.Kind.IsDerived() {
		return table.Table{}, derived(t)
	}
	if t.Mode == core.Relative {
		return t, nil
	}

	byGroup := make(map[core.Group][]float64)
	for i := range t.Rows {
		g := t.Rows[i].Group()
		byGroup[g] = append(byGroup[g], t.Rows[i].Intensity)
	}
	maxima := make(map[core.Group]float64, len(byGroup))
	for g, vals := range byGroup {
		maxima[g] = floats.Max(vals)
	}

	rows := make([]core.Record, len(t.Rows))
	copy(rows, t.Rows)
	for i := range rows {
		peak := maxima[rows[i].Group()]
		if peak == 0 {
			rows[i].Intensity = 0
			continue
		}
		rows[i].Intensity = rows[i].Intensity / peak * 100
	}

	out := t.WithRows(rows)
	out.Mode = core.Relative
	return out, nil
}

// ToAbsolute restores absolute intensities from memo.
func ToAbsolute(t table.Table, memo *Memo) (table.Table, error) {
	if t.Kind.IsDerived() {
		return table.Table{}, derived(t)
	}
	if t.Mode == core.Absolute {
		return t, nil
	}

	rows := make([]core.Record, len(t.Rows))
	copy(rows, t.Rows)
	for i := range rows {
		v, err := memo.Lookup(&rows[i])
		if err != nil {
			return table.Table{}, err
		}
		rows[i].Intensity = v
	}

	out := t.WithRows(rows)
	out.Mode = core.Absolute
	return out, nil
}

// Toggle switches t to the other intensity mode.
func Toggle(t table.Table, memo *Memo) (table.Table, error) {
	if t.Mode == core.Relative {
		return ToAbsolute(t, memo)
	}
	return ToRelative(t)
}

func derived(t table.Table) error {
	return core.Errorf(core.KindNotSupportedOnDerivedView, "toggle intensity", "intensity mode cannot change on a %s view", t.Kind)
}
