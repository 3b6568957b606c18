// Package table provides the in-memory record tables held by a SpectraC
// session. Tables are values: every operation returns a new Table and never
// modifies its receiver's rows.
package table

import (
	"sort"
	"strings"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
)

// Table is an ordered set of records sharing one column schema.
type Table struct {
	Kind core.ViewKind
	Mode core.IntensityMode
	// Groups orders the per-group intensity columns of derived views.
	Groups []core.Group
	Rows   []core.Record
}

// New creates a raw absolute-intensity table over a copy of records.
func New(records []core.Record) Table {
	rows := make([]core.Record, len(records))
	copy(rows, records)
	return Table{Kind: core.Raw, Mode: core.Absolute, Rows: rows}
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// WithRows returns a table with t's schema over rows.
func (t Table) WithRows(rows []core.Record) Table {
	out := t
	out.Groups = append([]core.Group(nil), t.Groups...)
	out.Rows = rows
	return out
}

// Columns returns the active column set in display order.
func (t Table) Columns() []string {
	if t.Kind.IsDerived() {
		return core.AveragedColumns(t.Mode, t.Groups)
	}
	return core.RawColumns(t.Mode)
}

// HasColumn reports whether name is in the active column set.
func (t Table) HasColumn(name string) bool {
	_, ok := t.getter(name)
	return ok
}

// MassColumn returns the active mass column name.
func (t Table) MassColumn() string {
	return core.MassColumn(t.Kind)
}

// IntensityColumn returns the active intensity column name.
func (t Table) IntensityColumn() string {
	return core.IntensityColumn(t.Kind, t.Mode)
}

// Cell returns the value at row i of the named column.
func (t Table) Cell(i int, column string) (Cell, error) {
	get, ok := t.getter(column)
	if !ok {
		return Cell{}, unknownColumn("cell", column)
	}
	return get(&t.Rows[i]), nil
}

// Row returns the cells of row i in Columns order.
func (t Table) Row(i int) []Cell {
	cols := t.Columns()
	cells := make([]Cell, len(cols))
	for j, c := range cols {
		get, _ := t.getter(c)
		cells[j] = get(&t.Rows[i])
	}
	return cells
}

// Sort returns the rows stably sorted ascending by column.
func (t Table) Sort(column string) (Table, error) {
	get, ok := t.getter(column)
	if !ok {
		return Table{}, unknownColumn("sort", column)
	}

	rows := make([]core.Record, len(t.Rows))
	copy(rows, t.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return get(&rows[i]).Less(get(&rows[j]))
	})
	return t.WithRows(rows), nil
}

// ParseQuery splits a comma-separated formula query into trimmed formulas.
func ParseQuery(query string) ([]string, error) {
	var formulas []string
	for _, f := range strings.Split(query, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formulas = append(formulas, f)
		}
	}
	if len(formulas) == 0 {
		return nil, core.Errorf(core.KindInvalidQuery, "search", "no formulas entered, separate formulas with commas")
	}
	return formulas, nil
}

// Search returns the rows whose formula is in formulas. An empty result is
// reported as core.ErrNoMatch.
func (t Table) Search(formulas []string) (Table, error) {
	if len(formulas) == 0 {
		return Table{}, core.Errorf(core.KindInvalidQuery, "search", "no formulas entered")
	}
	set := make(map[string]struct{}, len(formulas))
	for _, f := range formulas {
		set[strings.TrimSpace(f)] = struct{}{}
	}

	out := t.Where(func(r *core.Record) bool {
		_, ok := set[r.Formula]
		return ok
	})
	if out.IsEmpty() {
		return Table{}, core.Errorf(core.KindNoMatch, "search", "no data found for %s", strings.Join(formulas, ", "))
	}
	return out, nil
}

// Where returns the rows matching keep, in order.
func (t Table) Where(keep func(r *core.Record) bool) Table {
	rows := make([]core.Record, 0, len(t.Rows))
	for i := range t.Rows {
		if keep(&t.Rows[i]) {
			rows = append(rows, t.Rows[i])
		}
	}
	return t.WithRows(rows)
}

// Select returns the rows belonging to the selected groups.
func (t Table) Select(sel core.Selection) Table {
	return t.Where(func(r *core.Record) bool {
		return sel.Contains(r.Group())
	})
}

// SampleGroups returns the distinct groups of a raw table in first-seen order.
func (t Table) SampleGroups() []core.Group {
	if t.Kind.IsDerived() {
		return nil
	}
	seen := make(map[core.Group]struct{})
	var groups []core.Group
	for i := range t.Rows {
		g := t.Rows[i].Group()
		if _, ok := seen[g]; !ok {
			seen[g] = struct{}{}
			groups = append(groups, g)
		}
	}
	return groups
}

// Families returns the distinct families present, in family display order.
func (t Table) Families() []string {
	seen := make(map[string]struct{})
	var families []string
	for i := range t.Rows {
		f := t.Rows[i].Family
		if _, ok := seen[f]; !ok {
			seen[f] = struct{}{}
			families = append(families, f)
		}
	}
	sort.SliceStable(families, func(i, j int) bool {
		return core.FamilyRank(families[i]) < core.FamilyRank(families[j])
	})
	return families
}

func unknownColumn(op, column string) error {
	return core.Errorf(core.KindUnknownColumn, op, "column '%s' is not part of the current view", column)
}
