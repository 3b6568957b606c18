package table

import (
	"strconv"
	"strings"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
)

// CellKind is the type of a cell value.
type CellKind int

const (
	IntCell CellKind = iota
	FloatCell
	TextCell
)

// Cell is one value of a table column.
type Cell struct {
	Kind CellKind
	Num  float64 // Int and float cells
	Text string  // Text cells
}

func intCell(v int) Cell { return Cell{Kind: IntCell, Num: float64(v)} }
func floatCell(v float64) Cell { return Cell{Kind: FloatCell, Num: v} }
func textCell(v string) Cell { return Cell{Kind: TextCell, Text: v} }
func (c Cell) IsNumeric() bool { return c.Kind != TextCell }

// String formats the cell; floats use the shortest representation that
// parses back to the same value.
func (c Cell) String() string {
	switch c.Kind {
	case IntCell:
		return strconv.Itoa(int(c.Num))
	case FloatCell:
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	default:
		return c.Text
	}
}

// Less orders numbers numerically and text lexically.
func (c Cell) Less(o Cell) bool {
	if c.IsNumeric() && o.IsNumeric() {
		return c.Num < o.Num
	}
	return c.String() < o.String()
}

type getterFunc func(r *core.Record) Cell

// getter resolves a column name against the active schema.
func (t Table) getter(column string) (getterFunc, bool) {
	switch column {
	case core.ColC:
		return func(r *core.Record) Cell { return intCell(r.C) }, true
	case core.ColH:
		return func(r *core.Record) Cell { return intCell(r.H) }, true
	case core.ColN:
		return func(r *core.Record) Cell { return intCell(r.N) }, true
	case core.ColO:
		return func(r *core.Record) Cell { return intCell(r.O) }, true
	case core.ColDBE:
		return func(r *core.Record) Cell { return floatCell(r.DBE) }, true
	case core.ColDBEPerC:
		return func(r *core.Record) Cell { return floatCell(r.DBEPerC) }, true
	case core.ColHC:
		return func(r *core.Record) Cell { return floatCell(r.HC) }, true
	case core.ColFormula:
		return func(r *core.Record) Cell { return textCell(r.Formula) }, true
	case core.ColTheoreticalMass:
		return func(r *core.Record) Cell { return floatCell(r.TheoreticalMass) }, true
	case core.ColFamily:
		return func(r *core.Record) Cell { return textCell(r.Family) }, true
	}

	if t.Kind.IsDerived() {
		switch column {
		case core.ColMassAverage:
			return func(r *core.Record) Cell { return floatCell(r.Mass) }, true
		case core.ColErrorAverage:
			return func(r *core.Record) Cell { return floatCell(r.Error) }, true
		case t.Mode.AverageColumn():
			return func(r *core.Record) Cell { return floatCell(r.Intensity) }, true
		}
		prefix := t.Mode.Column() + " ("
		if strings.HasPrefix(column, prefix) {
			for i, g := range t.Groups {
				if column == t.Mode.GroupColumn(g) {
					idx := i
					return func(r *core.Record) Cell {
						if idx < len(r.GroupIntensity) {
							return floatCell(r.GroupIntensity[idx])
						}
						return floatCell(0)
					}, true
				}
			}
		}
		return nil, false
	}

	switch column {
	case core.ColSample:
		return func(r *core.Record) Cell { return textCell(r.Sample) }, true
	case core.ColDescription:
		return func(r *core.Record) Cell { return textCell(r.Description) }, true
	case core.ColMass:
		return func(r *core.Record) Cell { return floatCell(r.Mass) }, true
	case core.ColError:
		return func(r *core.Record) Cell { return floatCell(r.Error) }, true
	case t.Mode.Column():
		return func(r *core.Record) Cell { return floatCell(r.Intensity) }, true
	}
	return nil, false
}
