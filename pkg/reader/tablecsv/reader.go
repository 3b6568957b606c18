// Package tablecsv reads tables previously exported as CSV.
package tablecsv

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

type setter func(r *core.Record, v string) error

// Read parses an exported table. The view kind and intensity mode are
// inferred from the header: a Sample column marks a raw table, otherwise
// the table is treated as averaged with one group per per-group intensity
// column.
func Read(r io.Reader) (table.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return table.Table{}, core.Errorf(core.KindParse, "import", "empty file")
	}
	if err != nil {
		return table.Table{}, core.Wrap(core.KindParse, "import", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t, err := schema(header)
	if err != nil {
		return table.Table{}, err
	}

	setters := make([]setter, len(header))
	for i, col := range header {
		s, ok := setterFor(t, col)
		if !ok {
			return table.Table{}, core.Errorf(core.KindUnknownColumn, "import", "column '%s' is not part of a %s view", col, t.Kind)
		}
		setters[i] = s
	}

	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return table.Table{}, core.Wrap(core.KindParse, "import", err)
		}

		rec := core.Record{}
		if t.Kind.IsDerived() {
			rec.GroupIntensity = make([]float64, len(t.Groups))
		}
		for i, v := range row {
			if err := setters[i](&rec, v); err != nil {
				return table.Table{}, core.Errorf(core.KindParse, "import", "line %d, column '%s': %v", line, header[i], err)
			}
		}
		t.Rows = append(t.Rows, rec)
	}

	core.ReclassifyAll(t.Rows)
	if !t.Kind.IsDerived() {
		core.AssignOccurrences(t.Rows)
	}
	return t, nil
}

// ReadFile reads an exported table from path.
func ReadFile(path string) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, core.Wrap(core.KindIO, "import", err)
	}
	defer f.Close()

	return Read(f)
}

// ReadAs reads an exported table whose view kind is known to the caller.
// Averaged and common-species exports share one header layout, so the kind
// of a derived table cannot be inferred from the file alone. A raw file read
// as a derived kind, or the reverse, is a parse error.
func ReadAs(r io.Reader, kind core.ViewKind) (table.Table, error) {
	t, err := Read(r)
	if err != nil {
		return table.Table{}, err
	}
	if t.Kind.IsDerived() != kind.IsDerived() {
		return table.Table{}, core.Errorf(core.KindParse, "import", "file holds a %s table, not %s", t.Kind, kind)
	}
	t.Kind = kind
	return t, nil
}

// ReadFileAs is ReadAs on the file at path.
func ReadFileAs(path string, kind core.ViewKind) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, core.Wrap(core.KindIO, "import", err)
	}
	defer f.Close()

	return ReadAs(f, kind)
}

func schema(header []string) (table.Table, error) {
	t := table.Table{Kind: core.Averaged}
	for _, col := range header {
		switch col {
		case core.ColSample:
			t.Kind = core.Raw
		case core.ColRelativeIntensity, core.Relative.AverageColumn():
			t.Mode = core.Relative
		}
	}

	if t.Kind == core.Raw {
		return t, nil
	}

	prefix := t.Mode.Column() + " ("
	for _, col := range header {
		if !strings.HasPrefix(col, prefix) || col == t.Mode.AverageColumn() {
			continue
		}
		label := strings.TrimSuffix(strings.TrimPrefix(col, prefix), ")")
		g, err := core.ParseGroup(label)
		if err != nil {
			return table.Table{}, core.Errorf(core.KindParse, "import", "bad group column '%s'", col)
		}
		t.Groups = append(t.Groups, g)
	}
	return t, nil
}

func setterFor(t table.Table, column string) (setter, bool) {
	switch column {
	case core.ColC:
		return intSetter(func(r *core.Record, v int) { r.C = v }), true
	case core.ColH:
		return intSetter(func(r *core.Record, v int) { r.H = v }), true
	case core.ColN:
		return intSetter(func(r *core.Record, v int) { r.N = v }), true
	case core.ColO:
		return intSetter(func(r *core.Record, v int) { r.O = v }), true
	case core.ColDBE:
		return floatSetter(func(r *core.Record, v float64) { r.DBE = v }), true
	case core.ColDBEPerC:
		return floatSetter(func(r *core.Record, v float64) { r.DBEPerC = v }), true
	case core.ColHC:
		return floatSetter(func(r *core.Record, v float64) { r.HC = v }), true
	case core.ColFormula:
		return func(r *core.Record, v string) error { r.Formula = v; return nil }, true
	case core.ColTheoreticalMass:
		return floatSetter(func(r *core.Record, v float64) { r.TheoreticalMass = v }), true
	case core.ColFamily:
		return func(r *core.Record, v string) error { r.Family = v; return nil }, true
	}

	if t.Kind.IsDerived() {
		switch column {
		case core.ColMassAverage:
			return floatSetter(func(r *core.Record, v float64) { r.Mass = v }), true
		case core.ColErrorAverage:
			return floatSetter(func(r *core.Record, v float64) { r.Error = v }), true
		case t.Mode.AverageColumn():
			return floatSetter(func(r *core.Record, v float64) { r.Intensity = v }), true
		}
		for i, g := range t.Groups {
			if column == t.Mode.GroupColumn(g) {
				idx := i
				return floatSetter(func(r *core.Record, v float64) { r.GroupIntensity[idx] = v }), true
			}
		}
		return nil, false
	}

	switch column {
	case core.ColSample:
		return func(r *core.Record, v string) error { r.Sample = v; return nil }, true
	case core.ColDescription:
		return func(r *core.Record, v string) error { r.Description = v; return nil }, true
	case core.ColMass:
		return floatSetter(func(r *core.Record, v float64) { r.Mass = v }), true
	case core.ColError:
		return floatSetter(func(r *core.Record, v float64) { r.Error = v }), true
	case t.Mode.Column():
		return floatSetter(func(r *core.Record, v float64) { r.Intensity = v }), true
	}
	return nil, false
}

func floatSetter(set func(*core.Record, float64)) setter {
	return func(r *core.Record, s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		set(r, v)
		return nil
	}
}

func intSetter(set func(*core.Record, int)) setter {
	return func(r *core.Record, s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		if v != math.Trunc(v) {
			return strconv.ErrSyntax
		}
		set(r, int(v))
		return nil
	}
}
