package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
)

func rec(sample, formula string, c int, mass, intensity float64, family string) core.Record {
	return core.Record{
		C: c, H: 2*c + 2,
		Sample: sample, Description: "wet",
		Formula: formula, Mass: mass, TheoreticalMass: mass,
		Family: family, Intensity: intensity,
	}
}

func sampleTable() Table {
	return New([]core.Record{
		rec("A", "C3H8", 3, 44.06, 30, core.FamilyAliphatics),
		rec("A", "CH4", 1, 16.03, 10, core.FamilyAliphatics),
		rec("B", "C10H8", 10, 128.06, 5, core.FamilyCondensedAromatics),
		rec("B", "CH4", 1, 16.03, 20, core.FamilyAliphatics),
		rec("B", "C6H6", 6, 78.05, 10, core.FamilyAromatics),
	})
}

func TestColumns(t *testing.T) {
	tbl := sampleTable()
	got := strings.Join(tbl.Columns(), ",")
	want := "C#,H#,N#,O#,DBE,DBE/C#,H/C,Sample,Description,Formula,Mass,Theoretical mass,Error,Family,Absolute intensity"
	if got != want {
		t.Errorf("Columns() = %s, want %s", got, want)
	}

	derived := Table{Kind: core.Averaged, Mode: core.Relative, Groups: []core.Group{{Sample: "A", Description: "wet"}}}
	if !derived.HasColumn("Relative intensity (A_wet)") {
		t.Error("expected per-group column on averaged view")
	}
	if derived.HasColumn(core.ColSample) || derived.HasColumn(core.ColMass) {
		t.Error("averaged view must not expose Sample or Mass")
	}
	if derived.MassColumn() != core.ColMassAverage || derived.IntensityColumn() != "Relative intensity (Average)" {
		t.Errorf("unexpected derived columns %q, %q", derived.MassColumn(), derived.IntensityColumn())
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name    string
		column  string
		want    []string
		wantErr error
	}{
		{"by intensity is stable", core.ColAbsoluteIntensity, []string{"C10H8", "CH4", "C6H6", "CH4", "C3H8"}, nil},
		{"by formula", core.ColFormula, []string{"C10H8", "C3H8", "C6H6", "CH4", "CH4"}, nil},
		{"by carbon count", core.ColC, []string{"CH4", "CH4", "C3H8", "C6H6", "C10H8"}, nil},
		{"relative in absolute mode", core.ColRelativeIntensity, nil, core.ErrUnknownColumn},
		{"averaged column on raw view", core.ColMassAverage, nil, core.ErrUnknownColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := sampleTable()
			sorted, err := tbl.Sort(tt.column)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Sort() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Sort() error = %v", err)
			}
			if got := formulas(sorted); strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Sort() = %v, want %v", got, tt.want)
			}
			if tbl.Rows[0].Formula != "C3H8" {
				t.Error("Sort() modified its receiver")
			}
		})
	}
}

func TestSortStableTies(t *testing.T) {
	sorted, err := sampleTable().Sort(core.ColFormula)
	if err != nil {
		t.Fatal(err)
	}
	// The two CH4 rows keep their A, B order
	if sorted.Rows[3].Sample != "A" || sorted.Rows[4].Sample != "B" {
		t.Errorf("expected A before B for tied CH4 rows, got %s, %s", sorted.Rows[3].Sample, sorted.Rows[4].Sample)
	}
}

func TestSearch(t *testing.T) {
	tbl := sampleTable()

	formulasQ, err := ParseQuery(" CH4 , C6H6,,")
	if err != nil {
		t.Fatalf("ParseQuery() error = %v", err)
	}
	found, err := tbl.Search(formulasQ)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got := strings.Join(formulas(found), ","); got != "CH4,CH4,C6H6" {
		t.Errorf("Search() = %s", got)
	}

	if _, err := tbl.Search([]string{"C60"}); !errors.Is(err, core.ErrNoMatch) {
		t.Errorf("expected no match, got %v", err)
	}
	if _, err := ParseQuery(" , "); !errors.Is(err, core.ErrInvalidQuery) {
		t.Errorf("expected invalid query, got %v", err)
	}
}

func TestSelectAndGroups(t *testing.T) {
	tbl := sampleTable()
	groups := tbl.SampleGroups()
	if len(groups) != 2 || groups[0].Sample != "A" || groups[1].Sample != "B" {
		t.Fatalf("SampleGroups() = %v", groups)
	}

	selected := tbl.Select(core.NewSelection(groups[1]))
	if selected.Len() != 3 {
		t.Errorf("Select() returned %d rows, want 3", selected.Len())
	}

	fams := tbl.Families()
	want := []string{core.FamilyAliphatics, core.FamilyAromatics, core.FamilyCondensedAromatics}
	if strings.Join(fams, ",") != strings.Join(want, ",") {
		t.Errorf("Families() = %v, want %v", fams, want)
	}
}

func TestRowCells(t *testing.T) {
	tbl := Table{
		Kind:   core.Averaged,
		Mode:   core.Absolute,
		Groups: []core.Group{{Sample: "A", Description: "wet"}, {Sample: "B", Description: "wet"}},
		Rows: []core.Record{{
			C: 1, H: 4, Formula: "CH4", Mass: 16.5, Family: core.FamilyAliphatics,
			GroupIntensity: []float64{10, 20}, Intensity: 15,
		}},
	}

	cells := tbl.Row(0)
	cols := tbl.Columns()
	if len(cells) != len(cols) {
		t.Fatalf("Row() has %d cells for %d columns", len(cells), len(cols))
	}

	got := make(map[string]string)
	for i, c := range cols {
		got[c] = cells[i].String()
	}
	want := map[string]string{
		core.ColC:                      "1",
		core.ColMassAverage:            "16.5",
		"Absolute intensity (A_wet)":   "10",
		"Absolute intensity (B_wet)":   "20",
		"Absolute intensity (Average)": "15",
		core.ColFormula:                "CH4",
	}
	for col, w := range want {
		if got[col] != w {
			t.Errorf("column %q = %q, want %q", col, got[col], w)
		}
	}
}

func formulas(t Table) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Formula
	}
	return out
}
