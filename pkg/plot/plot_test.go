package plot

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

var (
	groupA = core.Group{Sample: "A", Description: "wet"}
	groupB = core.Group{Sample: "B", Description: "wet"}
)

func rec(g core.Group, formula string, c, h, n, o int, dbe float64, family string, intensity float64) core.Record {
	return core.Record{
		C: c, H: h, N: n, O: o, DBE: dbe, HC: float64(h) / float64(c),
		Sample: g.Sample, Description: g.Description,
		Formula: formula, Mass: float64(12*c + h + 14*n + 16*o),
		Family: family, Intensity: intensity,
	}
}

func testTable() table.Table {
	return table.New([]core.Record{
		rec(groupA, "C10H8", 10, 8, 0, 0, 7, core.FamilyCondensedAromatics, 100),
		rec(groupA, "C9H7N", 9, 7, 1, 0, 7, core.FamilyNitrogenSpecies, 50),
		rec(groupA, "C6H6", 6, 6, 0, 0, 4, core.FamilyAromatics, 30),
		rec(groupB, "C20H42", 20, 42, 0, 0, 0, core.FamilyAliphatics, 10),
		rec(groupB, "Fe", 0, 0, 0, 0, 0, core.FamilyElements, 5),
		rec(groupB, "C6H6", 6, 6, 0, 0, 4, core.FamilyAromatics, 20),
	})
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"DBE vs C#", DBEvsC},
		{"h# vs c#", HvsC},
		{"hc", HCvsMass},
		{"AI", AIvsC},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseKind(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
	if _, err := ParseKind("mass vs time"); !errors.Is(err, core.ErrInvalidQuery) {
		t.Errorf("expected InvalidQuery, got %v", err)
	}

	x, y := HCvsMass.Labels()
	if x != "Mass" || y != "H/C" {
		t.Errorf("Labels() = %q, %q", x, y)
	}
}

func TestScatterRaw(t *testing.T) {
	series, err := Scatter(testTable(), DBEvsC, core.Selection{}, nil)
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}

	want := []struct {
		name   string
		points int
	}{
		{"A wet, CH Species", 2},
		{"A wet, CHN Species", 1},
		{"B wet, CH Species", 2},
	}
	if len(series) != len(want) {
		t.Fatalf("got %d series, want %d", len(series), len(want))
	}
	for i, w := range want {
		if series[i].Name != w.name || len(series[i].Points) != w.points {
			t.Errorf("series %d = %s (%d points), want %s (%d)", i, series[i].Name, len(series[i].Points), w.name, w.points)
		}
	}

	first := series[0].Points[0]
	if first.X != 10 || first.Y != 7 || first.Z != 100 {
		t.Errorf("first point = %+v", first)
	}
}

func TestScatterSelection(t *testing.T) {
	series, err := Scatter(testTable(), HvsC, core.NewSelection(groupB), []string{core.SpeciesCH})
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}
	if len(series) != 1 || series[0].Group != groupB || len(series[0].Points) != 2 {
		t.Errorf("Scatter() = %+v", series)
	}

	if _, err := Scatter(testTable(), HvsC, core.NewSelection(groupB), []string{core.SpeciesCHO}); !errors.Is(err, core.ErrNoMatch) {
		t.Errorf("expected NoMatch, got %v", err)
	}
	if _, err := Scatter(testTable(), HvsC, core.Selection{}, []string{"Metals"}); !errors.Is(err, core.ErrInvalidQuery) {
		t.Errorf("expected InvalidQuery, got %v", err)
	}
}

func TestScatterAveraged(t *testing.T) {
	avg := table.Table{Kind: core.Averaged, Rows: []core.Record{
		{C: 10, H: 8, Formula: "C10H8", Family: core.FamilyCondensedAromatics, Intensity: 50},
		{C: 9, H: 7, N: 1, Formula: "C9H7N", Family: core.FamilyNitrogenSpecies, Intensity: 25},
	}}
	series, err := Scatter(avg, AIvsC, core.Selection{}, nil)
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}
	if len(series) != 2 || series[0].Name != core.SpeciesCH || series[1].Name != core.SpeciesCHN {
		t.Fatalf("Scatter() = %+v", series)
	}
	// AI of C10H8 = (1 + 10 - 4) / 10
	if got := series[0].Points[0].Y; math.Abs(got-0.7) > 1e-12 {
		t.Errorf("AI = %v, want 0.7", got)
	}
}

func TestGuides(t *testing.T) {
	tests := []struct {
		kind  Kind
		count int
		name  string
		at    float64
		want  float64
	}{
		{DBEvsC, 6, "DBE = 0.92*C# - 3.24 (Peri-condensed PAHs)", 20, 0.92*20 - 3.24},
		{DBEvsC, 6, "DBE = C#+1 (Carbon Clusters)", 10, 11},
		{HvsC, 5, "H# = sqrt(6*C#) (Peri-condensed PAHs)", 24, 12},
		{HvsC, 5, "H# = 2*C# + 2 (Aliphatic)", 10, 22},
		{AIvsC, 6, "AI = 0.735 - 0.5/C# (Cata-condensed PAHs)", 10, 0.685},
		{AIvsC, 6, "AI = 0.67 (Condensed Aromatic)", 30, 0.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guides := Guides(tt.kind)
			if len(guides) != tt.count {
				t.Fatalf("Guides(%s) returned %d, want %d", tt.kind, len(guides), tt.count)
			}
			sel := SelectGuides(tt.kind, []string{tt.name})
			if len(sel) != 1 {
				t.Fatalf("SelectGuides() = %v", sel)
			}
			if got := sel[0].Fn(tt.at); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("%s at %v = %v, want %v", tt.name, tt.at, got, tt.want)
			}
		})
	}

	if Guides(HCvsMass) != nil {
		t.Error("H/C vs Mass should have no guides")
	}

	pts := Guides(DBEvsC)[0].Points(16, 11)
	if len(pts) != 11 || pts[0].X != 6 || pts[10].X != 16 || pts[10].Y != 8 {
		t.Errorf("Points() = %v", pts)
	}
	if Guides(DBEvsC)[3].Points(10, 10) != nil {
		t.Error("guide starting beyond xmax should have no points")
	}
}

func TestFamilyAnalysis(t *testing.T) {
	families := []string{core.FamilyNitrogenSpecies, core.FamilyAromatics, core.FamilyAliphatics}
	report, err := FamilyAnalysis(testTable(), families, core.Selection{})
	if err != nil {
		t.Fatalf("FamilyAnalysis() error = %v", err)
	}

	wantFamilies := []string{core.FamilyAliphatics, core.FamilyAromatics, core.FamilyNitrogenSpecies}
	for i, f := range wantFamilies {
		if report.Families[i] != f {
			t.Errorf("family %d = %s, want %s", i, report.Families[i], f)
		}
	}
	if len(report.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(report.Groups))
	}

	a := report.Groups[0]
	if a.Label != "A, wet" || a.Intensity[0] != 0 || a.Intensity[1] != 30 || a.Intensity[2] != 50 {
		t.Errorf("group A = %+v", a)
	}
	if a.Species[1] != 1 || a.Species[2] != 1 {
		t.Errorf("group A species = %v", a.Species)
	}

	bars := report.IntensityBars(false)
	if len(bars) != 4 || bars[0].Label != "A, wet: Aromatics" {
		t.Errorf("IntensityBars() = %+v", bars)
	}
	logBars := report.IntensityBars(true)
	if math.Abs(logBars[1].Value-math.Log10(50)) > 1e-12 {
		t.Errorf("log bar = %v", logBars[1].Value)
	}

	if _, err := FamilyAnalysis(testTable(), []string{core.FamilyFullerenes}, core.Selection{}); !errors.Is(err, core.ErrNoMatch) {
		t.Errorf("expected NoMatch, got %v", err)
	}
}

func TestPNGRenderer(t *testing.T) {
	dir := t.TempDir()
	r := &PNGRenderer{Dir: dir, Width: 640, Height: 480}

	series, err := Scatter(testTable(), DBEvsC, core.Selection{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	x, y := DBEvsC.Labels()
	err = r.Scatter(ScatterPlot{Title: "DBE vs C#", XLabel: x, YLabel: y, Series: series, Guides: Guides(DBEvsC)})
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}

	err = r.Bars(BarPlot{Title: "Family Analysis", Bars: []Bar{{"Aliphatics", 10}, {"Aromatics", 50}}})
	if err != nil {
		t.Fatalf("Bars() error = %v", err)
	}

	if len(r.Written) != 2 {
		t.Fatalf("Written = %v", r.Written)
	}
	if filepath.Base(r.Written[0]) != "DBE_vs_Cnum.png" {
		t.Errorf("unexpected file name %s", r.Written[0])
	}
	for _, path := range r.Written {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Errorf("%s is not a PNG", path)
		}
	}

	if err := r.Bars(BarPlot{Title: "empty"}); !errors.Is(err, core.ErrNoMatch) {
		t.Errorf("expected NoMatch for empty bars, got %v", err)
	}
}
