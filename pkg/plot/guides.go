package plot

import "math"

// Guide is a reference curve drawn over a scatter plot, defined for
// C# >= Start.
type Guide struct {
	Name  string // Full equation, e.g. "DBE = 0.5*C# (Aromatic)"
	Label string // Legend label
	Start float64
	Fn    func(c float64) float64
}

// Points samples the guide at n evenly spaced C# values from Start to xmax.
func (g Guide) Points(xmax float64, n int) []Point {
	if n < 2 || xmax <= g.Start {
		return nil
	}
	step := (xmax - g.Start) / float64(n-1)
	pts := make([]Point, n)
	for i := range pts {
		x := g.Start + float64(i)*step
		pts[i] = Point{X: x, Y: g.Fn(x)}
	}
	return pts
}

func linear(a, b float64) func(float64) float64 {
	return func(c float64) float64 { return a*c + b }
}

func constant(v float64) func(float64) float64 {
	return func(float64) float64 { return v }
}

// Guides returns the reference curves for kind. H/C vs Mass has none.
func Guides(kind Kind) []Guide {
	switch kind {
	case DBEvsC:
		return []Guide{
			{"DBE = 0.5*C# (Aromatic)", "Aromatic", 6, linear(0.5, 0)},
			{"DBE = 0.67*C# (Condensed Aromatic)", "Condensed Aromatic", 10, linear(0.67, 0)},
			{"DBE = 0.735*C# - 0.5 (Cata-condensed PAHs)", "Cata-condensed PAHs", 10, linear(0.735, -0.5)},
			{"DBE = 0.92*C# - 3.24 (Peri-condensed PAHs)", "Peri-condensed PAHs", 16, linear(0.92, -3.24)},
			{"DBE = 0.9*C# (HC Cluster)", "HC Cluster", 6, linear(0.9, 0)},
			{"DBE = C#+1 (Carbon Clusters)", "Carbon Clusters", 2, linear(1, 1)},
		}
	case HvsC:
		return []Guide{
			{"H# = sqrt(6*C#) (Peri-condensed PAHs)", "Peri-condensed PAHs", 16, func(c float64) float64 { return math.Sqrt(6 * c) }},
			{"H# = 0.5*C# + 3 (Cata-condensed PAHs)", "Cata-condensed PAHs", 10, linear(0.5, 3)},
			{"H# = C#", "H# = C#", 2, linear(1, 0)},
			{"H# = 1.25*C# + 2.5 (Aliphatic/Aromatic)", "Aliphatic/Aromatic", 2, linear(1.25, 2.5)},
			{"H# = 2*C# + 2 (Aliphatic)", "Aliphatic", 2, linear(2, 2)},
		}
	case AIvsC:
		return []Guide{
			{"AI = 0.5 (Aromatic)", "Aromatic", 6, constant(0.5)},
			{"AI = 0.67 (Condensed Aromatic)", "Condensed Aromatic", 10, constant(0.67)},
			{"AI = 0.735 - 0.5/C# (Cata-condensed PAHs)", "Cata-condensed PAHs", 10, func(c float64) float64 { return 0.735 - 0.5/c }},
			{"AI = 0.92 - 3.24/C# (Peri-condensed PAHs)", "Peri-condensed PAHs", 16, func(c float64) float64 { return 0.92 - 3.24/c }},
			{"AI = 0.9 (HC Cluster)", "HC Cluster", 6, constant(0.9)},
			{"AI = 1 + 1/C# (Carbon Clusters)", "Carbon Clusters", 2, func(c float64) float64 { return 1 + 1/c }},
		}
	default:
		return nil
	}
}

// SelectGuides returns the guides of kind whose Name or Label is in names.
// An empty names list selects none.
func SelectGuides(kind Kind, names []string) []Guide {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []Guide
	for _, g := range Guides(kind) {
		if want[g.Name] || want[g.Label] {
			out = append(out, g)
		}
	}
	return out
}
