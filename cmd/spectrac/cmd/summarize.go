package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize the loaded sample groups",
	Long: `Loads the data directory and prints one line per Sample_Description group
with its row count, distinct formulas, C# and mass extent and intensity sum.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		all, err := s.All()
		if err != nil {
			return err
		}
		if all.Kind.IsDerived() {
			return fmt.Errorf("summarize needs raw data, the loaded table is %s", all.Kind)
		}

		fmt.Printf("Load %s: %d rows in %d groups\n", s.LoadID(), all.Len(), len(all.SampleGroups()))
		summarize(all).Render()
		return nil
	},
}

type groupSummary struct {
	rows       int
	formulas   map[string]struct{}
	cMin, cMax int
	masses     []float64
	intensity  []float64
}

func summarize(t table.Table) *tablewriter.Table {
	groups := t.SampleGroups()
	stats := make(map[core.Group]*groupSummary, len(groups))
	for _, g := range groups {
		stats[g] = &groupSummary{formulas: make(map[string]struct{})}
	}

	for i := range t.Rows {
		r := &t.Rows[i]
		st := stats[r.Group()]
		if st.rows == 0 || r.C < st.cMin {
			st.cMin = r.C
		}
		if st.rows == 0 || r.C > st.cMax {
			st.cMax = r.C
		}
		st.rows++
		st.formulas[r.Formula] = struct{}{}
		st.masses = append(st.masses, r.Mass)
		st.intensity = append(st.intensity, r.Intensity)
	}

	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"Sample", "Description", "Rows", "Formulas", "C#", "Mass", "Intensity"})
	for _, g := range groups {
		st := stats[g]
		tw.Append([]string{
			g.Sample,
			g.Description,
			strconv.Itoa(st.rows),
			strconv.Itoa(len(st.formulas)),
			fmt.Sprintf("%d-%d", st.cMin, st.cMax),
			fmt.Sprintf("%g-%g", core.RoundFloat(floats.Min(st.masses), 4), core.RoundFloat(floats.Max(st.masses), 4)),
			fmt.Sprintf("%.6g", floats.Sum(st.intensity)),
		})
	}
	return tw
}
