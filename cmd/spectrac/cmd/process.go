package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraC/pkg/session"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
	"github.com/ChrisMcGann/SpectraC/pkg/writer/delimited"
	"github.com/ChrisMcGann/SpectraC/pkg/writer/sqlite"
)

var (
	processOut   string
	processLimit int
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run a pipeline of steps and print or save the resulting table",
	Example: `  spectrac process -d ./peaks -s search=CH4,C2H6O -s relative
  spectrac process -d ./peaks -s filter --families "Aliphatics,Oxygen Species" --c-range 5-20 -s average=all --out avg.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		if err := runSteps(s, steps); err != nil {
			return err
		}
		view, err := s.Displayed()
		if err != nil {
			return err
		}

		if processOut == "" {
			printTable(view, processLimit)
			return nil
		}
		if err := writeTable(s, processOut, view); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", view.Len(), processOut)
		return nil
	},
}

func init() {
	addPipelineFlags(processCmd)
	processCmd.Flags().StringVarP(&processOut, "out", "o", "", "Output file (.csv or .db); prints to stdout when empty")
	processCmd.Flags().IntVar(&processLimit, "limit", 50, "Maximum rows printed to stdout (0 for all)")
}

// writeTable saves t as CSV or SQLite depending on the path extension.
func writeTable(s *session.Session, path string, t table.Table) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return delimited.WriteTableFile(path, t)
	case ".db", ".sqlite":
		return sqlite.WriteFile(path, t, sqlite.Header{
			LoadID:      s.LoadID(),
			Description: fmt.Sprintf("%s view, %s intensity", t.Kind, t.Mode),
		})
	default:
		return fmt.Errorf("unsupported output format '%s', use .csv or .db", filepath.Ext(path))
	}
}

func printTable(t table.Table, limit int) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader(t.Columns())

	n := t.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	for i := 0; i < n; i++ {
		cells := t.Row(i)
		row := make([]string, len(cells))
		for j, c := range cells {
			row[j] = c.String()
		}
		tw.Append(row)
	}
	tw.Render()

	if n < t.Len() {
		fmt.Printf("... %d of %d rows shown\n", n, t.Len())
	}
}
