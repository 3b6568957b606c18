package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportOut       string
	exportDisplayed bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the loaded data, or the processed table, to CSV or SQLite",
	Long: `Writes every loaded record (the All Data view) to --out. With --displayed
the --step pipeline runs first and the resulting table is written instead.
The format follows the extension: .csv for CSV, .db or .sqlite for SQLite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		view, err := s.All()
		if err != nil {
			return err
		}
		if exportDisplayed {
			if err := runSteps(s, steps); err != nil {
				return err
			}
			if view, err = s.Displayed(); err != nil {
				return err
			}
		} else if len(steps) > 0 {
			return fmt.Errorf("--step requires --displayed")
		}

		if err := writeTable(s, exportOut, view); err != nil {
			return err
		}
		fmt.Printf("Exported %d rows (load %s) to %s\n", view.Len(), s.LoadID(), exportOut)
		return nil
	},
}

func init() {
	addPipelineFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (.csv or .db)")
	exportCmd.Flags().BoolVar(&exportDisplayed, "displayed", false, "Export the table produced by the --step pipeline")
	exportCmd.MarkFlagRequired("out")
}
