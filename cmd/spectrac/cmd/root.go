// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraC/internal/config"
	"github.com/ChrisMcGann/SpectraC/internal/logger"
	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/reader/tablecsv"
	"github.com/ChrisMcGann/SpectraC/pkg/session"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

var (
	// Global flags
	cfgFile  string
	dataDir  string
	logLevel string
	fromFile string
	fromKind string

	// Pipeline flags shared by process, plot and export
	steps          []string
	families       string
	cRange         string
	cRanges        string
	massRange      string
	massRanges     string
	intensityRange string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "spectrac",
	Short: "SpectraC - peak list reconciliation and aggregation",
	Long: `SpectraC loads assigned peak lists exported as <Sample>_<Description>.txt files
and lets you search, sort, filter, normalize, average and intersect them.

Operations run as an ordered pipeline of --step flags over the loaded data:
- relative / absolute       switch the intensity mode
- search=CH4,C2H6           keep the listed formulas
- list=formulas.txt         keep the formulas of a .txt or .csv list
- sort=<column>             stable ascending sort
- filter                    apply the --families / range flags
- average=all|A_wet,B_dry   average the selected groups
- common=all|A_wet,B_dry    keep formulas common to the selected groups
- reset                     return to the loaded data`,
	Version:           "1.0.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.spectrac/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "", "Data directory (overrides data_dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log_level)")
	rootCmd.PersistentFlags().StringVar(&fromFile, "from", "", "Start from a table exported as CSV instead of the data directory")
	rootCmd.PersistentFlags().StringVar(&fromKind, "from-kind", "", "View kind of the --from table: raw, averaged or common (default: from its header)")

	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

// addPipelineFlags registers the --step pipeline and filter flags on c
func addPipelineFlags(c *cobra.Command) {
	c.Flags().StringArrayVarP(&steps, "step", "s", nil, "Pipeline step, repeatable and applied in order")
	c.Flags().StringVar(&families, "families", "", "Comma-separated families for the filter step (default: all present)")
	c.Flags().StringVar(&cRange, "c-range", "", "C# range 'min-max' for the filter step (default: full range)")
	c.Flags().StringVar(&cRanges, "c-ranges", "", "Extra C# ranges 'a-b,c-d', ORed with --c-range")
	c.Flags().StringVar(&massRange, "mass-range", "", "Mass range 'min-max' for the filter step (default: full range)")
	c.Flags().StringVar(&massRanges, "mass-ranges", "", "Extra mass ranges 'a-b,c-d', ORed with --mass-range")
	c.Flags().StringVar(&intensityRange, "intensity-range", "", "Intensity range 'min-max' for the filter step (default: full range)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if err := logger.Init(level, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	return nil
}

// openSession loads the data directory, or the --from table, into a new
// session
func openSession() (*session.Session, error) {
	if fromFile != "" {
		return openTable()
	}

	dir := dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	if dir == "" {
		return nil, fmt.Errorf("no data directory, use --dir or set data_dir")
	}

	s := session.New(logger.Log)
	if err := s.Load(dir, cfg.SpectraOptions()); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", dir, err)
	}
	return s, nil
}

func openTable() (*session.Session, error) {
	var (
		t   table.Table
		err error
	)
	switch fromKind {
	case "":
		t, err = tablecsv.ReadFile(fromFile)
	case "raw":
		t, err = tablecsv.ReadFileAs(fromFile, core.Raw)
	case "averaged":
		t, err = tablecsv.ReadFileAs(fromFile, core.Averaged)
	case "common":
		t, err = tablecsv.ReadFileAs(fromFile, core.CommonSpecies)
	default:
		return nil, fmt.Errorf("unknown --from-kind '%s', use raw, averaged or common", fromKind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", fromFile, err)
	}

	s := session.New(logger.Log)
	s.LoadTable(t)
	return s, nil
}
