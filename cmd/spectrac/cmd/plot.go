package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/plot"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
	"github.com/ChrisMcGann/SpectraC/pkg/writer/delimited"
)

var (
	plotKinds    []string
	plotGroups   string
	plotSpecies  []string
	plotGuides   []string
	plotOutDir   string
	plotData     bool
	plotFamilies bool
	plotLog      bool
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render scatter plots and family analysis charts of the processed table",
	Example: `  spectrac plot -d ./peaks --kind dbe --kind hc --guides all
  spectrac plot -d ./peaks -s average=all --kind all --species CH,CHO --data
  spectrac plot -d ./peaks --family-analysis --families "Aliphatics,Aromatics,Oxygen Species" --log`,
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

		sel, err := selection(s, plotGroups)
		if err != nil {
			return err
		}

		dir := plotOutDir
		if dir == "" {
			dir = cfg.OutputDir
		}
		renderer := &plot.PNGRenderer{Dir: dir, Width: cfg.PlotWidth, Height: cfg.PlotHeight}

		kinds, err := parseKinds(plotKinds)
		if err != nil {
			return err
		}
		if len(kinds) == 0 && !plotFamilies {
			kinds = plot.Kinds
		}
		for _, kind := range kinds {
			if err := scatter(renderer, dir, view, kind, sel); err != nil {
				if !errors.Is(err, core.ErrNoMatch) {
					return err
				}
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}

		if plotFamilies {
			if err := familyAnalysis(renderer, view, sel); err != nil {
				return err
			}
		}

		for _, path := range renderer.Written {
			fmt.Printf("Wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	addPipelineFlags(plotCmd)
	plotCmd.Flags().StringArrayVarP(&plotKinds, "kind", "k", nil, "Plot kind: dbe, h, hc, ai or all (repeatable, default: all)")
	plotCmd.Flags().StringVarP(&plotGroups, "groups", "g", "", "Groups to plot, 'all' or A_wet,B_dry (default: every group)")
	plotCmd.Flags().StringSliceVar(&plotSpecies, "species", nil, "Species groups to plot: CH, CHN, CHO, CHNO (default: all)")
	plotCmd.Flags().StringSliceVar(&plotGuides, "guides", nil, "Reference guides by label, or 'all'")
	plotCmd.Flags().StringVar(&plotOutDir, "out-dir", "", "Directory for the figures (overrides output_dir)")
	plotCmd.Flags().BoolVar(&plotData, "data", false, "Also write the plotted points as CSV next to each figure")
	plotCmd.Flags().BoolVar(&plotFamilies, "family-analysis", false, "Render family intensity and species count bar charts")
	plotCmd.Flags().BoolVar(&plotLog, "log", false, "Use log10 intensity in the family analysis")
}

func parseKinds(names []string) ([]plot.Kind, error) {
	var kinds []plot.Kind
	for _, name := range names {
		if strings.EqualFold(name, "all") {
			return plot.Kinds, nil
		}
		k, err := plot.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// speciesNames accepts "CH" as well as "CH Species".
func speciesNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if !strings.HasSuffix(n, " Species") {
			n = strings.ToUpper(n) + " Species"
		}
		out = append(out, n)
	}
	return out
}

func scatter(sink plot.Sink, dir string, view table.Table, kind plot.Kind, sel core.Selection) error {
	series, err := plot.Scatter(view, kind, sel, speciesNames(plotSpecies))
	if err != nil {
		return err
	}

	var guides []plot.Guide
	if len(plotGuides) == 1 && strings.EqualFold(plotGuides[0], "all") {
		guides = plot.Guides(kind)
	} else {
		guides = plot.SelectGuides(kind, plotGuides)
	}

	x, y := kind.Labels()
	if err := sink.Scatter(plot.ScatterPlot{
		Title:  kind.String(),
		XLabel: x,
		YLabel: y,
		Series: series,
		Guides: guides,
	}); err != nil {
		return err
	}

	if plotData {
		path := filepath.Join(dir, plot.FileName(kind.String())+".csv")
		if err := delimited.WritePlotDataFile(path, kind, view.IntensityColumn(), plot.Flatten(series)); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}

func familyAnalysis(sink plot.Sink, view table.Table, sel core.Selection) error {
	fams := view.Families()
	if families != "" {
		fams = nil
		for _, f := range strings.Split(families, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fams = append(fams, f)
			}
		}
	}

	report, err := plot.FamilyAnalysis(view, fams, sel)
	if err != nil {
		return err
	}

	label := view.IntensityColumn()
	if plotLog {
		label = "log10(" + label + ")"
	}
	if err := sink.Bars(plot.BarPlot{
		Title:  "Family Intensity",
		YLabel: label,
		Bars:   report.IntensityBars(plotLog),
	}); err != nil {
		return err
	}
	return sink.Bars(plot.BarPlot{
		Title:  "Family Species",
		YLabel: "Species",
		Bars:   report.SpeciesBars(),
	})
}
