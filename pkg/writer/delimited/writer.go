// Package delimited writes tables and plot data as comma-separated files
package delimited

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/plot"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

// WriteTable writes t with a header of its current columns. Floats use the
// shortest form that parses back to the same value.
func WriteTable(w io.Writer, t table.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(t.Columns()))
	for i := range t.Rows {
		for j, c := range t.Row(i) {
			record[j] = c.String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTableFile writes t to path.
func WriteTableFile(path string, t table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return core.Wrap(core.KindIO, "export", err)
	}

	if err := WriteTable(f, t); err != nil {
		f.Close()
		return core.Wrap(core.KindIO, "export", err)
	}
	if err := f.Close(); err != nil {
		return core.Wrap(core.KindIO, "export", err)
	}
	return nil
}

// WritePlotData writes the plotted points with columns named after the
// kind's axes and the intensity column.
func WritePlotData(w io.Writer, kind plot.Kind, intensityColumn string, points []plot.Point) error {
	x, y := kind.Labels()
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{x, y, intensityColumn}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range points {
		if err := cw.Write([]string{formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z)}); err != nil {
			return fmt.Errorf("failed to write point: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePlotDataFile writes the plot data to path.
func WritePlotDataFile(path string, kind plot.Kind, intensityColumn string, points []plot.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return core.Wrap(core.KindIO, "export plot data", err)
	}

	if err := WritePlotData(f, kind, intensityColumn, points); err != nil {
		f.Close()
		return core.Wrap(core.KindIO, "export plot data", err)
	}
	if err := f.Close(); err != nil {
		return core.Wrap(core.KindIO, "export plot data", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
