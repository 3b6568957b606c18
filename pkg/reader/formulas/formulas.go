// Package formulas reads formula lists used to search loaded data.
package formulas

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
)

const bom = "\ufeff"

// Read parses a formula list. Plain text lists hold one formula per line;
// CSV lists use the first column of each row. A byte-order mark on the
// first entry is stripped and blank entries are dropped.
func Read(r io.Reader, isCSV bool) ([]string, error) {
	var raw []string

	if isCSV {
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		for {
			row, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, core.Wrap(core.KindParse, "read formulas", err)
			}
			if len(row) > 0 {
				raw = append(raw, row[0])
			}
		}
	} else {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			raw = append(raw, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, core.Wrap(core.KindIO, "read formulas", err)
		}
	}

	if len(raw) > 0 {
		raw[0] = strings.TrimPrefix(raw[0], bom)
	}

	formulas := make([]string, 0, len(raw))
	for _, f := range raw {
		f = strings.TrimSpace(f)
		if f != "" {
			formulas = append(formulas, f)
		}
	}
	return formulas, nil
}

// ReadFile reads a .txt or .csv formula list.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.Wrap(core.KindIO, "read formulas", err)
	}
	defer f.Close()

	return Read(f, strings.EqualFold(filepath.Ext(path), ".csv"))
}
