// Package spectra provides streaming readers for the semicolon-delimited peak
// assignment exports loaded by SpectraC.
package spectra

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
)

// Positional fields of an input line
const (
	fieldName = iota
	fieldFormula
	fieldMass
	fieldTheoreticalMass
	fieldError
	fieldC
	fieldH
	fieldN
	fieldO
	fieldDBE
	fieldDBEPerC
	fieldHC
	fieldElement1
	fieldElement2
	fieldElement3
	fieldElement4
	fieldFamily
	fieldIntensity

	numFields
)

// Options controls how input files are split into records.
type Options struct {
	Delimiter   rune
	HeaderLines int    // Lines skipped at the start of each file
	FooterLines int    // Lines skipped at the end of each file
	Pattern     string // Glob used by LoadDir
}

// DefaultOptions returns the layout written by the acquisition software.
func DefaultOptions() Options {
	return Options{
		Delimiter:   ';',
		HeaderLines: 2,
		FooterLines: 4,
		Pattern:     "*.txt",
	}
}

type pendingLine struct {
	num  int
	text string
}

// Reader provides streaming access to one input file. Footer lines are held
// back so they are never parsed as records.
type Reader struct {
	scanner *bufio.Scanner
	opts    Options
	group   core.Group
	source  string
	lineNum int
	pending []pendingLine
	current core.Record
	err     error
}

// NewReader creates a reader that stamps every record with group.
func NewReader(r io.Reader, group core.Group, opts Options) *Reader {
	if opts.Delimiter == 0 {
		opts.Delimiter = ';'
	}
	return &Reader{
		scanner: bufio.NewScanner(r),
		opts:    opts,
		group:   group,
		source:  group.Label(),
	}
}

// Next advances to the next record. Returns false when no more records or error.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	for {
		line, ok := r.nextDataLine()
		if !ok {
			return false
		}
		if strings.TrimSpace(line.text) == "" {
			continue
		}

		rec, err := r.parseLine(line.text)
		if err != nil {
			r.err = &core.Error{
				Kind:    core.KindParse,
				Op:      "read " + r.source,
				Message: fmt.Sprintf("line %d", line.num),
				Err:     err,
			}
			return false
		}
		r.current = rec
		return true
	}
}

// Record returns the current record
func (r *Reader) Record() core.Record {
	return r.current
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// nextDataLine returns the next line that is neither header nor footer.
func (r *Reader) nextDataLine() (pendingLine, bool) {
	for r.scanner.Scan() {
		r.lineNum++
		if r.lineNum <= r.opts.HeaderLines {
			continue
		}

		r.pending = append(r.pending, pendingLine{num: r.lineNum, text: r.scanner.Text()})
		if len(r.pending) > r.opts.FooterLines {
			line := r.pending[0]
			r.pending = r.pending[1:]
			return line, true
		}
	}

	if err := r.scanner.Err(); err != nil {
		r.err = core.Wrap(core.KindIO, "read "+r.source, err)
	}
	return pendingLine{}, false
}

// parseLine parses one positional record line
func (r *Reader) parseLine(line string) (core.Record, error) {
	fields := strings.Split(line, string(r.opts.Delimiter))
	// Tolerate a trailing delimiter
	if len(fields) == numFields+1 && strings.TrimSpace(fields[numFields]) == "" {
		fields = fields[:numFields]
	}
	if len(fields) != numFields {
		return core.Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	rec := core.Record{
		Sample:      r.group.Sample,
		Description: r.group.Description,
		Formula:     fields[fieldFormula],
		Family:      fields[fieldFamily],
	}

	var err error
	floats := []struct {
		name  string
		index int
		dst   *float64
	}{
		{core.ColMass, fieldMass, &rec.Mass},
		{core.ColTheoreticalMass, fieldTheoreticalMass, &rec.TheoreticalMass},
		{core.ColError, fieldError, &rec.Error},
		{core.ColDBE, fieldDBE, &rec.DBE},
		{core.ColDBEPerC, fieldDBEPerC, &rec.DBEPerC},
		{core.ColHC, fieldHC, &rec.HC},
		{core.ColAbsoluteIntensity, fieldIntensity, &rec.Intensity},
	}
	for _, f := range floats {
		*f.dst, err = strconv.ParseFloat(fields[f.index], 64)
		if err != nil {
			return core.Record{}, fmt.Errorf("invalid %s value '%s'", f.name, fields[f.index])
		}
	}

	ints := []struct {
		name  string
		index int
		dst   *int
	}{
		{core.ColC, fieldC, &rec.C},
		{core.ColH, fieldH, &rec.H},
		{core.ColN, fieldN, &rec.N},
		{core.ColO, fieldO, &rec.O},
	}
	for _, f := range ints {
		*f.dst, err = parseCount(fields[f.index])
		if err != nil {
			return core.Record{}, fmt.Errorf("invalid %s value '%s'", f.name, fields[f.index])
		}
	}

	core.Reclassify(&rec)
	return rec, nil
}

// parseCount parses a non-negative atom count, accepting integral floats
// such as "6.0".
func parseCount(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative count %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || f != float64(int(f)) {
		return 0, fmt.Errorf("count %v is not a non-negative integer", f)
	}
	return int(f), nil
}
