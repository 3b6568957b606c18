package spectra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
)

// ParseFileName derives the sample group from "<Sample>_<Description>.<ext>".
func ParseFileName(path string) (core.Group, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(name, "_")
	if len(parts) != 2 {
		return core.Group{}, core.Errorf(core.KindMalformedFilename, "load",
			"file name '%s' must have exactly two '_'-separated parts (Sample_Description)", base)
	}
	return core.Group{Sample: parts[0], Description: parts[1]}, nil
}

// Read reads every record from r.
func Read(r io.Reader, group core.Group, opts Options) ([]core.Record, error) {
	reader := NewReader(r, group, opts)

	var records []core.Record
	for reader.Next() {
		records = append(records, reader.Record())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadFile reads one input file, deriving its group from the file name.
func LoadFile(path string, opts Options) ([]core.Record, error) {
	group, err := ParseFileName(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, core.Wrap(core.KindIO, "load", err)
	}
	defer f.Close()

	records, err := Read(f, group, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// LoadDir reads every file in dir matching opts.Pattern and concatenates
// their records. Files are read in directory listing order and records keep
// their file order. Occurrence ordinals are assigned over the whole batch.
func LoadDir(dir string, opts Options) ([]core.Record, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, core.Wrap(core.KindIO, "load", err)
	}
	if !info.IsDir() {
		return nil, core.Errorf(core.KindIO, "load", "'%s' is not a directory", dir)
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultOptions().Pattern
	}
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, core.Wrap(core.KindIO, "load", err)
	}

	var records []core.Record
	loaded := 0
	for _, file := range files {
		if fi, err := os.Stat(file); err != nil || fi.IsDir() {
			continue
		}
		recs, err := LoadFile(file, opts)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
		loaded++
	}

	if loaded == 0 {
		return nil, core.Errorf(core.KindEmptyDirectory, "load", "no files matching '%s' in %s", pattern, dir)
	}

	core.AssignOccurrences(records)
	return records, nil
}
