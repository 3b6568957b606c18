package spectra

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
)

const header = "Peak list export\nName;Formula;Mass;...\n"
const footer = "\nTotal;;;\nGenerated by;;;\nEnd\n"

func fileContent(lines ...string) string {
	return header + strings.Join(lines, "\n") + "\n" + footer
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestReaderSkipsHeaderAndFooter(t *testing.T) {
	content := fileContent(
		"p1; CH4 ;16.0318;16.0313;-0.001;1;4;0;0;0;0;4;;;;; Aliphatics ;10",
		"p2;C10H8;128.0630;128.0626;0.0004;10;8;0;0;7;0.7;0.8;C;H;;;Aromatics;250.5",
	)

	records, err := Read(strings.NewReader(content), core.Group{Sample: "A", Description: "wet"}, DefaultOptions())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Formula != "CH4" || first.Family != core.FamilyAliphatics {
		t.Errorf("expected trimmed formula and family, got %q / %q", first.Formula, first.Family)
	}
	if first.Sample != "A" || first.Description != "wet" {
		t.Errorf("unexpected group %s", first.Group())
	}
	if first.C != 1 || first.H != 4 || first.Intensity != 10 || first.Error != -0.001 {
		t.Errorf("unexpected values %+v", first)
	}

	// DBE/C# 0.7 aromatic is reclassified while reading
	if records[1].Family != core.FamilyCondensedAromatics {
		t.Errorf("expected Condensed Aromatics, got %q", records[1].Family)
	}
}

func TestReaderParseErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"bad mass", "p;CH4;abc;16.03;0;1;4;0;0;0;0;4;;;;;Aliphatics;10"},
		{"bad count", "p;CH4;16.03;16.03;0;1.5;4;0;0;0;0;4;;;;;Aliphatics;10"},
		{"too few fields", "p;CH4;16.03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(fileContent(tt.line)), core.Group{Sample: "A", Description: "wet"}, DefaultOptions())
			if !errors.Is(err, core.ErrParse) {
				t.Fatalf("expected parse error, got %v", err)
			}
			if !strings.Contains(err.Error(), "line 3") {
				t.Errorf("expected line number in error, got %q", err.Error())
			}
		})
	}
}

func TestReaderShortFile(t *testing.T) {
	// Everything after the header is footer
	records, err := Read(strings.NewReader(header+"a\nb\n"), core.Group{Sample: "A", Description: "wet"}, DefaultOptions())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestParseFileName(t *testing.T) {
	tests := []struct {
		path    string
		want    core.Group
		wantErr bool
	}{
		{"data/A_wet.txt", core.Group{Sample: "A", Description: "wet"}, false},
		{"B_dry.csv", core.Group{Sample: "B", Description: "dry"}, false},
		{"Awet.txt", core.Group{}, true},
		{"A_wet_2.txt", core.Group{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseFileName(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFileName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, core.ErrMalformedFilename) {
				t.Errorf("expected malformed filename error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFileName() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A_wet.txt", fileContent(
		"p;CH4;16.0318;16.0313;-0.001;1;4;0;0;0;0;4;;;;;Aliphatics;10",
		"p;CH4;16.0330;16.0313;0.002;1;4;0;0;0;0;4;;;;;Aliphatics;12",
	))
	writeFile(t, dir, "B_wet.txt", fileContent(
		"p;CH4;16.0333;16.0313;0.002;1;4;0;0;0;0;4;;;;;Aliphatics;20",
	))
	writeFile(t, dir, "notes.md", "ignored")

	records, err := LoadDir(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Sample != "A" || records[2].Sample != "B" {
		t.Errorf("unexpected file order: %s, %s", records[0].Group(), records[2].Group())
	}
	if records[1].Occurrence != 1 || records[2].Occurrence != 0 {
		t.Errorf("unexpected occurrences %d, %d", records[1].Occurrence, records[2].Occurrence)
	}
}

func TestLoadDirErrors(t *testing.T) {
	empty := t.TempDir()
	if _, err := LoadDir(empty, DefaultOptions()); !errors.Is(err, core.ErrEmptyDirectory) {
		t.Errorf("expected empty directory error, got %v", err)
	}

	bad := t.TempDir()
	writeFile(t, bad, "Awet.txt", fileContent())
	if _, err := LoadDir(bad, DefaultOptions()); !errors.Is(err, core.ErrMalformedFilename) {
		t.Errorf("expected malformed filename error, got %v", err)
	}

	if _, err := LoadDir(filepath.Join(empty, "missing"), DefaultOptions()); !errors.Is(err, core.ErrIO) {
		t.Errorf("expected i/o error, got %v", err)
	}
}
