package formulas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		input string
		csv   bool
		want  []string
	}{
		{
			name:  "plain text with BOM",
			input: "\ufeffCH4\n C2H6 \n\nC10H8\n",
			want:  []string{"CH4", "C2H6", "C10H8"},
		},
		{
			name:  "csv first column with BOM",
			input: "\ufeffCH4,methane\nC2H6,ethane\n",
			csv:   true,
			want:  []string{"CH4", "C2H6"},
		},
		{
			name:  "csv ragged rows",
			input: "CH4\nC2H6,ethane,extra\n",
			csv:   true,
			want:  []string{"CH4", "C2H6"},
		},
		{
			name:  "empty",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.csv)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Read() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadFileByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.CSV")
	if err := os.WriteFile(path, []byte("CH4,a\nC2H6,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(got) != 2 || got[0] != "CH4" || got[1] != "C2H6" {
		t.Errorf("ReadFile() = %q", got)
	}
}
