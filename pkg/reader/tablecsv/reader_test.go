package tablecsv

import (
	"errors"
	"strings"
	"testing"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/filter"
)

const averagedHeader = "C#,H#,N#,O#,DBE,DBE/C#,H/C,Formula,Mass (Average),Theoretical mass,Error (Average),Family," +
	"Absolute intensity (A_wet),Absolute intensity (B_dry),Absolute intensity (Average)\n"

func TestReadAveraged(t *testing.T) {
	input := averagedHeader + "1,4,0,0,0,0,4,CH4,16.03,16.03,0,Aliphatics,10,0,5\n"

	got, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Kind != core.Averaged || got.Mode != core.Absolute {
		t.Errorf("schema = %s/%s", got.Kind, got.Mode)
	}
	if len(got.Groups) != 2 || got.Groups[1] != (core.Group{Sample: "B", Description: "dry"}) {
		t.Errorf("groups = %v", got.Groups)
	}
	r := got.Rows[0]
	if r.Formula != "CH4" || r.GroupIntensity[0] != 10 || r.Intensity != 5 || r.H != 4 {
		t.Errorf("row = %+v", r)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", core.ErrParse},
		{"unknown column", "C#,Formula,Colour\n1,CH4,red\n", core.ErrUnknownColumn},
		{"raw column on averaged view", "Formula,Mass\nCH4,16\n", core.ErrUnknownColumn},
		{"bad number", averagedHeader + "x,4,0,0,0,0,4,CH4,16.03,16.03,0,Aliphatics,10,0,5\n", core.ErrParse},
		{"fractional count", averagedHeader + "1.5,4,0,0,0,0,4,CH4,16.03,16.03,0,Aliphatics,10,0,5\n", core.ErrParse},
		{"ragged row", averagedHeader + "1,4\n", core.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.input)); !errors.Is(err, tt.want) {
				t.Errorf("Read() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadAs(t *testing.T) {
	input := averagedHeader + "1,4,0,0,0,0,4,CH4,16.03,16.03,0,Aliphatics,10,0,5\n"

	got, err := ReadAs(strings.NewReader(input), core.CommonSpecies)
	if err != nil {
		t.Fatalf("ReadAs() error = %v", err)
	}
	if got.Kind != core.CommonSpecies || len(got.Groups) != 2 {
		t.Errorf("schema = %s with %d groups", got.Kind, len(got.Groups))
	}

	c := filter.Criteria{Families: []string{core.FamilyAliphatics}, Intensity: &filter.Range{Min: 0, Max: 100}}
	if _, err := c.Apply(got); !errors.Is(err, core.ErrNotSupportedOnDerivedView) {
		t.Errorf("filter on re-imported common species error = %v", err)
	}

	if _, err := ReadAs(strings.NewReader(input), core.Raw); !errors.Is(err, core.ErrParse) {
		t.Errorf("ReadAs(raw) on averaged file error = %v", err)
	}
}
