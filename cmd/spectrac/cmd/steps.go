package cmd

import (
	"fmt"
	"strings"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/filter"
	"github.com/ChrisMcGann/SpectraC/pkg/session"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

// runSteps applies the pipeline steps to s in order and stops at the first
// failure.
func runSteps(s *session.Session, steps []string) error {
	for i, step := range steps {
		name, arg, _ := strings.Cut(strings.TrimSpace(step), "=")
		name = strings.ToLower(strings.TrimSpace(name))

		if err := runStep(s, name, strings.TrimSpace(arg)); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}

		view, _ := s.Displayed()
		fmt.Printf("Step %d: %s -> %d rows (%s, %s intensity)\n", i+1, step, view.Len(), view.Kind, view.Mode)
	}
	return nil
}

func runStep(s *session.Session, name, arg string) error {
	switch name {
	case "relative", "absolute":
		view, err := s.Displayed()
		if err != nil {
			return err
		}
		want := core.Absolute
		if name == "relative" {
			want = core.Relative
		}
		if view.Mode == want {
			return nil
		}
		return s.ToggleIntensity()
	case "toggle":
		return s.ToggleIntensity()
	case "search":
		return s.Search(arg)
	case "list":
		return s.SearchList(arg)
	case "sort":
		return s.Sort(arg)
	case "filter":
		view, err := s.Displayed()
		if err != nil {
			return err
		}
		c, err := filterCriteria(view)
		if err != nil {
			return err
		}
		return s.Filter(c)
	case "average", "common":
		sel, err := selection(s, arg)
		if err != nil {
			return err
		}
		if name == "average" {
			return s.Average(sel)
		}
		return s.CommonSpecies(sel)
	case "reset":
		return s.Reset()
	default:
		return fmt.Errorf("unknown step '%s'", name)
	}
}

// selection parses "all" or a comma-separated list of Sample_Description
// labels. "all" means every group with displayed rows; an empty argument
// selects nothing.
func selection(s *session.Session, arg string) (core.Selection, error) {
	if strings.EqualFold(arg, "all") {
		groups, err := s.DisplayedGroups()
		if err != nil {
			return core.Selection{}, err
		}
		return core.NewSelection(groups...), nil
	}

	var groups []core.Group
	for _, label := range strings.Split(arg, ",") {
		if strings.TrimSpace(label) == "" {
			continue
		}
		g, err := core.ParseGroup(label)
		if err != nil {
			return core.Selection{}, err
		}
		groups = append(groups, g)
	}
	return core.NewSelection(groups...), nil
}

// filterCriteria builds the filter from the flags. Omitted families default
// to every family present and omitted base ranges to the extent of the rows
// of those families.
func filterCriteria(t table.Table) (filter.Criteria, error) {
	var c filter.Criteria
	if families != "" {
		for _, f := range strings.Split(families, ",") {
			if f = strings.TrimSpace(f); f != "" {
				c.Families = append(c.Families, f)
			}
		}
	} else {
		c.Families = t.Families()
	}

	limits, ok := filter.Bounds(t, c.Families)

	var err error
	if c.CRange, err = rangeFlag(cRange, limits.C, ok); err != nil {
		return c, err
	}
	if c.MassRange, err = rangeFlag(massRange, limits.Mass, ok); err != nil {
		return c, err
	}
	if c.Intensity, err = rangeFlag(intensityRange, limits.Intensity, ok); err != nil {
		return c, err
	}
	if c.CRanges, err = filter.ParseRanges(cRanges); err != nil {
		return c, err
	}
	if c.MassRanges, err = filter.ParseRanges(massRanges); err != nil {
		return c, err
	}
	return c, nil
}

func rangeFlag(value string, def filter.Range, haveDefault bool) (*filter.Range, error) {
	if value == "" {
		if !haveDefault {
			return nil, nil
		}
		return &def, nil
	}
	ranges, err := filter.ParseRanges(value)
	if err != nil {
		return nil, err
	}
	if len(ranges) != 1 {
		return nil, core.Errorf(core.KindInvalidRange, "filter", "expected a single 'min-max' range, got '%s'", value)
	}
	return &ranges[0], nil
}
