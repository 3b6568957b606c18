// Package session holds the loaded data and the currently displayed view,
// and applies user operations to them.
package session

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ChrisMcGann/SpectraC/pkg/compare"
	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/filter"
	"github.com/ChrisMcGann/SpectraC/pkg/normalize"
	"github.com/ChrisMcGann/SpectraC/pkg/reader/formulas"
	"github.com/ChrisMcGann/SpectraC/pkg/reader/spectra"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

// Session owns All Data (as loaded) and Displayed Data (the result of the
// operations applied since the last load or reset). Each operation either
// replaces Displayed Data completely or leaves it untouched.
//
// A Session is not safe for concurrent use.
type Session struct {
	log       logrus.FieldLogger
	loadID    string
	all       table.Table
	displayed table.Table
	memo      *normalize.Memo
	loaded    bool
}

// New creates an empty session.
func New(log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{log: log}
}

// Load reads every input file in dir and replaces the session's data.
func (s *Session) Load(dir string, opts spectra.Options) error {
	records, err := spectra.LoadDir(dir, opts)
	if err != nil {
		return err
	}
	s.LoadRecords(records)
	s.log.WithFields(logrus.Fields{
		"load_id": s.loadID,
		"dir":     dir,
		"rows":    s.all.Len(),
		"groups":  len(s.all.SampleGroups()),
	}).Info("Loaded data")
	return nil
}

// LoadRecords replaces the session's data with records. Records are
// expected to carry occurrence ordinals (see core.AssignOccurrences).
func (s *Session) LoadRecords(records []core.Record) {
	s.all = table.New(records)
	s.displayed = s.all
	s.memo = normalize.NewMemo(s.all.Rows)
	s.loadID = uuid.NewString()
	s.loaded = true
}

// LoadTable replaces the session's data with a previously exported table,
// which becomes All Data as is. Absolute intensities are only remembered for
// raw absolute tables; toggling other imports back to absolute fails with
// core.ErrKeyNotFound or core.ErrNotSupportedOnDerivedView.
func (s *Session) LoadTable(t table.Table) {
	s.all = t
	s.displayed = t
	if t.Kind == core.Raw && t.Mode == core.Absolute {
		s.memo = normalize.NewMemo(t.Rows)
	} else {
		s.memo = normalize.NewMemo(nil)
	}
	s.loadID = uuid.NewString()
	s.loaded = true
	s.log.WithFields(logrus.Fields{
		"load_id": s.loadID,
		"rows":    t.Len(),
		"view":    t.Kind.String(),
		"mode":    t.Mode.String(),
	}).Info("Loaded table")
}

// Reset discards every operation and shows All Data again.
func (s *Session) Reset() error {
	if err := s.check("reset"); err != nil {
		return err
	}
	s.set("reset", s.all)
	return nil
}

// LoadID identifies the current load; it is empty before the first load.
func (s *Session) LoadID() string {
	return s.loadID
}

// All returns the loaded data.
func (s *Session) All() (table.Table, error) {
	if err := s.check("all data"); err != nil {
		return table.Table{}, err
	}
	return s.all, nil
}

// Displayed returns the current view.
func (s *Session) Displayed() (table.Table, error) {
	if err := s.check("displayed data"); err != nil {
		return table.Table{}, err
	}
	return s.displayed, nil
}

// Groups returns the loaded sample groups in load order.
func (s *Session) Groups() ([]core.Group, error) {
	if err := s.check("groups"); err != nil {
		return nil, err
	}
	return s.all.SampleGroups(), nil
}

// DisplayedGroups returns the sample groups that still have rows in the
// displayed view, in first-seen order. Derived views report the groups they
// were built from.
func (s *Session) DisplayedGroups() ([]core.Group, error) {
	if err := s.check("displayed groups"); err != nil {
		return nil, err
	}
	if s.displayed.Kind.IsDerived() {
		return append([]core.Group(nil), s.displayed.Groups...), nil
	}
	return s.displayed.SampleGroups(), nil
}

// Search keeps the displayed rows whose formula is in the comma-separated
// query.
func (s *Session) Search(query string) error {
	if err := s.check("search"); err != nil {
		return err
	}
	list, err := table.ParseQuery(query)
	if err != nil {
		return err
	}
	return s.search(list)
}

// SearchList is Search with formulas read from a .txt or .csv file.
func (s *Session) SearchList(path string) error {
	if err := s.check("search"); err != nil {
		return err
	}
	list, err := formulas.ReadFile(path)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return core.Errorf(core.KindInvalidQuery, "search", "no formulas in %s", path)
	}
	return s.search(list)
}

func (s *Session) search(list []string) error {
	out, err := s.displayed.Search(list)
	if err != nil {
		return err
	}
	s.set("search", out)
	return nil
}

// Sort orders the displayed rows ascending by column.
func (s *Session) Sort(column string) error {
	if err := s.check("sort"); err != nil {
		return err
	}
	out, err := s.displayed.Sort(column)
	if err != nil {
		return err
	}
	s.set("sort", out)
	return nil
}

// Filter keeps the displayed rows matching c. An empty result replaces the
// view like any other.
func (s *Session) Filter(c filter.Criteria) error {
	if err := s.check("filter"); err != nil {
		return err
	}
	out, err := c.Apply(s.displayed)
	if err != nil {
		return err
	}
	if out.IsEmpty() {
		s.log.WithField("op", "filter").Warn("No rows match the filter")
	}
	s.set("filter", out)
	return nil
}

// ToggleIntensity switches the displayed view between absolute and relative
// intensity.
func (s *Session) ToggleIntensity() error {
	if err := s.check("toggle intensity"); err != nil {
		return err
	}
	out, err := normalize.Toggle(s.displayed, s.memo)
	if err != nil {
		return err
	}
	s.set("toggle intensity", out)
	return nil
}

// Average replaces the view with the average over the selected groups.
func (s *Session) Average(sel core.Selection) error {
	if err := s.check("average"); err != nil {
		return err
	}
	out, err := compare.Average(s.displayed, sel)
	if err != nil {
		return err
	}
	s.set("average", out)
	return nil
}

// CommonSpecies replaces the view with the formulas shared by every
// selected group.
func (s *Session) CommonSpecies(sel core.Selection) error {
	if err := s.check("common species"); err != nil {
		return err
	}
	out, err := compare.CommonSpecies(s.displayed, sel)
	if err != nil {
		return err
	}
	s.set("common species", out)
	return nil
}

func (s *Session) check(op string) error {
	if !s.loaded {
		return core.Errorf(core.KindNoDataLoaded, op, "load a data directory first")
	}
	return nil
}

func (s *Session) set(op string, t table.Table) {
	s.displayed = t
	s.log.WithFields(logrus.Fields{
		"load_id": s.loadID,
		"op":      op,
		"rows":    t.Len(),
		"view":    t.Kind.String(),
		"mode":    t.Mode.String(),
	}).Debug("Displayed data replaced")
}
