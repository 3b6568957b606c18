// Package sqlite provides SQLite database export of record tables
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ChrisMcGann/SpectraC/pkg/core"
	"github.com/ChrisMcGann/SpectraC/pkg/table"
)

const (
	// Schema version stored in HeaderTable
	schemaVersion = 1
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"
)

// Header describes the exported data
type Header struct {
	LoadID      string
	Description string
}

// Writer handles writing tables to SQLite database files
type Writer struct {
	db         *sql.DB
	outputPath string
	header     Header
	table      table.Table

	sampleStmt    *sql.Stmt
	recordStmt    *sql.Stmt
	intensityStmt *sql.Stmt

	sampleIDs map[core.Group]int64
	recordID  int64
	closed    bool
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string, header Header) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
		header:     header,
		sampleIDs:  make(map[core.Group]int64),
		recordID:   1,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	if err := w.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the required database schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		LoadId TEXT,
		ViewKind TEXT,
		IntensityMode TEXT,
		CreationDate TEXT,
		Description TEXT
	);

	CREATE TABLE IF NOT EXISTS SampleTable (
		SampleId INTEGER PRIMARY KEY,
		Sample TEXT,
		Description TEXT
	);

	CREATE TABLE IF NOT EXISTS RecordTable (
		RecordId INTEGER PRIMARY KEY,
		SampleId INTEGER REFERENCES SampleTable(SampleId),
		Formula TEXT,
		C INTEGER,
		H INTEGER,
		N INTEGER,
		O INTEGER,
		DBE DOUBLE,
		DBEPerC DOUBLE,
		HC DOUBLE,
		Mass DOUBLE,
		TheoreticalMass DOUBLE,
		Error DOUBLE,
		Family TEXT,
		Intensity DOUBLE,
		Occurrence INTEGER
	);

	CREATE TABLE IF NOT EXISTS GroupIntensityTable (
		RecordId INTEGER REFERENCES RecordTable(RecordId),
		SampleId INTEGER REFERENCES SampleTable(SampleId),
		Intensity DOUBLE
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// prepareStatements prepares SQL statements for batch insertion
func (w *Writer) prepareStatements() error {
	var err error

	w.sampleStmt, err = w.db.Prepare(`
		INSERT INTO SampleTable (SampleId, Sample, Description) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare sample statement: %w", err)
	}

	w.recordStmt, err = w.db.Prepare(`
		INSERT INTO RecordTable (
			RecordId, SampleId, Formula, C, H, N, O, DBE, DBEPerC, HC,
			Mass, TheoreticalMass, Error, Family, Intensity, Occurrence
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record statement: %w", err)
	}

	w.intensityStmt, err = w.db.Prepare(`
		INSERT INTO GroupIntensityTable (RecordId, SampleId, Intensity) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare group intensity statement: %w", err)
	}

	return nil
}

// WriteTable writes every row of t. Raw rows reference their sample; rows
// of derived views have no sample and carry one GroupIntensityTable entry
// per averaged group.
func (w *Writer) WriteTable(t table.Table) error {
	w.table = t

	groups := t.Groups
	if !t.Kind.IsDerived() {
		groups = t.SampleGroups()
	}
	for _, g := range groups {
		if _, err := w.sampleID(g); err != nil {
			return err
		}
	}

	for i := range t.Rows {
		if err := w.writeRecord(t, &t.Rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) sampleID(g core.Group) (int64, error) {
	if id, ok := w.sampleIDs[g]; ok {
		return id, nil
	}
	id := int64(len(w.sampleIDs) + 1)
	if _, err := w.sampleStmt.Exec(id, g.Sample, g.Description); err != nil {
		return 0, fmt.Errorf("failed to insert sample %s: %w", g, err)
	}
	w.sampleIDs[g] = id
	return id, nil
}

func (w *Writer) writeRecord(t table.Table, r *core.Record) error {
	var sampleID interface{}
	if !t.Kind.IsDerived() {
		id, err := w.sampleID(r.Group())
		if err != nil {
			return err
		}
		sampleID = id
	}

	_, err := w.recordStmt.Exec(
		w.recordID,        // RecordId
		sampleID,          // SampleId (NULL for derived views)
		r.Formula,         // Formula
		r.C,               // C
		r.H,               // H
		r.N,               // N
		r.O,               // O
		r.DBE,             // DBE
		r.DBEPerC,         // DBEPerC
		r.HC,              // HC
		r.Mass,            // Mass
		r.TheoreticalMass, // TheoreticalMass
		r.Error,           // Error
		r.Family,          // Family
		r.Intensity,       // Intensity
		r.Occurrence,      // Occurrence
	)
	if err != nil {
		return fmt.Errorf("failed to insert record %s: %w", r.Formula, err)
	}

	if t.Kind.IsDerived() {
		for i, g := range t.Groups {
			if i >= len(r.GroupIntensity) {
				break
			}
			id, err := w.sampleID(g)
			if err != nil {
				return err
			}
			if _, err := w.intensityStmt.Exec(w.recordID, id, r.GroupIntensity[i]); err != nil {
				return fmt.Errorf("failed to insert group intensity: %w", err)
			}
		}
	}

	w.recordID++
	return nil
}

// Finalize writes the header table and closes the database
func (w *Writer) Finalize() error {
	if w.closed {
		return nil
	}
	w.closed = true

	// Write HeaderTable
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, LoadId, ViewKind, IntensityMode, CreationDate, Description)
		VALUES (?, ?, ?, ?, ?, ?)
	`, schemaVersion, w.header.LoadID, w.table.Kind.String(), w.table.Mode.String(),
		time.Now().Format(headerDateFormat), w.header.Description)
	if err != nil {
		w.db.Close()
		return fmt.Errorf("failed to insert header: %w", err)
	}

	// Close prepared statements
	for _, stmt := range []*sql.Stmt{w.sampleStmt, w.recordStmt, w.intensityStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}

	// Close database
	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Close closes the database connection (alias for Finalize)
func (w *Writer) Close() error {
	return w.Finalize()
}

// WriteFile exports t to a new database at path, replacing any existing
// file. Failures are reported as core.ErrIO.
func WriteFile(path string, t table.Table, header Header) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return core.Wrap(core.KindIO, "export", err)
	}

	w, err := NewWriter(path, header)
	if err != nil {
		return core.Wrap(core.KindIO, "export", err)
	}
	if err := w.WriteTable(t); err != nil {
		w.Close()
		return core.Wrap(core.KindIO, "export", err)
	}
	if err := w.Finalize(); err != nil {
		return core.Wrap(core.KindIO, "export", err)
	}
	return nil
}
