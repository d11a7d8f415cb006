// Package demographics holds the zipcode-keyed demographics lookup table.
//
// A Table is built once at startup, from a CSV file or from rows read out of
// Postgres, and is read-only afterwards so it can be shared by any number of
// concurrent request handlers.
package demographics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"strconv"
	"strings"

	"housing-prediction-api/internal/models"
)

// ZipcodeColumn is the column every demographics source must provide.
const ZipcodeColumn = "zipcode"

// ErrMissingZipcodeColumn is returned when a source has no zipcode column.
var ErrMissingZipcodeColumn = errors.New("demographics: missing required zipcode column")

// Row maps a column name to its raw string value. Empty cells are absent.
type Row map[string]string

// Table is an immutable zipcode -> Row index.
type Table struct {
	columns    []string
	rows       map[string]Row
	order      []string
	duplicates int
}

// Normalize converts a zipcode in any of its representations to the lookup key.
// Strings are trimmed; integral numbers are formatted without a fraction.
func Normalize(v any) string {
	switch z := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(z)
	case fmt.Stringer:
		return strings.TrimSpace(z.String())
	case int:
		return strconv.Itoa(z)
	case int32:
		return strconv.FormatInt(int64(z), 10)
	case int64:
		return strconv.FormatInt(z, 10)
	case float64:
		if z == math.Trunc(z) && math.Abs(z) < 1<<53 {
			return strconv.FormatInt(int64(z), 10)
		}
		return strconv.FormatFloat(z, 'f', -1, 64)
	case []byte:
		return strings.TrimSpace(string(z))
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// FromRows builds a table from already-decoded rows. Column names are trimmed
// and must include ZipcodeColumn. When a zipcode repeats, the first row wins.
func FromRows(columns []string, rows []Row) (*Table, error) {
	t, err := newTable(columns)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		t.add(row)
	}
	return t, nil
}

// Load reads a CSV stream whose first record is the header. Every value is
// kept as a string so zipcodes like "02139" keep their leading zeros.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingZipcodeColumn
		}
		return nil, fmt.Errorf("demographics: failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t, err := newTable(header)
	if err != nil {
		return nil, err
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("demographics: failed to read record on line %d: %w", line, err)
		}

		row := make(Row, len(t.columns))
		for i, col := range t.columns {
			if i >= len(record) || record[i] == "" {
				continue
			}
			row[col] = record[i]
		}
		t.add(row)
	}

	return t, nil
}

// LoadFile opens path and loads it with Load. Failures are wrapped in a
// *models.LoadError.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.LoadError{Resource: "demographics", Source: path, Err: err}
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, &models.LoadError{Resource: "demographics", Source: path, Err: err}
	}
	return t, nil
}

func newTable(columns []string) (*Table, error) {
	trimmed := make([]string, len(columns))
	hasZipcode := false
	for i, c := range columns {
		trimmed[i] = strings.TrimSpace(c)
		if trimmed[i] == ZipcodeColumn {
			hasZipcode = true
		}
	}
	if !hasZipcode {
		return nil, ErrMissingZipcodeColumn
	}

	return &Table{
		columns: trimmed,
		rows:    make(map[string]Row),
	}, nil
}

func (t *Table) add(row Row) {
	key := Normalize(row[ZipcodeColumn])
	if key == "" {
		return
	}
	if _, ok := t.rows[key]; ok {
		t.duplicates++
		return
	}

	stored := make(Row, len(row))
	for k, v := range row {
		stored[strings.TrimSpace(k)] = v
	}
	stored[ZipcodeColumn] = key

	t.rows[key] = stored
	t.order = append(t.order, key)
}

// Lookup returns a copy of the row for zipcode. A miss is reported with
// ok == false and is not an error.
func (t *Table) Lookup(zipcode string) (Row, bool) {
	if t == nil {
		return nil, false
	}
	row, ok := t.rows[Normalize(zipcode)]
	if !ok {
		return nil, false
	}
	return maps.Clone(row), true
}

// Len returns the number of distinct zipcodes.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Columns returns the trimmed header.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Duplicates returns how many rows were skipped because their zipcode was already present.
func (t *Table) Duplicates() int {
	return t.duplicates
}

// Rows returns copies of all rows in load order.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, maps.Clone(t.rows[key]))
	}
	return out
}
