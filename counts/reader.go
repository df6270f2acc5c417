package counts

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Row is one raw turning-movement record. Values holds every column of the
// CSV row keyed by header name, counts still unparsed.
type Row struct {
	Start  time.Time
	End    time.Time
	Values map[string]string
}

// Dataset is the turning-movement table grouped by centreline id. Columns
// preserves the CSV header order, which fixes the synthesis order of
// movement keys within a row.
type Dataset struct {
	Columns []string
	rows    map[string][]Row
}

// requiredColumns must be present in the CSV header for the run to proceed.
var requiredColumns = []string{"centreline_id", "start_time", "end_time"}

// Read parses a turning-movement CSV file.
func Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open counts file '%s'", path)
	}
	defer f.Close()
	ds, err := ReadFrom(f)
	if err != nil {
		return nil, errors.Wrapf(err, "process counts file '%s'", path)
	}
	return ds, nil
}

// ReadFrom parses turning-movement CSV data from a reader.
func ReadFrom(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, errors.Errorf("missing '%s' column", col)
		}
	}

	ds := &Dataset{
		Columns: header,
		rows:    make(map[string][]Row),
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read record")
		}
		values := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				values[name] = record[i]
			}
		}
		id := strings.TrimSpace(values["centreline_id"])
		if id == "" {
			continue
		}
		row := Row{Values: values}
		// Timestamps stay best-effort here: rows with bad times are kept
		// and rejected later where the availability gate needs them.
		if t, err := ParseLocalTime(values["start_time"]); err == nil {
			row.Start = t
		}
		if t, err := ParseLocalTime(values["end_time"]); err == nil {
			row.End = t
		}
		ds.rows[id] = append(ds.rows[id], row)
	}
	return ds, nil
}

// Rows returns the raw rows recorded for a centreline id, in file order.
func (ds *Dataset) Rows(centrelineID string) []Row {
	return ds.rows[centrelineID]
}

// HasRows reports whether any rows exist for a centreline id.
func (ds *Dataset) HasRows(centrelineID string) bool {
	return len(ds.rows[centrelineID]) > 0
}

// MovementColumns returns the header columns that are candidate movement
// keys, i.e. everything outside the fixed metadata set, in header order.
func (ds *Dataset) MovementColumns() []string {
	out := make([]string, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		if _, ok := metadataColumns[col]; ok {
			continue
		}
		out = append(out, col)
	}
	return out
}

// TimeRange returns the earliest and latest row start time across the
// given centreline ids. Callers use it to derive a default simulation
// window covering the whole dataset.
func (ds *Dataset) TimeRange(centrelineIDs []string) (time.Time, time.Time, error) {
	var overallMin, overallMax time.Time
	for _, id := range centrelineIDs {
		for _, row := range ds.rows[id] {
			if row.Start.IsZero() {
				continue
			}
			if overallMin.IsZero() || row.Start.Before(overallMin) {
				overallMin = row.Start
			}
			if overallMax.IsZero() || row.Start.After(overallMax) {
				overallMax = row.Start
			}
		}
	}
	if overallMin.IsZero() {
		return time.Time{}, time.Time{}, errors.New("could not determine overall time range from traffic data")
	}
	return overallMin, overallMax, nil
}

// ParseLocalTime accepts ISO-8601 timestamps without zone designators, the
// format the counts dataset uses, with a space-separated fallback.
func ParseLocalTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
