package labels

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/maastricht-university/edmo-preprocessing/activity"
)

// Recording is the speech activity of one recording, taken from a single camera.
type Recording struct {
	Name   string
	Camera string
	Times  []float64
	States map[string][]activity.State // column -> per-frame state
}

func (r *Recording) column(name string) ([]activity.State, error) {
	states, ok := r.States[name]
	if !ok {
		return nil, fmt.Errorf("recording %s: no column %q", r.Name, name)
	}
	return states, nil
}

// Segments extracts the speech segments of one speaker column.
func (r *Recording) Segments(column string) ([]activity.Segment, error) {
	states, err := r.column(column)
	if err != nil {
		return nil, err
	}
	return activity.ExtractSegments(states, r.Times)
}

// Frames returns the frames of one speaker column.
func (r *Recording) Frames(column string) ([]activity.Frame, error) {
	states, err := r.column(column)
	if err != nil {
		return nil, err
	}
	return activity.Frames(states, r.Times)
}

// ActivityTable holds speech-activity rows grouped by recording, in the order
// recordings first appear.
type ActivityTable struct {
	columns []string
	order   []string
	recs    map[string]*Recording
}

// NewActivityTable returns an empty table that keeps the given speaker columns.
func NewActivityTable(columns ...string) *ActivityTable {
	return &ActivityTable{columns: columns, recs: map[string]*Recording{}}
}

// LoadActivityFiles reads the speech-activity CSVs in order into one table.
func LoadActivityFiles(paths []string, columns ...string) (*ActivityTable, error) {
	t := NewActivityTable(columns...)
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", p, err)
		}
		err = t.Read(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	return t, nil
}

// SplitName splits a "<recording>-<camera>" row name.
func SplitName(name string) (recording, camera string) {
	parts := strings.Split(strings.TrimSpace(name), "-")
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// Read appends the rows of one CSV. Columns are matched by name, not position.
// Only the camera that appears first for a recording is kept; rows from any
// other camera of that recording are ignored.
func (t *ActivityTable) Read(reader io.Reader) error {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read CSV header: %w", err)
	}
	colIdx := make(map[string]int)
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	lookup := func(name string) (int, error) {
		idx, ok := colIdx[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("missing required %q column in header", name)
		}
		return idx, nil
	}
	nameIdx, err := lookup("name")
	if err != nil {
		return err
	}
	timeIdx, err := lookup("time")
	if err != nil {
		return err
	}
	stateIdx := make([]int, len(t.columns))
	for i, c := range t.columns {
		if stateIdx[i], err = lookup(c); err != nil {
			return err
		}
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line, _ := r.FieldPos(0)

		rec, camera := SplitName(record[nameIdx])
		ra, ok := t.recs[rec]
		if !ok {
			ra = &Recording{Name: rec, Camera: camera, States: map[string][]activity.State{}}
			t.recs[rec] = ra
			t.order = append(t.order, rec)
		}
		if ra.Camera != camera {
			continue
		}

		ts, err := strconv.ParseFloat(strings.TrimSpace(record[timeIdx]), 64)
		if err != nil {
			return fmt.Errorf("line %d: time %q: %w", line, record[timeIdx], err)
		}
		ra.Times = append(ra.Times, ts)
		for i, c := range t.columns {
			ra.States[c] = append(ra.States[c], activity.ParseState(record[stateIdx[i]]))
		}
	}
}

// Lookup returns the activity of a recording.
func (t *ActivityTable) Lookup(recording string) (*Recording, bool) {
	r, ok := t.recs[recording]
	return r, ok
}

func (t *ActivityTable) Len() int { return len(t.order) }
