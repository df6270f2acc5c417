package counts

import (
	"encoding/json"
	"sort"
	"time"
)

// Interval is a time range for which count data exists.
type Interval struct {
	Start time.Time
	End   time.Time
}

// intervalLayout is the zone-less timestamp form used in the cache document
// and the details output.
const intervalLayout = "2006-01-02 15:04:05"

type intervalJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON{
		Start: iv.Start.Format(intervalLayout),
		End:   iv.End.Format(intervalLayout),
	})
}

func (iv *Interval) UnmarshalJSON(data []byte) error {
	var raw intervalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := time.Parse(intervalLayout, raw.Start)
	if err != nil {
		return err
	}
	end, err := time.Parse(intervalLayout, raw.End)
	if err != nil {
		return err
	}
	iv.Start, iv.End = start, end
	return nil
}

// MergeIntervals collapses a set of possibly overlapping, unsorted
// intervals into the minimal sorted non-overlapping cover. An interval that
// starts exactly where the previous one ends is merged into it. The input
// slice is not modified.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Overlaps reports whether the half-open query window [qStart, qEnd)
// intersects any interval in the set.
func Overlaps(intervals []Interval, qStart, qEnd time.Time) bool {
	for _, iv := range intervals {
		if qStart.Before(iv.End) && qEnd.After(iv.Start) {
			return true
		}
	}
	return false
}

// RowIntervals extracts the (start, end) pairs of rows carrying valid
// timestamps.
func RowIntervals(rows []Row) []Interval {
	out := make([]Interval, 0, len(rows))
	for _, row := range rows {
		if row.Start.IsZero() || row.End.IsZero() {
			continue
		}
		out = append(out, Interval{Start: row.Start, End: row.End})
	}
	return out
}
