package counts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(minute int) time.Time {
	return time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC).Add(time.Duration(minute) * time.Minute)
}

func iv(start, end int) Interval {
	return Interval{Start: at(start), End: at(end)}
}

func TestMergeIntervals(t *testing.T) {
	merged := MergeIntervals([]Interval{iv(10, 20), iv(15, 25), iv(30, 40)})
	assert.Equal(t, []Interval{iv(10, 25), iv(30, 40)}, merged)
}

func TestMergeIntervalsAdjacent(t *testing.T) {
	// touching intervals collapse into one
	merged := MergeIntervals([]Interval{iv(0, 10), iv(10, 20)})
	assert.Equal(t, []Interval{iv(0, 20)}, merged)
}

func TestMergeIntervalsIdempotent(t *testing.T) {
	input := []Interval{iv(30, 40), iv(10, 20), iv(15, 25)}
	once := MergeIntervals(input)
	assert.Equal(t, once, MergeIntervals(once))
}

func TestMergeIntervalsOrderIndependent(t *testing.T) {
	a := MergeIntervals([]Interval{iv(10, 20), iv(15, 25), iv(30, 40)})
	b := MergeIntervals([]Interval{iv(30, 40), iv(15, 25), iv(10, 20)})
	assert.Equal(t, a, b)
}

func TestMergeIntervalsContained(t *testing.T) {
	merged := MergeIntervals([]Interval{iv(10, 40), iv(15, 20)})
	assert.Equal(t, []Interval{iv(10, 40)}, merged)
}

func TestMergeIntervalsEmpty(t *testing.T) {
	assert.Nil(t, MergeIntervals(nil))
}

func TestOverlaps(t *testing.T) {
	merged := []Interval{iv(10, 25), iv(30, 40)}
	tests := []struct {
		name         string
		qStart, qEnd int
		want         bool
	}{
		{"inside first interval", 18, 22, true},
		{"in the gap", 26, 29, false},
		{"spanning the gap", 24, 31, true},
		{"before everything", 0, 5, false},
		{"touching interval start is exclusive", 25, 30, false},
		{"ending at interval start is exclusive", 5, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(merged, at(tt.qStart), at(tt.qEnd)))
		})
	}
}

func TestIntervalJSONRoundTrip(t *testing.T) {
	in := iv(10, 25)
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-01-01 08:10:00","end":"2024-01-01 08:25:00"}`, string(data))

	var out Interval
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Start.Equal(out.Start))
	assert.True(t, in.End.Equal(out.End))
}
