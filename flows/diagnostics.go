package flows

import (
	"fmt"
	"log"
	"strings"
)

// Skip reason kinds.
const (
	SkipMissingCentrelineID = "missing_centreline_id"
	SkipNoCsvData           = "no_csv_data"
	SkipCoordinatesError    = "coordinates_error"
	SkipLocatorError        = "locator_error"
	SkipNoValidTimeData     = "no_valid_time_data"
	SkipOutsideWindow       = "outside_simulation_window"
	SkipMappingError        = "mapping_error"
	SkipNodeError           = "node_error"
	SkipSynthesisError      = "synthesis_error"
	SkipNoFlows             = "no_flows"
)

// SkipReason records why an intersection produced no flows.
type SkipReason struct {
	Kind         string
	CentrelineID string
	LocationName string
	Detail       string
}

// String renders the human-readable form reported to callers.
func (r SkipReason) String() string {
	base := fmt.Sprintf("Intersection '%s' (ID: %s) skipped", r.LocationName, r.CentrelineID)
	switch r.Kind {
	case SkipMissingCentrelineID:
		return fmt.Sprintf("Intersection '%s' skipped: Missing centreline_id.", r.LocationName)
	case SkipNoCsvData:
		return base + ": No CSV data available."
	case SkipCoordinatesError:
		return base + ": Coordinates error: " + r.Detail
	case SkipLocatorError:
		return base + ": Error in finding junction: " + r.Detail
	case SkipNoValidTimeData:
		return base + ": No valid time data in CSV."
	case SkipOutsideWindow:
		return base + ": Data not available for selected time window."
	case SkipMappingError:
		return base + ": Mapping error: " + r.Detail
	case SkipNodeError:
		return base + ": Node error: " + r.Detail
	case SkipSynthesisError:
		return fmt.Sprintf("Intersection '%s' (ID: %s) CSV processing error: %s",
			r.LocationName, r.CentrelineID, r.Detail)
	case SkipNoFlows:
		return fmt.Sprintf("Intersection '%s' (ID: %s) has no flows for the selected time window.",
			r.LocationName, r.CentrelineID)
	}
	return base + ": " + r.Detail
}

// skipCacheWrite logs a failed cache persist. The mapping is already
// computed, so the intersection proceeds and only the reuse benefit is lost.
func skipCacheWrite(junctionID string, err error) {
	log.Printf("Could not persist cache record for junction %s: %v", junctionID, err)
}

// skipInfo aggregates occurrences of one skip kind.
type skipInfo struct {
	count    int
	examples []string
}

// SkipAggregator collects skip reasons during a run and logs a consolidated
// summary per kind instead of one line per intersection.
type SkipAggregator struct {
	skips map[string]*skipInfo
}

// NewSkipAggregator returns an empty aggregator.
func NewSkipAggregator() *SkipAggregator {
	return &SkipAggregator{skips: make(map[string]*skipInfo)}
}

// Add records one skip occurrence.
func (a *SkipAggregator) Add(reason SkipReason) {
	if a.skips[reason.Kind] == nil {
		a.skips[reason.Kind] = &skipInfo{examples: make([]string, 0, 3)}
	}
	info := a.skips[reason.Kind]
	info.count++
	if len(info.examples) < 3 {
		info.examples = append(info.examples, reason.CentrelineID)
	}
}

// LogAll outputs all collected skips in consolidated form.
func (a *SkipAggregator) LogAll() {
	for kind, info := range a.skips {
		log.Printf("Skipped %d intersection(s): %s. Examples: %s",
			info.count, describeSkip(kind), strings.Join(info.examples, ", "))
	}
}

func describeSkip(kind string) string {
	switch kind {
	case SkipMissingCentrelineID:
		return "no centreline id in metadata"
	case SkipNoCsvData:
		return "no count rows in the CSV"
	case SkipCoordinatesError:
		return "unusable coordinates in the first count row"
	case SkipLocatorError:
		return "no junction resolved within tolerance"
	case SkipNoValidTimeData:
		return "no parseable start/end times"
	case SkipOutsideWindow:
		return "count data does not overlap the simulation window"
	case SkipMappingError:
		return "edge mapping failed"
	case SkipNodeError:
		return "resolved junction missing from network"
	case SkipSynthesisError:
		return "flow synthesis failed"
	case SkipNoFlows:
		return "no qualifying rows in the simulation window"
	}
	return "unknown reason"
}
