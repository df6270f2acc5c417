package flows

import (
	"fmt"
	"strconv"
	"time"

	"github.com/urban-traffic-lab/tmc-to-sumo/counts"
	"github.com/urban-traffic-lab/tmc-to-sumo/mapping"
)

// Flow is one synthetic demand record: introduce Number vehicles of class
// Type between the From and To edges over [Begin, End) seconds of
// simulation time. Flows are immutable once emitted.
type Flow struct {
	ID     string
	Begin  int
	End    int
	Number int
	From   string
	To     string
	Type   string
}

// UnmappedTurnMode selects what a movement key with no mapped origin or
// destination edge does to the intersection.
type UnmappedTurnMode int

const (
	// AbortIntersection discards the intersection's entire flow set on the
	// first unmapped direction. This is the historical behaviour; partial
	// results are never kept.
	AbortIntersection UnmappedTurnMode = iota
	// SkipKey drops only the offending movement column and keeps going.
	SkipKey
)

// incomingDirections resolves a movement-key origin letter to the approach
// direction.
var incomingDirections = map[string]mapping.Direction{
	"n": mapping.North,
	"s": mapping.South,
	"e": mapping.East,
	"w": mapping.West,
}

// turnTable resolves (turn, origin letter) to the exit direction. Right and
// left rotate the compass a quarter turn; through crosses it.
var turnTable = map[counts.Turn]map[string]mapping.Direction{
	counts.TurnRight: {
		"n": mapping.West, "e": mapping.North, "s": mapping.East, "w": mapping.South,
	},
	counts.TurnThrough: {
		"n": mapping.South, "e": mapping.West, "s": mapping.North, "w": mapping.East,
	},
	counts.TurnLeft: {
		"n": mapping.East, "e": mapping.South, "s": mapping.West, "w": mapping.North,
	},
}

// Synthesize turns the raw rows of one intersection into flow records.
//
// Rows starting outside [simStart, simEnd) are ignored. Within a row the
// movement columns are visited in header order; malformed keys and
// non-positive counts are skipped silently. A key whose origin direction
// has no incoming edge, or whose exit direction has no outgoing edge,
// raises a MappingIncompleteError: under AbortIntersection the whole result
// is discarded, under SkipKey only that column is dropped. When a direction
// maps to several edges the first of its (lexicographically ordered) list
// is used.
func Synthesize(m mapping.JunctionMapping, rows []counts.Row, movementColumns []string,
	junctionID string, simStart, simEnd time.Time, mode UnmappedTurnMode) ([]Flow, error) {

	var result []Flow
	for _, row := range rows {
		if row.Start.IsZero() || row.End.IsZero() {
			continue
		}
		if row.Start.Before(simStart) || !row.Start.Before(simEnd) {
			continue
		}
		baseOffset := int(row.Start.Sub(simStart).Seconds())
		duration := int(row.End.Sub(row.Start).Seconds())

		for _, column := range movementColumns {
			value, ok := row.Values[column]
			if !ok {
				continue
			}
			key, ok := counts.ParseMovementKey(column)
			if !ok {
				continue
			}
			count, err := strconv.Atoi(value)
			if err != nil || count <= 0 {
				continue
			}
			fromDir := incomingDirections[key.Origin]
			toDir := turnTable[key.Turn][key.Origin]
			if len(m.Incoming[fromDir]) == 0 || len(m.Outgoing[toDir]) == 0 {
				if mode == SkipKey {
					continue
				}
				return nil, &mapping.MappingIncompleteError{
					Key:         column,
					Origin:      fromDir,
					Destination: toDir,
				}
			}
			result = append(result, Flow{
				ID:     fmt.Sprintf("%s_%s_%d", junctionID, column, baseOffset),
				Begin:  baseOffset,
				End:    baseOffset + duration,
				Number: count,
				From:   m.Incoming[fromDir][0],
				To:     m.Outgoing[toDir][0],
				Type:   key.Vehicle,
			})
		}
	}
	return result, nil
}
