package counts

import "strings"

// Turn is a recorded turning manoeuvre.
type Turn string

const (
	TurnRight   Turn = "r"
	TurnThrough Turn = "t"
	TurnLeft    Turn = "l"
)

// metadataColumns are dataset columns that never carry movement counts.
var metadataColumns = map[string]struct{}{
	"_id":             {},
	"count_id":        {},
	"count_date":      {},
	"location_name":   {},
	"longitude":       {},
	"latitude":        {},
	"centreline_type": {},
	"centreline_id":   {},
	"px":              {},
	"start_time":      {},
	"end_time":        {},
}

// vehicleClasses maps dataset vehicle tokens to simulator vehicle classes.
// Tokens outside this vocabulary (peds, bike, other) are not simulated.
var vehicleClasses = map[string]string{
	"cars":  "car",
	"truck": "truck",
	"bus":   "bus",
}

// MovementKey is a decoded movement-count column name.
type MovementKey struct {
	Origin  string // compass letter: n, s, e or w
	Vehicle string // canonical vehicle class
	Turn    Turn
}

// ParseMovementKey decodes a column name of the form
// {n,s,e,w}_[appr_]{vehicle}_{r,l,t}. The second return value is false for
// anything that does not fit the grammar or names an unsimulated vehicle;
// such keys are skipped, never failed on.
func ParseMovementKey(key string) (MovementKey, bool) {
	parts := strings.Split(key, "_")
	var origin, vehicle, turn string
	switch len(parts) {
	case 3:
		origin, vehicle, turn = parts[0], parts[1], parts[2]
	case 4:
		if !strings.EqualFold(parts[1], "appr") {
			return MovementKey{}, false
		}
		origin, vehicle, turn = parts[0], parts[2], parts[3]
	default:
		return MovementKey{}, false
	}

	origin = strings.ToLower(origin)
	switch origin {
	case "n", "s", "e", "w":
	default:
		return MovementKey{}, false
	}
	class, ok := vehicleClasses[vehicle]
	if !ok {
		return MovementKey{}, false
	}
	switch Turn(strings.ToLower(turn)) {
	case TurnRight, TurnThrough, TurnLeft:
	default:
		return MovementKey{}, false
	}
	return MovementKey{
		Origin:  origin,
		Vehicle: class,
		Turn:    Turn(strings.ToLower(turn)),
	}, true
}
