package mapping

import (
	"math"

	"github.com/urban-traffic-lab/tmc-to-sumo/network"
)

// TolerancePolicy decides whether an out-of-tolerance nearest junction is
// still acceptable. It replaces the interactive confirmation prompt of the
// original workflow with an explicit, non-blocking decision point.
type TolerancePolicy func(junctionID string, distance, tolerance float64) bool

// AcceptOutOfTolerance takes any nearest junction regardless of distance.
func AcceptOutOfTolerance(string, float64, float64) bool { return true }

// RejectOutOfTolerance refuses junctions beyond the tolerance.
func RejectOutOfTolerance(string, float64, float64) bool { return false }

// Locator resolves geographic coordinates to network junctions.
type Locator struct {
	Net       *network.Network
	Tolerance float64
	Policy    TolerancePolicy
}

// NewLocator returns a locator with the given tolerance in network units.
// A nil policy rejects out-of-tolerance matches.
func NewLocator(net *network.Network, tolerance float64, policy TolerancePolicy) *Locator {
	if policy == nil {
		policy = RejectOutOfTolerance
	}
	return &Locator{Net: net, Tolerance: tolerance, Policy: policy}
}

// FindIntersection projects the target lon/lat into network coordinates and
// scans every junction for the nearest one. Ties keep the first junction
// encountered; the network's node order is fixed, so the result is
// deterministic. Matches beyond the tolerance are referred to the policy.
func (l *Locator) FindIntersection(lon, lat float64) (string, error) {
	target := l.Net.Project(lon, lat)
	var closest *network.Node
	minDistance := math.Inf(1)
	for _, node := range l.Net.Nodes() {
		d := math.Hypot(node.Coord.X()-target.X(), node.Coord.Y()-target.Y())
		if d < minDistance {
			minDistance = d
			closest = node
		}
	}
	if closest == nil {
		return "", &NoNetworkNodesError{}
	}
	if minDistance > l.Tolerance {
		if !l.Policy(string(closest.ID), minDistance, l.Tolerance) {
			return "", &ToleranceExceededError{
				JunctionID: string(closest.ID),
				Distance:   minDistance,
				Tolerance:  l.Tolerance,
			}
		}
	}
	return string(closest.ID), nil
}
