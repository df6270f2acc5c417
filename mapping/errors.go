package mapping

import "fmt"

// JunctionNotFoundError reports a junction id absent from the network.
type JunctionNotFoundError struct {
	JunctionID string
}

func (e *JunctionNotFoundError) Error() string {
	return fmt.Sprintf("junction '%s' not found in network", e.JunctionID)
}

// NoNetworkNodesError reports a network with no junctions to locate against.
type NoNetworkNodesError struct{}

func (e *NoNetworkNodesError) Error() string {
	return "no nodes found in the network"
}

// ToleranceExceededError reports a nearest junction beyond the distance
// tolerance that the configured policy rejected.
type ToleranceExceededError struct {
	JunctionID string
	Distance   float64
	Tolerance  float64
}

func (e *ToleranceExceededError) Error() string {
	return fmt.Sprintf("closest junction '%s' is %.2fm away (tolerance %.2fm), rejected",
		e.JunctionID, e.Distance, e.Tolerance)
}

// MappingIncompleteError reports a movement key whose origin or destination
// direction has no edge in the junction mapping. Synthesis surfaces it
// either as an intersection abort or a per-key skip, depending on mode.
type MappingIncompleteError struct {
	Key         string
	Origin      Direction
	Destination Direction
}

func (e *MappingIncompleteError) Error() string {
	return fmt.Sprintf("incomplete edge mapping for key '%s': missing incoming '%s' or outgoing '%s'",
		e.Key, e.Origin, e.Destination)
}
