package mapping

import (
	"github.com/urban-traffic-lab/tmc-to-sumo/network"
)

// JunctionMapping partitions the drivable edges of one junction by compass
// direction. A direction maps to zero or more edge ids; consumers must
// treat a missing direction as a failure, never as an empty default.
type JunctionMapping struct {
	Incoming map[Direction][]string `json:"incoming"`
	Outgoing map[Direction][]string `json:"outgoing"`
}

// MapJunctionEdges classifies the drivable incident edges of a junction.
//
// Both incoming and outgoing edges are classified by the bearing from the
// junction to the edge's far endpoint, so an approach is labelled by the
// compass side its traffic arrives from: an edge descending from the north
// lands in incoming["north"]. Incident edges are visited in lexicographic
// edge-id order, which makes the per-direction lists and the first-edge
// pick stable across runs and cache reloads.
func MapJunctionEdges(net *network.Network, junctionID string) (JunctionMapping, error) {
	junction, ok := net.Node(network.NodeID(junctionID))
	if !ok {
		return JunctionMapping{}, &JunctionNotFoundError{JunctionID: junctionID}
	}

	m := JunctionMapping{
		Incoming: make(map[Direction][]string),
		Outgoing: make(map[Direction][]string),
	}
	for _, edge := range junction.Incoming() {
		if !edge.Drivable() {
			continue
		}
		fromNode, ok := net.Node(edge.From)
		if !ok {
			continue
		}
		dir := ClassifyBearing(Bearing(junction.Coord, fromNode.Coord))
		m.Incoming[dir] = append(m.Incoming[dir], string(edge.ID))
	}
	for _, edge := range junction.Outgoing() {
		if !edge.Drivable() {
			continue
		}
		toNode, ok := net.Node(edge.To)
		if !ok {
			continue
		}
		dir := ClassifyBearing(Bearing(junction.Coord, toNode.Coord))
		m.Outgoing[dir] = append(m.Outgoing[dir], string(edge.ID))
	}
	return m, nil
}
