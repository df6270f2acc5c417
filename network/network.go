package network

import (
	"sort"
	"strings"

	"github.com/paulmach/orb"
)

// NodeID identifies a junction in the street network.
type NodeID string

// EdgeID identifies a directed street segment.
type EdgeID string

// Node is a junction where edges meet. Coord is in network (projected)
// units, not lon/lat.
type Node struct {
	ID       NodeID
	Coord    orb.Point
	incoming []*Edge
	outgoing []*Edge
}

// Incoming returns the edges ending at this node, sorted by edge id.
func (n *Node) Incoming() []*Edge { return n.incoming }

// Outgoing returns the edges starting at this node, sorted by edge id.
func (n *Node) Outgoing() []*Edge { return n.outgoing }

// Edge is a directed segment between two nodes carrying a road-type
// classification (e.g. "highway.residential").
type Edge struct {
	ID   EdgeID
	From NodeID
	To   NodeID
	Type string
}

// Drivable reports whether vehicles may use the edge: it must carry a road
// classification and must not be a foot path.
func (e *Edge) Drivable() bool {
	return strings.Contains(e.Type, "highway") && !strings.Contains(e.Type, "footway")
}

// Network is an in-memory street network. It is built once and read-only
// afterwards; node iteration order is fixed at build time so that scans over
// the network are reproducible.
type Network struct {
	nodes     map[NodeID]*Node
	edges     map[EdgeID]*Edge
	nodeOrder []NodeID
}

// New returns an empty network.
func New() *Network {
	return &Network{
		nodes: make(map[NodeID]*Node),
		edges: make(map[EdgeID]*Edge),
	}
}

// AddNode registers a junction. Re-adding an existing id moves the node.
func (net *Network) AddNode(id NodeID, coord orb.Point) *Node {
	if n, ok := net.nodes[id]; ok {
		n.Coord = coord
		return n
	}
	n := &Node{ID: id, Coord: coord}
	net.nodes[id] = n
	net.nodeOrder = append(net.nodeOrder, id)
	return n
}

// AddEdge registers a directed edge between two existing nodes. Unknown
// endpoints are created at the origin and should be positioned afterwards.
func (net *Network) AddEdge(id EdgeID, from, to NodeID, edgeType string) *Edge {
	e := &Edge{ID: id, From: from, To: to, Type: edgeType}
	net.edges[id] = e
	fromNode, ok := net.nodes[from]
	if !ok {
		fromNode = net.AddNode(from, orb.Point{})
	}
	toNode, ok := net.nodes[to]
	if !ok {
		toNode = net.AddNode(to, orb.Point{})
	}
	fromNode.outgoing = insertEdge(fromNode.outgoing, e)
	toNode.incoming = insertEdge(toNode.incoming, e)
	return e
}

// insertEdge keeps incident edge lists sorted lexicographically by id, so
// direction buckets and first-edge picks are stable across runs.
func insertEdge(edges []*Edge, e *Edge) []*Edge {
	i := sort.Search(len(edges), func(i int) bool { return edges[i].ID >= e.ID })
	edges = append(edges, nil)
	copy(edges[i+1:], edges[i:])
	edges[i] = e
	return edges
}

// Node returns the node with the given id.
func (net *Network) Node(id NodeID) (*Node, bool) {
	n, ok := net.nodes[id]
	return n, ok
}

// Edge returns the edge with the given id.
func (net *Network) Edge(id EdgeID) (*Edge, bool) {
	e, ok := net.edges[id]
	return e, ok
}

// Nodes returns all nodes in insertion order.
func (net *Network) Nodes() []*Node {
	out := make([]*Node, 0, len(net.nodeOrder))
	for _, id := range net.nodeOrder {
		out = append(out, net.nodes[id])
	}
	return out
}

// NumNodes returns the number of junctions.
func (net *Network) NumNodes() int { return len(net.nodes) }

// Project converts geographic lon/lat to network coordinates.
func (net *Network) Project(lon, lat float64) orb.Point {
	return pointToEuclidean(orb.Point{lon, lat})
}
