package network

import (
	"context"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

// drivableTags is the set of highway values imported from OSM. Footways and
// other pedestrian-only values are intentionally absent so that
// Edge.Drivable holds for every imported edge except explicit footways kept
// for completeness of junction geometry.
var drivableTags = map[string]struct{}{
	"motorway": {}, "motorway_link": {}, "trunk": {}, "trunk_link": {},
	"primary": {}, "primary_link": {}, "secondary": {}, "secondary_link": {},
	"tertiary": {}, "tertiary_link": {}, "residential": {}, "unclassified": {},
	"living_street": {}, "service": {}, "road": {}, "footway": {},
}

// LoadOSM builds a street network from an OSM extract in PBF format. Each
// consecutive node pair of a kept way becomes a directed edge (both
// directions unless the way is oneway), typed "highway.<value>".
func LoadOSM(fileName string) (*Network, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open OSM file")
	}
	defer f.Close()

	scannerWays := osmpbf.New(context.Background(), f, 4)

	type wayRef struct {
		id     int64
		nodes  osm.WayNodes
		tag    string
		oneway bool
	}
	ways := []wayRef{}
	needed := make(map[osm.NodeID]struct{})
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tagMap := way.TagMap()
		tag, ok := tagMap["highway"]
		if !ok {
			continue
		}
		if _, ok := drivableTags[tag]; !ok {
			continue
		}
		oneway := false
		if v, ok := tagMap["oneway"]; ok && (v == "yes" || v == "1") {
			oneway = true
		}
		ways = append(ways, wayRef{
			id:     int64(way.ID),
			nodes:  way.Nodes,
			tag:    tag,
			oneway: oneway,
		})
		for _, n := range way.Nodes {
			needed[n.ID] = struct{}{}
		}
	}
	if err := scannerWays.Err(); err != nil {
		scannerWays.Close()
		return nil, errors.Wrap(err, "scan ways")
	}
	scannerWays.Close()

	if _, err := f.Seek(0, 0); err != nil {
		return nil, errors.Wrap(err, "rewind OSM file")
	}
	scannerNodes := osmpbf.New(context.Background(), f, 4)
	defer scannerNodes.Close()

	coords := make(map[osm.NodeID]orb.Point)
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := needed[node.ID]; !ok {
			continue
		}
		coords[node.ID] = pointToEuclidean(orb.Point{node.Lon, node.Lat})
	}
	if err := scannerNodes.Err(); err != nil {
		return nil, errors.Wrap(err, "scan nodes")
	}

	net := New()
	for _, w := range ways {
		edgeType := "highway." + w.tag
		for i := 1; i < len(w.nodes); i++ {
			fromID, toID := w.nodes[i-1].ID, w.nodes[i].ID
			fromPt, okFrom := coords[fromID]
			toPt, okTo := coords[toID]
			if !okFrom || !okTo {
				continue
			}
			from := NodeID(fmt.Sprintf("%d", fromID))
			to := NodeID(fmt.Sprintf("%d", toID))
			net.AddNode(from, fromPt)
			net.AddNode(to, toPt)
			net.AddEdge(EdgeID(fmt.Sprintf("%d_%d", w.id, i-1)), from, to, edgeType)
			if !w.oneway {
				net.AddEdge(EdgeID(fmt.Sprintf("-%d_%d", w.id, i-1)), to, from, edgeType)
			}
		}
	}
	return net, nil
}
