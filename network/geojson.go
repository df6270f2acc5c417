package network

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// JunctionGeoJSON renders a junction and its incident edges as a GeoJSON
// feature collection (geographic coordinates) for visual inspection of a
// computed mapping. Edge features carry "role" (incoming/outgoing), "type"
// and "edge_id" properties.
func (net *Network) JunctionGeoJSON(id NodeID) ([]byte, error) {
	node, ok := net.nodes[id]
	if !ok {
		return nil, errors.Errorf("junction '%s' not found in network", id)
	}
	fc := geojson.NewFeatureCollection()

	center := pointToGeographic(node.Coord)
	centerFeature := geojson.NewPointFeature([]float64{center.X(), center.Y()})
	centerFeature.SetProperty("junction_id", string(node.ID))
	fc.AddFeature(centerFeature)

	addEdge := func(e *Edge, role string) {
		from, okFrom := net.nodes[e.From]
		to, okTo := net.nodes[e.To]
		if !okFrom || !okTo {
			return
		}
		p := pointToGeographic(from.Coord)
		q := pointToGeographic(to.Coord)
		feature := geojson.NewLineStringFeature([][]float64{
			{p.X(), p.Y()},
			{q.X(), q.Y()},
		})
		feature.SetProperty("edge_id", string(e.ID))
		feature.SetProperty("role", role)
		feature.SetProperty("type", e.Type)
		fc.AddFeature(feature)
	}
	for _, e := range node.incoming {
		addEdge(e, "incoming")
	}
	for _, e := range node.outgoing {
		addEdge(e, "outgoing")
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshal feature collection")
	}
	return b, nil
}
