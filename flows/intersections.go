package flows

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/urban-traffic-lab/tmc-to-sumo/mapping"
)

// Intersection is one entry of the intersections metadata input. Only the
// centreline id is mandatory; a pre-known junction id or edge mapping
// short-circuits the locator and mapper respectively.
type Intersection struct {
	CentrelineID string
	JunctionID   string
	LocationName string
	MappedEdges  *mapping.JunctionMapping
}

// LoadIntersections reads intersection metadata from a JSON file. The
// document may be a list of records, an object with an "intersections"
// list, or a single record object.
func LoadIntersections(path string) ([]Intersection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load intersections file '%s'", path)
	}
	list, err := decodeIntersections(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse intersections file '%s'", path)
	}
	return list, nil
}

func decodeIntersections(data []byte) ([]Intersection, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	switch doc := raw.(type) {
	case []any:
		return convertIntersections(doc)
	case map[string]any:
		if inner, ok := doc["intersections"]; ok {
			list, ok := inner.([]any)
			if !ok {
				return nil, errors.New("'intersections' must be a list")
			}
			return convertIntersections(list)
		}
		return convertIntersections([]any{doc})
	default:
		return nil, errors.New("input must be an object or list of intersections")
	}
}

func convertIntersections(items []any) ([]Intersection, error) {
	out := make([]Intersection, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, errors.New("intersection entry must be an object")
		}
		inter := Intersection{
			CentrelineID: strings.TrimSpace(toStringValue(record["centreline_id"])),
			JunctionID:   toStringValue(record["intersection_id"]),
			LocationName: toStringValue(record["location_name"]),
		}
		if rawMapping, ok := record["mapped_edges"]; ok && rawMapping != nil {
			b, err := json.Marshal(rawMapping)
			if err != nil {
				return nil, err
			}
			var m mapping.JunctionMapping
			if err := json.Unmarshal(b, &m); err != nil {
				return nil, errors.Wrap(err, "decode mapped_edges")
			}
			if len(m.Incoming) > 0 || len(m.Outgoing) > 0 {
				inter.MappedEdges = &m
			}
		}
		out = append(out, inter)
	}
	return out, nil
}

// toStringValue renders flexible JSON values (string or number ids) as
// strings.
func toStringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return ""
}
