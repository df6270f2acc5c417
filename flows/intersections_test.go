package flows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urban-traffic-lab/tmc-to-sumo/mapping"
)

func TestDecodeIntersectionsList(t *testing.T) {
	data := []byte(`[
		{"centreline_id": 1234, "location_name": "Main & First"},
		{"centreline_id": "5678", "intersection_id": "J9"}
	]`)
	list, err := decodeIntersections(data)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1234", list[0].CentrelineID)
	assert.Equal(t, "Main & First", list[0].LocationName)
	assert.Equal(t, "5678", list[1].CentrelineID)
	assert.Equal(t, "J9", list[1].JunctionID)
}

func TestDecodeIntersectionsWrapperObject(t *testing.T) {
	data := []byte(`{"intersections": [{"centreline_id": "1234"}]}`)
	list, err := decodeIntersections(data)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1234", list[0].CentrelineID)
}

func TestDecodeIntersectionsSingleObject(t *testing.T) {
	data := []byte(`{"centreline_id": "1234"}`)
	list, err := decodeIntersections(data)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestDecodeIntersectionsMappedEdges(t *testing.T) {
	data := []byte(`[{
		"centreline_id": "1234",
		"mapped_edges": {
			"incoming": {"north": ["e1"]},
			"outgoing": {"south": ["e2"]}
		}
	}]`)
	list, err := decodeIntersections(data)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].MappedEdges)
	assert.Equal(t, []string{"e1"}, list[0].MappedEdges.Incoming[mapping.North])
	assert.Equal(t, []string{"e2"}, list[0].MappedEdges.Outgoing[mapping.South])
}

func TestDecodeIntersectionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"scalar document", `42`},
		{"intersections not a list", `{"intersections": {"centreline_id": "1"}}`},
		{"entry not an object", `["oops"]`},
		{"not json", `{nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeIntersections([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecodeIntersectionsMissingCentrelineKept(t *testing.T) {
	// entries without a centreline id are kept; the pipeline skips them
	// with a diagnostic instead of failing the load
	data := []byte(`[{"location_name": "Nameless"}]`)
	list, err := decodeIntersections(data)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].CentrelineID)
}
