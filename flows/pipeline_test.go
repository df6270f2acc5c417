package flows

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urban-traffic-lab/tmc-to-sumo/counts"
	"github.com/urban-traffic-lab/tmc-to-sumo/mapping"
	"github.com/urban-traffic-lab/tmc-to-sumo/network"
)

const (
	testLon = -79.380
	testLat = 43.650
)

// pipelineNetwork builds a junction at the projection of the test
// coordinates with one approach from the north and one exit to the south.
func pipelineNetwork() *network.Network {
	net := network.New()
	at := net.Project(testLon, testLat)
	net.AddNode("J1", at)
	net.AddNode("N", orb.Point{at.X(), at.Y() + 100})
	net.AddNode("S", orb.Point{at.X(), at.Y() - 100})
	net.AddEdge("e1", "N", "J1", "highway.residential")
	net.AddEdge("e2", "J1", "S", "highway.residential")
	return net
}

func pipelineDataset(t *testing.T) *counts.Dataset {
	t.Helper()
	csv := fmt.Sprintf(
		"_id,centreline_id,location_name,longitude,latitude,start_time,end_time,n_appr_cars_t\n"+
			"1,1234,Main & First,%f,%f,2024-01-01T08:00:00,2024-01-01T08:15:00,5\n",
		testLon, testLat)
	ds, err := counts.ReadFrom(strings.NewReader(csv))
	require.NoError(t, err)
	return ds
}

func newPipeline(net *network.Network, ds *counts.Dataset, store mapping.Store) *Pipeline {
	return &Pipeline{
		Net:      net,
		Data:     ds,
		Store:    store,
		Locator:  mapping.NewLocator(net, 10, nil),
		Mode:     AbortIntersection,
		SimStart: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		SimEnd:   time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC),
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	net := pipelineNetwork()
	store := mapping.NewMemoryStore()
	p := newPipeline(net, pipelineDataset(t), store)

	result := p.Run([]Intersection{{CentrelineID: "1234"}})
	require.Empty(t, result.Skipped, "skips: %v", result.SkipMessages())
	require.Len(t, result.Flows, 1)
	assert.Equal(t, Flow{
		ID:     "J1_n_appr_cars_t_0",
		Begin:  0,
		End:    900,
		Number: 5,
		From:   "e1",
		To:     "e2",
		Type:   "car",
	}, result.Flows[0])

	require.Len(t, result.Details, 1)
	detail := result.Details[0]
	assert.Equal(t, "J1", detail.JunctionID)
	assert.Equal(t, "1234", detail.CentrelineID)
	assert.Equal(t, "Intersection 1234", detail.LocationName)
	assert.Equal(t, []string{"e1"}, detail.MonitoredIncoming)
	assert.Equal(t, []string{"e2"}, detail.MonitoredOutgoing)
	assert.Equal(t, mapping.North, detail.IncomingDirections["e1"])
	assert.Equal(t, mapping.South, detail.OutgoingDirections["e2"])
	require.Len(t, detail.DataAvailability, 1)

	// first resolution populates the cache
	record, ok := store.Get("J1")
	require.True(t, ok)
	assert.Equal(t, "1234", record.CentrelineID)
	require.NotNil(t, record.InputCoordinates)
	assert.InDelta(t, testLon, record.InputCoordinates.Longitude, 1e-9)
}

func TestPipelineHardStopKeepsNoPartialFlows(t *testing.T) {
	net := network.New()
	at := net.Project(testLon, testLat)
	net.AddNode("J1", at)
	net.AddNode("N", orb.Point{at.X(), at.Y() + 100})
	// no southern exit: the through movement cannot be mapped
	net.AddEdge("e1", "N", "J1", "highway.residential")

	p := newPipeline(net, pipelineDataset(t), mapping.NewMemoryStore())
	result := p.Run([]Intersection{{CentrelineID: "1234"}})

	assert.Empty(t, result.Flows)
	assert.Empty(t, result.Details)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, SkipSynthesisError, result.Skipped[0].Kind)
	assert.Contains(t, result.Skipped[0].String(), "incomplete edge mapping")
}

func TestPipelineUsesCachedMapping(t *testing.T) {
	net := pipelineNetwork()
	store := mapping.NewMemoryStore()
	require.NoError(t, store.Put("J1", mapping.CacheRecord{
		JunctionID:   "J1",
		CentrelineID: "1234",
		EdgeMapping: mapping.JunctionMapping{
			Incoming: map[mapping.Direction][]string{mapping.North: {"cachedIn"}},
			Outgoing: map[mapping.Direction][]string{mapping.South: {"cachedOut"}},
		},
	}))

	p := newPipeline(net, pipelineDataset(t), store)
	result := p.Run([]Intersection{{CentrelineID: "1234"}})
	require.Len(t, result.Flows, 1)
	assert.Equal(t, "cachedIn", result.Flows[0].From)
	assert.Equal(t, "cachedOut", result.Flows[0].To)
}

func TestPipelineUsesPreKnownMapping(t *testing.T) {
	net := pipelineNetwork()
	p := newPipeline(net, pipelineDataset(t), mapping.NewMemoryStore())

	pre := &mapping.JunctionMapping{
		Incoming: map[mapping.Direction][]string{mapping.North: {"preIn"}},
		Outgoing: map[mapping.Direction][]string{mapping.South: {"preOut"}},
	}
	result := p.Run([]Intersection{{CentrelineID: "1234", MappedEdges: pre}})
	require.Len(t, result.Flows, 1)
	assert.Equal(t, "preIn", result.Flows[0].From)
	assert.Equal(t, "preOut", result.Flows[0].To)
}

func TestPipelinePreKnownJunctionSkipsLocator(t *testing.T) {
	net := pipelineNetwork()
	p := newPipeline(net, pipelineDataset(t), mapping.NewMemoryStore())
	// a locator that would reject everything proves it is never consulted
	p.Locator = mapping.NewLocator(net, 0, mapping.RejectOutOfTolerance)

	result := p.Run([]Intersection{{CentrelineID: "1234", JunctionID: "J1"}})
	require.Len(t, result.Flows, 1)
}

func TestPipelineSkipReasons(t *testing.T) {
	net := pipelineNetwork()

	t.Run("missing centreline id", func(t *testing.T) {
		p := newPipeline(net, pipelineDataset(t), mapping.NewMemoryStore())
		result := p.Run([]Intersection{{LocationName: "Nameless"}})
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, SkipMissingCentrelineID, result.Skipped[0].Kind)
		assert.Equal(t, "Intersection 'Nameless' skipped: Missing centreline_id.",
			result.Skipped[0].String())
	})

	t.Run("no csv data", func(t *testing.T) {
		p := newPipeline(net, pipelineDataset(t), mapping.NewMemoryStore())
		result := p.Run([]Intersection{{CentrelineID: "9999"}})
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, SkipNoCsvData, result.Skipped[0].Kind)
	})

	t.Run("outside simulation window", func(t *testing.T) {
		p := newPipeline(net, pipelineDataset(t), mapping.NewMemoryStore())
		p.SimStart = time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
		p.SimEnd = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
		result := p.Run([]Intersection{{CentrelineID: "1234"}})
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, SkipOutsideWindow, result.Skipped[0].Kind)
	})

	t.Run("locator rejection", func(t *testing.T) {
		empty := network.New()
		p := newPipeline(empty, pipelineDataset(t), mapping.NewMemoryStore())
		result := p.Run([]Intersection{{CentrelineID: "1234"}})
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, SkipLocatorError, result.Skipped[0].Kind)
	})

	t.Run("unmappable pre-known junction", func(t *testing.T) {
		p := newPipeline(net, pipelineDataset(t), mapping.NewMemoryStore())
		result := p.Run([]Intersection{{CentrelineID: "1234", JunctionID: "ghost"}})
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, SkipMappingError, result.Skipped[0].Kind)
	})

	t.Run("failure isolated to one intersection", func(t *testing.T) {
		p := newPipeline(net, pipelineDataset(t), mapping.NewMemoryStore())
		result := p.Run([]Intersection{
			{CentrelineID: "9999"}, // skipped
			{CentrelineID: "1234"}, // still processed
		})
		assert.Len(t, result.Skipped, 1)
		assert.Len(t, result.Flows, 1)
	})
}

func TestPipelineDeterministicAcrossRuns(t *testing.T) {
	first := newPipeline(pipelineNetwork(), pipelineDataset(t), mapping.NewMemoryStore()).
		Run([]Intersection{{CentrelineID: "1234"}})
	second := newPipeline(pipelineNetwork(), pipelineDataset(t), mapping.NewMemoryStore()).
		Run([]Intersection{{CentrelineID: "1234"}})
	assert.Equal(t, first.Flows, second.Flows)
	assert.Equal(t, first.Details, second.Details)
}
