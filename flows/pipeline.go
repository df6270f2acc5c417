package flows

import (
	"sort"
	"strconv"
	"time"

	"github.com/urban-traffic-lab/tmc-to-sumo/counts"
	"github.com/urban-traffic-lab/tmc-to-sumo/mapping"
	"github.com/urban-traffic-lab/tmc-to-sumo/network"
)

// IntersectionDetail is the per-intersection diagnostics record emitted for
// every intersection that produced flows.
type IntersectionDetail struct {
	JunctionID         string                       `json:"intersection_id"`
	CentrelineID       string                       `json:"centreline_id"`
	LocationName       string                       `json:"location_name"`
	DataAvailability   []counts.Interval            `json:"data_availability"`
	SimulationStart    string                       `json:"simulation_start"`
	SimulationEnd      string                       `json:"simulation_end"`
	MonitoredIncoming  []string                     `json:"monitored_incoming_edges"`
	MonitoredOutgoing  []string                     `json:"monitored_outgoing_edges"`
	IncomingDirections map[string]mapping.Direction `json:"incoming_edge_directions"`
	OutgoingDirections map[string]mapping.Direction `json:"outgoing_edge_directions"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	Flows   []Flow
	Details []IntersectionDetail
	Skipped []SkipReason
}

// SkipMessages renders the human-readable skip list.
func (r *Result) SkipMessages() []string {
	out := make([]string, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		out = append(out, s.String())
	}
	return out
}

// Pipeline converts turning-movement counts into simulator demand, one
// intersection at a time. Failures scoped to a single intersection append a
// skip reason and the run continues; only unreadable inputs abort a run,
// and those are caught before the pipeline is constructed.
type Pipeline struct {
	Net     *network.Network
	Data    *counts.Dataset
	Store   mapping.Store
	Locator *mapping.Locator
	Mode    UnmappedTurnMode

	SimStart time.Time
	SimEnd   time.Time
}

// Run processes the given intersections in input order.
func (p *Pipeline) Run(intersections []Intersection) *Result {
	result := &Result{}
	for _, inter := range intersections {
		p.processIntersection(inter, result)
	}
	return result
}

func (p *Pipeline) processIntersection(inter Intersection, result *Result) {
	name := inter.LocationName
	if name == "" {
		name = "Intersection " + inter.CentrelineID
	}
	skip := func(kind, detail string) {
		result.Skipped = append(result.Skipped, SkipReason{
			Kind:         kind,
			CentrelineID: inter.CentrelineID,
			LocationName: name,
			Detail:       detail,
		})
	}

	if inter.CentrelineID == "" {
		skip(SkipMissingCentrelineID, "")
		return
	}
	rows := p.Data.Rows(inter.CentrelineID)

	junctionID := inter.JunctionID
	var inputCoords *mapping.Coordinates
	if junctionID == "" {
		if len(rows) == 0 {
			skip(SkipNoCsvData, "")
			return
		}
		lon, err := strconv.ParseFloat(rows[0].Values["longitude"], 64)
		if err != nil {
			skip(SkipCoordinatesError, "bad longitude: "+rows[0].Values["longitude"])
			return
		}
		lat, err := strconv.ParseFloat(rows[0].Values["latitude"], 64)
		if err != nil {
			skip(SkipCoordinatesError, "bad latitude: "+rows[0].Values["latitude"])
			return
		}
		inputCoords = &mapping.Coordinates{Longitude: lon, Latitude: lat}
		junctionID, err = p.Locator.FindIntersection(lon, lat)
		if err != nil {
			skip(SkipLocatorError, err.Error())
			return
		}
	}

	intervals := counts.RowIntervals(rows)
	if len(intervals) == 0 {
		skip(SkipNoValidTimeData, "")
		return
	}
	availability := counts.MergeIntervals(intervals)
	if !counts.Overlaps(availability, p.SimStart, p.SimEnd) {
		skip(SkipOutsideWindow, "")
		return
	}

	var edgeMapping mapping.JunctionMapping
	if record, ok := p.Store.Get(junctionID); ok {
		edgeMapping = record.EdgeMapping
	} else {
		if inter.MappedEdges != nil {
			edgeMapping = *inter.MappedEdges
		} else {
			m, err := mapping.MapJunctionEdges(p.Net, junctionID)
			if err != nil {
				skip(SkipMappingError, err.Error())
				return
			}
			edgeMapping = m
		}
		node, ok := p.Net.Node(network.NodeID(junctionID))
		if !ok {
			skip(SkipNodeError, "junction '"+junctionID+"' not found in network")
			return
		}
		record := mapping.CacheRecord{
			JunctionID:       junctionID,
			CentrelineID:     inter.CentrelineID,
			LocationName:     name,
			InputCoordinates: inputCoords,
			NetworkCoordinates: mapping.NetworkCoordinates{
				X: node.Coord.X(),
				Y: node.Coord.Y(),
			},
			DataAvailability: availability,
			EdgeMapping:      edgeMapping,
		}
		if err := p.Store.Put(junctionID, record); err != nil {
			// Cache persistence must not fail the intersection; the mapping
			// is already in hand.
			skipCacheWrite(junctionID, err)
		}
	}

	generated, err := Synthesize(edgeMapping, rows, p.Data.MovementColumns(),
		junctionID, p.SimStart, p.SimEnd, p.Mode)
	if err != nil {
		skip(SkipSynthesisError, err.Error())
		return
	}
	if len(generated) == 0 {
		skip(SkipNoFlows, "")
		return
	}

	result.Flows = append(result.Flows, generated...)
	result.Details = append(result.Details, p.buildDetail(inter, name, junctionID, availability, edgeMapping, generated))
}

func (p *Pipeline) buildDetail(inter Intersection, name, junctionID string,
	availability []counts.Interval, m mapping.JunctionMapping, generated []Flow) IntersectionDetail {

	const layout = "2006-01-02 15:04:05"
	detail := IntersectionDetail{
		JunctionID:         junctionID,
		CentrelineID:       inter.CentrelineID,
		LocationName:       name,
		DataAvailability:   availability,
		SimulationStart:    p.SimStart.Format(layout),
		SimulationEnd:      p.SimEnd.Format(layout),
		IncomingDirections: make(map[string]mapping.Direction),
		OutgoingDirections: make(map[string]mapping.Direction),
	}
	seenIn := make(map[string]struct{})
	seenOut := make(map[string]struct{})
	for _, flow := range generated {
		seenIn[flow.From] = struct{}{}
		seenOut[flow.To] = struct{}{}
		for direction, edges := range m.Incoming {
			for _, edge := range edges {
				if edge == flow.From {
					detail.IncomingDirections[edge] = direction
				}
			}
		}
		for direction, edges := range m.Outgoing {
			for _, edge := range edges {
				if edge == flow.To {
					detail.OutgoingDirections[edge] = direction
				}
			}
		}
	}
	detail.MonitoredIncoming = sortedKeys(seenIn)
	detail.MonitoredOutgoing = sortedKeys(seenOut)
	return detail
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
