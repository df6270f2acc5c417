// Package network provides the in-memory street-network model consumed by
// the demand pipeline: junction lookup, typed directed edges with stable
// incident ordering, geographic-to-network projection (EPSG:3857) and an
// OSM PBF importer.
//
// The network is built once and read-only afterwards. Node iteration order
// and per-node edge order are deterministic so nearest-node scans and edge
// classification are reproducible across runs, which the mapping cache
// relies on.
package network
