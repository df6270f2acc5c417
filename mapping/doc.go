// Package mapping resolves real-world intersections onto the street
// network: compass classification of bearings, partitioning of a junction's
// drivable edges by direction, nearest-junction location with a distance
// tolerance policy, and the persistent junction cache.
package mapping
