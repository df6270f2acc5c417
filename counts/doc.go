// Package counts reads turning-movement count data: the raw CSV table, the
// movement-key column grammar and the per-intersection availability
// intervals derived from row timestamps.
package counts
