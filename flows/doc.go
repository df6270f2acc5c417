// Package flows synthesizes simulator demand from turning-movement counts.
//
// The pipeline resolves each intersection onto the network (directly, via
// the cache, or through the locator), gates it on data availability against
// the simulation window, and decodes its movement-count columns into flow
// records. Failures are isolated per intersection: a failed intersection
// contributes a skip reason and nothing else, and the run continues.
package flows
