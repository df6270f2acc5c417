// Package formatter serializes pipeline output: the SUMO routes file, the
// simulator run configuration and the details JSON document.
//
// XML is written manually for precise control over attribute order, which
// keeps generated files byte-stable between runs.
package formatter
