package formatter

import (
	"encoding/json"

	"github.com/urban-traffic-lab/tmc-to-sumo/flows"
)

// BuildDetailsJSON serializes the per-intersection diagnostics document.
// When the run produced no flows the document carries the skip reasons
// instead, so there is always something to inspect.
func BuildDetailsJSON(result *flows.Result) []byte {
	if len(result.Flows) == 0 {
		b, _ := json.MarshalIndent(map[string]any{
			"warnings": result.SkipMessages(),
		}, "", "    ")
		return b
	}
	b, _ := json.MarshalIndent(result.Details, "", "    ")
	return b
}
