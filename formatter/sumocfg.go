package formatter

import (
	"strconv"
	"strings"
	"time"
)

// BuildSumoConfigXML serializes the simulator run configuration referencing
// the network and the generated routes file. Simulation time is expressed
// as seconds from the window start.
func BuildSumoConfigXML(netFile, routeFile string, simStart, simEnd time.Time) []byte {
	endSec := int(simEnd.Sub(simStart).Seconds())

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	b.WriteString("<configuration>")
	b.WriteString("<input>")
	b.WriteString("<net-file value=\"")
	b.WriteString(xmlEscape(netFile))
	b.WriteString("\"/>")
	b.WriteString("<route-files value=\"")
	b.WriteString(xmlEscape(routeFile))
	b.WriteString("\"/>")
	b.WriteString("</input>")
	b.WriteString("<time>")
	b.WriteString("<begin value=\"0\"/>")
	b.WriteString("<end value=\"")
	b.WriteString(strconv.Itoa(endSec))
	b.WriteString("\"/>")
	b.WriteString("</time>")
	b.WriteString("</configuration>\n")
	return []byte(b.String())
}
