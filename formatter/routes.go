package formatter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/urban-traffic-lab/tmc-to-sumo/config"
	"github.com/urban-traffic-lab/tmc-to-sumo/flows"
)

// BuildRoutesXML serializes vehicle type definitions and flow records into
// a SUMO routes document. Vehicle types are written in sorted class order
// and flows in their synthesis order, so output is reproducible.
func BuildRoutesXML(vehicleTypes map[string]config.VehicleType, flowList []flows.Flow) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	b.WriteString("<routes>")

	classes := make([]string, 0, len(vehicleTypes))
	for class := range vehicleTypes {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		writeVType(&b, class, vehicleTypes[class])
	}

	for _, flow := range flowList {
		b.WriteString("<flow id=\"")
		b.WriteString(xmlEscape(flow.ID))
		b.WriteString("\" begin=\"")
		b.WriteString(strconv.Itoa(flow.Begin))
		b.WriteString("\" end=\"")
		b.WriteString(strconv.Itoa(flow.End))
		b.WriteString("\" number=\"")
		b.WriteString(strconv.Itoa(flow.Number))
		b.WriteString("\" from=\"")
		b.WriteString(xmlEscape(flow.From))
		b.WriteString("\" to=\"")
		b.WriteString(xmlEscape(flow.To))
		b.WriteString("\" type=\"")
		b.WriteString(xmlEscape(flow.Type))
		b.WriteString("\"/>")
	}
	b.WriteString("</routes>\n")
	return []byte(b.String())
}

func writeVType(b *strings.Builder, class string, vt config.VehicleType) {
	b.WriteString("<vType id=\"")
	b.WriteString(xmlEscape(class))
	b.WriteString("\"")
	writeAttr(b, "carFollowModel", vt.CarFollowModel)
	writeAttr(b, "accel", vt.Accel)
	writeAttr(b, "decel", vt.Decel)
	writeAttr(b, "sigma", vt.Sigma)
	writeAttr(b, "length", vt.Length)
	writeAttr(b, "maxSpeed", vt.MaxSpeed)
	b.WriteString("/>")
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString("=\"")
	b.WriteString(xmlEscape(value))
	b.WriteString("\"")
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
