package render

import (
	"fmt"
	"html"
	"strings"
)

// Badge renders one colored status badge. online selects the badge-online
// style, otherwise badge-offline.
func Badge(label string, online bool) string {
	class, state := "badge badge-offline", "offline"
	if online {
		class, state = "badge badge-online", "online"
	}
	return fmt.Sprintf(`<span class="%s">%s: %s</span>`, class, html.EscapeString(label), state)
}

// StatusBadges renders the gateway and port badges for one status payload.
func StatusBadges(gatewayRunning, portListening bool) string {
	var b strings.Builder
	b.WriteString(`<div class="status-badges">`)
	b.WriteString(Badge("Gateway", gatewayRunning))
	b.WriteString(Badge("Port 4002", portListening))
	b.WriteString(`</div>`)
	return b.String()
}

// MetricTiles renders the optional system metric tiles. A nil metric was
// absent from the payload and shows the placeholder glyph, not a zero.
func MetricTiles(ramPct, diskPct, uptimeDays *float64) string {
	var b strings.Builder
	b.WriteString(`<div class="status-tiles">`)
	tile(&b, "RAM", ramPct, " %")
	tile(&b, "Disk", diskPct, " %")
	tile(&b, "Uptime", uptimeDays, " d")
	b.WriteString(`</div>`)
	return b.String()
}

func tile(b *strings.Builder, label string, v *float64, unit string) {
	val := Placeholder
	if v != nil {
		val = de.Sprintf("%.1f", *v) + unit
	}
	fmt.Fprintf(b, `<div class="tile"><span class="tile-label">%s</span><span class="tile-value">%s</span></div>`,
		label, val)
}
