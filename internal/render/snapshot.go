package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/globalite/go-macrobrief/internal/sheet"
)

// Snapshot renders the at-time-of-writing section: an ownership donut
// and proportional bar with legend, a circulating-supply progress card,
// and a network-hashrate progress card.
//
// When the circulating figure is unset or non-positive it is derived as
// max supply minus the "to be mined" segment amounts, floored at zero.
// Progress widths clamp to [0, 100]; donut arcs are laid consecutively
// around the circle with accumulating negative offsets.
func Snapshot(meta map[string]string, distribution []sheet.Segment) string {
	title := strings.TrimSpace(meta["snapshot_title"])
	if title == "" {
		title = "At The Time Of Writing"
	}
	intro := strings.TrimSpace(meta["snapshot_intro"])
	note := strings.TrimSpace(meta["snapshot_note"])

	maxSupply := sheet.ParseNumber(meta["max_supply_btc"], sheet.DefaultMaxSupply)
	if maxSupply <= 0 {
		maxSupply = sheet.DefaultMaxSupply
	}
	circulating := sheet.ParseNumber(meta["circulating_supply_btc"], 0)
	if circulating <= 0 {
		toBeMined := 0.0
		for _, seg := range distribution {
			if strings.ToLower(strings.TrimSpace(seg.Category)) == "to be mined" {
				toBeMined += seg.AmountBTC
			}
		}
		circulating = math.Max(0, maxSupply-toBeMined)
	}
	circulationPct := circulating / maxSupply * 100

	hashrate := sheet.ParseNumber(meta["hashrate_eh_s"], 0)
	scale := sheet.ParseNumber(meta["hashrate_scale_eh_s"], 1000)
	if scale <= 0 {
		scale = 1000
	}
	hashratePct := hashrate / scale * 100

	var bars []string
	for _, seg := range distribution {
		bars = append(bars, fmt.Sprintf(
			`                    <div class="snapshot-bar-segment" style="width:%.6f%%;background:%s;" title="%s: %s (%s)"></div>`,
			math.Max(0, seg.Percent), EscapeAttr(seg.Color), EscapeAttr(seg.Category),
			EscapeAttr(FormatBTCCompact(seg.AmountBTC)), EscapeAttr(FormatPercent(seg.Percent))))
	}

	circumference := 2 * math.Pi * 45
	consumed := 0.0
	var arcs []string
	for _, seg := range distribution {
		arc := circumference * (math.Max(0, seg.Percent) / 100)
		arcs = append(arcs, fmt.Sprintf(
			`                      <circle class="snapshot-donut-segment" cx="60" cy="60" r="45" stroke="%s" stroke-dasharray="%.6f %.6f" stroke-dashoffset="%.6f"><title>%s: %s (%s)</title></circle>`,
			EscapeAttr(seg.Color), arc, circumference, -consumed,
			EscapeText(seg.Category), EscapeText(FormatBTCCompact(seg.AmountBTC)),
			EscapeText(FormatPercent(seg.Percent))))
		consumed += arc
	}

	var legend []string
	for _, seg := range distribution {
		legend = append(legend, fmt.Sprintf(
			`                    <div class="snapshot-legend-item"><span class="snapshot-dot" style="background:%s"></span><span class="snapshot-name">%s</span><span class="snapshot-value">%s (%s)</span></div>`,
			EscapeAttr(seg.Color), EscapeText(seg.Category),
			EscapeText(FormatBTCCompact(seg.AmountBTC)), EscapeText(FormatPercent(seg.Percent))))
	}

	return fmt.Sprintf(snapshotShell,
		EscapeText(title),
		EscapeText(intro),
		strings.Join(arcs, "\n"),
		EscapeText(FormatInteger(maxSupply)),
		strings.Join(bars, "\n"),
		strings.Join(legend, "\n"),
		EscapeText(FormatInteger(circulating)),
		math.Max(0, math.Min(100, circulationPct)),
		EscapeText(FormatPercent(circulationPct)),
		EscapeText(FormatInteger(maxSupply)),
		EscapeText(FormatInteger(hashrate)),
		math.Max(0, math.Min(100, hashratePct)),
		EscapeText(FormatPercent(hashratePct)),
		EscapeText(FormatInteger(scale)),
		EscapeText(note))
}

const snapshotShell = `
            <tr>
              <td class="section snapshot">
                <h2>%s</h2>
                <p class="snapshot-intro">%s</p>
                <div class="snapshot-grid">
                  <div class="snapshot-card">
                    <h3>Ownership Distribution</h3>
                    <div class="snapshot-ownership-viz">
                      <svg class="snapshot-donut" viewBox="0 0 120 120" aria-label="Ownership distribution donut chart">
                        <circle cx="60" cy="60" r="45" fill="none" stroke="#ececec" stroke-width="24"></circle>
%s
                        <circle cx="60" cy="60" r="30" fill="#ffffff"></circle>
                        <text x="60" y="56" text-anchor="middle" class="snapshot-donut-label">Supply</text>
                        <text x="60" y="72" text-anchor="middle" class="snapshot-donut-value">%s</text>
                      </svg>
                    </div>
                    <div class="snapshot-bar">
%s
                    </div>
                    <div class="snapshot-legend">
%s
                    </div>
                  </div>
                  <div class="snapshot-card">
                    <h3>Bitcoin In Circulation At Write Time</h3>
                    <p class="snapshot-circ-value">%s BTC</p>
                    <div class="snapshot-progress-track">
                      <div class="snapshot-progress-fill" style="width:%.6f%%;"></div>
                    </div>
                    <p class="snapshot-circ-note">%s of %s BTC max supply</p>
                  </div>
                  <div class="snapshot-card">
                    <h3>Network Hashrate (Daily)</h3>
                    <p class="snapshot-circ-value">%s EH/s</p>
                    <div class="snapshot-progress-track">
                      <div class="snapshot-progress-fill" style="width:%.6f%%;"></div>
                    </div>
                    <p class="snapshot-circ-note">%s of %s EH/s reference scale</p>
                  </div>
                </div>
                <p class="snapshot-footnote">%s</p>
              </td>
            </tr>
`
