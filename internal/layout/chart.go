package layout

import (
	"fmt"
	"strconv"

	"github.com/mroizo75/hmsnova-reportgen/internal/chart"
	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/text"
)

// pieChart draws the wedges on the left and a legend on the right, with a
// total caption below. Only wedges are filled; there is no background disc.
// On a short page the chart is shrunk to the content height.
func (r *run) pieChart(b PieChart) {
	g := r.mt.pie(b)
	if g.sectors == nil {
		r.log.Debug().Str("title", b.Title).Msg("omitting pie chart with zero total")
		return
	}
	th := r.mt.Theme
	cw := r.cur.ContentWidth()
	g = g.fit(r.cur.ContentHeight())

	y := r.cur.Advance(g.height)
	left := r.cur.Left()

	if b.Title != "" && g.titleHeight > 0 {
		size := th.BodySize + 2
		font := th.Font("B", size)
		title := text.Truncate(r.mt.Measurer, font, b.Title, cw)
		r.cur.Draw(textLines(left, y, []string{title}, font, th.Text, r.mt.lineHeight(size))...)
	}

	bodyY := y + g.titleHeight
	cx, cy := left+g.radius, bodyY+g.bodyHeight/2
	for _, s := range g.sectors {
		if s.Sweep <= 0 {
			continue
		}
		r.cur.Draw(draw.Polygon{Points: chart.Wedge(cx, cy, g.radius, s.Start, s.Sweep), Fill: s.Color})
	}

	font := th.Font("", th.SmallSize)
	if g.legendRows > 0 {
		lx := left + 2*g.radius + 3*th.BlockGap
		lw := cw - (lx - left) - swatchSize - th.BlockGap
		ly := bodyY + (g.bodyHeight-float64(g.legendRows)*g.legendLineH)/2
		shown := g.sectors
		if g.hidden > 0 {
			shown = g.sectors[:g.legendRows-1]
		}
		for i, s := range shown {
			rowY := ly + float64(i)*g.legendLineH
			r.cur.Draw(draw.Rect{X: lx, Y: rowY + (g.legendLineH-swatchSize)/2, W: swatchSize, H: swatchSize, Fill: s.Color, Style: "F"})
			label := fmt.Sprintf("%s: %s (%.1f%%)", s.Label, formatCount(s.Count), s.Percent)
			label = text.Truncate(r.mt.Measurer, font, label, lw)
			r.cur.Draw(textLines(lx+swatchSize+th.BlockGap/2, rowY, []string{label}, font, th.Text, g.legendLineH)...)
		}
		if g.hidden > 0 {
			rowY := ly + float64(len(shown))*g.legendLineH
			r.cur.Draw(textLines(lx+swatchSize+th.BlockGap/2, rowY, []string{fmt.Sprintf("+%d", g.hidden)}, font, th.Muted, g.legendLineH)...)
		}
	}

	if g.captionH > 0 {
		total := fmt.Sprintf("%s: %s", r.labels.ChartTotal, formatCount(chart.Total(sectorSlices(g.sectors))))
		capY := bodyY + g.bodyHeight + th.Padding
		r.cur.Draw(textLines(left, capY, []string{total}, font, th.Muted, r.mt.lineHeight(th.SmallSize))...)
	}
}

func sectorSlices(sectors []chart.Sector) []chart.Slice {
	out := make([]chart.Slice, len(sectors))
	for i, s := range sectors {
		out[i] = s.Slice
	}
	return out
}

// formatCount prints whole counts without decimals
func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
