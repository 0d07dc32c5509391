package layout

import (
	"strings"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/text"
)

func (r *run) sectionTitle(title string) {
	th := r.mt.Theme
	size := th.HeadingSize - 2
	font := th.Font("B", size)
	lineH := r.mt.lineHeight(size)
	cw := r.cur.ContentWidth()

	lines := text.Wrap(r.mt.Measurer, font, title, cw)
	lines = r.clampLines(lines, 2, font, cw)
	h := float64(len(lines))*lineH + th.Padding

	r.keepWithNext(h)
	y := r.cur.Advance(h)
	left := r.cur.Left()
	r.cur.Draw(textLines(left, y, lines, font, th.Primary, lineH)...)
	r.cur.Draw(draw.Line{X1: left, Y1: y + h - 1, X2: left + cw, Y2: y + h - 1, Color: th.Primary, Width: 1})
	r.cur.Gap(th.Padding)
}

func (r *run) heading(b Heading) {
	th := r.mt.Theme
	size := r.mt.headingSize(b.Size)
	font := th.Font("B", size)
	lineH := r.mt.lineHeight(size)
	cw := r.cur.ContentWidth()

	lines := text.Wrap(r.mt.Measurer, font, b.Text, cw)
	lines = r.clampLines(lines, maxLines(r.cur.ContentHeight(), lineH), font, cw)
	h := float64(len(lines)) * lineH

	r.keepWithNext(h)
	y := r.cur.Advance(h)
	r.cur.Draw(textLines(r.cur.Left(), y, lines, font, th.Text, lineH)...)
}

// paragraph advances line by line so long text flows across pages
func (r *run) paragraph(b Paragraph) {
	th := r.mt.Theme
	font := th.Font("", th.BodySize)
	lineH := r.mt.lineHeight(th.BodySize)

	for _, line := range text.Wrap(r.mt.Measurer, font, b.plainText(), r.cur.ContentWidth()) {
		y := r.cur.Advance(lineH)
		r.cur.Draw(textLines(r.cur.Left(), y, []string{line}, font, th.Text, lineH)...)
	}
}

func (r *run) keyValue(b KeyValue) {
	th := r.mt.Theme
	cw := r.cur.ContentWidth()
	g := r.mt.keyValue(b, cw)

	if g.height > r.cur.ContentHeight() {
		n := maxLines(r.cur.ContentHeight()-2*th.Padding, g.lineHeight)
		g.labelLines = r.clampLines(g.labelLines, n, th.Font("B", th.BodySize), g.labelCol-2*th.Padding)
		g.valueLines = r.clampLines(g.valueLines, n, th.Font("", th.BodySize), cw-g.labelCol-th.Padding)
		g.height = float64(max(len(g.labelLines), len(g.valueLines)))*g.lineHeight + 2*th.Padding
	}

	y := r.cur.Advance(g.height)
	left := r.cur.Left()
	r.cur.Draw(draw.Rect{X: left, Y: y, W: cw, H: g.height - 1, Fill: th.ShadeFill, Style: "F"})
	r.cur.Draw(textLines(left+th.Padding, y+th.Padding, g.labelLines, th.Font("B", th.BodySize), th.Text, g.lineHeight)...)
	r.cur.Draw(textLines(left+g.labelCol, y+th.Padding, g.valueLines, th.Font("", th.BodySize), th.Text, g.lineHeight)...)
}

func (r *run) signature(b Signature) {
	th := r.mt.Theme
	h := r.mt.signatureHeight()
	y := r.cur.Advance(h)
	left := r.cur.Left()
	length := min(signatureLength, r.cur.ContentWidth())

	lineY := y + signatureSpace
	r.cur.Draw(draw.Line{X1: left, Y1: lineY, X2: left + length, Y2: lineY, Color: th.Text, Width: 0.75})

	bodyH := r.mt.lineHeight(th.BodySize)
	labelFont := th.Font("B", th.BodySize)
	label := text.Truncate(r.mt.Measurer, labelFont, b.Label, length)
	r.cur.Draw(textLines(left, lineY+th.Padding, []string{label}, labelFont, th.Text, bodyH)...)

	var parts []string
	for _, p := range []string{b.Name, b.Date} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		smallFont := th.Font("", th.SmallSize)
		detail := text.Truncate(r.mt.Measurer, smallFont, strings.Join(parts, " · "), length)
		r.cur.Draw(textLines(left, lineY+th.Padding+bodyH, []string{detail}, smallFont, th.Muted, r.mt.lineHeight(th.SmallSize))...)
	}
}

// stats draws figure cards, at most statsPerRow per row
func (r *run) stats(b Stats) {
	th := r.mt.Theme
	rows := statRows(b.Items)
	if len(rows) == 0 {
		return
	}
	perRow := len(rows[0])
	cw := r.cur.ContentWidth()
	cardW := (cw - th.BlockGap*float64(perRow-1)) / float64(perRow)
	valueSize := th.HeadingSize + 2
	valueFont := th.Font("B", valueSize)
	labelFont := th.Font("", th.SmallSize)
	inner := cardW - 4*th.Padding

	for i, row := range rows {
		if i > 0 {
			r.cur.Gap(th.BlockGap)
		}
		y := r.cur.Advance(statCardHeight)
		for j, st := range row {
			x := r.cur.Left() + float64(j)*(cardW+th.BlockGap)
			r.cur.Draw(draw.Rect{X: x, Y: y, W: cardW, H: statCardHeight, Fill: th.ShadeFill, Stroke: th.Rule, LineWidth: 0.5, Style: "FD"})

			value := text.Truncate(r.mt.Measurer, valueFont, st.Value, inner)
			valueH := r.mt.lineHeight(valueSize)
			r.cur.Draw(textLines(x+2*th.Padding, y+2*th.Padding, []string{value}, valueFont, th.Primary, valueH)...)

			label := text.Truncate(r.mt.Measurer, labelFont, st.Label, inner)
			r.cur.Draw(textLines(x+2*th.Padding, y+2*th.Padding+valueH, []string{label}, labelFont, th.Muted, r.mt.lineHeight(th.SmallSize))...)
		}
	}
}
