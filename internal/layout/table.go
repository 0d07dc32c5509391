package layout

import (
	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/text"
)

type tableRow struct {
	cells  [][]string
	height float64
}

type tableGeometry struct {
	widths       []float64
	header       tableRow
	headerHeight float64
	rows         []tableRow
	lineHeight   float64
}

// columnWidths splits total across cols. Positive weights are honoured
// relatively; columns without a usable weight get the mean declared weight,
// or an equal share when nothing is declared.
func columnWidths(weights []float64, cols int, total float64) []float64 {
	if cols == 0 {
		return nil
	}
	declared, n := 0.0, 0
	for i := 0; i < cols && i < len(weights); i++ {
		if weights[i] > 0 {
			declared += weights[i]
			n++
		}
	}
	fallback := 1.0
	if n > 0 {
		fallback = declared / float64(n)
	}

	w := make([]float64, cols)
	sum := 0.0
	for i := range w {
		w[i] = fallback
		if i < len(weights) && weights[i] > 0 {
			w[i] = weights[i]
		}
		sum += w[i]
	}
	for i := range w {
		w[i] = total * w[i] / sum
	}
	return w
}

func (mt Metrics) tableRow(cells []string, widths []float64, font draw.Font) tableRow {
	th := mt.Theme
	lineH := mt.lineHeight(font.Size)
	row := tableRow{cells: make([][]string, len(widths))}
	lines := 1
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		row.cells[i] = text.Wrap(mt.Measurer, font, cell, w-2*th.Padding)
		lines = max(lines, len(row.cells[i]))
	}
	row.height = float64(lines)*lineH + 2*th.Padding
	return row
}

func (mt Metrics) table(b Table, maxWidth float64) tableGeometry {
	th := mt.Theme
	cols := len(b.Headers)
	for _, r := range b.Rows {
		cols = max(cols, len(r))
	}
	g := tableGeometry{
		widths:     columnWidths(b.Weights, cols, maxWidth),
		lineHeight: mt.lineHeight(th.BodySize),
	}
	if cols == 0 {
		return g
	}
	if len(b.Headers) > 0 {
		g.header = mt.tableRow(b.Headers, g.widths, th.Font("B", th.BodySize))
		g.headerHeight = g.header.height
	}
	g.rows = make([]tableRow, len(b.Rows))
	for i, cells := range b.Rows {
		g.rows[i] = mt.tableRow(cells, g.widths, th.Font("", th.BodySize))
	}
	return g
}

// table draws the header and striped rows. Before each row that does not
// fit, the page is broken and the header redrawn; the header is never left
// without at least one row below it. Rows taller than a page are truncated.
func (r *run) table(b Table) {
	th := r.mt.Theme
	g := r.mt.table(b, r.cur.ContentWidth())
	if len(g.widths) == 0 {
		return
	}

	g.header = r.clampRow(g.header, r.cur.ContentHeight()/2, th.Font("B", th.BodySize), g)
	g.headerHeight = g.header.height
	if len(b.Headers) == 0 {
		g.headerHeight = 0
	}
	maxRow := r.cur.ContentHeight() - g.headerHeight
	for i := range g.rows {
		g.rows[i] = r.clampRow(g.rows[i], maxRow, th.Font("", th.BodySize), g)
	}

	first := 0.0
	if len(g.rows) > 0 {
		first = g.rows[0].height
	}
	if !r.cur.Fresh() && !r.cur.Fits(g.headerHeight+first) {
		r.cur.Break()
	}
	r.tableHeader(g)

	for i, row := range g.rows {
		if !r.cur.Fits(row.height) {
			r.cur.Break()
			r.tableHeader(g)
		}
		y := r.cur.Advance(row.height)
		if i%2 == 1 {
			r.cur.Draw(draw.Rect{X: r.cur.Left(), Y: y, W: r.cur.ContentWidth(), H: row.height, Fill: th.StripeFill, Style: "F"})
		}
		r.tableCells(row, y, g, th.Font("", th.BodySize), th.Text)
	}
}

func (r *run) tableHeader(g tableGeometry) {
	if g.headerHeight == 0 {
		return
	}
	th := r.mt.Theme
	y := r.cur.Advance(g.headerHeight)
	r.cur.Draw(draw.Rect{X: r.cur.Left(), Y: y, W: r.cur.ContentWidth(), H: g.headerHeight, Fill: th.HeaderFill, Style: "F"})
	r.tableCells(g.header, y, g, th.Font("B", th.BodySize), th.HeaderText)
}

func (r *run) tableCells(row tableRow, y float64, g tableGeometry, font draw.Font, color draw.Color) {
	pad := r.mt.Theme.Padding
	x := r.cur.Left()
	for i, lines := range row.cells {
		r.cur.Draw(textLines(x+pad, y+pad, lines, font, color, g.lineHeight)...)
		x += g.widths[i]
	}
}

// clampRow truncates every cell so the row is at most maxHeight tall
func (r *run) clampRow(row tableRow, maxHeight float64, font draw.Font, g tableGeometry) tableRow {
	if row.height <= maxHeight {
		return row
	}
	pad := r.mt.Theme.Padding
	n := maxLines(maxHeight-2*pad, g.lineHeight)
	lines := 1
	for i := range row.cells {
		row.cells[i] = r.clampLines(row.cells[i], n, font, g.widths[i]-2*pad)
		lines = max(lines, len(row.cells[i]))
	}
	row.height = float64(lines)*g.lineHeight + 2*pad
	return row
}
