package layout

import (
	"fmt"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/style"
	"github.com/mroizo75/hmsnova-reportgen/internal/text"
)

type itemGeometry struct {
	questionLines []string
	commentLines  []string
	lineHeight    float64
	smallHeight   float64
	height        float64
}

func (mt Metrics) groupHeadingHeight() float64 {
	th := mt.Theme
	return mt.lineHeight(th.BodySize+1) + 2*th.Padding
}

func (mt Metrics) checklistTextWidth(maxWidth float64) float64 {
	return maxWidth - badgeWidth - 3*mt.Theme.Padding
}

func (mt Metrics) checklistItem(it ChecklistItem, maxWidth float64) itemGeometry {
	th := mt.Theme
	w := mt.checklistTextWidth(maxWidth)
	g := itemGeometry{
		questionLines: text.Wrap(mt.Measurer, th.Font("", th.BodySize), it.Question, w),
		lineHeight:    mt.lineHeight(th.BodySize),
		smallHeight:   mt.lineHeight(th.SmallSize),
	}
	if it.Comment != "" {
		g.commentLines = text.Wrap(mt.Measurer, th.Font("I", th.SmallSize), it.Comment, w)
	}
	g.height = g.measure(th.Padding)
	return g
}

func (g itemGeometry) measure(pad float64) float64 {
	return float64(len(g.questionLines))*g.lineHeight + float64(len(g.commentLines))*g.smallHeight + 2*pad
}

func (r *run) statusBadge(it ChecklistItem) (string, draw.Color) {
	label, color := r.statusDefaults(it)
	if c, ok := style.ParseColor(it.Color); ok {
		color = c
	}
	return label, color
}

func (r *run) statusDefaults(it ChecklistItem) (string, draw.Color) {
	th := r.mt.Theme
	switch it.Status {
	case StatusOK:
		return firstNonEmpty(it.Label, r.labels.StatusOK), th.StatusOK
	case StatusDeviation:
		return firstNonEmpty(it.Label, r.labels.StatusDeviation), th.StatusIssue
	case StatusNA:
		return firstNonEmpty(it.Label, r.labels.StatusNA), th.StatusNA
	default:
		return it.Label, th.Muted
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// checklist draws each group as a category heading followed by its items.
// Items are atomic; a heading always has its first item on the same page.
func (r *run) checklist(b Checklist) {
	th := r.mt.Theme
	cw := r.cur.ContentWidth()

	drawn := 0
	for _, group := range b.Groups {
		if len(group.Items) == 0 {
			continue
		}
		if drawn > 0 {
			r.cur.Gap(th.Padding)
		}
		drawn++

		items := make([]itemGeometry, len(group.Items))
		for i, it := range group.Items {
			items[i] = r.clampItem(r.mt.checklistItem(it, cw), cw)
		}

		headH := r.mt.groupHeadingHeight()
		if !r.cur.Fresh() && !r.cur.Fits(headH+items[0].height) {
			r.cur.Break()
		}
		r.groupHeading(group, headH)

		for i, it := range group.Items {
			r.checklistRow(it, items[i], i)
		}
	}
}

func (r *run) groupHeading(group ChecklistGroup, h float64) {
	th := r.mt.Theme
	size := th.BodySize + 1
	font := th.Font("B", size)
	cw := r.cur.ContentWidth()

	y := r.cur.Advance(h)
	left := r.cur.Left()
	title := text.Truncate(r.mt.Measurer, font, fmt.Sprintf("%s (%d)", group.Category, len(group.Items)), cw)
	r.cur.Draw(textLines(left, y+th.Padding, []string{title}, font, th.Primary, r.mt.lineHeight(size))...)
	r.cur.Draw(draw.Line{X1: left, Y1: y + h - 1, X2: left + cw, Y2: y + h - 1, Color: th.Rule, Width: 0.75})
}

func (r *run) checklistRow(it ChecklistItem, g itemGeometry, i int) {
	th := r.mt.Theme
	cw := r.cur.ContentWidth()

	y := r.cur.Advance(g.height)
	left := r.cur.Left()
	if i%2 == 1 {
		r.cur.Draw(draw.Rect{X: left, Y: y, W: cw, H: g.height, Fill: th.StripeFill, Style: "F"})
	}

	r.cur.Draw(textLines(left+th.Padding, y+th.Padding, g.questionLines, th.Font("", th.BodySize), th.Text, g.lineHeight)...)
	commentY := y + th.Padding + float64(len(g.questionLines))*g.lineHeight
	r.cur.Draw(textLines(left+th.Padding, commentY, g.commentLines, th.Font("I", th.SmallSize), th.Muted, g.smallHeight)...)

	if label, color := r.statusBadge(it); label != "" {
		bx := left + cw - badgeWidth - th.Padding
		r.cur.Draw(draw.Rect{X: bx, Y: y + th.Padding, W: badgeWidth, H: g.lineHeight, Fill: color, Style: "F"})
		badgeFont := th.Font("B", th.SmallSize)
		r.cur.Draw(r.centered(bx, y+th.Padding+(g.lineHeight-th.SmallSize)/2, badgeWidth-2, label, badgeFont, th.HeaderText))
	}
}

// clampItem trims an item taller than a page with room for its heading
func (r *run) clampItem(g itemGeometry, cw float64) itemGeometry {
	th := r.mt.Theme
	limit := r.cur.ContentHeight() - r.mt.groupHeadingHeight()
	if g.height <= limit {
		return g
	}
	w := r.mt.checklistTextWidth(cw)
	avail := limit - 2*th.Padding
	g.questionLines = r.clampLines(g.questionLines, maxLines(avail, g.lineHeight), th.Font("", th.BodySize), w)
	avail -= float64(len(g.questionLines)) * g.lineHeight
	if avail < g.smallHeight {
		g.commentLines = nil
	} else {
		g.commentLines = r.clampLines(g.commentLines, maxLines(avail, g.smallHeight), th.Font("I", th.SmallSize), w)
	}
	g.height = g.measure(th.Padding)
	return g
}
