package layout

import (
	"fmt"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/images"
	"github.com/mroizo75/hmsnova-reportgen/internal/text"
)

// nextImage returns the prepared result for the next image in walk order
func (r *run) nextImage() images.Result {
	if r.next >= len(r.images) {
		return images.Result{Index: r.next, Err: images.ErrUnavailable}
	}
	res := r.images[r.next]
	r.next++
	return res
}

func imageOp(res images.Result, x, y, w, h float64) draw.Image {
	return draw.Image{
		Name:   fmt.Sprintf("img%d", res.Index),
		Data:   res.Image.Data,
		Format: res.Image.Format,
		X:      x,
		Y:      y,
		W:      w,
		H:      h,
	}
}

// image scales the picture into the content column, breaking the page first
// when it does not fit, and centres it with its caption below. Images that
// failed to prepare are left out together with their caption.
func (r *run) image(b Image) {
	res := r.nextImage()
	if res.Skipped() {
		return
	}
	th := r.mt.Theme
	cw := r.cur.ContentWidth()
	left := r.cur.Left()

	capH := r.mt.captionHeight(b.Caption)
	maxW := cw
	if b.MaxWidth > 0 && b.MaxWidth < cw {
		maxW = b.MaxWidth
	}
	maxH := b.MaxHeight
	if maxH <= 0 {
		maxH = defaultImageMax
	}
	// a caption that would squeeze the picture below half a page is dropped
	avail := r.cur.ContentHeight() - capH
	if avail < r.cur.ContentHeight()/2 {
		capH, avail = 0, r.cur.ContentHeight()
	}
	maxH = min(maxH, avail)

	w, h := images.Fit(float64(res.Image.Width), float64(res.Image.Height), maxW, maxH)
	y := r.cur.Advance(h + capH)
	r.cur.Draw(imageOp(res, left+(cw-w)/2, y, w, h))

	if b.Caption != "" && capH > 0 {
		font := th.Font("I", th.SmallSize)
		r.cur.Draw(r.centered(left, y+h+th.Padding+(r.mt.lineHeight(th.SmallSize)-th.SmallSize)/2, cw, b.Caption, font, th.Muted))
	}
}

// cover draws the identity band (logo left, company right), the title and
// the metadata rows
func (r *run) cover(b Cover) {
	th := r.mt.Theme
	cw := r.cur.ContentWidth()

	var logo *images.Result
	if b.Logo != nil {
		if res := r.nextImage(); !res.Skipped() {
			logo = &res
		}
	}

	bandH := min(r.mt.coverBandHeight(b), r.cur.ContentHeight())
	y := r.cur.Advance(bandH)
	left := r.cur.Left()
	right := left + cw

	textW := cw
	if logo != nil {
		logoH := coverLogoHeight
		if bandH-th.Padding < logoH {
			logoH = max(bandH-th.Padding, bandH/2)
		}
		w, h := images.Fit(float64(logo.Image.Width), float64(logo.Image.Height), coverLogoWidth, logoH)
		r.cur.Draw(imageOp(*logo, left, y, w, h))
		textW = cw - coverLogoWidth - th.BlockGap
	}

	// company lines that do not fit the band are left out
	nameSize := th.BodySize + 2
	ty := y
	if b.Company.Name != "" && ty+r.mt.lineHeight(nameSize) <= y+bandH {
		r.cur.Draw(r.rightAligned(right, ty+(r.mt.lineHeight(nameSize)-nameSize)/2, textW, b.Company.Name, th.Font("B", nameSize), th.Text))
	}
	ty += r.mt.lineHeight(nameSize)
	smallH := r.mt.lineHeight(th.SmallSize)
	for _, line := range []string{b.Company.OrgNumber, b.Company.Address} {
		if line == "" || ty+smallH > y+bandH {
			continue
		}
		r.cur.Draw(r.rightAligned(right, ty+(smallH-th.SmallSize)/2, textW, line, th.Font("", th.SmallSize), th.Muted))
		ty += smallH
	}
	r.cur.Draw(draw.Line{X1: left, Y1: y + bandH - 1, X2: right, Y2: y + bandH - 1, Color: th.Primary, Width: 1.5})

	titleH := r.mt.coverTitleHeight(b, cw)
	if titleH > r.cur.ContentHeight() {
		titleH = r.cur.ContentHeight()
	}
	y = r.cur.Advance(titleH)
	size := th.HeadingSize + 6
	font := th.Font("B", size)
	lineH := r.mt.lineHeight(size)
	lines := r.titleLines(b.Title, font, cw, lineH, titleH)
	r.cur.Draw(textLines(left, y+th.BlockGap, lines, font, th.Text, lineH)...)
	subSize := th.BodySize + 1
	sy := y + th.BlockGap + float64(len(lines))*lineH
	if b.Subtitle != "" && sy+r.mt.lineHeight(subSize) <= y+titleH {
		sub := []string{text.Truncate(r.mt.Measurer, th.Font("", subSize), b.Subtitle, cw)}
		r.cur.Draw(textLines(left, sy, sub, th.Font("", subSize), th.Muted, r.mt.lineHeight(subSize))...)
	}

	for _, kv := range b.Meta {
		r.keyValue(kv)
	}
}

func (r *run) titleLines(title string, font draw.Font, cw, lineH, avail float64) []string {
	th := r.mt.Theme
	lines := text.Wrap(r.mt.Measurer, font, title, cw)
	n := maxLines(avail-2*th.BlockGap-r.mt.lineHeight(th.BodySize+1), lineH)
	return r.clampLines(lines, n, font, cw)
}
