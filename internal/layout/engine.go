package layout

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/images"
	"github.com/mroizo75/hmsnova-reportgen/internal/pagination"
	"github.com/mroizo75/hmsnova-reportgen/internal/style"
	"github.com/mroizo75/hmsnova-reportgen/internal/text"
)

// ErrNilRequest is returned by Layout when given no request
var ErrNilRequest = errors.New("nil report request")

// Labels are the fixed strings drawn by blocks
type Labels struct {
	ChartTotal      string
	StatusOK        string
	StatusDeviation string
	StatusNA        string
}

// DefaultLabels returns English block labels
func DefaultLabels() Labels {
	return Labels{
		ChartTotal:      "Total",
		StatusOK:        "OK",
		StatusDeviation: "Deviation",
		StatusNA:        "N/A",
	}
}

// Options represents options for the layout engine
type Options struct {
	Page             pagination.Options
	Theme            style.Theme
	Labels           Labels
	Fetcher          images.Fetcher
	ImageTimeout     time.Duration
	ImageConcurrency int
}

// DefaultOptions returns A4 pages, the default theme and English labels
func DefaultOptions() Options {
	return Options{
		Page:             pagination.DefaultOptions(),
		Theme:            style.DefaultTheme(),
		Labels:           DefaultLabels(),
		ImageTimeout:     images.DefaultTimeout,
		ImageConcurrency: 4,
	}
}

// Engine flows report blocks onto pages
type Engine struct {
	options  Options
	measurer text.Measurer
	pages    *pagination.Engine
}

// NewEngine creates a new layout engine measuring with core PDF font metrics
func NewEngine() *Engine {
	e := &Engine{measurer: text.PDFMeasurer(), pages: pagination.NewEngine()}
	e.SetOptions(DefaultOptions())
	return e
}

// SetOptions sets the options for the layout engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
	e.pages.SetOptions(options.Page)
}

// Options returns the current options
func (e *Engine) Options() Options {
	return e.options
}

// SetMeasurer replaces the text measurer
func (e *Engine) SetMeasurer(m text.Measurer) {
	if m != nil {
		e.measurer = m
	}
}

// Metrics returns the measurer and theme used for height estimation
func (e *Engine) Metrics() Metrics {
	return Metrics{Measurer: e.measurer, Theme: e.options.Theme}
}

// Layout prepares the request's images and places every block. The returned
// plan has no footers yet. Layout is safe to call concurrently; each call
// owns its own pages.
func (e *Engine) Layout(ctx context.Context, req *Request) (*pagination.Plan, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := zerolog.Ctx(ctx)
	cur, err := e.pages.Begin()
	if err != nil {
		return nil, err
	}

	tasks := collectImages(req)
	results := images.Prepare(ctx, e.options.Fetcher, tasks, images.PrepareOptions{
		Timeout:     e.options.ImageTimeout,
		Concurrency: e.options.ImageConcurrency,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := &run{
		mt:     e.Metrics(),
		labels: e.options.Labels,
		cur:    cur,
		images: results,
		log:    log,
	}
	for i, s := range req.Sections {
		r.section(i, s)
	}

	plan := r.cur.Finish()
	log.Debug().Int("pages", plan.PageCount()).Int("images", len(tasks)).Msg("layout complete")
	return plan, nil
}

// collectImages lists image tasks in the order run.place consumes them
func collectImages(req *Request) []images.Task {
	var tasks []images.Task
	add := func(img *Image) {
		tasks = append(tasks, images.Task{Ref: img.Ref, Data: img.Data})
	}
	for _, s := range req.Sections {
		for _, b := range s.Blocks {
			switch v := b.(type) {
			case Cover:
				if v.Logo != nil {
					add(v.Logo)
				}
			case Image:
				add(&v)
			}
		}
	}
	return tasks
}

// run is the state of one Layout call
type run struct {
	mt     Metrics
	labels Labels
	cur    *pagination.Cursor
	images []images.Result
	next   int
	log    *zerolog.Logger
}

func (r *run) section(i int, s Section) {
	if len(s.Blocks) == 0 {
		return
	}
	if i > 0 {
		r.cur.Gap(r.mt.Theme.BlockGap)
	}
	if s.Title != "" {
		r.sectionTitle(s.Title)
	}
	for _, b := range s.Blocks {
		r.place(b)
	}
}

// place draws one block at the cursor
func (r *run) place(b Block) {
	gap := r.mt.Theme.BlockGap
	switch v := b.(type) {
	case Heading:
		r.heading(v)
	case KeyValue:
		r.keyValue(v)
		gap = 0
	case Paragraph:
		r.paragraph(v)
	case Table:
		r.table(v)
	case Image:
		r.image(v)
	case PieChart:
		r.pieChart(v)
	case Signature:
		r.signature(v)
	case Checklist:
		r.checklist(v)
	case Stats:
		r.stats(v)
	case Cover:
		r.cover(v)
	case Spacer:
		r.cur.Gap(v.Height)
		gap = 0
	case PageBreak:
		if !r.cur.Fresh() {
			r.cur.Break()
		}
		gap = 0
	default:
		r.log.Warn().Type("block", b).Msg("skipping unknown block type")
		return
	}
	r.cur.Gap(gap)
}

// keepWithNext breaks the page unless h plus a couple of body lines fit, so
// titles are not left alone at the bottom of a page
func (r *run) keepWithNext(h float64) {
	follow := 2 * r.mt.lineHeight(r.mt.Theme.BodySize)
	if !r.cur.Fresh() && !r.cur.Fits(h+follow) {
		r.cur.Break()
	}
}

// maxLines is how many lines of height lineH fit in avail, at least one
func maxLines(avail, lineH float64) int {
	if lineH <= 0 {
		return 1
	}
	return max(1, int(math.Floor((avail+1e-6)/lineH)))
}

// clampLines keeps at most n lines and ends the last kept one with an ellipsis
func (r *run) clampLines(lines []string, n int, font draw.Font, width float64) []string {
	if len(lines) <= n {
		return lines
	}
	out := append([]string(nil), lines[:n]...)
	out[n-1] = text.Truncate(r.mt.Measurer, font, out[n-1]+text.Ellipsis, width)
	return out
}

// textLines lays out lines top-down from y, each vertically centred in its
// line box
func textLines(x, y float64, lines []string, font draw.Font, color draw.Color, lineH float64) []draw.Op {
	ops := make([]draw.Op, 0, len(lines))
	for i, l := range lines {
		if l == "" {
			continue
		}
		ops = append(ops, draw.Text{
			X:     x,
			Y:     y + float64(i)*lineH + (lineH-font.Size)/2,
			Text:  l,
			Font:  font,
			Color: color,
		})
	}
	return ops
}

// centered returns a text op centred in [x, x+width], truncated to fit
func (r *run) centered(x, y, width float64, s string, font draw.Font, color draw.Color) draw.Text {
	s = text.Truncate(r.mt.Measurer, font, s, width)
	w := r.mt.Measurer.Width(font, s)
	return draw.Text{X: x + (width-w)/2, Y: y, Text: s, Font: font, Color: color}
}

// rightAligned returns a text op ending at right, truncated to width
func (r *run) rightAligned(right, y, width float64, s string, font draw.Font, color draw.Color) draw.Text {
	s = text.Truncate(r.mt.Measurer, font, s, width)
	return draw.Text{X: right - r.mt.Measurer.Width(font, s), Y: y, Text: s, Font: font, Color: color}
}
