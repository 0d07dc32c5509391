package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/pagination"
	"github.com/mroizo75/hmsnova-reportgen/internal/text"
)

// ErrEmptyPlan is returned when asked to render a plan without pages
var ErrEmptyPlan = errors.New("plan has no pages")

// Renderer replays page plans into a PDF document
type Renderer struct {
	// Compress enables stream compression in the output
	Compress bool
	// DebugDrawBounds outlines the content area of every page
	DebugDrawBounds bool
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title        string
	Author       string
	Subject      string
	Keywords     string
	Creator      string
	Producer     string
	CreationDate time.Time
}

// NewRenderer creates a new PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{Compress: true}
}

// Render draws every page of the plan, followed by its footer stamps, and
// returns the serialized document.
func (r *Renderer) Render(ctx context.Context, plan *pagination.Plan, options RenderOptions) ([]byte, error) {
	if plan == nil || len(plan.Pages) == 0 {
		return nil, ErrEmptyPlan
	}
	log := zerolog.Ctx(ctx)

	size := fpdf.SizeType{Wd: plan.Size.Width, Ht: plan.Size.Height}
	doc := fpdf.NewCustom(&fpdf.InitType{OrientationStr: "P", UnitStr: "pt", Size: size})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(plan.Margins.Left, plan.Margins.Top, plan.Margins.Right)
	doc.SetCompression(r.Compress)
	doc.SetCatalogSort(true)
	doc.SetTitle(options.Title, true)
	doc.SetAuthor(options.Author, true)
	doc.SetSubject(options.Subject, true)
	doc.SetKeywords(options.Keywords, true)
	doc.SetCreator(options.Creator, true)
	doc.SetProducer(options.Producer, true)
	if !options.CreationDate.IsZero() {
		doc.SetCreationDate(options.CreationDate)
		doc.SetModificationDate(options.CreationDate)
	}

	p := &painter{doc: doc, registered: make(map[string]bool)}
	for i, page := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w, h := page.Width, page.Height
		if w <= 0 || h <= 0 {
			w, h = plan.Size.Width, plan.Size.Height
		}
		doc.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		for _, op := range page.Ops {
			p.paint(op)
		}
		if i < len(plan.Footers) {
			for _, op := range plan.Footers[i].Ops {
				p.paint(op)
			}
		}
		if r.DebugDrawBounds {
			doc.SetDrawColor(200, 0, 0)
			doc.SetLineWidth(0.5)
			doc.Rect(plan.Margins.Left, plan.Margins.Top,
				w-plan.Margins.Left-plan.Margins.Right,
				h-plan.Margins.Top-plan.Margins.Bottom, "D")
		}
		if doc.Err() {
			return nil, fmt.Errorf("page %d: %w", i+1, doc.Error())
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	log.Debug().Int("pages", len(plan.Pages)).Int("images", len(p.registered)).Int("bytes", buf.Len()).Msg("rendered PDF")
	return buf.Bytes(), nil
}

// WriteFile writes a rendered document, creating its directory if needed
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// painter issues fpdf calls for draw operations on the current page
type painter struct {
	doc        *fpdf.Fpdf
	registered map[string]bool
}

func (p *painter) paint(op draw.Op) {
	switch o := op.(type) {
	case draw.Text:
		p.text(o)
	case draw.Rect:
		p.rect(o)
	case draw.Line:
		p.doc.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
		p.doc.SetLineWidth(lineWidth(o.Width))
		p.doc.Line(o.X1, o.Y1, o.X2, o.Y2)
	case draw.Polygon:
		points := make([]fpdf.PointType, len(o.Points))
		for i, pt := range o.Points {
			points[i] = fpdf.PointType{X: pt.X, Y: pt.Y}
		}
		p.doc.SetFillColor(o.Fill.R, o.Fill.G, o.Fill.B)
		p.doc.Polygon(points, "F")
	case draw.Image:
		p.image(o)
	}
}

// text places the baseline below the top of the line box
func (p *painter) text(t draw.Text) {
	if t.Text == "" {
		return
	}
	p.doc.SetFont(text.ResolveFamily(t.Font.Family), t.Font.Style, t.Font.Size)
	p.doc.SetTextColor(t.Color.R, t.Color.G, t.Color.B)
	p.doc.Text(t.X, t.Y+t.Font.Size*draw.AscentRatio, text.Encode(t.Text))
}

func (p *painter) rect(r draw.Rect) {
	style := r.Style
	if style == "" {
		style = "F"
	}
	p.doc.SetFillColor(r.Fill.R, r.Fill.G, r.Fill.B)
	p.doc.SetDrawColor(r.Stroke.R, r.Stroke.G, r.Stroke.B)
	p.doc.SetLineWidth(lineWidth(r.LineWidth))
	p.doc.Rect(r.X, r.Y, r.W, r.H, style)
}

// image registers the image data once per name and draws it
func (p *painter) image(img draw.Image) {
	opts := fpdf.ImageOptions{ImageType: img.Format, AllowNegativePosition: true}
	if !p.registered[img.Name] {
		p.doc.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
		p.registered[img.Name] = true
	}
	p.doc.ImageOptions(img.Name, img.X, img.Y, img.W, img.H, false, opts, 0, "")
}

func lineWidth(w float64) float64 {
	if w <= 0 {
		return 0.5
	}
	return w
}
