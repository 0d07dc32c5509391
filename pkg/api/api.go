package api

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/mroizo75/hmsnova-reportgen/internal/layout"
	"github.com/mroizo75/hmsnova-reportgen/internal/pagination"
	"github.com/mroizo75/hmsnova-reportgen/internal/render/pdf"
	"github.com/mroizo75/hmsnova-reportgen/internal/report"
)

var (
	// ErrInputIncomplete is returned when a request lacks what every report
	// needs. No page is produced.
	ErrInputIncomplete = errors.New("report input incomplete")
	// ErrSerializationFailure wraps a backend failure while producing bytes
	ErrSerializationFailure = errors.New("report serialization failed")
)

// MimeTypePDF is the mime type of generated documents
const MimeTypePDF = "application/pdf"

// Backend turns a finished page plan into document bytes
type Backend interface {
	Render(ctx context.Context, plan *pagination.Plan, options pdf.RenderOptions) ([]byte, error)
}

// Document is a generated report
type Document struct {
	Data     []byte
	MimeType string
	Filename string
	Pages    int
}

// WriteFile saves the document, creating its directory if needed
func (d *Document) WriteFile(path string) error {
	return pdf.WriteFile(path, d.Data)
}

// Phase is the stage of one generation
type Phase int

const (
	PhaseComposing Phase = iota
	PhaseFinalizing
	PhaseSerialized
)

func (p Phase) String() string {
	switch p {
	case PhaseComposing:
		return "composing"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseSerialized:
		return "serialized"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Generator is the main API for producing HMS reports
type Generator struct {
	options Options
	layout  *layout.Engine
}

// New creates a generator with default options and the given overrides
func New(opts ...Option) *Generator {
	options := DefaultOptions()
	for _, o := range opts {
		o(&options)
	}
	return NewWithOptions(options)
}

// NewWithOptions creates a generator with the specified options
func NewWithOptions(options Options) *Generator {
	g := &Generator{options: options, layout: layout.NewEngine()}
	g.layout.SetOptions(g.layoutOptions())
	return g
}

// Options returns the generator's options
func (g *Generator) Options() Options {
	return g.options
}

// WithOption returns a new generator with the specified option set
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// pageSize applies the orientation to the configured dimensions
func (g *Generator) pageSize() (float64, float64) {
	w, h := g.options.PageWidth, g.options.PageHeight
	switch g.options.PageOrientation {
	case PageOrientationLandscape:
		if w < h {
			w, h = h, w
		}
	default:
		if w > h {
			w, h = h, w
		}
	}
	return w, h
}

func (g *Generator) layoutOptions() layout.Options {
	w, h := g.pageSize()
	opts := layout.DefaultOptions()
	opts.Page = pagination.Options{
		PageWidth:    w,
		PageHeight:   h,
		MarginTop:    g.options.MarginTop,
		MarginRight:  g.options.MarginRight,
		MarginBottom: g.options.MarginBottom,
		MarginLeft:   g.options.MarginLeft,
	}
	opts.Theme = g.options.Theme
	opts.Labels = g.options.Labels.Blocks
	opts.Fetcher = g.options.Fetcher
	if g.options.ImageTimeout > 0 {
		opts.ImageTimeout = g.options.ImageTimeout
	}
	if g.options.ImageConcurrency > 0 {
		opts.ImageConcurrency = g.options.ImageConcurrency
	}
	return opts
}

func (g *Generator) composer() *report.Composer {
	return report.NewComposer(g.options.Labels.Report, g.options.Theme)
}

// GenerateSafetyRound composes and generates a safety round report
func (g *Generator) GenerateSafetyRound(ctx context.Context, round *SafetyRound) (*Document, error) {
	req, err := g.composer().SafetyRound(round)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputIncomplete, err)
	}
	return g.Generate(ctx, req)
}

// GenerateJobSafetyAnalysis composes and generates an SJA report
func (g *Generator) GenerateJobSafetyAnalysis(ctx context.Context, sja *JobSafetyAnalysis) (*Document, error) {
	req, err := g.composer().JobSafetyAnalysis(sja)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputIncomplete, err)
	}
	return g.Generate(ctx, req)
}

// Generate lays out the request, stamps footers once the page count is known
// and serializes the result. Either a complete document or an error is
// returned, never both.
func (g *Generator) Generate(ctx context.Context, req *ReportRequest) (*Document, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	ctx = g.withLogger(ctx)
	gen := &generation{g: g, req: req, log: zerolog.Ctx(ctx), now: g.now()}
	return gen.run(ctx)
}

// Validate reports ErrInputIncomplete for requests no report can be made of
func Validate(req *ReportRequest) error {
	switch {
	case req == nil:
		return fmt.Errorf("%w: no request", ErrInputIncomplete)
	case strings.TrimSpace(req.Title) == "":
		return fmt.Errorf("%w: no title", ErrInputIncomplete)
	case len(req.Sections) == 0:
		return fmt.Errorf("%w: no sections", ErrInputIncomplete)
	case req.BlockCount() == 0:
		return fmt.Errorf("%w: no content blocks", ErrInputIncomplete)
	}
	return nil
}

func (g *Generator) withLogger(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if zerolog.Ctx(ctx).GetLevel() != zerolog.Disabled {
		if g.options.Debug {
			return zerolog.Ctx(ctx).Level(zerolog.DebugLevel).WithContext(ctx)
		}
		return ctx
	}
	switch {
	case g.options.Logger != nil:
		l := *g.options.Logger
		if g.options.Debug {
			l = l.Level(zerolog.DebugLevel)
		}
		return l.WithContext(ctx)
	case g.options.Debug:
		l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		return l.WithContext(ctx)
	}
	return ctx
}

func (g *Generator) backend() Backend {
	if g.options.Backend != nil {
		return g.options.Backend
	}
	r := pdf.NewRenderer()
	r.DebugDrawBounds = g.options.Debug
	return r
}

// generation is the state of one Generate call. It only moves forward
// through the phases.
type generation struct {
	g     *Generator
	req   *ReportRequest
	log   *zerolog.Logger
	now   time.Time
	phase Phase
}

func (gen *generation) enter(next Phase) error {
	if next != gen.phase+1 {
		return fmt.Errorf("report generation cannot move from %s to %s", gen.phase, next)
	}
	gen.phase = next
	gen.log.Debug().Stringer("phase", next).Msg("report phase")
	return nil
}

func (gen *generation) run(ctx context.Context) (*Document, error) {
	g := gen.g
	gen.log.Debug().Str("kind", gen.req.Kind).Str("title", gen.req.Title).Int("blocks", gen.req.BlockCount()).Msg("composing report")

	plan, err := g.layout.Layout(ctx, gen.req)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out report: %w", err)
	}

	if err := gen.enter(PhaseFinalizing); err != nil {
		return nil, err
	}
	th := g.options.Theme
	footer := pagination.FooterStyle{Font: th.Font("", th.SmallSize), Color: th.Muted, Rule: th.Rule}
	if err := plan.StampFooters(g.layout.Metrics().Measurer, footer, g.options.Labels.Footer, gen.now); err != nil {
		return nil, fmt.Errorf("failed to stamp footers: %w", err)
	}

	data, err := g.backend().Render(ctx, plan, gen.renderOptions())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailure, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: backend returned no data", ErrSerializationFailure)
	}
	if err := gen.enter(PhaseSerialized); err != nil {
		return nil, err
	}

	doc := &Document{
		Data:     data,
		MimeType: MimeTypePDF,
		Filename: Filename(gen.req.Kind, gen.req.Title, gen.now),
		Pages:    plan.PageCount(),
	}
	gen.log.Debug().Str("filename", doc.Filename).Int("pages", doc.Pages).Int("bytes", len(data)).Msg("report generated")
	return doc, nil
}

func (gen *generation) renderOptions() pdf.RenderOptions {
	o := gen.g.options
	return pdf.RenderOptions{
		Title:        firstNonEmpty(o.Title, gen.req.Title),
		Author:       firstNonEmpty(o.Author, gen.req.Company.Name),
		Subject:      firstNonEmpty(o.Subject, gen.req.Kind),
		Keywords:     o.Keywords,
		Creator:      o.Creator,
		Producer:     o.Creator,
		CreationDate: gen.now,
	}
}

func (g *Generator) now() time.Time {
	if g.options.Clock != nil {
		return g.options.Clock()
	}
	return time.Now()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Filename suggests a file name of the form <kind>-<title>-<YYYY-MM-DD>.pdf
func Filename(kind, title string, at time.Time) string {
	parts := []string{sanitizeFilename(kind), sanitizeFilename(title), at.Format("2006-01-02")}
	if parts[0] == "" {
		parts[0] = "report"
	}
	if parts[1] == "" {
		parts = append(parts[:1], parts[2])
	}
	return strings.Join(parts, "-") + ".pdf"
}

// sanitizeFilename replaces characters that are unsafe in file names
func sanitizeFilename(name string) string {
	unsafe := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " ", "\t", "\n"}
	result := strings.TrimSpace(name)
	for _, char := range unsafe {
		result = strings.ReplaceAll(result, char, "_")
	}

	// Remove consecutive underscores
	for strings.Contains(result, "__") {
		result = strings.ReplaceAll(result, "__", "_")
	}
	result = strings.Trim(result, "_.")

	// Limit length without splitting a character
	const maxLen = 80
	if len(result) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(result[cut]) {
			cut--
		}
		result = result[:cut]
	}
	return result
}
