package pagination

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned when the page size and margins leave no
// content area
var ErrInvalidGeometry = errors.New("invalid page geometry")

// Options is the page geometry in points
type Options struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
}

// DefaultOptions is A4 with 40pt margins; the bottom margin holds the footer
func DefaultOptions() Options {
	return Options{
		PageWidth:    PageSizeA4.Width,
		PageHeight:   PageSizeA4.Height,
		MarginTop:    40,
		MarginRight:  40,
		MarginBottom: 50,
		MarginLeft:   40,
	}
}

// Size returns the page size, named after the matching standard size
func (o Options) Size() PageSize {
	for _, s := range []PageSize{PageSizeA4, PageSizeLetter, PageSizeLegal, PageSizeA3, PageSizeA5} {
		switch {
		case s.Width == o.PageWidth && s.Height == o.PageHeight:
			return s
		case s.Height == o.PageWidth && s.Width == o.PageHeight:
			return s.Landscape()
		}
	}
	return PageSize{Width: o.PageWidth, Height: o.PageHeight, Name: "Custom"}
}

func (o Options) Margins() Margins {
	return Margins{Top: o.MarginTop, Right: o.MarginRight, Bottom: o.MarginBottom, Left: o.MarginLeft}
}

// Validate reports ErrInvalidGeometry for negative margins or an empty
// content area
func (o Options) Validate() error {
	m := o.Margins()
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidGeometry)
	}
	if w := o.PageWidth - m.Left - m.Right; w <= 0 {
		return fmt.Errorf("%w: content width %.2f", ErrInvalidGeometry, w)
	}
	if h := o.PageHeight - m.Top - m.Bottom; h <= 0 {
		return fmt.Errorf("%w: content height %.2f", ErrInvalidGeometry, h)
	}
	return nil
}

// Engine hands out cursors for documents sharing one page geometry
type Engine struct {
	options Options
}

func NewEngine() *Engine {
	return &Engine{options: DefaultOptions()}
}

func (e *Engine) SetOptions(options Options) {
	e.options = options
}

func (e *Engine) Options() Options {
	return e.options
}

// Begin validates the geometry and returns the cursor of a new document
func (e *Engine) Begin() (*Cursor, error) {
	if err := e.options.Validate(); err != nil {
		return nil, err
	}
	return NewCursor(e.options.Size(), e.options.Margins()), nil
}
