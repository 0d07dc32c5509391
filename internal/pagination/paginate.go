package pagination

import (
	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
)

// Page is one fixed-size page and the draw operations placed on it
type Page struct {
	Number int
	Width  float64
	Height float64
	Ops    []draw.Op
}

// Add appends a draw operation to the page
func (p *Page) Add(ops ...draw.Op) {
	p.Ops = append(p.Ops, ops...)
}

// PageSize is a named page size in points
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard sizes, portrait, in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

// Landscape returns the size rotated by 90 degrees
func (s PageSize) Landscape() PageSize {
	if s.Width >= s.Height {
		return s
	}
	return PageSize{Width: s.Height, Height: s.Width, Name: s.Name}
}

// Margins are the blank bands around the content area. The bottom band also
// holds the footer.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Plan is the finished sequence of pages plus the footer stamps that are
// applied once the page count is final.
type Plan struct {
	Size    PageSize
	Margins Margins
	Pages   []*Page
	Footers []FooterStamp
}

// PageCount returns the number of finalized pages
func (p *Plan) PageCount() int {
	return len(p.Pages)
}

// ContentBottom is the lowest y content may reach
func (p *Plan) ContentBottom() float64 {
	return p.Size.Height - p.Margins.Bottom
}
