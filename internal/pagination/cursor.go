package pagination

import (
	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
)

// epsilon absorbs float drift when heights add up to exactly the page
const epsilon = 1e-6

// Cursor owns the current page and the vertical write position. Every page
// break in a document goes through it.
type Cursor struct {
	size    PageSize
	margins Margins

	pages []*Page
	page  *Page
	y     float64
	used  bool
	plan  *Plan
}

// NewCursor starts a document with its first page
func NewCursor(size PageSize, margins Margins) *Cursor {
	c := &Cursor{size: size, margins: margins}
	c.startPage()
	return c
}

func (c *Cursor) startPage() {
	c.page = &Page{
		Number: len(c.pages) + 1,
		Width:  c.size.Width,
		Height: c.size.Height,
	}
	c.y = c.margins.Top
	c.used = false
}

// Y returns the current write position
func (c *Cursor) Y() float64 { return c.y }

// Left returns the x of the content column
func (c *Cursor) Left() float64 { return c.margins.Left }

// ContentWidth returns the width of the content column
func (c *Cursor) ContentWidth() float64 {
	return c.size.Width - c.margins.Left - c.margins.Right
}

// ContentHeight returns the usable height of an empty page
func (c *Cursor) ContentHeight() float64 {
	return c.size.Height - c.margins.Top - c.margins.Bottom
}

// Bottom returns the lowest y content may reach
func (c *Cursor) Bottom() float64 {
	return c.size.Height - c.margins.Bottom
}

// Remaining returns the space left on the current page
func (c *Cursor) Remaining() float64 {
	return c.Bottom() - c.y
}

// Fits reports whether height fits in the remaining space
func (c *Cursor) Fits(height float64) bool {
	return height <= c.Remaining()+epsilon
}

// Fresh reports whether nothing has been placed on the current page
func (c *Cursor) Fresh() bool { return !c.used }

// Page returns the page currently being written
func (c *Cursor) Page() *Page { return c.page }

// PageNumber returns the 1-based index of the current page
func (c *Cursor) PageNumber() int { return c.page.Number }

// Advance reserves height on the page and returns the y to draw at. When the
// height does not fit and the page already has content, the page is
// finalized first. A fresh page accepts any height so callers that could
// not split or scale a block still terminate.
func (c *Cursor) Advance(height float64) float64 {
	if !c.Fits(height) && c.used {
		c.Break()
	}
	y := c.y
	c.y += height
	c.used = true
	return y
}

// Gap adds vertical space between blocks. It never starts a page and is
// dropped at the top of a page.
func (c *Cursor) Gap(height float64) {
	if !c.used {
		return
	}
	c.y += height
	if c.y > c.Bottom() {
		c.y = c.Bottom()
	}
}

// Break finalizes the current page and starts a new one at the top margin
func (c *Cursor) Break() {
	c.pages = append(c.pages, c.page)
	c.startPage()
}

// Draw appends operations to the current page
func (c *Cursor) Draw(ops ...draw.Op) {
	c.page.Add(ops...)
}

// Finish finalizes the last page and returns the plan. An empty trailing
// page is dropped unless it is the only one. Calling it again returns the
// same plan.
func (c *Cursor) Finish() *Plan {
	if c.plan != nil {
		return c.plan
	}
	if c.used || len(c.pages) == 0 {
		c.pages = append(c.pages, c.page)
	}
	c.plan = &Plan{
		Size:    c.size,
		Margins: c.margins,
		Pages:   c.pages,
	}
	return c.plan
}
