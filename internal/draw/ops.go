// Package draw defines the drawing primitives that layout writes onto pages
// and that a document backend replays. Coordinates are points with the origin
// in the top-left corner of the page and y growing downwards.
package draw

// Color is an RGB colour with 0-255 components
type Color struct {
	R, G, B int
}

// Point is a position on the page
type Point struct {
	X, Y float64
}

// Font selects one of the core PDF font families
type Font struct {
	Family string // Helvetica, Times or Courier
	Style  string // "", "B", "I" or "BI"
	Size   float64
}

// Op is a single drawing command. Bounds reports the vertical extent of the
// command so pagination invariants can be checked without a backend.
type Op interface {
	Bounds() (top, bottom float64)
}

// Text draws a single line of text. Y is the top of the line box; backends
// place the baseline at Y + Size*AscentRatio.
type Text struct {
	X, Y  float64
	Text  string
	Font  Font
	Color Color
}

// AscentRatio is the fraction of the font size above the baseline for the
// core Helvetica metrics.
const AscentRatio = 0.718

func (t Text) Bounds() (float64, float64) { return t.Y, t.Y + t.Font.Size }

// Rect draws a rectangle. Style follows fpdf: "F" fill, "D" outline, "FD" both.
type Rect struct {
	X, Y, W, H float64
	Fill       Color
	Stroke     Color
	LineWidth  float64
	Style      string
}

func (r Rect) Bounds() (float64, float64) { return r.Y, r.Y + r.H }

// Line draws a straight line segment
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	Width          float64
}

func (l Line) Bounds() (float64, float64) {
	if l.Y1 < l.Y2 {
		return l.Y1, l.Y2
	}
	return l.Y2, l.Y1
}

// Polygon fills a closed path, used for pie chart wedges
type Polygon struct {
	Points []Point
	Fill   Color
}

func (p Polygon) Bounds() (float64, float64) {
	if len(p.Points) == 0 {
		return 0, 0
	}
	top, bottom := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points[1:] {
		if pt.Y < top {
			top = pt.Y
		}
		if pt.Y > bottom {
			bottom = pt.Y
		}
	}
	return top, bottom
}

// Image places encoded raster bytes. Format is one the backend can embed
// directly: "PNG", "JPG" or "GIF".
type Image struct {
	Name       string
	Data       []byte
	Format     string
	X, Y, W, H float64
}

func (i Image) Bounds() (float64, float64) { return i.Y, i.Y + i.H }
