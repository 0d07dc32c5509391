// Package chart computes pie chart geometry
package chart

import (
	"math"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
)

// Slice is one labelled value of a pie chart
type Slice struct {
	Label string
	Count float64
	Color draw.Color
}

// Sector is a slice resolved to angles in radians
type Sector struct {
	Slice
	Start   float64
	Sweep   float64
	Percent float64
}

// Total sums the slice counts, ignoring negative values
func Total(slices []Slice) float64 {
	total := 0.0
	for _, s := range slices {
		if s.Count > 0 {
			total += s.Count
		}
	}
	return total
}

// Sectors converts slices into consecutive sectors starting at angle 0.
// Each sweep is 2π·count/total. A zero total yields nil so callers omit the
// chart instead of dividing by zero. Negative counts are treated as zero.
func Sectors(slices []Slice) []Sector {
	total := Total(slices)
	if total <= 0 {
		return nil
	}

	sectors := make([]Sector, 0, len(slices))
	angle := 0.0
	for _, s := range slices {
		count := math.Max(s.Count, 0)
		sweep := 2 * math.Pi * count / total
		sectors = append(sectors, Sector{
			Slice:   s,
			Start:   angle,
			Sweep:   sweep,
			Percent: 100 * count / total,
		})
		angle += sweep
	}
	return sectors
}

// arcStep is the maximum angle between consecutive arc points
const arcStep = math.Pi / 90

// Wedge returns the closed polygon of a sector: the center, the radius
// endpoint at start, points along the arc and the endpoint at start+sweep.
// Angles run clockwise on the page because y grows downwards.
func Wedge(cx, cy, r, start, sweep float64) []draw.Point {
	steps := int(math.Ceil(sweep / arcStep))
	if steps < 1 {
		steps = 1
	}
	points := make([]draw.Point, 0, steps+2)
	points = append(points, draw.Point{X: cx, Y: cy})
	for i := 0; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		points = append(points, draw.Point{
			X: cx + r*math.Cos(a),
			Y: cy + r*math.Sin(a),
		})
	}
	return points
}
