package text

import (
	"sync"

	"codeberg.org/go-pdf/fpdf"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
)

// Measurer reports the rendered width of a string in points
type Measurer interface {
	Width(font draw.Font, s string) float64
}

// MeasurerFunc adapts a function to the Measurer interface
type MeasurerFunc func(font draw.Font, s string) float64

func (f MeasurerFunc) Width(font draw.Font, s string) float64 { return f(font, s) }

// Singleton PDF instance for text measurement using go-pdf/fpdf metrics
var (
	measureOnce sync.Once
	measurePDF  *fpdf.Fpdf
	measureMu   sync.Mutex
)

func initMeasurePDF() {
	measurePDF = fpdf.New("P", "pt", "A4", "")
	measurePDF.SetFont("Helvetica", "", 12)
}

type pdfMeasurer struct{}

// PDFMeasurer returns a Measurer backed by the core font metrics of fpdf.
// It is safe for concurrent use.
func PDFMeasurer() Measurer {
	return pdfMeasurer{}
}

func (pdfMeasurer) Width(font draw.Font, s string) float64 {
	if s == "" || font.Size <= 0 {
		return 0
	}
	measureOnce.Do(initMeasurePDF)
	measureMu.Lock()
	defer measureMu.Unlock()
	measurePDF.SetFont(ResolveFamily(font.Family), font.Style, font.Size)
	return measurePDF.GetStringWidth(Encode(s))
}

// ResolveFamily maps free-form family names to a core PDF font
func ResolveFamily(family string) string {
	switch family {
	case "Times", "times", "serif":
		return "Times"
	case "Courier", "courier", "monospace":
		return "Courier"
	default:
		return "Helvetica"
	}
}
