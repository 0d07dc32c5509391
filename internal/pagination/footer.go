package pagination

import (
	"errors"
	"fmt"
	"time"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/text"
)

// ErrAlreadyStamped is returned when footers are stamped twice on one plan
var ErrAlreadyStamped = errors.New("footers already stamped")

// FooterLabels are the strings written into the running footer
type FooterLabels struct {
	Generated  string // prefix before the timestamp
	PageOf     string // fmt pattern taking page and total
	TimeFormat string
}

// DefaultFooterLabels returns English footer labels
func DefaultFooterLabels() FooterLabels {
	return FooterLabels{
		Generated:  "Generated",
		PageOf:     "Page %d of %d",
		TimeFormat: "2006-01-02 15:04",
	}
}

// FooterStamp is the footer of one page
type FooterStamp struct {
	Page  int
	Total int
	Left  string
	Right string
	Ops   []draw.Op
}

// FooterStyle controls how footers are drawn
type FooterStyle struct {
	Font  draw.Font
	Color draw.Color
	Rule  draw.Color
}

// StampFooters writes one footer per page once the page count is known. The
// footer sits in the bottom margin band, below the content area.
func (p *Plan) StampFooters(m text.Measurer, st FooterStyle, labels FooterLabels, generatedAt time.Time) error {
	if p.Footers != nil {
		return ErrAlreadyStamped
	}

	defaults := DefaultFooterLabels()
	if labels.PageOf == "" {
		labels.PageOf = defaults.PageOf
	}
	if labels.TimeFormat == "" {
		labels.TimeFormat = defaults.TimeFormat
	}

	total := len(p.Pages)
	left := generatedAt.Format(labels.TimeFormat)
	if labels.Generated != "" {
		left = labels.Generated + " " + left
	}

	bottom := p.ContentBottom()
	ruleY := bottom + (p.Margins.Bottom-st.Font.Size)/4
	textY := bottom + (p.Margins.Bottom-st.Font.Size)/2
	x0 := p.Margins.Left
	x1 := p.Size.Width - p.Margins.Right

	p.Footers = make([]FooterStamp, 0, total)
	for i, page := range p.Pages {
		right := fmt.Sprintf(labels.PageOf, i+1, total)
		stamp := FooterStamp{
			Page:  i + 1,
			Total: total,
			Left:  left,
			Right: right,
			Ops: []draw.Op{
				draw.Line{X1: x0, Y1: ruleY, X2: x1, Y2: ruleY, Color: st.Rule, Width: 0.5},
				draw.Text{X: x0, Y: textY, Text: left, Font: st.Font, Color: st.Color},
				draw.Text{X: x1 - m.Width(st.Font, right), Y: textY, Text: right, Font: st.Font, Color: st.Color},
			},
		}
		page.Number = i + 1
		p.Footers = append(p.Footers, stamp)
	}
	return nil
}
