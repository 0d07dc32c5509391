package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/mroizo75/hmsnova-reportgen/internal/layout"
	"github.com/mroizo75/hmsnova-reportgen/internal/style"
)

// SafetyRound is a completed safety round inspection
type SafetyRound struct {
	Title        string        `yaml:"title"`
	Company      Company       `yaml:"company"`
	Date         time.Time     `yaml:"date"`
	Location     string        `yaml:"location"`
	Inspector    string        `yaml:"inspector"`
	Status       string        `yaml:"status"`
	Description  string        `yaml:"description"`
	Items        []RoundItem   `yaml:"items"`
	Findings     []Finding     `yaml:"findings"`
	Photos       []Photo       `yaml:"photos"`
	Participants []Participant `yaml:"participants"`
}

// RoundItem is one answered checklist question
type RoundItem struct {
	Category string        `yaml:"category"`
	Question string        `yaml:"question"`
	Status   layout.Status `yaml:"status"`
	Comment  string        `yaml:"comment"`
}

// Finding is a deviation registered during the round
type Finding struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Severity    string     `yaml:"severity"`
	Status      string     `yaml:"status"`
	Responsible string     `yaml:"responsible"`
	DueDate     *time.Time `yaml:"due_date"`
}

// StatusCounts tallies checklist answers
type StatusCounts struct {
	Total, OK, Deviation, NA, Unanswered int
}

// Answered is the number of items with any status
func (c StatusCounts) Answered() int {
	return c.Total - c.Unanswered
}

// CountStatuses tallies the statuses of items
func CountStatuses(items []RoundItem) StatusCounts {
	c := StatusCounts{Total: len(items)}
	for _, it := range items {
		switch it.Status {
		case layout.StatusOK:
			c.OK++
		case layout.StatusDeviation:
			c.Deviation++
		case layout.StatusNA:
			c.NA++
		default:
			c.Unanswered++
		}
	}
	return c
}

// SafetyRound lays out a round as cover, figures, status chart, grouped
// checklist, findings table, photos and signatures.
func (c *Composer) SafetyRound(r *SafetyRound) (*layout.Request, error) {
	if r == nil {
		return nil, ErrNilSnapshot
	}
	if err := checkTitle(r.Title); err != nil {
		return nil, err
	}
	lb := c.Labels

	req := &layout.Request{Kind: lb.SafetyRoundTitle, Title: r.Title, Company: r.Company}
	req.Sections = append(req.Sections, layout.Section{Blocks: c.roundOverview(r)})

	if strings.TrimSpace(r.Description) != "" {
		req.Sections = append(req.Sections, layout.Section{
			Title:  lb.Description,
			Blocks: []layout.Block{descriptionBlock(r.Description)},
		})
	}
	if len(r.Items) > 0 {
		req.Sections = append(req.Sections, layout.Section{
			Title:  lb.Checklist,
			Blocks: []layout.Block{roundChecklist(r.Items, lb.Uncategorized)},
		})
	}
	req.Sections = append(req.Sections, layout.Section{
		Title:  lb.Findings,
		Blocks: []layout.Block{c.findings(r.Findings)},
	})
	req.Sections = append(req.Sections, layout.Section{Title: lb.Images, Blocks: gallery(r.Photos)})

	signers := r.Participants
	if len(signers) == 0 && r.Inspector != "" {
		signers = []Participant{{Name: r.Inspector, Role: lb.Inspector}}
	}
	req.Sections = append(req.Sections, layout.Section{
		Title:  lb.Signatures,
		Blocks: signatures(signers, lb.Participant, lb.DateFormat),
	})
	return req, nil
}

func (c *Composer) roundOverview(r *SafetyRound) []layout.Block {
	lb := c.Labels
	th := c.Theme
	counts := CountStatuses(r.Items)

	cover := layout.Cover{
		Title:    r.Title,
		Subtitle: lb.SafetyRoundTitle,
		Company:  r.Company,
		Logo:     coverLogo(r.Company),
		Meta: metaRows(
			layout.KeyValue{Label: lb.Date, Value: formatDate(r.Date, lb.DateFormat)},
			layout.KeyValue{Label: lb.Location, Value: r.Location},
			layout.KeyValue{Label: lb.Inspector, Value: r.Inspector},
			layout.KeyValue{Label: lb.Status, Value: r.Status},
		),
	}
	blocks := []layout.Block{cover}
	if counts.Total == 0 {
		return blocks
	}

	stats := layout.Stats{Items: []layout.Stat{
		{Label: lb.Items, Value: strconv.Itoa(counts.Total)},
		{Label: lb.OK, Value: strconv.Itoa(counts.OK)},
		{Label: lb.Deviations, Value: strconv.Itoa(counts.Deviation)},
		{Label: lb.NA, Value: strconv.Itoa(counts.NA)},
		{Label: lb.Completion, Value: percent(counts.Answered(), counts.Total)},
	}}
	chart := layout.PieChart{Title: lb.StatusChart, Slices: []layout.Slice{
		{Label: lb.OK, Count: float64(counts.OK), Color: style.Hex(th.StatusOK)},
		{Label: lb.Deviations, Count: float64(counts.Deviation), Color: style.Hex(th.StatusIssue)},
		{Label: lb.NA, Count: float64(counts.NA), Color: style.Hex(th.StatusNA)},
	}}
	if counts.Unanswered > 0 {
		chart.Slices = append(chart.Slices, layout.Slice{Label: lb.Unanswered, Count: float64(counts.Unanswered), Color: style.Hex(th.Rule)})
	}
	return append(blocks, stats, chart)
}

// roundChecklist groups items by category in first-appearance order
func roundChecklist(items []RoundItem, fallback string) layout.Checklist {
	groups := GroupBy(items, func(it RoundItem) string { return it.Category }, fallback)
	out := layout.Checklist{Groups: make([]layout.ChecklistGroup, len(groups))}
	for i, g := range groups {
		out.Groups[i].Category = g.Category
		for _, it := range g.Items {
			out.Groups[i].Items = append(out.Groups[i].Items, layout.ChecklistItem{
				Question: it.Question,
				Status:   it.Status,
				Comment:  it.Comment,
			})
		}
	}
	return out
}

func (c *Composer) findings(findings []Finding) layout.Block {
	lb := c.Labels
	if len(findings) == 0 {
		return layout.Paragraph{Text: lb.NoFindings}
	}
	t := layout.Table{
		Headers: []string{lb.Title, lb.Severity, lb.Status, lb.Responsible, lb.DueDate},
		Weights: []float64{3, 1.2, 1.2, 1.6, 1.1},
	}
	for _, f := range findings {
		title := f.Title
		if d := plainText(f.Description); d != "" {
			title += "\n" + d
		}
		t.Rows = append(t.Rows, []string{title, f.Severity, f.Status, f.Responsible, formatDatePtr(f.DueDate, lb.DateFormat)})
	}
	return t
}
