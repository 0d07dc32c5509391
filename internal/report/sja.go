package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/layout"
	"github.com/mroizo75/hmsnova-reportgen/internal/style"
)

// JobSafetyAnalysis is an SJA: the hazards of one job and the measures
// taken against them
type JobSafetyAnalysis struct {
	Title           string        `yaml:"title"`
	Company         Company       `yaml:"company"`
	WorkDescription string        `yaml:"work_description"`
	Location        string        `yaml:"location"`
	Date            time.Time     `yaml:"date"`
	Responsible     string        `yaml:"responsible"`
	Status          string        `yaml:"status"`
	Participants    []Participant `yaml:"participants"`
	Hazards         []Hazard      `yaml:"hazards"`
	Measures        []Measure     `yaml:"measures"`
	Photos          []Photo       `yaml:"photos"`
}

// Hazard is one assessed danger. Probability and consequence use a 1-5
// scale; 0 means not assessed.
type Hazard struct {
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Probability int    `yaml:"probability"`
	Consequence int    `yaml:"consequence"`
	Measure     string `yaml:"measure"`
}

// Score returns the hazard's risk score
func (h Hazard) Score() int {
	return RiskScore(h.Probability, h.Consequence)
}

// Level returns the hazard's risk level
func (h Hazard) Level() RiskLevel {
	return LevelOf(h.Score())
}

// Measure is an action that reduces risk
type Measure struct {
	Description string     `yaml:"description"`
	Responsible string     `yaml:"responsible"`
	Status      string     `yaml:"status"`
	DueDate     *time.Time `yaml:"due_date"`
}

// RiskCounts tallies hazards per risk level
type RiskCounts map[RiskLevel]int

// CountRisks tallies hazards per risk level
func CountRisks(hazards []Hazard) RiskCounts {
	c := make(RiskCounts, 4)
	for _, h := range hazards {
		c[h.Level()]++
	}
	return c
}

// JobSafetyAnalysis lays out an SJA as cover, figures, risk chart,
// description, participants, hazards grouped by category, measures table,
// photos and signatures.
func (c *Composer) JobSafetyAnalysis(s *JobSafetyAnalysis) (*layout.Request, error) {
	if s == nil {
		return nil, ErrNilSnapshot
	}
	if err := checkTitle(s.Title); err != nil {
		return nil, err
	}
	lb := c.Labels

	req := &layout.Request{Kind: lb.SJATitle, Title: s.Title, Company: s.Company}
	req.Sections = append(req.Sections, layout.Section{Blocks: c.sjaOverview(s)})

	if strings.TrimSpace(s.WorkDescription) != "" {
		req.Sections = append(req.Sections, layout.Section{
			Title:  lb.Description,
			Blocks: []layout.Block{descriptionBlock(s.WorkDescription)},
		})
	}

	var people []layout.Block
	for _, p := range s.Participants {
		people = append(people, layout.KeyValue{Label: p.Name, Value: p.Role})
	}
	req.Sections = append(req.Sections, layout.Section{Title: lb.Participants, Blocks: people})

	if len(s.Hazards) > 0 {
		req.Sections = append(req.Sections, layout.Section{
			Title:  lb.Hazards,
			Blocks: []layout.Block{c.hazards(s.Hazards)},
		})
	}
	req.Sections = append(req.Sections, layout.Section{
		Title:  lb.Measures,
		Blocks: []layout.Block{c.measures(s.Measures)},
	})
	req.Sections = append(req.Sections, layout.Section{Title: lb.Images, Blocks: gallery(s.Photos)})

	var signers []Participant
	if s.Responsible != "" {
		signers = append(signers, Participant{Name: s.Responsible, Role: lb.Responsible})
	}
	signers = append(signers, s.Participants...)
	req.Sections = append(req.Sections, layout.Section{
		Title:  lb.Signatures,
		Blocks: signatures(signers, lb.Participant, lb.DateFormat),
	})
	return req, nil
}

func (c *Composer) sjaOverview(s *JobSafetyAnalysis) []layout.Block {
	lb := c.Labels
	counts := CountRisks(s.Hazards)

	blocks := []layout.Block{
		layout.Cover{
			Title:    s.Title,
			Subtitle: lb.SJATitle,
			Company:  s.Company,
			Logo:     coverLogo(s.Company),
			Meta: metaRows(
				layout.KeyValue{Label: lb.Date, Value: formatDate(s.Date, lb.DateFormat)},
				layout.KeyValue{Label: lb.Location, Value: s.Location},
				layout.KeyValue{Label: lb.Responsible, Value: s.Responsible},
				layout.KeyValue{Label: lb.Status, Value: s.Status},
			),
		},
		layout.Stats{Items: []layout.Stat{
			{Label: lb.Hazards, Value: strconv.Itoa(len(s.Hazards))},
			{Label: lb.HighRiskRows, Value: strconv.Itoa(counts[RiskHigh])},
			{Label: lb.Measures, Value: strconv.Itoa(len(s.Measures))},
			{Label: lb.Participants, Value: strconv.Itoa(len(s.Participants))},
		}},
	}

	chart := layout.PieChart{Title: lb.RiskChart}
	for _, level := range []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskUnassessed} {
		if counts[level] == 0 && level == RiskUnassessed {
			continue
		}
		chart.Slices = append(chart.Slices, layout.Slice{
			Label: level.label(lb),
			Count: float64(counts[level]),
			Color: style.Hex(c.riskColor(level)),
		})
	}
	return append(blocks, chart)
}

func (c *Composer) riskColor(l RiskLevel) draw.Color {
	th := c.Theme
	switch l {
	case RiskLow:
		return th.StatusOK
	case RiskMedium:
		return th.StatusWarn
	case RiskHigh:
		return th.StatusIssue
	default:
		return th.StatusNA
	}
}

// hazards groups hazards by category; each badge shows the level and score
func (c *Composer) hazards(hazards []Hazard) layout.Checklist {
	lb := c.Labels
	groups := GroupBy(hazards, func(h Hazard) string { return h.Category }, lb.Uncategorized)
	out := layout.Checklist{Groups: make([]layout.ChecklistGroup, len(groups))}
	for i, g := range groups {
		out.Groups[i].Category = g.Category
		for _, h := range g.Items {
			level := h.Level()
			badge := level.label(lb)
			comment := ""
			if level != RiskUnassessed {
				badge = fmt.Sprintf("%s (%d)", badge, h.Score())
				comment = fmt.Sprintf("%s %d × %s %d", lb.Probability, h.Probability, lb.Consequence, h.Consequence)
			}
			if m := plainText(h.Measure); m != "" {
				if comment != "" {
					comment += " · "
				}
				comment += lb.Measures + ": " + m
			}
			out.Groups[i].Items = append(out.Groups[i].Items, layout.ChecklistItem{
				Question: plainText(h.Description),
				Label:    badge,
				Color:    style.Hex(c.riskColor(level)),
				Comment:  comment,
			})
		}
	}
	return out
}

func (c *Composer) measures(measures []Measure) layout.Block {
	lb := c.Labels
	if len(measures) == 0 {
		return layout.Paragraph{Text: lb.NoMeasures}
	}
	t := layout.Table{
		Headers: []string{lb.Measures, lb.Responsible, lb.Status, lb.DueDate},
		Weights: []float64{3.4, 1.6, 1.2, 1.1},
	}
	for _, m := range measures {
		t.Rows = append(t.Rows, []string{plainText(m.Description), m.Responsible, m.Status, formatDatePtr(m.DueDate, lb.DateFormat)})
	}
	return t
}
