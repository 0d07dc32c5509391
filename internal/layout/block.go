package layout

import (
	"math"
	"strings"

	"github.com/mroizo75/hmsnova-reportgen/internal/chart"
	"github.com/mroizo75/hmsnova-reportgen/internal/parser/html"
	"github.com/mroizo75/hmsnova-reportgen/internal/style"
	"github.com/mroizo75/hmsnova-reportgen/internal/text"
)

// Request is a complete, already authorized report to lay out. It is not
// modified during layout.
type Request struct {
	Kind     string
	Title    string
	Company  Company
	Sections []Section
}

// Company identifies the tenant the report belongs to
type Company struct {
	Name      string `yaml:"name"`
	OrgNumber string `yaml:"org_number"`
	Address   string `yaml:"address"`
	LogoRef   string `yaml:"logo"`
}

// Section is an optional titled run of blocks
type Section struct {
	Title  string
	Blocks []Block
}

// BlockCount returns the number of blocks across all sections
func (r *Request) BlockCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Blocks)
	}
	return n
}

// Metrics bundles what height estimation needs
type Metrics struct {
	Measurer text.Measurer
	Theme    style.Theme
}

// Block is one unit of report content. The set of implementations is closed;
// drawing dispatches on the concrete type in Engine.place.
type Block interface {
	// EstimateHeight returns the height the block needs at the given width
	// when drawn on an empty page. It has no side effects.
	EstimateHeight(mt Metrics, maxWidth float64) float64
}

// Heading is a bold title line. Size 0 uses the theme heading size.
type Heading struct {
	Text string
	Size float64
}

// KeyValue is one row of a two-column form
type KeyValue struct {
	Label string
	Value string
}

// Paragraph is free text. RichText marks HTML from the web editor.
type Paragraph struct {
	Text     string
	RichText bool
}

// Table is a header row plus striped body rows. Weights are optional
// relative column widths.
type Table struct {
	Headers []string
	Rows    [][]string
	Weights []float64
}

// Image references a picture by Ref, or carries its bytes in Data
type Image struct {
	Ref       string
	Data      []byte
	Caption   string
	MaxWidth  float64
	MaxHeight float64
}

// Slice is one entry of a pie chart; Color is a hex or rgb() value and may
// be empty to use the theme palette
type Slice struct {
	Label string
	Count float64
	Color string
}

// PieChart is a proportional pie with legend. A chart whose counts sum to
// zero is omitted.
type PieChart struct {
	Title  string
	Slices []Slice
}

// Signature is a line to sign on with the signer's role, name and date
type Signature struct {
	Label string
	Name  string
	Date  string
}

// Checklist is a list of items grouped by category, in display order
type Checklist struct {
	Groups []ChecklistGroup
}

// ChecklistGroup is one category of a checklist
type ChecklistGroup struct {
	Category string
	Items    []ChecklistItem
}

// ChecklistItem is a single checked question. Label overrides the status
// text shown in the badge and Color, a hex or rgb() value, its fill.
type ChecklistItem struct {
	Question string
	Status   Status
	Label    string
	Color    string
	Comment  string
}

// Stats is a row of aggregate figures shown as cards
type Stats struct {
	Items []Stat
}

// Stat is one figure of a Stats block
type Stat struct {
	Label string
	Value string
}

// Cover is the identity block at the top of a report
type Cover struct {
	Title    string
	Subtitle string
	Company  Company
	Logo     *Image
	Meta     []KeyValue
}

// Spacer inserts vertical space
type Spacer struct {
	Height float64
}

// PageBreak starts a new page unless the current one is empty
type PageBreak struct{}

// Status is the outcome of a checklist item
type Status int

const (
	StatusNone Status = iota
	StatusOK
	StatusDeviation
	StatusNA
)

// ParseStatus accepts the status spellings used by the web application
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ok", "compliant", "godkjent", "yes", "ja":
		return StatusOK
	case "deviation", "avvik", "non_compliant", "not_ok", "no", "nei":
		return StatusDeviation
	case "na", "n/a", "not_applicable", "ikke_relevant", "ikke relevant":
		return StatusNA
	default:
		return StatusNone
	}
}

// UnmarshalText lets statuses be decoded from YAML or JSON strings
func (s *Status) UnmarshalText(b []byte) error {
	*s = ParseStatus(string(b))
	return nil
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDeviation:
		return "deviation"
	case StatusNA:
		return "na"
	default:
		return "none"
	}
}

// Geometry shared by estimation and drawing

const (
	kvLabelRatio    = 0.35
	kvLabelMax      = 160.0
	statsPerRow     = 4
	statCardHeight  = 52.0
	badgeWidth      = 72.0
	pieRadius       = 70.0
	swatchSize      = 8.0
	signatureSpace  = 36.0
	signatureLength = 220.0
	coverLogoWidth  = 140.0
	coverLogoHeight = 56.0
	defaultImageMax = 320.0
)

func (mt Metrics) lineHeight(size float64) float64 {
	return size * mt.Theme.LineHeight
}

func (mt Metrics) headingSize(size float64) float64 {
	if size > 0 {
		return size
	}
	return mt.Theme.HeadingSize
}

func (b Heading) EstimateHeight(mt Metrics, maxWidth float64) float64 {
	size := mt.headingSize(b.Size)
	lines := text.Wrap(mt.Measurer, mt.Theme.Font("B", size), b.Text, maxWidth)
	return float64(len(lines)) * mt.lineHeight(size)
}

// kvGeometry is the shared layout of a KeyValue row
type kvGeometry struct {
	labelCol   float64
	labelLines []string
	valueLines []string
	lineHeight float64
	height     float64
}

func (mt Metrics) keyValue(b KeyValue, maxWidth float64) kvGeometry {
	th := mt.Theme
	labelCol := math.Min(maxWidth*kvLabelRatio, kvLabelMax)
	g := kvGeometry{
		labelCol:   labelCol,
		labelLines: text.Wrap(mt.Measurer, th.Font("B", th.BodySize), b.Label, labelCol-2*th.Padding),
		valueLines: text.Wrap(mt.Measurer, th.Font("", th.BodySize), b.Value, maxWidth-labelCol-th.Padding),
		lineHeight: mt.lineHeight(th.BodySize),
	}
	rows := max(len(g.labelLines), len(g.valueLines))
	g.height = float64(rows)*g.lineHeight + 2*th.Padding
	return g
}

func (b KeyValue) EstimateHeight(mt Metrics, maxWidth float64) float64 {
	return mt.keyValue(b, maxWidth).height
}

// plainText returns the paragraph text with rich text flattened
func (b Paragraph) plainText() string {
	if !b.RichText {
		return b.Text
	}
	s, err := html.PlainText(b.Text)
	if err != nil {
		return b.Text
	}
	return s
}

func (b Paragraph) EstimateHeight(mt Metrics, maxWidth float64) float64 {
	lines := text.Wrap(mt.Measurer, mt.Theme.Font("", mt.Theme.BodySize), b.plainText(), maxWidth)
	return float64(len(lines)) * mt.lineHeight(mt.Theme.BodySize)
}

func (b Table) EstimateHeight(mt Metrics, maxWidth float64) float64 {
	g := mt.table(b, maxWidth)
	h := g.headerHeight
	for _, r := range g.rows {
		h += r.height
	}
	return h
}

// EstimateHeight of an image is an upper bound: the box it may occupy before
// the picture has been decoded
func (b Image) EstimateHeight(mt Metrics, maxWidth float64) float64 {
	h := b.MaxHeight
	if h <= 0 {
		h = defaultImageMax
	}
	return h + mt.captionHeight(b.Caption)
}

func (mt Metrics) captionHeight(caption string) float64 {
	if caption == "" {
		return 0
	}
	return mt.Theme.Padding + mt.lineHeight(mt.Theme.SmallSize)
}

// sectors resolves slice colours and angles; nil means no chart
func (mt Metrics) sectors(b PieChart) []chart.Sector {
	slices := make([]chart.Slice, len(b.Slices))
	for i, s := range b.Slices {
		c, ok := style.ParseColor(s.Color)
		if !ok {
			c = mt.Theme.PaletteColor(i)
		}
		slices[i] = chart.Slice{Label: s.Label, Count: s.Count, Color: c}
	}
	return chart.Sectors(slices)
}

// pieGeometry is the shared layout of a pie chart block
type pieGeometry struct {
	sectors     []chart.Sector
	titleHeight float64
	bodyHeight  float64
	radius      float64
	legendRows  int
	hidden      int
	legendLineH float64
	captionH    float64
	height      float64
}

func (mt Metrics) pie(b PieChart) pieGeometry {
	g := pieGeometry{sectors: mt.sectors(b)}
	if g.sectors == nil {
		return g
	}
	th := mt.Theme
	if b.Title != "" {
		g.titleHeight = mt.lineHeight(th.BodySize+2) + th.Padding
	}
	g.legendLineH = mt.lineHeight(th.SmallSize) + 2
	g.legendRows = len(g.sectors)
	g.radius = pieRadius
	g.captionH = th.Padding + mt.lineHeight(th.SmallSize)
	g.measure()
	return g
}

func (g *pieGeometry) measure() {
	g.bodyHeight = math.Max(2*g.radius, float64(g.legendRows)*g.legendLineH)
	g.height = g.titleHeight + g.bodyHeight + g.captionH
}

// fit shrinks the chart into a page of height avail. The legend is cut and
// summarised first, then the caption and the title are dropped, then the pie
// is scaled down.
func (g pieGeometry) fit(avail float64) pieGeometry {
	if g.height <= avail {
		return g
	}
	body := avail - g.titleHeight - g.captionH
	if body < g.legendLineH {
		g.captionH = 0
		body = avail - g.titleHeight
	}
	if body < g.legendLineH {
		g.titleHeight = 0
		body = avail
	}
	g.radius = math.Min(pieRadius, body/2)

	rows := int(math.Floor((body + 1e-6) / g.legendLineH))
	switch {
	case rows <= 0:
		g.legendRows, g.hidden = 0, 0
	case rows < len(g.sectors):
		g.legendRows = rows
		g.hidden = len(g.sectors) - (rows - 1)
	}
	g.measure()
	return g
}

func (b PieChart) EstimateHeight(mt Metrics, _ float64) float64 {
	return mt.pie(b).height
}

func (mt Metrics) signatureHeight() float64 {
	th := mt.Theme
	return signatureSpace + th.Padding + mt.lineHeight(th.BodySize) + mt.lineHeight(th.SmallSize)
}

func (b Signature) EstimateHeight(mt Metrics, _ float64) float64 {
	return mt.signatureHeight()
}

func (b Checklist) EstimateHeight(mt Metrics, maxWidth float64) float64 {
	h := 0.0
	drawn := 0
	for _, g := range b.Groups {
		if len(g.Items) == 0 {
			continue
		}
		if drawn > 0 {
			h += mt.Theme.Padding
		}
		drawn++
		h += mt.groupHeadingHeight()
		for _, it := range g.Items {
			h += mt.checklistItem(it, maxWidth).height
		}
	}
	return h
}

// statRows splits stat cards into rows of at most statsPerRow
func statRows(items []Stat) [][]Stat {
	var rows [][]Stat
	for len(items) > 0 {
		n := min(len(items), statsPerRow)
		rows = append(rows, items[:n])
		items = items[n:]
	}
	return rows
}

func (b Stats) EstimateHeight(mt Metrics, _ float64) float64 {
	rows := len(statRows(b.Items))
	if rows == 0 {
		return 0
	}
	return float64(rows)*statCardHeight + float64(rows-1)*mt.Theme.BlockGap
}

func (mt Metrics) coverBandHeight(b Cover) float64 {
	th := mt.Theme
	lines := 1
	if b.Company.OrgNumber != "" {
		lines++
	}
	if b.Company.Address != "" {
		lines++
	}
	textH := mt.lineHeight(th.BodySize+2) + float64(lines-1)*mt.lineHeight(th.SmallSize)
	if b.Logo != nil {
		return math.Max(coverLogoHeight, textH) + th.Padding
	}
	return textH + th.Padding
}

func (mt Metrics) coverTitleHeight(b Cover, maxWidth float64) float64 {
	th := mt.Theme
	size := th.HeadingSize + 6
	lines := text.Wrap(mt.Measurer, th.Font("B", size), b.Title, maxWidth)
	h := th.BlockGap + float64(len(lines))*mt.lineHeight(size)
	if b.Subtitle != "" {
		h += mt.lineHeight(th.BodySize + 1)
	}
	return h + th.BlockGap
}

func (b Cover) EstimateHeight(mt Metrics, maxWidth float64) float64 {
	h := mt.coverBandHeight(b) + mt.coverTitleHeight(b, maxWidth)
	for _, kv := range b.Meta {
		h += mt.keyValue(kv, maxWidth).height
	}
	return h
}

func (b Spacer) EstimateHeight(Metrics, float64) float64 { return b.Height }

func (PageBreak) EstimateHeight(Metrics, float64) float64 { return 0 }
