package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mroizo75/hmsnova-reportgen/internal/layout"
)

// Document is a free-form report written as YAML: sections of typed blocks
// that map one to one onto layout blocks.
type Document struct {
	Kind     string            `yaml:"kind"`
	Title    string            `yaml:"title"`
	Company  Company           `yaml:"company"`
	Sections []DocumentSection `yaml:"sections"`
}

type DocumentSection struct {
	Title  string          `yaml:"title"`
	Blocks []DocumentBlock `yaml:"blocks"`
}

// DocumentBlock carries the fields of every block type; Type selects which
// of them are read.
type DocumentBlock struct {
	Type string `yaml:"type"`

	Text     string  `yaml:"text"`
	Size     float64 `yaml:"size"`
	RichText bool    `yaml:"rich_text"`

	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Name  string `yaml:"name"`
	Date  string `yaml:"date"`

	Headers []string   `yaml:"headers"`
	Rows    [][]string `yaml:"rows"`
	Weights []float64  `yaml:"weights"`

	Ref       string  `yaml:"ref"`
	Caption   string  `yaml:"caption"`
	MaxWidth  float64 `yaml:"max_width"`
	MaxHeight float64 `yaml:"max_height"`

	Title    string            `yaml:"title"`
	Subtitle string            `yaml:"subtitle"`
	Logo     string            `yaml:"logo"`
	Meta     []layout.KeyValue `yaml:"meta"`
	Slices   []documentSlice   `yaml:"slices"`
	Groups   []documentGroup   `yaml:"groups"`
	Items    []layout.Stat     `yaml:"items"`

	Height float64 `yaml:"height"`
}

type documentSlice struct {
	Label string  `yaml:"label"`
	Count float64 `yaml:"count"`
	Color string  `yaml:"color"`
}

type documentGroup struct {
	Category string         `yaml:"category"`
	Items    []documentItem `yaml:"items"`
}

type documentItem struct {
	Question string        `yaml:"question"`
	Status   layout.Status `yaml:"status"`
	Label    string        `yaml:"label"`
	Color    string        `yaml:"color"`
	Comment  string        `yaml:"comment"`
}

// ErrUnknownBlock is returned for a block type the layout engine does not draw
var ErrUnknownBlock = errors.New("unknown block type")

// DecodeYAML decodes one YAML document from r into v, rejecting unknown keys
func DecodeYAML(r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}
	return nil
}

// Request converts the document into a layout request
func (d *Document) Request() (*layout.Request, error) {
	if d == nil {
		return nil, ErrNilSnapshot
	}
	if err := checkTitle(d.Title); err != nil {
		return nil, err
	}
	req := &layout.Request{Kind: d.Kind, Title: d.Title, Company: d.Company}
	for i, s := range d.Sections {
		sec := layout.Section{Title: s.Title}
		for j, b := range s.Blocks {
			block, err := b.block(req.Company)
			if err != nil {
				return nil, fmt.Errorf("section %d block %d: %w", i+1, j+1, err)
			}
			sec.Blocks = append(sec.Blocks, block)
		}
		req.Sections = append(req.Sections, sec)
	}
	return req, nil
}

func (b DocumentBlock) block(company layout.Company) (layout.Block, error) {
	switch strings.ToLower(strings.ReplaceAll(b.Type, "-", "_")) {
	case "heading":
		return layout.Heading{Text: b.Text, Size: b.Size}, nil
	case "key_value", "kv":
		return layout.KeyValue{Label: b.Label, Value: b.Value}, nil
	case "paragraph", "text":
		return layout.Paragraph{Text: b.Text, RichText: b.RichText}, nil
	case "table":
		return layout.Table{Headers: b.Headers, Rows: b.Rows, Weights: b.Weights}, nil
	case "image":
		return layout.Image{Ref: b.Ref, Caption: b.Caption, MaxWidth: b.MaxWidth, MaxHeight: b.MaxHeight}, nil
	case "pie_chart", "pie":
		c := layout.PieChart{Title: b.Title}
		for _, s := range b.Slices {
			c.Slices = append(c.Slices, layout.Slice(s))
		}
		return c, nil
	case "signature":
		return layout.Signature{Label: b.Label, Name: b.Name, Date: b.Date}, nil
	case "checklist":
		c := layout.Checklist{Groups: make([]layout.ChecklistGroup, len(b.Groups))}
		for i, g := range b.Groups {
			c.Groups[i].Category = g.Category
			for _, it := range g.Items {
				c.Groups[i].Items = append(c.Groups[i].Items, layout.ChecklistItem(it))
			}
		}
		return c, nil
	case "stats":
		return layout.Stats{Items: b.Items}, nil
	case "cover":
		c := layout.Cover{Title: b.Title, Subtitle: b.Subtitle, Company: company, Meta: b.Meta}
		if b.Logo != "" {
			c.Logo = &layout.Image{Ref: b.Logo}
		}
		return c, nil
	case "spacer":
		return layout.Spacer{Height: b.Height}, nil
	case "page_break":
		return layout.PageBreak{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBlock, b.Type)
	}
}
