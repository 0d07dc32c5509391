// Package report turns domain snapshots from the web application into
// layout requests. Composers only sequence blocks; every measurement and page
// decision happens in the layout package.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mroizo75/hmsnova-reportgen/internal/layout"
	"github.com/mroizo75/hmsnova-reportgen/internal/parser/html"
	"github.com/mroizo75/hmsnova-reportgen/internal/style"
)

var (
	// ErrNilSnapshot is returned when a composer is given nothing to compose
	ErrNilSnapshot = errors.New("nil report snapshot")
	// ErrMissingTitle is returned when a snapshot has no title to print
	ErrMissingTitle = errors.New("report has no title")
)

// Composer builds layout requests from domain snapshots
type Composer struct {
	Labels Labels
	Theme  style.Theme
}

// NewComposer creates a composer with the given labels and theme
func NewComposer(labels Labels, theme style.Theme) *Composer {
	return &Composer{Labels: labels, Theme: theme}
}

// Company identifies the tenant a report belongs to
type Company = layout.Company

// Participant is someone who took part in, or signs, a report
type Participant struct {
	Name     string     `yaml:"name"`
	Role     string     `yaml:"role"`
	SignedAt *time.Time `yaml:"signed_at"`
}

// Photo is an image attached to a report
type Photo struct {
	Ref     string `yaml:"ref"`
	Data    []byte `yaml:"-"`
	Caption string `yaml:"caption"`
}

// Group is one category and its entries, in first-appearance order
type Group[T any] struct {
	Category string
	Items    []T
}

// GroupBy buckets items by key. Groups appear in the order their key is first
// seen and items keep their input order; an empty key is collected under
// fallback.
func GroupBy[T any](items []T, key func(T) string, fallback string) []Group[T] {
	var groups []Group[T]
	index := make(map[string]int)
	for _, it := range items {
		k := strings.TrimSpace(key(it))
		if k == "" {
			k = fallback
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Category: k})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

func formatDate(t time.Time, format string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(format)
}

func formatDatePtr(t *time.Time, format string) string {
	if t == nil {
		return ""
	}
	return formatDate(*t, format)
}

func percent(part, total int) string {
	if total == 0 {
		return "0 %"
	}
	return fmt.Sprintf("%.0f %%", float64(part)*100/float64(total))
}

// metaRows keeps the rows whose value is set
func metaRows(rows ...layout.KeyValue) []layout.KeyValue {
	out := rows[:0]
	for _, r := range rows {
		if strings.TrimSpace(r.Value) != "" {
			out = append(out, r)
		}
	}
	return out
}

func looksLikeHTML(s string) bool {
	return strings.Contains(s, "<") && strings.Contains(s, ">")
}

// plainText flattens editor HTML for places that only take plain text
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if !looksLikeHTML(s) {
		return s
	}
	if flat, err := html.PlainText(s); err == nil {
		return flat
	}
	return s
}

func descriptionBlock(s string) layout.Paragraph {
	return layout.Paragraph{Text: s, RichText: looksLikeHTML(s)}
}

func checkTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrMissingTitle
	}
	return nil
}

func coverLogo(c Company) *layout.Image {
	if c.LogoRef == "" {
		return nil
	}
	return &layout.Image{Ref: c.LogoRef}
}

func gallery(photos []Photo) []layout.Block {
	var blocks []layout.Block
	for _, p := range photos {
		if p.Ref == "" && len(p.Data) == 0 {
			continue
		}
		blocks = append(blocks, layout.Image{Ref: p.Ref, Data: p.Data, Caption: p.Caption})
	}
	return blocks
}

func signatures(people []Participant, fallbackRole, dateFormat string) []layout.Block {
	blocks := make([]layout.Block, 0, len(people))
	for _, p := range people {
		role := p.Role
		if role == "" {
			role = fallbackRole
		}
		blocks = append(blocks, layout.Signature{Label: role, Name: p.Name, Date: formatDatePtr(p.SignedAt, dateFormat)})
	}
	return blocks
}
