// Package html flattens rich-text fragments produced by the web editor into
// plain text that the layout engine can wrap.
package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parser represents an HTML fragment parser
type Parser struct {
	// Bullet prefixes list items
	Bullet string
}

// Document represents a parsed HTML fragment
type Document struct {
	Root   *html.Node
	bullet string
}

// NewParser creates a new HTML parser
func NewParser() *Parser {
	return &Parser{Bullet: "• "}
}

// ParseString parses HTML from a string
func (p *Parser) ParseString(content string) (*Document, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses HTML from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{Root: node, bullet: p.Bullet}, nil
}

// blockAtoms end the current line when they close
var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Li: true, atom.Ul: true, atom.Ol: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Tr: true, atom.Table: true,
}

// Text returns the document as plain text. Block elements become line
// breaks, list items get a bullet and table cells are tab separated.
func (d *Document) Text() string {
	var b strings.Builder
	d.walk(&b, d.Root)
	return tidyLines(b.String())
}

func (d *Document) walk(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head:
			return
		case atom.Br:
			b.WriteString("\n")
			return
		case atom.Li:
			b.WriteString("\n" + d.bullet)
		case atom.Td, atom.Th:
			if n.PrevSibling != nil {
				b.WriteString(" ")
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walk(b, c)
	}

	if n.Type == html.ElementNode && blockAtoms[n.DataAtom] {
		b.WriteString("\n")
	}
}

// tidyLines collapses whitespace inside lines and drops blank lines
func tidyLines(s string) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// PlainText parses an HTML fragment and returns its text content
func PlainText(fragment string) (string, error) {
	doc, err := NewParser().ParseString(fragment)
	if err != nil {
		return "", err
	}
	return doc.Text(), nil
}
