package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Ingen avvik", "Ingen avvik"},
		{"paragraphs", "<p>Første</p><p>Andre   linje</p>", "Første\nAndre linje"},
		{"line break", "a<br>b", "a\nb"},
		{"inline markup", "<p>Bruk <strong>hjelm</strong> og <em>vernesko</em></p>", "Bruk hjelm og vernesko"},
		{"list", "<ul><li>Sperr av</li><li>Varsle</li></ul>", "• Sperr av\n• Varsle"},
		{"script dropped", "<p>ok</p><script>alert(1)</script>", "ok"},
		{"entities", "A &amp; B &lt; C", "A & B < C"},
		{"table cells", "<table><tr><td>a</td><td>b</td></tr></table>", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlainText(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParserBullet(t *testing.T) {
	p := NewParser()
	p.Bullet = "- "
	doc, err := p.ParseString("<ol><li>one</li></ol>")
	require.NoError(t, err)
	assert.Equal(t, "- one", doc.Text())
}
