package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroizo75/hmsnova-reportgen/internal/layout"
)

const documentYAML = `
kind: Internkontroll
title: Årlig gjennomgang
company:
  name: Byggmester AS
  org_number: "912 345 678"
sections:
  - blocks:
      - type: cover
        title: Årlig gjennomgang
        logo: logo.png
        meta:
          - {label: Dato, value: 14.03.2026}
      - type: stats
        items:
          - {label: Avvik, value: "2"}
  - title: Status
    blocks:
      - type: pie-chart
        title: Fordeling
        slices:
          - {label: OK, count: 8, color: "#16a34a"}
          - {label: Avvik, count: 2}
      - type: checklist
        groups:
          - category: Brann
            items:
              - {question: Slukkeutstyr?, status: avvik, comment: Utgått}
      - type: table
        headers: [Tiltak, Ansvarlig]
        rows:
          - [Bytt slukkeutstyr, Ola]
        weights: [3, 1]
      - type: page_break
      - type: paragraph
        text: "<p>Neste <b>gjennomgang</b> i mars</p>"
        rich_text: true
      - type: image
        ref: bilde.jpg
        caption: Lager
        max_height: 200
      - type: spacer
        height: 24
      - type: signature
        label: Ansvarlig
        name: Ola Hansen
`

func TestDocumentRequest(t *testing.T) {
	var doc Document
	require.NoError(t, DecodeYAML(strings.NewReader(documentYAML), &doc))

	req, err := doc.Request()
	require.NoError(t, err)
	assert.Equal(t, "Internkontroll", req.Kind)
	assert.Equal(t, "912 345 678", req.Company.OrgNumber)
	require.Len(t, req.Sections, 2)

	cover := req.Sections[0].Blocks[0].(layout.Cover)
	assert.Equal(t, "Byggmester AS", cover.Company.Name)
	assert.Equal(t, &layout.Image{Ref: "logo.png"}, cover.Logo)
	assert.Equal(t, []layout.KeyValue{{Label: "Dato", Value: "14.03.2026"}}, cover.Meta)
	assert.Equal(t, layout.Stats{Items: []layout.Stat{{Label: "Avvik", Value: "2"}}}, req.Sections[0].Blocks[1])

	blocks := req.Sections[1].Blocks
	require.Len(t, blocks, 8)
	assert.Equal(t, layout.PieChart{Title: "Fordeling", Slices: []layout.Slice{
		{Label: "OK", Count: 8, Color: "#16a34a"},
		{Label: "Avvik", Count: 2},
	}}, blocks[0])
	checklist := blocks[1].(layout.Checklist)
	assert.Equal(t, layout.ChecklistItem{Question: "Slukkeutstyr?", Status: layout.StatusDeviation, Comment: "Utgått"}, checklist.Groups[0].Items[0])
	assert.Equal(t, []float64{3, 1}, blocks[2].(layout.Table).Weights)
	assert.Equal(t, layout.PageBreak{}, blocks[3])
	assert.True(t, blocks[4].(layout.Paragraph).RichText)
	assert.Equal(t, layout.Image{Ref: "bilde.jpg", Caption: "Lager", MaxHeight: 200}, blocks[5])
	assert.Equal(t, layout.Spacer{Height: 24}, blocks[6])
	assert.Equal(t, layout.Signature{Label: "Ansvarlig", Name: "Ola Hansen"}, blocks[7])
}

func TestDocumentErrors(t *testing.T) {
	var doc Document
	err := DecodeYAML(strings.NewReader("title: x\nsections:\n  - blocks:\n      - type: video\n"), &doc)
	require.NoError(t, err)
	_, err = doc.Request()
	assert.ErrorIs(t, err, ErrUnknownBlock)
	assert.Contains(t, err.Error(), "section 1 block 1")

	assert.Error(t, DecodeYAML(strings.NewReader("title: x\ncolour: red\n"), &Document{}), "unknown keys are rejected")
	assert.Error(t, DecodeYAML(strings.NewReader(""), &Document{}))

	_, err = (&Document{}).Request()
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestDecodeSafetyRound(t *testing.T) {
	in := `
title: Lager 3
date: 2026-03-14
inspector: Kari Nordmann
items:
  - {category: Brann, question: Nødutganger merket?, status: ok}
  - {category: Orden, question: Ryddige gangveier?, status: Avvik, comment: Paller}
  - {category: Orden, question: Merking?, status: n/a}
findings:
  - title: Paller i gang
    due_date: 2026-04-01
participants:
  - {name: Per, role: Verneombud, signed_at: 2026-03-14T10:00:00Z}
`
	var r SafetyRound
	require.NoError(t, DecodeYAML(strings.NewReader(in), &r))

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), r.Date)
	assert.Equal(t, StatusCounts{Total: 3, OK: 1, Deviation: 1, NA: 1}, CountStatuses(r.Items))
	require.NotNil(t, r.Findings[0].DueDate)
	assert.Equal(t, 4, int(r.Findings[0].DueDate.Month()))
	require.NotNil(t, r.Participants[0].SignedAt)
}
