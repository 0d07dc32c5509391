package pdf

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroizo75/hmsnova-reportgen/internal/draw"
	"github.com/mroizo75/hmsnova-reportgen/internal/pagination"
	"github.com/mroizo75/hmsnova-reportgen/internal/text"
)

func testPlan(t *testing.T, pages int) *pagination.Plan {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 20, 10))))

	size := pagination.PageSizeA4
	plan := &pagination.Plan{Size: size, Margins: pagination.Margins{Top: 40, Right: 40, Bottom: 50, Left: 40}}
	for i := 0; i < pages; i++ {
		page := &pagination.Page{Number: i + 1, Width: size.Width, Height: size.Height}
		page.Add(
			draw.Text{X: 40, Y: 40, Text: "Vernerunde – Lager 3 ÆØÅ", Font: draw.Font{Style: "B", Size: 14}},
			draw.Rect{X: 40, Y: 60, W: 100, H: 20, Fill: draw.Color{R: 30, G: 58, B: 95}, Style: "F"},
			draw.Rect{X: 40, Y: 90, W: 100, H: 20, Stroke: draw.Color{R: 200}, Style: "D"},
			draw.Line{X1: 40, Y1: 120, X2: 300, Y2: 120},
			draw.Polygon{Points: []draw.Point{{X: 100, Y: 200}, {X: 150, Y: 200}, {X: 100, Y: 250}}, Fill: draw.Color{G: 160}},
			// the same image name on every page is registered once
			draw.Image{Name: "img0", Data: buf.Bytes(), Format: "PNG", X: 40, Y: 300, W: 40, H: 20},
		)
		plan.Pages = append(plan.Pages, page)
	}
	return plan
}

func TestRender(t *testing.T) {
	plan := testPlan(t, 3)
	require.NoError(t, plan.StampFooters(text.PDFMeasurer(), pagination.FooterStyle{Font: draw.Font{Size: 8}},
		pagination.DefaultFooterLabels(), time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)))

	r := NewRenderer()
	r.Compress = false
	data, err := r.Render(context.Background(), plan, RenderOptions{
		Title:        "Vernerunde",
		Producer:     "reportgen",
		CreationDate: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "/Count 3")
	assert.Contains(t, string(data), "Page 3 of 3")
	assert.Contains(t, string(data), "(Generated 2026-03-14 09:30)")
}

func TestRenderIsDeterministic(t *testing.T) {
	opts := RenderOptions{Title: "T", CreationDate: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	a, err := NewRenderer().Render(context.Background(), testPlan(t, 2), opts)
	require.NoError(t, err)
	b, err := NewRenderer().Render(context.Background(), testPlan(t, 2), opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderErrors(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render(context.Background(), nil, RenderOptions{})
	assert.ErrorIs(t, err, ErrEmptyPlan)
	_, err = r.Render(context.Background(), &pagination.Plan{}, RenderOptions{})
	assert.ErrorIs(t, err, ErrEmptyPlan)

	plan := testPlan(t, 1)
	plan.Pages[0].Add(draw.Image{Name: "broken", Data: []byte("not a png"), Format: "PNG", W: 10, H: 10})
	_, err = r.Render(context.Background(), plan, RenderOptions{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Render(ctx, testPlan(t, 1), RenderOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteFile(t *testing.T) {
	data, err := NewRenderer().Render(context.Background(), testPlan(t, 1), RenderOptions{})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "nested", "report.pdf")
	require.NoError(t, WriteFile(out, data))

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(written, []byte("%PDF-")))

	assert.Error(t, WriteFile(filepath.Join(out, "below-a-file.pdf"), data))
}
