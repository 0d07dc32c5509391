package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100">
<rect x="0" y="0" width="200" height="100" fill="#1e3a5f"/></svg>`

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		w, h       float64
		maxW, maxH float64
		wantW      float64
		wantH      float64
	}{
		{"width bound", 2000, 1000, 400, 300, 400, 200},
		{"height bound", 1000, 2000, 400, 300, 150, 300},
		{"both stages", 3000, 1200, 400, 600, 400, 160},
		{"already fits", 100, 50, 400, 300, 100, 50},
		{"unconstrained height", 800, 100, 400, 0, 400, 50},
		{"zero size", 0, 100, 400, 300, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Fit(tt.w, tt.h, tt.maxW, tt.maxH)
			assert.InDelta(t, tt.wantW, w, 1e-9)
			assert.InDelta(t, tt.wantH, h, 1e-9)
			if tt.w > 0 && tt.h > 0 {
				assert.InDelta(t, tt.w/tt.h, w/h, 1e-9, "aspect ratio preserved")
			}
		})
	}
}

func TestFitAspectRatioProperty(t *testing.T) {
	for w := 1.0; w < 5000; w *= 1.7 {
		for h := 1.0; h < 5000; h *= 2.3 {
			fw, fh := Fit(w, h, 451.3, 287.9)
			require.Greater(t, fh, 0.0)
			assert.LessOrEqual(t, fw, 451.3+1e-9)
			assert.LessOrEqual(t, fh, 287.9+1e-9)
			rel := math.Abs(fw/fh-w/h) / (w / h)
			assert.Less(t, rel, 1e-9)
		}
	}
}

func TestDecode(t *testing.T) {
	src := testImage(40, 20)

	var gifBuf, bmpBuf, tiffBuf bytes.Buffer
	require.NoError(t, gif.Encode(&gifBuf, src, nil))
	require.NoError(t, bmp.Encode(&bmpBuf, src))
	require.NoError(t, tiff.Encode(&tiffBuf, src, nil))

	pngData := encodePNG(t, src)
	jpegData := encodeJPEG(t, src)

	tests := []struct {
		name       string
		data       []byte
		hint       string
		wantFormat string
		wantSource string
		passThru   bool
	}{
		{"png", pngData, "png", FormatPNG, "png", true},
		{"jpeg", jpegData, "jpeg", FormatJPG, "jpeg", true},
		{"wrong hint falls back to sniffing", jpegData, "png", FormatJPG, "jpeg", true},
		{"no hint", pngData, "", FormatPNG, "png", true},
		{"gif re-encoded", gifBuf.Bytes(), "gif", FormatPNG, "gif", false},
		{"bmp re-encoded", bmpBuf.Bytes(), "", FormatPNG, "bmp", false},
		{"tiff re-encoded", tiffBuf.Bytes(), "tiff", FormatPNG, "tiff", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(tt.data, tt.hint)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, d.Format)
			assert.Equal(t, tt.wantSource, d.Source)
			assert.Equal(t, 40, d.Width)
			assert.Equal(t, 20, d.Height)
			if tt.passThru {
				assert.Equal(t, tt.data, d.Data)
			} else {
				_, format, err := image.Decode(bytes.NewReader(d.Data))
				require.NoError(t, err)
				assert.Equal(t, "png", format)
			}
		})
	}
}

func TestDecodeSVG(t *testing.T) {
	for _, hint := range []string{"svg", ""} {
		d, err := Decode([]byte(testSVG), hint)
		require.NoError(t, err)
		assert.Equal(t, FormatPNG, d.Format)
		assert.Equal(t, "svg", d.Source)
		assert.InDelta(t, 2.0, float64(d.Width)/float64(d.Height), 0.01)
	}
}

func TestDecode16BitPNGIsReencoded(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 4, 4))
	data := encodePNG(t, img)
	require.False(t, embeddablePNG(data))

	d, err := Decode(data, "png")
	require.NoError(t, err)
	assert.NotEqual(t, data, d.Data)
	assert.True(t, embeddablePNG(d.Data))
}

func TestDecodeFailures(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":      nil,
		"garbage":    []byte("definitely not an image"),
		"truncated":  encodePNG(t, testImage(10, 10))[:20],
		"plain text": []byte("svg but no markup"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data, "png")
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestFormatHint(t *testing.T) {
	assert.Equal(t, "jpeg", FormatHint("uploads/a.JPG"))
	assert.Equal(t, "svg", FormatHint("logo.svg"))
	assert.Equal(t, "webp", FormatHint("data:image/webp;base64,AAAA"))
	assert.Equal(t, "", FormatHint("https://bucket.test/object?id=1"))
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	args := m.Called(ctx, ref)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func TestPrepareKeepsOrderAndSkipsFailures(t *testing.T) {
	first := encodePNG(t, testImage(30, 10))
	third := encodeJPEG(t, testImage(10, 30))

	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, "a.png").After(30*time.Millisecond).Return(first, nil)
	f.On("Fetch", mock.Anything, "broken.png").Return(nil, errors.New("403 forbidden"))
	f.On("Fetch", mock.Anything, "c.jpg").Return(third, nil)

	tasks := []Task{{Ref: "a.png"}, {Ref: "broken.png"}, {Ref: "c.jpg"}, {Ref: "inline", Data: first}}
	results := Prepare(context.Background(), f, tasks, PrepareOptions{Concurrency: 4})

	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, tasks[i].Ref, r.Ref)
	}

	assert.False(t, results[0].Skipped())
	assert.Equal(t, 30, results[0].Image.Width)

	assert.True(t, results[1].Skipped())
	assert.ErrorIs(t, results[1].Err, ErrUnavailable)

	assert.False(t, results[2].Skipped())
	assert.Equal(t, FormatJPG, results[2].Image.Format)

	assert.False(t, results[3].Skipped(), "inline data needs no fetch")

	f.AssertExpectations(t)
	f.AssertNotCalled(t, "Fetch", mock.Anything, "inline")
}

func TestPrepareTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	hanging := FetcherFunc(func(ctx context.Context, ref string) ([]byte, error) {
		<-block // ignores ctx on purpose
		return nil, nil
	})

	start := time.Now()
	results := Prepare(context.Background(), hanging, []Task{{Ref: "slow.png"}}, PrepareOptions{Timeout: 20 * time.Millisecond})
	assert.Less(t, time.Since(start), 2*time.Second)

	require.Len(t, results, 1)
	assert.True(t, results[0].Skipped())
	assert.ErrorIs(t, results[0].Err, ErrUnavailable)
	assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
}

func TestPrepareWithoutFetcher(t *testing.T) {
	results := Prepare(context.Background(), nil, []Task{{Ref: "x.png"}}, PrepareOptions{})
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, ErrUnavailable)
}
