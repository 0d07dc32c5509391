package images

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/mroizo75/hmsnova-reportgen/internal/res"
)

// The codec imports above also register every raster format with
// image.Decode, which sniffing relies on.

// Embed formats understood by the PDF backend
const (
	FormatPNG = "PNG"
	FormatJPG = "JPG"
)

// svgRasterSize is the long edge in pixels used when rasterizing SVG
const svgRasterSize = 1024

// Decoded is an image ready to embed
type Decoded struct {
	Data   []byte
	Format string
	Width  int
	Height int
	Source string // codec that accepted the bytes
}

type decodeFunc func(data []byte) (image.Image, error)

var decoders = map[string]decodeFunc{
	"png":  readerDecoder(png.Decode),
	"jpeg": readerDecoder(jpeg.Decode),
	"gif":  readerDecoder(gif.Decode),
	"bmp":  readerDecoder(bmp.Decode),
	"tiff": readerDecoder(tiff.Decode),
	"webp": readerDecoder(webp.Decode),
	"svg":  rasterizeSVG,
}

func readerDecoder(fn func(r io.Reader) (image.Image, error)) decodeFunc {
	return func(data []byte) (image.Image, error) {
		return fn(bytes.NewReader(data))
	}
}

// FormatHint returns the codec name suggested by a reference's extension or
// data URL mime type, or "" when nothing is suggested.
func FormatHint(ref string) string {
	mime := res.MimeType(ref)
	switch mime {
	case "image/svg+xml":
		return "svg"
	case "image/jpeg", "image/png", "image/gif", "image/bmp", "image/tiff", "image/webp":
		return strings.TrimPrefix(mime, "image/")
	}
	return ""
}

// Decode decodes data, trying the hinted codec first, then the registered
// codecs by content sniffing, then SVG rasterization. JPEG and 8-bit
// non-interlaced PNG are embedded as-is; everything else is re-encoded as PNG.
func Decode(data []byte, hint string) (*Decoded, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrUnavailable)
	}

	if fn, ok := decoders[hint]; ok {
		if img, err := fn(data); err == nil {
			return prepare(data, img, hint)
		}
	}

	if img, format, err := image.Decode(bytes.NewReader(data)); err == nil {
		return prepare(data, img, format)
	}

	if hint != "svg" {
		if img, err := rasterizeSVG(data); err == nil {
			return prepare(data, img, "svg")
		}
	}

	return nil, fmt.Errorf("%w: unrecognized image format", ErrUnavailable)
}

func prepare(data []byte, img image.Image, format string) (*Decoded, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero-sized %s image", ErrUnavailable, format)
	}
	d := &Decoded{Width: b.Dx(), Height: b.Dy(), Source: format}

	switch {
	case format == "jpeg":
		d.Data, d.Format = data, FormatJPG
		return d, nil
	case format == "png" && embeddablePNG(data):
		d.Data, d.Format = data, FormatPNG
		return d, nil
	}

	// re-encode at 8 bits per channel; the backend rejects 16-bit PNG
	rgba := image.NewNRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("%w: failed to re-encode %s: %v", ErrUnavailable, format, err)
	}
	d.Data, d.Format = buf.Bytes(), FormatPNG
	return d, nil
}

// embeddablePNG reports whether the IHDR chunk declares at most 8 bits per
// channel and no interlacing
func embeddablePNG(data []byte) bool {
	// signature(8) length(4) "IHDR"(4) width(4) height(4) depth(1) color(1) comp(1) filter(1) interlace(1)
	if len(data) < 29 || string(data[12:16]) != "IHDR" {
		return false
	}
	return data[24] <= 8 && data[28] == 0
}

// rasterizeSVG renders an SVG document to RGBA with oksvg
func rasterizeSVG(data []byte) (image.Image, error) {
	if !bytes.Contains(data, []byte("<svg")) {
		return nil, fmt.Errorf("not an svg document")
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = svgRasterSize, svgRasterSize
	}
	scale := svgRasterSize / max(vw, vh)
	w, h := int(vw*scale+0.5), int(vh*scale+0.5)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("degenerate svg viewbox")
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
