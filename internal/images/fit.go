package images

// Fit scales a natural size into maxW x maxH, preserving aspect ratio.
// Height is clamped first, then width, so a picture that is both too tall and
// too wide ends up bound by whichever constraint bites last. A max of zero or
// less leaves that dimension unconstrained. Images are never enlarged.
func Fit(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if maxH > 0 && h > maxH {
		scale := maxH / h
		w, h = w*scale, maxH
	}
	if maxW > 0 && w > maxW {
		scale := maxW / w
		w, h = maxW, h*scale
	}
	return w, h
}
