// Package codec implements C1: decoding submitted PNG drawings to grayscale
// and encoding binary reference masks back to PNG. It follows the same
// image/png usage agg_go's images.go relies on for its own load/save paths
// (no third-party PNG library appears anywhere in the retrieval pack).
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/learningletters/scoreengine/internal/rasterbuf"
)

// MaxDimension is the largest width or height accepted for a decoded image.
const MaxDimension = 4096

// Decode parses PNG bytes into an 8-bit grayscale image. Color inputs are
// converted to luminance with the standard broadcast-TV coefficients
// (0.299R + 0.587G + 0.114B); alpha, if present, is composited over a white
// background first so fully transparent pixels read as background, not ink.
func Decode(data []byte) (*rasterbuf.GrayImage, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: not a valid PNG: %w", err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > MaxDimension || h > MaxDimension {
		return nil, fmt.Errorf("codec: image %dx%d exceeds maximum dimension %d", w, h, MaxDimension)
	}

	out := rasterbuf.NewGrayImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bch, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// RGBA() returns 16-bit premultiplied-alpha values in [0, 0xffff].
			// Un-premultiply, then composite over white.
			var rr, gg, bb float64
			if a == 0 {
				rr, gg, bb = 0xffff, 0xffff, 0xffff
			} else {
				rr = float64(r) * 0xffff / float64(a)
				gg = float64(g) * 0xffff / float64(a)
				bb = float64(bch) * 0xffff / float64(a)
			}
			af := float64(a) / 0xffff
			rr = rr*af + 0xffff*(1-af)
			gg = gg*af + 0xffff*(1-af)
			bb = bb*af + 0xffff*(1-af)

			lum := 0.299*rr + 0.587*gg + 0.114*bb
			out.Set(x, y, uint8(lum/0xffff*255+0.5))
		}
	}
	return out, nil
}

// Encode renders a binary mask (ink=1) as an 8-bit single-channel PNG with
// ink mapped to 0 (black) and background to 255 (white).
func Encode(b *rasterbuf.BinaryImage) ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, b.N, b.N))
	for y := 0; y < b.N; y++ {
		for x := 0; x < b.N; x++ {
			if b.At(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("codec: encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
