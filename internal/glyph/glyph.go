// Package glyph implements C2: rasterizing a single character from caller
// supplied font bytes into a binary mask on the canonical canvas.
//
// Outline decoding and scan conversion are delegated to golang.org/x/image,
// the only pack repo offering a pure-Go, cgo-free TrueType/OpenType decoder:
// agg_go's own font engine (internal/font/freetype2) wraps the FreeType C
// library behind a `freetype` build tag and cannot be compiled to
// WebAssembly, which this engine must be.
package glyph

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/learningletters/scoreengine/internal/rasterbuf"
)

// MarginTotal is the combined background margin ("N-4") subtracted from the
// canvas size to get the ink box's target longer-side length. It
// must match internal/preprocess's constant exactly so the drawn and
// reference masks are directly comparable.
const MarginTotal = 4

// CoverageThreshold is the antialiased coverage value (0-255) at and above
// which a rasterized pixel counts as ink.
const CoverageThreshold = 128

// Sentinel errors the caller (the root scoreengine package) classifies into
// its own Kind values with errors.Is, rather than matching error strings.
var (
	ErrInvalidFont      = errors.New("glyph: invalid font")
	ErrUnknownCharacter = errors.New("glyph: unknown character")
	ErrEmptyGlyph       = errors.New("glyph: empty glyph")
)

// Rasterize parses fontBytes, looks up the glyph for r, scales it so its
// advance-height line maps to 0.8*n pixels, scan-converts its outline, then
// uniformly rescales the resulting ink box so its longer side is exactly
// n-MarginTotal pixels and centers it in an n x n binary canvas.
func Rasterize(fontBytes []byte, r rune, n int) (*rasterbuf.BinaryImage, error) {
	f, err := sfnt.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}

	var buf sfnt.Buffer
	gi, err := f.GlyphIndex(&buf, r)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving glyph index: %v", ErrInvalidFont, err)
	}
	if gi == 0 {
		return nil, fmt.Errorf("%w: font has no glyph for %q", ErrUnknownCharacter, r)
	}

	unitsPerEm := f.UnitsPerEm()
	if unitsPerEm == 0 {
		unitsPerEm = 1000
	}

	// Choose a pixel height so the font's advance-height line maps to
	// hStar = 0.8*n pixels.
	hStar := 0.8 * float64(n)
	metrics, err := f.Metrics(&buf, fixed.Int26_6(unitsPerEm)<<6, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%w: reading font metrics: %v", ErrInvalidFont, err)
	}
	advanceHeightUnits := fixed26ToFloat(metrics.Ascent) + fixed26ToFloat(metrics.Descent)
	if advanceHeightUnits <= 0 {
		advanceHeightUnits = float64(unitsPerEm)
	}
	ppem := fixed.Int26_6(hStar / advanceHeightUnits * float64(unitsPerEm) * 64)

	segs, err := f.LoadGlyph(&buf, gi, ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: loading glyph outline: %v", ErrInvalidFont, err)
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: empty outline for %q", ErrEmptyGlyph, r)
	}

	// Rasterize to an off-screen gray buffer large enough to hold the
	// ink-plus-bearings bounding box (segment coordinates are already in
	// device pixels at the chosen ppem, with y increasing downward and an
	// origin at the glyph's own left side-bearing baseline, which can be
	// negative for descenders or left-of-origin outlines).
	minX, minY, maxX, maxY := boundsOf(segs)
	pad := 2
	w := int(maxX-minX) + 2*pad + 1
	h := int(maxY-minY) + 2*pad + 1
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	rast := vector.NewRasterizer(w, h)
	ox, oy := float32(-minX)+float32(pad), float32(-minY)+float32(pad)
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			rast.MoveTo(
				f26(seg.Args[0].X)+ox,
				f26(seg.Args[0].Y)+oy,
			)
		case sfnt.SegmentOpLineTo:
			rast.LineTo(
				f26(seg.Args[0].X)+ox,
				f26(seg.Args[0].Y)+oy,
			)
		case sfnt.SegmentOpQuadTo:
			rast.QuadTo(
				f26(seg.Args[0].X)+ox, f26(seg.Args[0].Y)+oy,
				f26(seg.Args[1].X)+ox, f26(seg.Args[1].Y)+oy,
			)
		case sfnt.SegmentOpCubeTo:
			rast.CubeTo(
				f26(seg.Args[0].X)+ox, f26(seg.Args[0].Y)+oy,
				f26(seg.Args[1].X)+ox, f26(seg.Args[1].Y)+oy,
				f26(seg.Args[2].X)+ox, f26(seg.Args[2].Y)+oy,
			)
		}
	}
	rast.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	rast.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	gray := alphaToGray(dst)
	threshold := 256 - CoverageThreshold
	box := rasterbuf.InkBounds(gray, threshold)
	if box.Empty {
		return nil, fmt.Errorf("%w: rasterized glyph for %q has no ink", ErrEmptyGlyph, r)
	}

	return rasterbuf.ResampleNearestFromGray(gray, box, threshold, n, n-MarginTotal), nil
}

func f26(v fixed.Int26_6) float32 { return float32(v) / 64 }

func fixed26ToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func boundsOf(segs []sfnt.Segment) (minX, minY, maxX, maxY fixed.Int26_6) {
	first := true
	consider := func(p fixed.Point26_6) {
		if first {
			minX, maxX = p.X, p.X
			minY, maxY = p.Y, p.Y
			first = false
			return
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	for _, s := range segs {
		n := 1
		switch s.Op {
		case sfnt.SegmentOpQuadTo:
			n = 2
		case sfnt.SegmentOpCubeTo:
			n = 3
		}
		for i := 0; i < n; i++ {
			consider(s.Args[i])
		}
	}
	return
}

func alphaToGray(a *image.Alpha) *rasterbuf.GrayImage {
	b := a.Bounds()
	out := rasterbuf.NewGrayImage(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			// Coverage 255 is full ink; invert to luminance (0 = ink) so it
			// composes with the shared threshold-based InkBounds helper.
			out.Set(x, y, 255-a.AlphaAt(b.Min.X+x, b.Min.Y+y).A)
		}
	}
	return out
}

