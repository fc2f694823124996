// Package rasterbuf provides the dense rectangular pixel buffers the scoring
// pipeline passes between stages. It plays the role agg_go/internal/buffer
// plays for the vector renderer, but for the scoring engine's much narrower
// needs: row-major byte and float32 grids, no stride tricks, no generics.
package rasterbuf

import "fmt"

// GrayImage is an 8-bit per pixel luminance buffer of arbitrary width and
// height. It is produced by the PNG codec and consumed by the preprocessor;
// it never survives past a single Score call.
type GrayImage struct {
	W, H int
	Pix  []uint8 // len(Pix) == W*H, row-major
}

// NewGrayImage allocates a zeroed w x h grayscale buffer.
func NewGrayImage(w, h int) *GrayImage {
	return &GrayImage{W: w, H: h, Pix: make([]uint8, w*h)}
}

// At returns the luminance at (x, y).
func (g *GrayImage) At(x, y int) uint8 {
	return g.Pix[y*g.W+x]
}

// Set stores the luminance at (x, y).
func (g *GrayImage) Set(x, y int, v uint8) {
	g.Pix[y*g.W+x] = v
}

// BinaryImage is a square N x N one-bit-per-pixel mask: 1 is ink, 0 is
// background. Every buffer downstream of the preprocessor and the glyph
// rasterizer is a BinaryImage of the same canonical size N.
type BinaryImage struct {
	N   int
	Pix []uint8 // len(Pix) == N*N, values are 0 or 1, row-major
}

// NewBinaryImage allocates an all-background n x n mask.
func NewBinaryImage(n int) *BinaryImage {
	return &BinaryImage{N: n, Pix: make([]uint8, n*n)}
}

// At reports whether (x, y) is ink. Out-of-bounds coordinates read as
// background, which keeps neighbor-counting code at the image border simple.
func (b *BinaryImage) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.N || y >= b.N {
		return false
	}
	return b.Pix[y*b.N+x] != 0
}

// Set marks (x, y) as ink (v=true) or background (v=false).
func (b *BinaryImage) Set(x, y int, v bool) {
	if v {
		b.Pix[y*b.N+x] = 1
	} else {
		b.Pix[y*b.N+x] = 0
	}
}

// Clone returns an independent copy of b.
func (b *BinaryImage) Clone() *BinaryImage {
	out := &BinaryImage{N: b.N, Pix: make([]uint8, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// Count returns the number of ink pixels.
func (b *BinaryImage) Count() int {
	n := 0
	for _, v := range b.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// DistanceField is a square N x N unsigned Euclidean distance field: each
// entry is the distance, in pixel units, from that pixel to the nearest ink
// pixel of the mask it was computed from. Ink pixels carry distance 0.
type DistanceField struct {
	N   int
	Val []float32 // len(Val) == N*N, row-major
}

// NewDistanceField allocates a zeroed n x n distance field.
func NewDistanceField(n int) *DistanceField {
	return &DistanceField{N: n, Val: make([]float32, n*n)}
}

// At returns the distance at (x, y).
func (d *DistanceField) At(x, y int) float32 {
	return d.Val[y*d.N+x]
}

// BoundingBox is the tightest axis-aligned rectangle enclosing a set of ink
// pixels, expressed in the source buffer's own coordinates. X1/Y1 are
// exclusive (one past the last ink column/row), matching Go's image.Rectangle
// convention so callers can slice with the usual half-open semantics.
type BoundingBox struct {
	X0, Y0, X1, Y1 int
	Empty          bool
}

// Width returns the box's width, or 0 if empty.
func (bb BoundingBox) Width() int {
	if bb.Empty {
		return 0
	}
	return bb.X1 - bb.X0
}

// Height returns the box's height, or 0 if empty.
func (bb BoundingBox) Height() int {
	if bb.Empty {
		return 0
	}
	return bb.Y1 - bb.Y0
}

func (bb BoundingBox) String() string {
	if bb.Empty {
		return "BoundingBox(empty)"
	}
	return fmt.Sprintf("BoundingBox(%d,%d)-(%d,%d)", bb.X0, bb.Y0, bb.X1, bb.Y1)
}

// InkBounds computes the tightest bounding box enclosing every ink pixel of
// g (luminance < threshold counts as ink). Used by both the preprocessor
// (threshold 200) and the glyph rasterizer (antialiased coverage inverted to
// luminance by the caller, with a threshold derived from the coverage
// threshold).
func InkBounds(g *GrayImage, threshold int) BoundingBox {
	x0, y0 := g.W, g.H
	x1, y1 := -1, -1
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if int(g.At(x, y)) < threshold {
				if x < x0 {
					x0 = x
				}
				if y < y0 {
					y0 = y
				}
				if x+1 > x1 {
					x1 = x + 1
				}
				if y+1 > y1 {
					y1 = y + 1
				}
			}
		}
	}
	if x1 < 0 {
		return BoundingBox{Empty: true}
	}
	return BoundingBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// BinaryInkBounds computes the tightest bounding box enclosing every ink
// pixel of a BinaryImage.
func BinaryInkBounds(b *BinaryImage) BoundingBox {
	x0, y0 := b.N, b.N
	x1, y1 := -1, -1
	for y := 0; y < b.N; y++ {
		for x := 0; x < b.N; x++ {
			if b.At(x, y) {
				if x < x0 {
					x0 = x
				}
				if y < y0 {
					y0 = y
				}
				if x+1 > x1 {
					x1 = x + 1
				}
				if y+1 > y1 {
					y1 = y + 1
				}
			}
		}
	}
	if x1 < 0 {
		return BoundingBox{Empty: true}
	}
	return BoundingBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// ResampleNearestFromGray rescales the ink box (src, srcBox) — a pixel is
// ink iff its luminance is below threshold — into a fresh n x n
// all-background canvas, centered on (n/2, n/2), using nearest-neighbor
// sampling only. Bilinear resampling is forbidden here: it would reintroduce
// gray values the pipeline has already binarized away.
//
// srcBox is always rescaled uniformly so its longer side becomes exactly
// targetMax pixels: both the glyph rasterizer and the drawing preprocessor
// apply this same normalization, which is what lets a rendered reference
// glyph, re-submitted as a drawing, reproduce byte-identical ink after
// preprocessing regardless of the font's natural glyph proportions.
func ResampleNearestFromGray(src *GrayImage, srcBox BoundingBox, threshold, n, targetMax int) *BinaryImage {
	out := NewBinaryImage(n)
	if srcBox.Empty {
		return out
	}
	w, h := srcBox.Width(), srcBox.Height()

	m := maxInt(w, h)
	scale := float64(targetMax) / float64(m)
	dstW := int(float64(w)*scale + 0.5)
	dstH := int(float64(h)*scale + 0.5)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	offX := (n - dstW) / 2
	offY := (n - dstH) / 2

	for dy := 0; dy < dstH; dy++ {
		sy := srcBox.Y0 + int(float64(dy)/scale)
		if sy >= srcBox.Y1 {
			sy = srcBox.Y1 - 1
		}
		for dx := 0; dx < dstW; dx++ {
			sx := srcBox.X0 + int(float64(dx)/scale)
			if sx >= srcBox.X1 {
				sx = srcBox.X1 - 1
			}
			if int(src.At(sx, sy)) < threshold {
				out.Set(offX+dx, offY+dy, true)
			}
		}
	}
	return out
}

// ResampleCanvas nearest-neighbor resamples an entire N x N binary canvas to
// a size x size canvas, with no ink-box recentering: every destination pixel
// maps back to its nearest source pixel. Used by RenderReference to produce
// an output PNG at a caller-chosen size from the canonical N x N rasterized
// glyph.
func ResampleCanvas(src *BinaryImage, size int) *BinaryImage {
	out := NewBinaryImage(size)
	if src.N == 0 {
		return out
	}
	for dy := 0; dy < size; dy++ {
		sy := dy * src.N / size
		if sy >= src.N {
			sy = src.N - 1
		}
		for dx := 0; dx < size; dx++ {
			sx := dx * src.N / size
			if sx >= src.N {
				sx = src.N - 1
			}
			if src.At(sx, sy) {
				out.Set(dx, dy, true)
			}
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
