// Package scoreengine implements a deterministic handwriting scoring engine:
// it compares a raster image of a child's drawing of a single Latin letter
// or digit against a glyph rendered from a caller-supplied font, and returns
// a numeric quality score, star rating, short feedback label, and a PNG of
// the reference glyph.
//
// The engine is synchronous and holds no state between calls: every Score
// or RenderReference call parses its own font bytes, allocates its own
// working buffers, and returns either a result or an error. Concurrent calls
// on independent goroutines do not interact.
package scoreengine

import (
	"errors"

	"github.com/learningletters/scoreengine/internal/codec"
	"github.com/learningletters/scoreengine/internal/glyph"
	"github.com/learningletters/scoreengine/internal/morph"
	"github.com/learningletters/scoreengine/internal/preprocess"
	"github.com/learningletters/scoreengine/internal/rasterbuf"
	"github.com/learningletters/scoreengine/internal/scorer"
)

// CanvasSize is the side length of the canonical working canvas every
// drawing and reference glyph is normalized into before comparison. It must
// stay in sync between any two buffers being compared.
const CanvasSize = 128

// LineDiameter is the target stroke thickness (t) every renormalized mask is
// re-thickened to before ink-vs-ink comparison.
const LineDiameter = 4

// ScoreResult is the outcome of a successful Score call. Fields are a
// stable, name-addressed schema: callers should read by field, not by
// position.
type ScoreResult struct {
	Score          int    // overall quality, 0-100
	Stars          int    // star rating, 1-5
	Feedback       string // one of the five fixed feedback strings
	Coverage       int    // 0-100, diagnostic
	Accuracy       int    // 0-100, diagnostic
	Similarity     int    // 0-100, diagnostic
	ReferenceImage []byte // PNG of the rendered reference glyph, ink=0/background=255
}

// Score compares a drawing (PNG bytes) against the glyph for character,
// rendered from fontBytes, and returns a ScoreResult. character must be a
// single Unicode scalar value denoting the target letter or digit.
func Score(imagePNG []byte, character rune, fontBytes []byte) (ScoreResult, error) {
	gray, err := codec.Decode(imagePNG)
	if err != nil {
		return ScoreResult{}, newError(InvalidImage, "%v", err)
	}

	drawn, err := preprocess.Preprocess(gray, CanvasSize)
	if err != nil {
		return ScoreResult{}, newError(EmptyDrawing, "%v", err)
	}

	reference, err := rasterizeReference(character, fontBytes, CanvasSize)
	if err != nil {
		return ScoreResult{}, err
	}

	drawnSkeleton := morph.Thin(drawn)
	drawnMask := morph.Renormalize(drawnSkeleton, LineDiameter)

	refSkeleton := morph.Thin(reference)
	refMask := morph.Renormalize(refSkeleton, LineDiameter)

	refDistance := morph.DistanceTransform(refMask)

	metrics := scorer.Compute(drawnMask, refMask, refDistance, CanvasSize)
	score, stars, feedback := scorer.Finalize(metrics, drawnMask.Count())

	refPNG, err := codec.Encode(reference)
	if err != nil {
		return ScoreResult{}, newError(InvalidImage, "encoding reference glyph: %v", err)
	}

	return ScoreResult{
		Score:          score,
		Stars:          stars,
		Feedback:       feedback,
		Coverage:       percentage(metrics.Coverage),
		Accuracy:       percentage(metrics.Accuracy),
		Similarity:     percentage(metrics.Similarity),
		ReferenceImage: refPNG,
	}, nil
}

// RenderReference rasterizes character from fontBytes and returns it as a
// size x size PNG, ink=0/background=255. It rasterizes at the engine's
// canonical size and then nearest-neighbor resamples to size, the same
// resampling rule C3 uses so the visual result stays consistent with what
// Score compares against.
func RenderReference(character rune, fontBytes []byte, size int) ([]byte, error) {
	if size < 8 || size > 4096 {
		return nil, newError(InvalidSize, "size %d out of range [8, 4096]", size)
	}

	reference, err := rasterizeReference(character, fontBytes, CanvasSize)
	if err != nil {
		return nil, err
	}

	resized := rasterbuf.ResampleCanvas(reference, size)
	out, err := codec.Encode(resized)
	if err != nil {
		return nil, newError(InvalidSize, "encoding reference glyph: %v", err)
	}
	return out, nil
}

func rasterizeReference(character rune, fontBytes []byte, n int) (*rasterbuf.BinaryImage, error) {
	reference, err := glyph.Rasterize(fontBytes, character, n)
	if err != nil {
		return nil, classifyGlyphError(err)
	}
	return reference, nil
}

func classifyGlyphError(err error) error {
	switch {
	case errors.Is(err, glyph.ErrInvalidFont):
		return newError(InvalidFont, "%v", err)
	case errors.Is(err, glyph.ErrUnknownCharacter):
		return newError(UnknownCharacter, "%v", err)
	case errors.Is(err, glyph.ErrEmptyGlyph):
		return newError(EmptyGlyph, "%v", err)
	default:
		return newError(InvalidFont, "%v", err)
	}
}

func percentage(v float64) int {
	p := int(v*100 + 0.5)
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}
