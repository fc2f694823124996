// Package preprocess implements C3: turning a decoded grayscale drawing into
// a binary mask on the canonical canvas, using the same ink-box-then-rescale
// idiom internal/glyph uses for reference glyphs so the two are directly
// comparable.
package preprocess

import (
	"fmt"

	"github.com/learningletters/scoreengine/internal/rasterbuf"
)

// Threshold is the luminance value below which a pixel counts as ink. Fixed
// at 200 (not Otsu or any other adaptive scheme) to preserve scoring
// compatibility across versions of this engine; do not change it without
// also re-deriving every test expectation in this repository.
const Threshold = 200

// MarginTotal mirrors internal/glyph.MarginTotal: the combined background
// margin subtracted from the canvas size to get the ink box's target
// longer-side length.
const MarginTotal = 4

// Preprocess binarizes gray at Threshold, finds its ink bounding box,
// rescales that box with nearest-neighbor sampling so its longer side is
// exactly n-MarginTotal pixels, and centers the result in a fresh n x n
// canvas.
func Preprocess(gray *rasterbuf.GrayImage, n int) (*rasterbuf.BinaryImage, error) {
	box := rasterbuf.InkBounds(gray, Threshold)
	if box.Empty {
		return nil, fmt.Errorf("preprocess: drawing has no ink pixels below threshold %d", Threshold)
	}
	return rasterbuf.ResampleNearestFromGray(gray, box, Threshold, n, n-MarginTotal), nil
}
