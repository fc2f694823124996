package morph

import (
	"math"
	"testing"

	"github.com/learningletters/scoreengine/internal/rasterbuf"
)

func bruteForceDistance(b *rasterbuf.BinaryImage, x, y int) float64 {
	best := math.Inf(1)
	for sy := 0; sy < b.N; sy++ {
		for sx := 0; sx < b.N; sx++ {
			if !b.At(sx, sy) {
				continue
			}
			d := math.Hypot(float64(sx-x), float64(sy-y))
			if d < best {
				best = d
			}
		}
	}
	return best
}

func TestDistanceTransformMatchesBruteForce(t *testing.T) {
	n := 24
	b := rasterbuf.NewBinaryImage(n)
	b.Set(3, 3, true)
	b.Set(20, 5, true)
	b.Set(10, 18, true)

	df := DistanceTransform(b)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			want := bruteForceDistance(b, x, y)
			got := float64(df.At(x, y))
			if math.Abs(got-want) >= 1e-4 {
				t.Fatalf("DistanceTransform at (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDistanceTransformInkPixelsAreZero(t *testing.T) {
	b := rasterbuf.NewBinaryImage(16)
	b.Set(4, 4, true)
	b.Set(10, 10, true)
	df := DistanceTransform(b)
	if df.At(4, 4) != 0 {
		t.Errorf("ink pixel distance = %v, want 0", df.At(4, 4))
	}
	if df.At(10, 10) != 0 {
		t.Errorf("ink pixel distance = %v, want 0", df.At(10, 10))
	}
}

func TestDistanceTransformAllInkIsZeroEverywhere(t *testing.T) {
	n := 8
	b := rasterbuf.NewBinaryImage(n)
	for i := range b.Pix {
		b.Pix[i] = 1
	}
	df := DistanceTransform(b)
	for _, v := range df.Val {
		if v != 0 {
			t.Fatalf("distance transform of an all-ink mask should be all zero, got %v", v)
		}
	}
}
