package morph

import (
	"math"

	"github.com/learningletters/scoreengine/internal/rasterbuf"
)

const inf = 1e20

// DistanceTransform computes the exact unsigned 2-D Euclidean distance
// transform of b: ink pixels get distance 0, every other pixel gets the
// Euclidean distance (in pixel units) to the nearest ink pixel. Uses the
// two-pass separable algorithm of Felzenszwalb & Huttenlocher (squared
// distance transform along columns, then along rows), which is exact, not
// an approximation — chamfer masks (3-4, 5-7-11) are not used here because
// they bias the downstream Chamfer-closeness metric.
func DistanceTransform(b *rasterbuf.BinaryImage) *rasterbuf.DistanceField {
	n := b.N
	sq := make([]float64, n*n)
	for i, v := range b.Pix {
		if v != 0 {
			sq[i] = 0
		} else {
			sq[i] = inf
		}
	}

	col := make([]float64, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = sq[y*n+x]
		}
		col = edt1D(col)
		for y := 0; y < n; y++ {
			sq[y*n+x] = col[y]
		}
	}

	row := make([]float64, n)
	for y := 0; y < n; y++ {
		copy(row, sq[y*n:y*n+n])
		row = edt1D(row)
		copy(sq[y*n:y*n+n], row)
	}

	out := rasterbuf.NewDistanceField(n)
	for i, v := range sq {
		out.Val[i] = float32(sqrtApprox(v))
	}
	return out
}

func sqrtApprox(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

// edt1D computes the 1-D lower envelope of parabolas rooted at each sample
// of f (the classic Felzenszwalb-Huttenlocher distance transform of
// sampled functions), returning the squared distance transform.
func edt1D(f []float64) []float64 {
	n := len(f)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	k := 0
	v[0] = 0
	z[0] = -inf
	z[1] = inf

	for q := 1; q < n; q++ {
		s := intersection(f, v[k], q)
		for s <= z[k] {
			k--
			s = intersection(f, v[k], q)
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = inf
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dx := float64(q - v[k])
		d[q] = dx*dx + f[v[k]]
	}
	return d
}

func intersection(f []float64, p, q int) float64 {
	fp, fq := f[p], f[q]
	if fp >= inf && fq >= inf {
		return inf
	}
	return ((fq + float64(q*q)) - (fp + float64(p*p))) / (2 * float64(q-p))
}
