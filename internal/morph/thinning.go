// Package morph implements C4: Zhang-Suen skeletonization, skeleton
// re-thickening, and the Felzenszwalb-Huttenlocher exact Euclidean distance
// transform. These are the numeric, tight-loop routines that matter most for
// performance (the pipeline is compiled to WebAssembly), so they operate
// directly on rasterbuf's flat byte/float32 slices rather than through any
// interface indirection — the same texture agg_go's own internal/basics math
// helpers use (plain functions over plain slices, no generics where a
// concrete numeric type suffices).
package morph

import "github.com/learningletters/scoreengine/internal/rasterbuf"

// neighbor offsets in cyclic order: N, NE, E, SE, S, SW, W, NW (clockwise
// from north).
var neighborDX = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
var neighborDY = [8]int{-1, -1, 0, 1, 1, 1, 0, -1}

// Thin reduces b to a one-pixel-wide skeleton using Zhang-Suen parallel
// thinning. Each pass evaluates both subiterations against the
// pre-subiteration neighborhood and deletes the marked pixels in bulk
// afterward; evaluating and deleting pixel-by-pixel would let a deletion in
// one part of the image affect the neighbor count used to decide a deletion
// elsewhere in the same pass, producing asymmetric skeletons. Border pixels
// (the outermost ring) are never candidates for deletion, since their
// neighbor count cannot be evaluated in full.
func Thin(b *rasterbuf.BinaryImage) *rasterbuf.BinaryImage {
	out := b.Clone()
	n := out.N

	toDelete := make([]bool, n*n)
	for {
		changed := false

		for sub := 0; sub < 2; sub++ {
			for i := range toDelete {
				toDelete[i] = false
			}
			anyMarked := false
			for y := 1; y < n-1; y++ {
				for x := 1; x < n-1; x++ {
					if !out.At(x, y) {
						continue
					}
					if shouldDelete(out, x, y, sub) {
						toDelete[y*n+x] = true
						anyMarked = true
					}
				}
			}
			if !anyMarked {
				continue
			}
			for i, del := range toDelete {
				if del {
					out.Pix[i] = 0
					changed = true
				}
			}
		}

		if !changed {
			break
		}
	}
	return out
}

// shouldDelete evaluates the Zhang-Suen deletion predicate for ink pixel
// (x, y) against subiteration sub (0 or 1), reading only out's current
// (pre-this-subiteration) state.
func shouldDelete(out *rasterbuf.BinaryImage, x, y, sub int) bool {
	var ring [8]bool
	for k := 0; k < 8; k++ {
		ring[k] = out.At(x+neighborDX[k], y+neighborDY[k])
	}

	b := 0
	for _, v := range ring {
		if v {
			b++
		}
	}
	if b < 2 || b > 6 {
		return false
	}

	a := 0
	for k := 0; k < 8; k++ {
		if !ring[k] && ring[(k+1)%8] {
			a++
		}
	}
	if a != 1 {
		return false
	}

	// ring indices: 0=N 1=NE 2=E 3=SE 4=S 5=SW 6=W 7=NW
	north, east, south, west := ring[0], ring[2], ring[4], ring[6]
	if sub == 0 {
		if north && east && south {
			return false
		}
		if east && south && west {
			return false
		}
	} else {
		if north && east && west {
			return false
		}
		if north && south && west {
			return false
		}
	}
	return true
}
