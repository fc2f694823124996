package morph

import "github.com/learningletters/scoreengine/internal/rasterbuf"

// Renormalize re-thickens a skeleton to a uniform diameter by stamping a
// filled disk of that diameter at every skeleton pixel. This neutralizes pen-
// width / font-stroke-width differences before ink-vs-ink comparison: raw
// IoU on the original binarized masks over-penalizes thickness mismatches
// that have nothing to do with shape.
func Renormalize(skeleton *rasterbuf.BinaryImage, diameter int) *rasterbuf.BinaryImage {
	out := rasterbuf.NewBinaryImage(skeleton.N)
	radius := float64(diameter) / 2

	offsets := diskOffsets(radius)
	for y := 0; y < skeleton.N; y++ {
		for x := 0; x < skeleton.N; x++ {
			if !skeleton.At(x, y) {
				continue
			}
			for _, o := range offsets {
				px, py := x+o[0], y+o[1]
				if px >= 0 && py >= 0 && px < out.N && py < out.N {
					out.Set(px, py, true)
				}
			}
		}
	}
	return out
}

// diskOffsets enumerates the integer pixel offsets lying within radius of
// the origin, i.e. the stamp shape for a disk of the given radius.
func diskOffsets(radius float64) [][2]int {
	r := int(radius + 0.999)
	var offs [][2]int
	rr := radius * radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= rr {
				offs = append(offs, [2]int{dx, dy})
			}
		}
	}
	return offs
}
