// Package scorer implements C5: combining two renormalized ink masks and the
// reference mask's distance field into coverage, accuracy, and similarity
// metrics, and
// folding those into the final score, star rating, and feedback label.
package scorer

import "github.com/learningletters/scoreengine/internal/rasterbuf"

// Metrics holds the three shape-comparison metrics, each clamped to [0, 1].
type Metrics struct {
	Coverage   float64
	Accuracy   float64
	Similarity float64
}

// Compute measures d (drawn) against r (reference), using their
// renormalized masks and dfR, the distance field of r. n is the canonical
// canvas size
// (used to derive the Chamfer closeness normalization constant tau = n/8).
func Compute(d, r *rasterbuf.BinaryImage, dfR *rasterbuf.DistanceField, n int) Metrics {
	intersection, unionCount := 0, 0
	rCount, dCount := 0, 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			inD := d.At(x, y)
			inR := r.At(x, y)
			if inD {
				dCount++
			}
			if inR {
				rCount++
			}
			if inD && inR {
				intersection++
			}
			if inD || inR {
				unionCount++
			}
		}
	}

	var coverage, accuracy, iou float64
	if rCount > 0 {
		coverage = clamp01(float64(intersection) / float64(rCount))
	}
	if dCount > 0 {
		accuracy = clamp01(float64(intersection) / float64(dCount))
	}
	if unionCount > 0 {
		iou = clamp01(float64(intersection) / float64(unionCount))
	}

	tau := float64(n) / 8
	chamferCloseness := 1.0
	if dCount > 0 {
		sum := 0.0
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if d.At(x, y) {
					sum += float64(dfR.At(x, y))
				}
			}
		}
		mean := sum / float64(dCount)
		chamferCloseness = 1 - min1(mean/tau)
	}

	similarity := clamp01(0.5*iou + 0.5*chamferCloseness)

	return Metrics{
		Coverage:   coverage,
		Accuracy:   accuracy,
		Similarity: similarity,
	}
}

// Finalize combines m into the 0-100 integer score, derives the star rating
// and feedback string from the fixed table, and reports |D|=0 as a hard
// score of 0 regardless of the other metrics.
func Finalize(m Metrics, drawnInkCount int) (score, stars int, feedback string) {
	if drawnInkCount == 0 {
		return 0, 1, feedbackFor(0)
	}
	raw := 100 * (0.35*m.Coverage + 0.35*m.Accuracy + 0.30*m.Similarity)
	score = roundToInt(raw)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	stars = starsFor(score)
	feedback = feedbackFor(score)
	return
}

func starsFor(score int) int {
	switch {
	case score >= 80:
		return 5
	case score >= 65:
		return 4
	case score >= 50:
		return 3
	case score >= 30:
		return 2
	default:
		return 1
	}
}

func feedbackFor(score int) string {
	switch {
	case score >= 80:
		return "Amazing! Perfect!"
	case score >= 65:
		return "Great job!"
	case score >= 50:
		return "Good work!"
	case score >= 30:
		return "Nice try!"
	default:
		return "Keep practicing!"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

func roundToInt(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}
