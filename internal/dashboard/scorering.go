package dashboard

import "math"

// ringRadius matches the dashboard's score ring geometry.
const ringRadius = 42

// RingCircumference is the stroke length of a full score ring.
var RingCircumference = 2 * math.Pi * ringRadius

// RingOffset maps an employability score in [0, 100] to the stroke dash
// offset: 0 fills the ring completely, the full circumference leaves it
// empty. Scores outside the range are clamped.
func RingOffset(score float64) float64 {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return RingCircumference * (1 - score/100)
}
