package tournamentdomain

import "math"

// RoundHandicap rounds a handicap index half-up to the playing handicap
// used for stroke allocation (22.5 -> 23, 38.7 -> 39).
func RoundHandicap(handicapIndex float64) int {
	return int(math.Floor(handicapIndex + 0.5))
}

// StrokesReceived returns the handicap strokes a player receives on a hole.
//
// Every player gets floor(h/18) strokes on each hole, plus one more on the
// holes whose stroke index falls within h mod 18. A rounded handicap of zero
// or below receives nothing; plus handicaps never give strokes back.
func StrokesReceived(handicapIndex float64, holeStrokeIndex int) int {
	h := RoundHandicap(handicapIndex)
	if h <= 0 {
		return 0
	}

	strokes := h / HoleCount
	if h >= holeStrokeIndex && holeStrokeIndex <= h%HoleCount {
		strokes++
	}
	return strokes
}

// Allocation returns the strokes received on every hole of the course,
// indexed by hole number - 1.
func Allocation(course Course, handicapIndex float64) [HoleCount]int {
	var out [HoleCount]int
	for i, hole := range course.Holes {
		out[i] = StrokesReceived(handicapIndex, hole.StrokeIndex)
	}
	return out
}

// TotalStrokes sums the allocation across the course.
func TotalStrokes(course Course, handicapIndex float64) int {
	total := 0
	for _, s := range Allocation(course, handicapIndex) {
		total += s
	}
	return total
}
