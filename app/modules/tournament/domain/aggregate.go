package tournamentdomain

// PlayerGross sums the recorded scores. Holes without a score count as zero,
// so an incomplete round understates gross.
func PlayerGross(p Player) int {
	return sumScores(p.Scores[:])
}

// PlayerNet is gross minus handicap index. It is defined for an empty card
// too (-handicap); callers use HasRound to decide whether to display it.
func PlayerNet(p Player) float64 {
	return float64(PlayerGross(p)) - p.HandicapIndex
}

// HasRound reports whether any strokes have been recorded for the player.
func HasRound(p Player) bool {
	return PlayerGross(p) != 0
}

// FrontNine is the OUT subtotal (holes 1-9).
func FrontNine(p Player) int {
	return sumScores(p.Scores[:NineHoles])
}

// BackNine is the IN subtotal (holes 10-18).
func BackNine(p Player) int {
	return sumScores(p.Scores[NineHoles:])
}

// HolesPlayed counts the holes with a recorded score.
func HolesPlayed(p Player) int {
	n := 0
	for _, s := range p.Scores {
		if s != nil {
			n++
		}
	}
	return n
}

// TeamGross sums PlayerGross over the team.
func TeamGross(t Team) int {
	total := 0
	for _, p := range t.Players {
		total += PlayerGross(p)
	}
	return total
}

// TeamHandicap is the sum of the players' handicap indexes.
func TeamHandicap(t Team) float64 {
	total := 0.0
	for _, p := range t.Players {
		total += p.HandicapIndex
	}
	return total
}

// TeamNet is team gross minus the summed handicap indexes.
func TeamNet(t Team) float64 {
	return float64(TeamGross(t)) - TeamHandicap(t)
}

func sumScores(scores []*int) int {
	total := 0
	for _, s := range scores {
		if s != nil {
			total += *s
		}
	}
	return total
}
