package tournamentdomain

// recreationPark is the course the default fixture ships with.
func recreationPark() Course {
	return Course{
		Name: "Recreation Park 18",
		Tees: "White",
		Holes: [HoleCount]Hole{
			{Number: 1, Par: 4, StrokeIndex: 15, Yardage: 288},
			{Number: 2, Par: 4, StrokeIndex: 13, Yardage: 288},
			{Number: 3, Par: 4, StrokeIndex: 5, Yardage: 394},
			{Number: 4, Par: 4, StrokeIndex: 9, Yardage: 346},
			{Number: 5, Par: 3, StrokeIndex: 17, Yardage: 133},
			{Number: 6, Par: 4, StrokeIndex: 1, Yardage: 454},
			{Number: 7, Par: 4, StrokeIndex: 3, Yardage: 416},
			{Number: 8, Par: 4, StrokeIndex: 7, Yardage: 402},
			{Number: 9, Par: 5, StrokeIndex: 11, Yardage: 443},
			{Number: 10, Par: 4, StrokeIndex: 2, Yardage: 415},
			{Number: 11, Par: 4, StrokeIndex: 10, Yardage: 348},
			{Number: 12, Par: 3, StrokeIndex: 16, Yardage: 129},
			{Number: 13, Par: 4, StrokeIndex: 14, Yardage: 290},
			{Number: 14, Par: 5, StrokeIndex: 4, Yardage: 508},
			{Number: 15, Par: 4, StrokeIndex: 12, Yardage: 325},
			{Number: 16, Par: 3, StrokeIndex: 18, Yardage: 129},
			{Number: 17, Par: 5, StrokeIndex: 6, Yardage: 468},
			{Number: 18, Par: 4, StrokeIndex: 8, Yardage: 379},
		},
	}
}

// card builds a score array from the leading holes; the rest stay empty.
func card(scores ...int) [HoleCount]*int {
	var out [HoleCount]*int
	for i, s := range scores {
		v := s
		out[i] = &v
	}
	return out
}

// flatCard records the same score on every hole.
func flatCard(score int) [HoleCount]*int {
	scores := make([]int, HoleCount)
	for i := range scores {
		scores[i] = score
	}
	return card(scores...)
}

func testState() State {
	return State{
		Course: recreationPark(),
		Teams: []Team{
			{
				ID: 1, Name: "Team 1", Group: GroupA,
				Players: []Player{
					{ID: 1, Name: "Andy Yang", HandicapIndex: 22.9, TeamID: 1},
					{ID: 2, Name: "Eugene Yum", HandicapIndex: 7, TeamID: 1},
					{ID: 3, Name: "John Wong", HandicapIndex: 38.7, TeamID: 1},
					{ID: 4, Name: "Jon Chen", HandicapIndex: 25, TeamID: 1},
				},
			},
			{
				ID: 2, Name: "Team 2", Group: GroupB,
				Players: []Player{
					{ID: 5, Name: "Eliot Cho", HandicapIndex: 25, TeamID: 2},
					{ID: 6, Name: "Steve Kang", HandicapIndex: 15, TeamID: 2},
					{ID: 7, Name: "Brandon Li", HandicapIndex: 29.9, TeamID: 2},
					{ID: 8, Name: "Derek Taing", HandicapIndex: 38, TeamID: 2},
				},
			},
		},
		Pairings: []Pairing{
			{ID: 1, Name: "Match 1", Team1PlayerIDs: [2]int{1, 2}, Team2PlayerIDs: [2]int{5, 6}},
			{ID: 2, Name: "Match 2", Team1PlayerIDs: [2]int{4, 3}, Team2PlayerIDs: [2]int{7, 8}},
		},
	}
}
