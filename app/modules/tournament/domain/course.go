package tournamentdomain

// HoleCount is the number of holes on a regulation course.
const HoleCount = 18

// NineHoles splits the scorecard into the OUT and IN halves.
const NineHoles = HoleCount / 2

// Hole is a single hole of the course. StrokeIndex is the stroke-allocation
// priority (1 = hardest); scorecards usually print it as "HCP".
type Hole struct {
	Number      int `json:"number"`
	Par         int `json:"par"`
	StrokeIndex int `json:"stroke_index"`
	Yardage     int `json:"yardage"`
}

// Course is the static course layout for the tournament.
type Course struct {
	Name  string          `json:"name"`
	Tees  string          `json:"tees"`
	Holes [HoleCount]Hole `json:"holes"`
}

// ParOut returns the par of holes 1-9.
func (c Course) ParOut() int {
	return sumPar(c.Holes[:NineHoles])
}

// ParIn returns the par of holes 10-18.
func (c Course) ParIn() int {
	return sumPar(c.Holes[NineHoles:])
}

// ParTotal returns the par of the full round.
func (c Course) ParTotal() int {
	return c.ParOut() + c.ParIn()
}

// TotalYardage returns the length of the course from the configured tees.
func (c Course) TotalYardage() int {
	total := 0
	for _, h := range c.Holes {
		total += h.Yardage
	}
	return total
}

func sumPar(holes []Hole) int {
	total := 0
	for _, h := range holes {
		total += h.Par
	}
	return total
}
