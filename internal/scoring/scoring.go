package scoring

// Star thresholds on move efficiency.
const (
	MaxStars = 3
	MinStars = 1

	threeStarEfficiency = 0.66
	twoStarEfficiency   = 0.33
)

// Rating rates moves made on one level against that level's move budget.
type Rating struct {
	Pairs    int
	MaxMoves int
}

// OptimalMoves is the lower bound the efficiency ratio is measured from:
// two moves per pair.
func (r Rating) OptimalMoves() int {
	return r.Pairs * 2
}

// Efficiency returns (maxMoves - moves) / (maxMoves - optimalMoves).
// There is no floor; it goes negative once moves exceed the budget.
func (r Rating) Efficiency(moves int) float64 {
	return float64(r.MaxMoves-moves) / float64(r.MaxMoves-r.OptimalMoves())
}

// Stars maps the efficiency after the given number of moves to 1-3 stars.
func (r Rating) Stars(moves int) int {
	e := r.Efficiency(moves)
	switch {
	case e > threeStarEfficiency:
		return 3
	case e > twoStarEfficiency:
		return 2
	default:
		return 1
	}
}
