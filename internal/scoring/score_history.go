package scoring

import (
	"sort"
)

// Tally accumulates results across the levels of one session.
type Tally struct {
	TotalMoves   int
	TotalSeconds int
	// level -> stars of the last completion of that level
	levelStars map[int]int
}

// LevelStars is one entry of the per-level star record.
type LevelStars struct {
	Level int
	Stars int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{levelStars: make(map[int]int)}
}

// Record adds a completed level to the totals. Completing a level again
// adds to the totals and replaces its star entry.
func (t *Tally) Record(level, moves, seconds, stars int) {
	if t.levelStars == nil {
		t.levelStars = make(map[int]int)
	}
	t.TotalMoves += moves
	t.TotalSeconds += seconds
	t.levelStars[level] = stars
}

// Reset clears every aggregate.
func (t *Tally) Reset() {
	t.TotalMoves = 0
	t.TotalSeconds = 0
	t.levelStars = make(map[int]int)
}

// Recorded returns how many distinct levels have a star entry.
func (t *Tally) Recorded() int {
	return len(t.levelStars)
}

// StarsFor returns the recorded stars for a level.
func (t *Tally) StarsFor(level int) (int, bool) {
	s, ok := t.levelStars[level]
	return s, ok
}

// AverageStars divides the star sum by the number of recorded levels, not
// the number of configured ones. With nothing recorded it returns 0.
func (t *Tally) AverageStars() float64 {
	if len(t.levelStars) == 0 {
		return 0
	}
	sum := 0
	for _, s := range t.levelStars {
		sum += s
	}
	return float64(sum) / float64(len(t.levelStars))
}

// Levels returns the star record ordered by level.
func (t *Tally) Levels() []LevelStars {
	out := make([]LevelStars, 0, len(t.levelStars))
	for level, stars := range t.levelStars {
		out = append(out, LevelStars{Level: level, Stars: stars})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Level < out[j].Level
	})
	return out
}
