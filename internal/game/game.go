package game

import (
	"go-match/internal/clock"
	"go-match/internal/deck"
	"go-match/internal/state"
)

// Game is one level being played: its configuration, theme and rules state.
type Game struct {
	Number int
	Level  LevelConfig
	Theme  Theme
	State  *state.State
}

// CardView is the read-only projection of a card for rendering.
type CardView struct {
	ID       int
	Icon     string
	Flipped  bool
	Matched  bool
	Revealed bool // shown by a hint
}

// NewGame deals a fresh deck for the level.
func NewGame(number int, level LevelConfig, theme Theme, rng deck.RandomSource, sched clock.Scheduler, hooks state.Hooks) *Game {
	cards := deck.Build(level.Pairs, theme.Icons, rng)
	return &Game{
		Number: number,
		Level:  level,
		Theme:  theme,
		State:  state.NewState(cards, level.Options(), sched, hooks),
	}
}

// HandleSelect processes a card selection and reports whether it was
// accepted.
func (g *Game) HandleSelect(id int) bool {
	if g.State.IsComplete() {
		return false
	}
	return g.State.Select(id)
}

// Cards returns the board in deck order.
func (g *Game) Cards() []CardView {
	views := make([]CardView, len(g.State.Cards))
	for i, c := range g.State.Cards {
		views[i] = CardView{
			ID:       c.ID,
			Icon:     c.Icon,
			Flipped:  c.Flipped,
			Matched:  c.Matched,
			Revealed: g.State.IsRevealed(c.ID),
		}
	}
	return views
}
