package state

import (
	"context"
	"time"

	"go-match/internal/clock"
	"go-match/internal/deck"
	"go-match/internal/scoring"

	"github.com/looplab/fsm"
)

// Fixed presentation windows.
const (
	MismatchDelay = 1000 * time.Millisecond
	HintDuration  = 1500 * time.Millisecond
	HintBudget    = 3
)

// Machine states.
const (
	Idle        = "idle"
	OneSelected = "oneSelected"
	Resolving   = "resolving"
	Complete    = "complete"
)

// LevelOptions carries the parts of a level's configuration the rules need.
type LevelOptions struct {
	Pairs    int
	MaxMoves int
}

// Hooks lets the owner react to rule outcomes. Any field may be nil.
type Hooks struct {
	Started    func()
	Matched    func(a, b *deck.Card)
	Mismatched func(a, b *deck.Card)
	Reverted   func(a, b *deck.Card)
	Completed  func()
}

// State is one level in progress.
type State struct {
	Cards          []*deck.Card
	Selection      []*deck.Card
	Moves          int
	MatchedPairs   int
	HintsRemaining int
	Stars          int
	GameStarted    bool
	Revealed       map[int]bool // card ids shown by a hint
	Rating         scoring.Rating
	Options        LevelOptions
	FSM            *fsm.FSM

	sched clock.Scheduler
	hooks Hooks
}

func NewState(cards []*deck.Card, opts LevelOptions, sched clock.Scheduler, hooks Hooks) *State {
	s := &State{
		Cards:          cards,
		HintsRemaining: HintBudget,
		Stars:          scoring.MaxStars,
		Revealed:       make(map[int]bool),
		Rating:         scoring.Rating{Pairs: opts.Pairs, MaxMoves: opts.MaxMoves},
		Options:        opts,
		sched:          sched,
		hooks:          hooks,
	}

	s.FSM = fsm.NewFSM(
		Idle,
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

// Select turns over the card with the given id and reports whether the
// selection was accepted. Rejected selections change nothing.
func (s *State) Select(id int) bool {
	return s.FSM.Event(context.Background(), "select", id) == nil
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "select", Src: []string{Idle}, Dst: OneSelected},
		{Name: "select", Src: []string{OneSelected}, Dst: Resolving},

		// Outcomes of the second selection
		{Name: "match", Src: []string{Resolving}, Dst: Idle},
		{Name: "finish", Src: []string{Resolving}, Dst: Complete},
		{Name: "revert", Src: []string{Resolving}, Dst: Idle},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"before_select": func(ctx context.Context, e *fsm.Event) {
			card := s.cardFromArgs(e.Args)
			if card == nil || !card.Selectable() || len(s.Selection) >= 2 {
				e.Cancel()
			}
		},
		"enter_" + OneSelected: func(ctx context.Context, e *fsm.Event) {
			if !s.GameStarted {
				s.GameStarted = true
				if s.hooks.Started != nil {
					s.hooks.Started()
				}
			}
			s.flip(s.cardFromArgs(e.Args))
		},
		"enter_" + Resolving: func(ctx context.Context, e *fsm.Event) {
			s.flip(s.cardFromArgs(e.Args))

			s.Moves++
			s.Stars = s.Rating.Stars(s.Moves)

			a, b := s.Selection[0], s.Selection[1]
			if a.Icon != b.Icon {
				if s.hooks.Mismatched != nil {
					s.hooks.Mismatched(a, b)
				}
				// The revert captures this level's cards, so a late run after
				// the level was replaced touches nothing live.
				s.sched.AfterFunc(MismatchDelay, func() {
					a.Flipped = false
					b.Flipped = false
					s.Selection = nil
					_ = s.FSM.Event(context.Background(), "revert")
					if s.hooks.Reverted != nil {
						s.hooks.Reverted(a, b)
					}
				})
				return
			}

			a.Matched = true
			b.Matched = true
			s.MatchedPairs++
			s.Selection = nil
			if s.hooks.Matched != nil {
				s.hooks.Matched(a, b)
			}

			if s.MatchedPairs == s.Options.Pairs {
				e.FSM.Event(ctx, "finish")
				return
			}
			e.FSM.Event(ctx, "match")
		},
		"enter_" + Complete: func(ctx context.Context, e *fsm.Event) {
			if s.hooks.Completed != nil {
				s.hooks.Completed()
			}
		},
	}
}

func (s *State) flip(card *deck.Card) {
	card.Flipped = true
	s.Selection = append(s.Selection, card)
}

func (s *State) cardFromArgs(args []interface{}) *deck.Card {
	if len(args) == 0 {
		return nil
	}
	id, ok := args[0].(int)
	if !ok {
		return nil
	}
	return s.Card(id)
}
