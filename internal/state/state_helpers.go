package state

import (
	"go-match/internal/deck"
)

// Card looks a card up by id.
func (s *State) Card(id int) *deck.Card {
	for _, c := range s.Cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s State) IsComplete() bool {
	return s.FSM.Current() == Complete
}

func (s State) IsResolving() bool {
	return s.FSM.Current() == Resolving
}

// FindHintPair returns the first face-down unmatched card in deck order and
// another face-down unmatched card with the same icon.
func (s State) FindHintPair() (*deck.Card, *deck.Card, bool) {
	var first *deck.Card
	for _, c := range s.Cards {
		if c.Selectable() {
			first = c
			break
		}
	}
	if first == nil {
		return nil, nil, false
	}
	for _, c := range s.Cards {
		if c.Selectable() && c.Icon == first.Icon && c.ID != first.ID {
			return first, c, true
		}
	}
	return first, nil, false
}

// UseHint spends one hint and, when a pair is available, marks it revealed
// for HintDuration. It reports the revealed pair, if any.
func (s *State) UseHint(onConceal func(a, b *deck.Card)) (*deck.Card, *deck.Card, bool) {
	if s.HintsRemaining <= 0 {
		return nil, nil, false
	}
	s.HintsRemaining--

	a, b, ok := s.FindHintPair()
	if !ok {
		return nil, nil, false
	}

	s.Revealed[a.ID] = true
	s.Revealed[b.ID] = true
	s.sched.AfterFunc(HintDuration, func() {
		delete(s.Revealed, a.ID)
		delete(s.Revealed, b.ID)
		if onConceal != nil {
			onConceal(a, b)
		}
	})
	return a, b, true
}

// IsRevealed reports whether a hint is currently showing the card.
func (s State) IsRevealed(id int) bool {
	return s.Revealed[id]
}
