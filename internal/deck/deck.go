package deck

// Card is a single face-down tile. Two cards share each icon.
type Card struct {
	ID      int
	Icon    string
	Flipped bool
	Matched bool
}

// Selectable reports whether the card may still be turned over.
func (c *Card) Selectable() bool {
	return !c.Flipped && !c.Matched
}

// Build creates 2*pairs cards, two per icon, and shuffles them.
// Icons are reused cyclically when the set is smaller than pairs, so
// distinct pairs may share an icon.
func Build(pairs int, icons []string, rng RandomSource) []*Card {
	if pairs <= 0 || len(icons) == 0 {
		return []*Card{}
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	cards := make([]*Card, 0, pairs*2)
	for i := 0; i < pairs; i++ {
		icon := icons[i%len(icons)]
		cards = append(cards,
			&Card{ID: i * 2, Icon: icon},
			&Card{ID: i*2 + 1, Icon: icon},
		)
	}

	Shuffle(cards, rng)
	return cards
}

// Shuffle permutes cards in place with Fisher-Yates.
func Shuffle(cards []*Card, rng RandomSource) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
