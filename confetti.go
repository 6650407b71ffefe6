package main

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const confettiPieces = 100

var confettiColors = []lipgloss.Color{"#ff6b6b", "#feca57", "#48dbfb", "#ff9ff3", "#1dd1a1"}

type confettiPiece struct {
	col   int
	row   float64
	speed float64 // rows per second
	color lipgloss.Color
}

// Confetti is a field of pieces falling from the top row to the bottom one.
// Each piece takes between 2 and 5 seconds to cross the field.
type Confetti struct {
	width, height int
	pieces        []confettiPiece
}

func NewConfetti(width, height int, rng *rand.Rand) *Confetti {
	c := &Confetti{width: max(width, 1), height: max(height, 1)}
	for range confettiPieces {
		fall := 2 + 3*rng.Float64()
		c.pieces = append(c.pieces, confettiPiece{
			col:   rng.IntN(c.width),
			row:   -rng.Float64() * float64(c.height) / 2,
			speed: float64(c.height) / fall,
			color: confettiColors[rng.IntN(len(confettiColors))],
		})
	}
	return c
}

// Step advances every piece and drops the ones that reached the bottom.
func (c *Confetti) Step(d time.Duration) {
	kept := c.pieces[:0]
	for _, p := range c.pieces {
		p.row += p.speed * d.Seconds()
		if int(p.row) < c.height {
			kept = append(kept, p)
		}
	}
	c.pieces = kept
}

func (c *Confetti) Done() bool {
	return len(c.pieces) == 0
}

func (c *Confetti) View() string {
	cells := make([][]string, c.height)
	for i := range cells {
		cells[i] = make([]string, c.width)
		for j := range cells[i] {
			cells[i][j] = " "
		}
	}
	for _, p := range c.pieces {
		if p.row < 0 {
			continue
		}
		cells[int(p.row)][p.col] = lipgloss.NewStyle().Foreground(p.color).Render("■")
	}

	lines := make([]string, c.height)
	for i, row := range cells {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
