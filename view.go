package main

import (
	"fmt"
	"strings"

	"go-match/internal/game"
	"go-match/internal/scoring"

	"github.com/charmbracelet/lipgloss"
)

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boldStyle  = lipgloss.NewStyle().Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(4).
			Align(lipgloss.Center)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("#FFD700")).
			Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4500")).
			Bold(true)
)

func (m *LocalState) View() string {
	var body string
	switch {
	case m.finished != nil:
		body = m.renderSessionComplete()
	case m.completed != nil:
		body = m.renderLevelComplete()
	default:
		body = lipgloss.JoinVertical(lipgloss.Center,
			m.renderBoard(),
			m.renderStatus(),
			m.renderSettings(),
			m.Help.View(m.KeyMap),
		)
	}

	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *LocalState) renderCard(i int, c game.CardView) string {
	style := cardStyle
	face := "??"

	switch {
	case c.Matched:
		face = c.Icon
		style = style.BorderForeground(lipgloss.Color("10")).Faint(true)
	case c.Flipped:
		face = c.Icon
		if m.Session.Resolving() && m.Session.Settings().Animations {
			style = style.BorderForeground(lipgloss.Color("9"))
		} else {
			style = style.BorderForeground(lipgloss.Color("15"))
		}
	case c.Revealed:
		face = c.Icon
		style = style.BorderForeground(lipgloss.Color("11"))
	default:
		face = dimStyle.Render(face)
	}

	if i == m.cursor {
		style = style.BorderForeground(lipgloss.Color("14")).Bold(true)
	}
	return style.Render(face)
}

func (m *LocalState) renderBoard() string {
	cards := m.Session.Cards()
	cols := m.Session.LevelConfig().Cols

	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		row := make([]string, 0, cols)
		for i := start; i < end; i++ {
			row = append(row, m.renderCard(i, cards[i]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *LocalState) renderStatus() string {
	s := m.Session

	statusLine := fmt.Sprintf("LEVEL: %d/%d | MOVES: %d | PAIRS: %d/%d | %s",
		s.Level(), s.MaxLevel(), s.Moves(), s.MatchedPairs(), s.TotalPairs(), renderStars(s.Stars()))

	limit := s.LevelConfig().TimeLimit
	timeColor := lipgloss.Color("11")
	if limit > 0 && float64(limit-s.Seconds()) <= float64(limit)/3.0 {
		timeColor = lipgloss.Color("9")
	}
	timeStr := formatSeconds(s.Seconds())
	if limit > 0 {
		timeStr += " / " + formatSeconds(limit)
	}
	statusLine = scoreStyle.Render(statusLine+" | TIME: ") + lipgloss.NewStyle().Foreground(timeColor).Render(timeStr)

	hint := fmt.Sprintf("Hint (%d)", s.HintsRemaining())
	if s.HintsRemaining() == 0 {
		hint = dimStyle.Render(hint)
	} else {
		hint = scoreStyle.Render(hint)
	}
	return statusLine + scoreStyle.Render(" | ") + hint
}

func (m *LocalState) renderSettings() string {
	st := m.Session.Settings()
	return dimStyle.Render(fmt.Sprintf("theme: %s | sound: %s | animations: %s",
		m.Session.Theme(), onOff(st.Sound), onOff(st.Animations)))
}

func (m *LocalState) renderLevelComplete() string {
	lc := m.completed
	next := fmt.Sprintf("Press space for level %d", lc.NextLevel)
	if lc.NextLevel > m.Session.MaxLevel() {
		next = "Press space to finish"
	}

	msg := fmt.Sprintf("%s\n\n%s\n%s\n%s\n\n%s",
		titleStyle.Render(fmt.Sprintf("Level %d complete!", lc.Level)),
		fmt.Sprintf("Moves: %d", lc.Moves),
		fmt.Sprintf("Time: %s", formatSeconds(lc.Seconds)),
		renderStars(lc.Stars),
		next)
	return overlayStyle.Render(msg)
}

func (m *LocalState) renderSessionComplete() string {
	sc := m.finished
	msg := fmt.Sprintf("%s\n\n%s\n%s\n%s\n\n%s",
		titleStyle.Render("You Win!!!"),
		greenStyle.Render(fmt.Sprintf("Total moves: %d", sc.TotalMoves)),
		greenStyle.Render(fmt.Sprintf("Total time: %s", formatSeconds(sc.TotalSeconds))),
		greenStyle.Render(fmt.Sprintf("Average stars: %.1f", sc.AverageStars)),
		"Press space to play again or 'q' to quit")
	box := overlayStyle.Render(msg)

	if m.confetti == nil {
		return box
	}
	return lipgloss.JoinVertical(lipgloss.Center, m.confetti.View(), box)
}

func renderStars(n int) string {
	return boldStyle.Render(scoreStyle.Render(strings.Repeat("★", n)) + dimStyle.Render(strings.Repeat("☆", scoring.MaxStars-n)))
}

func formatSeconds(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return redStyle.Render("off")
}
