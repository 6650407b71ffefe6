package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"go-match/internal/game"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is how often the logical clock and the confetti advance.
const FrameInterval = 100 * time.Millisecond

type LocalState struct {
	Session *game.Session
	KeyMap  KeyMap
	Help    help.Model

	cursor        int
	width, height int

	// Overlays, set by session signals.
	completed *game.LevelCompleted
	finished  *game.SessionCompleted
	confetti  *Confetti

	ringBell bool
	rng      *rand.Rand
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// bellCmd rings the terminal bell. The renderer only writes whole frames,
// so the bell goes straight to stderr, which it does not own.
func bellCmd() tea.Msg {
	fmt.Fprint(os.Stderr, "\a")
	return nil
}

func initialModel(sess *game.Session, seed uint64) *LocalState {
	m := &LocalState{
		Session: sess,
		KeyMap:  Keys,
		Help:    help.New(),
		rng:     rand.New(rand.NewPCG(seed, 1)),
	}
	sess.Subscribe(m.handleEvent)
	return m
}

func (m *LocalState) handleEvent(e game.Event) {
	switch e := e.(type) {
	case game.LevelStarted:
		m.completed = nil
		m.finished = nil
		m.confetti = nil
		if m.cursor >= len(m.Session.Cards()) {
			m.cursor = 0
		}
	case game.MatchFound:
		if m.Session.Settings().Sound {
			m.ringBell = true
		}
	case game.LevelCompleted:
		m.completed = &e
	case game.SessionCompleted:
		m.completed = nil
		m.finished = &e
		if m.Session.Settings().Animations {
			m.confetti = NewConfetti(m.width, max(m.height-12, 8), m.rng)
		}
	}
}

func (m *LocalState) Init() tea.Cmd {
	return tickCmd()
}

func (m *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.Session.Advance(FrameInterval)
		if m.confetti != nil {
			m.confetti.Step(FrameInterval)
			if m.confetti.Done() {
				m.confetti = nil
			}
		}
		return m, tickCmd()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.Help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.KeyMap.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.KeyMap.Help) {
			m.Help.ShowAll = !m.Help.ShowAll
			return m, nil
		}
		m.handleKey(msg)
	}

	if m.ringBell {
		m.ringBell = false
		return m, bellCmd
	}
	return m, nil
}

func (m *LocalState) handleKey(msg tea.KeyMsg) {
	s := m.Session

	// Overlays take the flip key as "continue".
	if m.finished != nil {
		if key.Matches(msg, m.KeyMap.RestartSession, m.KeyMap.Flip) {
			s.RestartSession()
		}
		return
	}
	if m.completed != nil && key.Matches(msg, m.KeyMap.Flip) {
		s.AdvanceLevel()
		return
	}

	cols := s.LevelConfig().Cols
	switch {
	case key.Matches(msg, m.KeyMap.Up):
		m.moveCursor(-cols)
	case key.Matches(msg, m.KeyMap.Down):
		m.moveCursor(cols)
	case key.Matches(msg, m.KeyMap.Left):
		if m.cursor%cols > 0 {
			m.moveCursor(-1)
		}
	case key.Matches(msg, m.KeyMap.Right):
		if m.cursor%cols < cols-1 {
			m.moveCursor(1)
		}
	case key.Matches(msg, m.KeyMap.Flip):
		s.SelectCard(s.Cards()[m.cursor].ID)
	case key.Matches(msg, m.KeyMap.Hint):
		s.UseHint()
	case key.Matches(msg, m.KeyMap.Next):
		s.AdvanceLevel()
	case key.Matches(msg, m.KeyMap.RestartLevel):
		s.RestartCurrentLevel()
	case key.Matches(msg, m.KeyMap.RestartSession):
		s.RestartSession()
	case key.Matches(msg, m.KeyMap.Theme):
		s.ChangeTheme(nextTheme(s.Themes(), s.Theme()))
	case key.Matches(msg, m.KeyMap.Sound):
		s.ToggleSound()
	case key.Matches(msg, m.KeyMap.Animations):
		s.ToggleAnimations()
	}
}

// moveCursor shifts the cursor by delta cards, staying on the board.
func (m *LocalState) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.Session.Cards()) {
		return
	}
	m.cursor = next
}

func nextTheme(themes []string, current string) string {
	for i, t := range themes {
		if t == current {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
