package game

import (
	"fmt"
	"io"
	"time"

	"go-match/internal/clock"
	"go-match/internal/deck"
	"go-match/internal/scoring"
	"go-match/internal/state"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// LevelCompleteDelay separates the last match from the LevelCompleted signal.
const LevelCompleteDelay = 1000 * time.Millisecond

// Settings are the player's presentation toggles.
type Settings struct {
	Sound      bool
	Animations bool
}

// Totals summarises the session so far.
type Totals struct {
	TotalMoves   int
	TotalSeconds int
	AverageStars float64
	Levels       []scoring.LevelStars
}

// Options configure a new Session. The zero value starts level 1 with the
// first theme, default randomness and no logging.
type Options struct {
	StartLevel int
	Theme      string
	Settings   Settings
	RNG        deck.RandomSource
	Logger     *log.Logger
}

// Session runs levels in order and keeps the session tally. It is driven from
// a single goroutine: commands, queries and Advance must not be called
// concurrently.
type Session struct {
	ID           string
	Config       Config
	CurrentLevel int
	CurrentGame  *Game
	Clock        *clock.Clock
	Timer        *clock.Timer
	Tally        *scoring.Tally

	theme        Theme
	settings     Settings
	rng          deck.RandomSource
	logger       *log.Logger
	listeners    []listener
	nextListener int
}

func NewSession(cfg Config, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := opts.StartLevel
	if start == 0 {
		start = 1
	}
	if _, ok := cfg.Level(start); !ok {
		return nil, fmt.Errorf("level %d is out of range 1-%d", start, len(cfg.Levels))
	}

	theme := cfg.Themes[0]
	if opts.Theme != "" {
		t, ok := cfg.Theme(opts.Theme)
		if !ok {
			return nil, fmt.Errorf("unknown theme %q", opts.Theme)
		}
		theme = t
	}

	rng := opts.RNG
	if rng == nil {
		rng = deck.DefaultRNG()
	}

	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		ID:           id,
		Config:       cfg,
		CurrentLevel: start,
		Clock:        clock.New(),
		Tally:        scoring.NewTally(),
		theme:        theme,
		settings:     opts.Settings,
		rng:          rng,
		logger:       logger.With("session", id),
	}
	s.Timer = clock.NewTimer(s.Clock, func(int) {
		s.emit(DisplayChanged{})
	})

	s.logger.Info("session started", "level", start, "theme", theme.Name)
	s.startLevel()
	return s, nil
}

// startLevel deals a fresh deck for CurrentLevel with the current theme.
// Callbacks still pending for the replaced game check CurrentGame and do
// nothing.
func (s *Session) startLevel() {
	s.Timer.Reset()

	level, _ := s.Config.Level(s.CurrentLevel)

	var g *Game
	hooks := state.Hooks{
		Started: func() {
			s.Timer.Start()
			s.logger.Debug("timer started", "level", g.Number)
		},
		Matched: func(a, b *deck.Card) {
			s.logger.Debug("match", "level", g.Number, "icon", a.Icon, "moves", g.State.Moves)
			s.emit(MatchFound{First: a.ID, Second: b.ID})
		},
		Mismatched: func(a, b *deck.Card) {
			s.logger.Debug("mismatch", "level", g.Number, "moves", g.State.Moves)
			s.emit(Mismatched{First: a.ID, Second: b.ID})
		},
		Reverted: func(a, b *deck.Card) {
			if s.CurrentGame != g {
				return
			}
			s.emit(DisplayChanged{})
		},
		Completed: func() {
			s.completeLevel(g)
		},
	}
	g = NewGame(s.CurrentLevel, level, s.theme, s.rng, s.Clock, hooks)
	s.CurrentGame = g

	s.logger.Info("level started", "level", g.Number, "pairs", level.Pairs, "theme", s.theme.Name)
	s.emit(LevelStarted{Level: g.Number, Theme: s.theme.Name})
	s.emit(DisplayChanged{})
}

func (s *Session) completeLevel(g *Game) {
	s.Timer.Stop()

	moves, seconds, stars := g.State.Moves, s.Timer.Seconds(), g.State.Stars
	s.Tally.Record(g.Number, moves, seconds, stars)
	s.logger.Info("level completed", "level", g.Number, "moves", moves, "seconds", seconds, "stars", stars)

	s.Clock.AfterFunc(LevelCompleteDelay, func() {
		if s.CurrentGame != g {
			s.logger.Debug("dropping completion of replaced level", "level", g.Number)
			return
		}
		s.emit(LevelCompleted{
			Level:     g.Number,
			Moves:     moves,
			Seconds:   seconds,
			Stars:     stars,
			NextLevel: g.Number + 1,
		})
	})
}

// SelectCard turns over a card. Invalid selections are ignored.
func (s *Session) SelectCard(id int) {
	if !s.CurrentGame.HandleSelect(id) {
		return
	}
	s.emit(DisplayChanged{})
}

// UseHint spends a hint and briefly reveals a matching pair when one exists.
func (s *Session) UseHint() {
	g := s.CurrentGame
	// State.UseHint guards the budget too; returning here keeps an empty
	// budget free of log lines and events.
	if g.State.HintsRemaining <= 0 {
		return
	}

	a, b, ok := g.State.UseHint(func(a, b *deck.Card) {
		if s.CurrentGame != g {
			return
		}
		s.emit(DisplayChanged{})
	})
	s.logger.Debug("hint used", "level", g.Number, "remaining", g.State.HintsRemaining, "revealed", ok)
	if ok {
		s.emit(HintRevealed{First: a.ID, Second: b.ID})
	}
	s.emit(DisplayChanged{})
}

// AdvanceLevel moves to the next level, or completes the session after the
// last one.
func (s *Session) AdvanceLevel() {
	if s.CurrentLevel < s.MaxLevel() {
		s.CurrentLevel++
		s.startLevel()
		return
	}

	t := s.Totals()
	s.logger.Info("session completed", "moves", t.TotalMoves, "seconds", t.TotalSeconds, "stars", t.AverageStars)
	s.emit(SessionCompleted{
		TotalMoves:   t.TotalMoves,
		TotalSeconds: t.TotalSeconds,
		AverageStars: t.AverageStars,
	})
}

// RestartSession returns to level 1 with an empty tally.
func (s *Session) RestartSession() {
	s.logger.Info("session restarted")
	s.CurrentLevel = 1
	s.Tally.Reset()
	s.startLevel()
}

// RestartCurrentLevel deals the current level again. The tally is kept.
func (s *Session) RestartCurrentLevel() {
	s.startLevel()
}

// ChangeTheme restarts the current level with the named theme. Unknown names
// are ignored.
func (s *Session) ChangeTheme(name string) {
	t, ok := s.Config.Theme(name)
	if !ok {
		s.logger.Warn("unknown theme", "theme", name)
		return
	}
	s.theme = t
	s.startLevel()
}

// Advance moves logical time forward, running the timer and any delayed
// callbacks that fall due.
func (s *Session) Advance(d time.Duration) {
	s.Clock.Advance(d)
}

func (s *Session) ToggleSound() {
	s.settings.Sound = !s.settings.Sound
	s.logger.Debug("sound toggled", "on", s.settings.Sound)
	s.emit(DisplayChanged{})
}

func (s *Session) ToggleAnimations() {
	s.settings.Animations = !s.settings.Animations
	s.logger.Debug("animations toggled", "on", s.settings.Animations)
	s.emit(DisplayChanged{})
}
