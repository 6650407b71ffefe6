package game

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go-match/internal/deck"
	"go-match/internal/state"

	"github.com/charmbracelet/log"
)

// inOrder keeps the shuffle from swapping, so ids 2k and 2k+1 are a pair.
type inOrder struct{}

func (inOrder) IntN(n int) int { return n - 1 }

type eventLog struct {
	events []Event
}

func (l *eventLog) record(e Event) { l.events = append(l.events, e) }

func (l *eventLog) count(match func(Event) bool) int {
	n := 0
	for _, e := range l.events {
		if match(e) {
			n++
		}
	}
	return n
}

func isLevelCompleted(e Event) bool   { _, ok := e.(LevelCompleted); return ok }
func isSessionCompleted(e Event) bool { _, ok := e.(SessionCompleted); return ok }
func isDisplayChanged(e Event) bool   { _, ok := e.(DisplayChanged); return ok }

func newTestSession(t *testing.T, opts Options) (*Session, *eventLog) {
	t.Helper()
	if opts.RNG == nil {
		opts.RNG = inOrder{}
	}
	s, err := NewSession(DefaultConfig(), opts)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	el := &eventLog{}
	s.Subscribe(el.record)
	return s, el
}

// solve matches every pair in the minimum number of moves.
func solve(s *Session) {
	for i := 0; i < s.TotalPairs()*2; i += 2 {
		s.SelectCard(i)
		s.SelectCard(i + 1)
	}
}

func TestSession_Init(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	if s.ID == "" {
		t.Error("session should have an id")
	}
	if s.Level() != 1 || s.MaxLevel() != 5 {
		t.Errorf("expected level 1 of 5, got %d of %d", s.Level(), s.MaxLevel())
	}
	if s.Theme() != "default" {
		t.Errorf("expected default theme, got %s", s.Theme())
	}
	if len(s.Cards()) != 16 || s.TotalPairs() != 8 {
		t.Errorf("expected 16 cards and 8 pairs, got %d and %d", len(s.Cards()), s.TotalPairs())
	}
	if s.HintsRemaining() != 3 || s.Stars() != 3 || s.Moves() != 0 || s.Seconds() != 0 {
		t.Errorf("unexpected fresh level: hints=%d stars=%d moves=%d seconds=%d",
			s.HintsRemaining(), s.Stars(), s.Moves(), s.Seconds())
	}
	if got := s.Totals().AverageStars; got != 0 {
		t.Errorf("average with nothing recorded should be 0, got %v", got)
	}
}

func TestNewSession_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		opts Options
		want string
	}{
		{"level too high", DefaultConfig(), Options{StartLevel: 6}, "out of range"},
		{"negative level", DefaultConfig(), Options{StartLevel: -1}, "out of range"},
		{"unknown theme", DefaultConfig(), Options{Theme: "space"}, `unknown theme "space"`},
		{"invalid config", Config{}, Options{}, "config validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(tt.cfg, tt.opts)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSession_StartOptions(t *testing.T) {
	s, _ := newTestSession(t, Options{StartLevel: 3, Theme: "food"})

	if s.Level() != 3 || s.TotalPairs() != 12 {
		t.Errorf("expected level 3 with 12 pairs, got %d with %d", s.Level(), s.TotalPairs())
	}
	if s.Cards()[0].Icon != "🍕" {
		t.Errorf("expected food icons, got %s", s.Cards()[0].Icon)
	}
}

func TestSession_TimerStartsOnFirstFlip(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	s.Advance(5 * time.Second)
	if s.Seconds() != 0 {
		t.Errorf("timer should not run before the first flip, got %d", s.Seconds())
	}

	s.SelectCard(0)
	s.Advance(3 * time.Second)
	if s.Seconds() != 3 {
		t.Errorf("expected 3 seconds, got %d", s.Seconds())
	}
}

func TestSession_MatchAndMismatchSignals(t *testing.T) {
	s, el := newTestSession(t, Options{})

	s.SelectCard(0)
	s.SelectCard(1)
	if el.count(func(e Event) bool { return e == MatchFound{First: 0, Second: 1} }) != 1 {
		t.Errorf("expected MatchFound for 0 and 1, got %v", el.events)
	}

	s.SelectCard(2)
	s.SelectCard(4)
	if el.count(func(e Event) bool { return e == Mismatched{First: 2, Second: 4} }) != 1 {
		t.Errorf("expected Mismatched for 2 and 4, got %v", el.events)
	}
	if !s.Resolving() {
		t.Error("expected a pending revert")
	}

	before := el.count(isDisplayChanged)
	s.Advance(state.MismatchDelay)
	// The revert and the first timer tick.
	if el.count(isDisplayChanged) != before+2 {
		t.Errorf("expected 2 DisplayChanged, got %d", el.count(isDisplayChanged)-before)
	}
	for _, c := range s.Cards() {
		if (c.ID == 2 || c.ID == 4) && c.Flipped {
			t.Errorf("card %d should be face down after the revert", c.ID)
		}
	}
}

func TestSession_IgnoredSelectionEmitsNothing(t *testing.T) {
	s, el := newTestSession(t, Options{})

	s.SelectCard(0)
	n := len(el.events)
	s.SelectCard(0)
	s.SelectCard(100)
	if len(el.events) != n {
		t.Errorf("ignored selections should not emit, got %v", el.events[n:])
	}
}

func TestSession_LevelCompletion(t *testing.T) {
	s, el := newTestSession(t, Options{})

	s.SelectCard(0)
	s.Advance(7 * time.Second)
	s.SelectCard(1)
	for i := 2; i < 16; i += 2 {
		s.SelectCard(i)
		s.SelectCard(i + 1)
	}

	if !s.LevelComplete() {
		t.Fatal("level should be complete")
	}
	if s.Timer.Running() {
		t.Error("timer should stop on completion")
	}
	s.Advance(10 * time.Second)
	if s.Seconds() != 7 {
		t.Errorf("timer should keep its count, got %d", s.Seconds())
	}

	if el.count(isLevelCompleted) != 1 {
		t.Fatalf("expected exactly one LevelCompleted, got %d", el.count(isLevelCompleted))
	}
	want := LevelCompleted{Level: 1, Moves: 8, Seconds: 7, Stars: 3, NextLevel: 2}
	for _, e := range el.events {
		if lc, ok := e.(LevelCompleted); ok && lc != want {
			t.Errorf("expected %+v, got %+v", want, lc)
		}
	}

	totals := s.Totals()
	if totals.TotalMoves != 8 || totals.TotalSeconds != 7 || totals.AverageStars != 3 {
		t.Errorf("unexpected totals %+v", totals)
	}
}

func TestSession_LevelCompletedIsDelayed(t *testing.T) {
	s, el := newTestSession(t, Options{})
	solve(s)

	s.Advance(LevelCompleteDelay - time.Millisecond)
	if el.count(isLevelCompleted) != 0 {
		t.Fatal("LevelCompleted should wait for the delay")
	}
	s.Advance(time.Millisecond)
	if el.count(isLevelCompleted) != 1 {
		t.Error("LevelCompleted should fire after the delay")
	}
}

func TestSession_ReplacedLevelDropsCompletion(t *testing.T) {
	s, el := newTestSession(t, Options{})
	solve(s)

	s.RestartCurrentLevel()
	s.Advance(LevelCompleteDelay)

	if el.count(isLevelCompleted) != 0 {
		t.Error("completion of a replaced level should be dropped")
	}
	// The result was still recorded when the level finished.
	if stars, ok := s.Tally.StarsFor(1); !ok || stars != 3 {
		t.Errorf("expected 3 stars recorded for level 1, got %d (%v)", stars, ok)
	}
}

func TestSession_StaleRevertAfterRestart(t *testing.T) {
	s, el := newTestSession(t, Options{})

	s.SelectCard(0)
	s.SelectCard(2)
	s.RestartCurrentLevel()
	s.SelectCard(4)

	n := len(el.events)
	s.Advance(state.MismatchDelay)

	// Only the new level's timer tick emits.
	if len(el.events) != n+1 {
		t.Errorf("stale revert should be silent, got %v", el.events[n:])
	}
	cards := s.Cards()
	if !cards[4].Flipped || s.Moves() != 0 {
		t.Error("stale revert touched the new level")
	}
}

func TestSession_RestartCurrentLevel(t *testing.T) {
	s, _ := newTestSession(t, Options{Theme: "food"})
	solve(s)
	s.AdvanceLevel()

	// Level 2: 10 pairs, 25 max moves.
	s.UseHint()
	s.UseHint()
	s.SelectCard(0)
	s.SelectCard(1)
	for i := 0; i < 23; i++ {
		s.SelectCard(2)
		s.SelectCard(4)
		s.Advance(state.MismatchDelay)
	}
	if s.Moves() != 24 || s.Stars() != 1 || s.HintsRemaining() != 1 || s.Seconds() == 0 {
		t.Fatalf("unexpected level before restart: moves=%d stars=%d hints=%d seconds=%d",
			s.Moves(), s.Stars(), s.HintsRemaining(), s.Seconds())
	}
	before := s.Totals()

	s.RestartCurrentLevel()

	if s.Level() != 2 || s.Theme() != "food" {
		t.Errorf("expected level 2 with food, got %d with %s", s.Level(), s.Theme())
	}
	if s.HintsRemaining() != 3 || s.Moves() != 0 || s.MatchedPairs() != 0 || s.Seconds() != 0 || s.Stars() != 3 {
		t.Errorf("level should restart fresh: hints=%d moves=%d matched=%d seconds=%d stars=%d",
			s.HintsRemaining(), s.Moves(), s.MatchedPairs(), s.Seconds(), s.Stars())
	}
	after := s.Totals()
	if after.TotalMoves != before.TotalMoves || after.TotalSeconds != before.TotalSeconds || len(after.Levels) != 1 {
		t.Errorf("restart should keep the tally, got %+v then %+v", before, after)
	}

	s.Advance(5 * time.Second)
	if s.Seconds() != 0 {
		t.Errorf("timer should wait for the first flip, got %d", s.Seconds())
	}
	s.SelectCard(0)
	s.Advance(2 * time.Second)
	if s.Seconds() != 2 {
		t.Errorf("expected 2 seconds after the first flip, got %d", s.Seconds())
	}
}

func TestSession_SixteenMoveScenario(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	// Eight mismatches, then every pair at the first try.
	for i := 0; i < 8; i++ {
		s.SelectCard(0)
		s.SelectCard(2)
		s.Advance(state.MismatchDelay)
	}
	solve(s)

	if s.Moves() != 16 || !s.LevelComplete() {
		t.Fatalf("expected a complete level in 16 moves, got %d (complete=%v)", s.Moves(), s.LevelComplete())
	}
	// (20-16)/(20-16) = 1.0
	if s.Stars() != 3 {
		t.Errorf("expected 3 stars, got %d", s.Stars())
	}
}

func TestSession_AdvanceLevel(t *testing.T) {
	s, el := newTestSession(t, Options{})

	s.UseHint()
	s.AdvanceLevel()
	if s.Level() != 2 || len(s.Cards()) != 20 {
		t.Fatalf("expected level 2 with 20 cards, got %d with %d", s.Level(), len(s.Cards()))
	}
	if s.HintsRemaining() != 3 || s.Moves() != 0 || s.Seconds() != 0 {
		t.Error("new level should start fresh")
	}
	if el.count(func(e Event) bool { return e == LevelStarted{Level: 2, Theme: "default"} }) != 1 {
		t.Errorf("expected LevelStarted for level 2, got %v", el.events)
	}
	if s.Tally.Recorded() != 0 {
		t.Error("skipping a level should record nothing")
	}
}

func TestSession_AdvancePastLastLevel(t *testing.T) {
	s, el := newTestSession(t, Options{StartLevel: 4})

	solve(s)
	s.AdvanceLevel()
	solve(s)
	if s.Level() != 5 {
		t.Fatalf("expected level 5, got %d", s.Level())
	}

	s.AdvanceLevel()
	if s.Level() != 5 {
		t.Errorf("there is no level 6, got %d", s.Level())
	}
	if el.count(isSessionCompleted) != 1 {
		t.Fatalf("expected SessionCompleted, got %v", el.events)
	}
	for _, e := range el.events {
		if sc, ok := e.(SessionCompleted); ok {
			want := SessionCompleted{TotalMoves: 15 + 18, TotalSeconds: 0, AverageStars: 3}
			if sc != want {
				t.Errorf("expected %+v, got %+v", want, sc)
			}
		}
	}
}

func TestSession_AverageUsesRecordedLevels(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	solve(s) // 3 stars
	s.AdvanceLevel()
	s.AdvanceLevel() // level 2 skipped

	// Level 3: 12 pairs, 30 max moves.
	for i := 0; i < 21; i++ {
		s.SelectCard(0)
		s.SelectCard(2)
		s.Advance(state.MismatchDelay)
	}
	solve(s)
	// 33 moves: (30-33)/6 < 0.33
	if s.Stars() != 1 {
		t.Fatalf("expected 1 star, got %d", s.Stars())
	}

	if got := s.Totals().AverageStars; got != 2 {
		t.Errorf("expected average (3+1)/2 = 2, got %v", got)
	}
	levels := s.Totals().Levels
	if len(levels) != 2 || levels[0].Level != 1 || levels[1].Level != 3 {
		t.Errorf("unexpected level record %+v", levels)
	}
}

func TestSession_RestartSession(t *testing.T) {
	s, _ := newTestSession(t, Options{StartLevel: 2})
	solve(s)
	s.AdvanceLevel()

	s.RestartSession()

	if s.Level() != 1 {
		t.Errorf("expected level 1, got %d", s.Level())
	}
	totals := s.Totals()
	if totals.TotalMoves != 0 || totals.TotalSeconds != 0 || len(totals.Levels) != 0 {
		t.Errorf("tally should be cleared, got %+v", totals)
	}
	if s.HintsRemaining() != 3 {
		t.Errorf("expected 3 hints, got %d", s.HintsRemaining())
	}
}

func TestSession_ChangeTheme(t *testing.T) {
	s, _ := newTestSession(t, Options{StartLevel: 2})
	s.SelectCard(0)
	s.SelectCard(1)
	s.UseHint()
	s.Advance(2 * time.Second)

	old := s.CurrentGame
	s.ChangeTheme("nope")
	if s.CurrentGame != old || s.Theme() != "default" {
		t.Fatal("unknown theme should be ignored")
	}

	s.ChangeTheme("animals")
	if s.CurrentGame == old {
		t.Fatal("theme change should deal a new deck")
	}
	if s.Level() != 2 || s.Theme() != "animals" {
		t.Errorf("expected level 2 with animals, got %d with %s", s.Level(), s.Theme())
	}
	if s.Moves() != 0 || s.MatchedPairs() != 0 || s.HintsRemaining() != 3 || s.Seconds() != 0 {
		t.Error("theme change should reset the level")
	}
	if s.Cards()[0].Icon != "🐶" {
		t.Errorf("expected animal icons, got %s", s.Cards()[0].Icon)
	}
}

func TestSession_Hint(t *testing.T) {
	s, el := newTestSession(t, Options{})

	s.UseHint()
	if el.count(func(e Event) bool { return e == HintRevealed{First: 0, Second: 1} }) != 1 {
		t.Fatalf("expected HintRevealed for 0 and 1, got %v", el.events)
	}
	cards := s.Cards()
	if !cards[0].Revealed || !cards[1].Revealed || cards[0].Flipped {
		t.Error("hint should reveal without flipping")
	}

	s.Advance(state.HintDuration)
	if s.Cards()[0].Revealed {
		t.Error("hint should conceal after its window")
	}

	s.UseHint()
	s.UseHint()
	n := len(el.events)
	s.UseHint()
	if s.HintsRemaining() != 0 || len(el.events) != n {
		t.Errorf("an empty budget should make the hint a no-op, got %d left", s.HintsRemaining())
	}
}

func TestSession_Settings(t *testing.T) {
	s, el := newTestSession(t, Options{Settings: Settings{Sound: true, Animations: true}})

	s.ToggleSound()
	s.ToggleAnimations()
	if s.Settings() != (Settings{}) {
		t.Errorf("expected both toggles off, got %+v", s.Settings())
	}
	if el.count(isDisplayChanged) != 2 {
		t.Errorf("expected 2 DisplayChanged, got %d", el.count(isDisplayChanged))
	}
}

func TestSession_Unsubscribe(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	calls := 0
	unsubscribe := s.Subscribe(func(Event) { calls++ })
	s.ToggleSound()
	unsubscribe()
	s.ToggleSound()
	unsubscribe()

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestSession_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	s, err := NewSession(DefaultConfig(), Options{RNG: inOrder{}, Logger: logger})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	solve(s)
	s.ChangeTheme("space")

	out := buf.String()
	for _, want := range []string{"session=" + s.ID, "level completed", "stars=3", "unknown theme"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output:\n%s", want, out)
		}
	}
}

func TestSession_SeededDecksRepeat(t *testing.T) {
	a, _ := newTestSession(t, Options{RNG: deck.NewSeededRNG(7)})
	b, _ := newTestSession(t, Options{RNG: deck.NewSeededRNG(7)})

	ca, cb := a.Cards(), b.Cards()
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("same seed should deal the same deck, differs at %d", i)
		}
	}
}
