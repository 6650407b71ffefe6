package game

func (s *Session) Moves() int {
	return s.CurrentGame.State.Moves
}

// Seconds is the elapsed play time of the current level.
func (s *Session) Seconds() int {
	return s.Timer.Seconds()
}

func (s *Session) MatchedPairs() int {
	return s.CurrentGame.State.MatchedPairs
}

func (s *Session) TotalPairs() int {
	return s.CurrentGame.Level.Pairs
}

func (s *Session) Level() int {
	return s.CurrentLevel
}

func (s *Session) MaxLevel() int {
	return len(s.Config.Levels)
}

// Stars is the rating as of the current move count.
func (s *Session) Stars() int {
	return s.CurrentGame.State.Stars
}

func (s *Session) HintsRemaining() int {
	return s.CurrentGame.State.HintsRemaining
}

// Resolving reports whether a mismatched pair is waiting to turn back.
func (s *Session) Resolving() bool {
	return s.CurrentGame.State.IsResolving()
}

func (s *Session) LevelComplete() bool {
	return s.CurrentGame.State.IsComplete()
}

func (s *Session) Cards() []CardView {
	return s.CurrentGame.Cards()
}

func (s *Session) LevelConfig() LevelConfig {
	return s.CurrentGame.Level
}

// Theme returns the active theme's name.
func (s *Session) Theme() string {
	return s.theme.Name
}

func (s *Session) Themes() []string {
	return s.Config.ThemeNames()
}

func (s *Session) Settings() Settings {
	return s.settings
}

func (s *Session) Totals() Totals {
	return Totals{
		TotalMoves:   s.Tally.TotalMoves,
		TotalSeconds: s.Tally.TotalSeconds,
		AverageStars: s.Tally.AverageStars(),
		Levels:       s.Tally.Levels(),
	}
}
