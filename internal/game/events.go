package game

// Event is a signal emitted by a Session. Listeners switch on the concrete
// type.
type Event interface {
	event()
}

// DisplayChanged is emitted after every state change relevant to rendering.
type DisplayChanged struct{}

// LevelStarted is emitted when a level is (re)initialised.
type LevelStarted struct {
	Level int
	Theme string
}

// MatchFound is emitted when two selected cards share an icon.
type MatchFound struct {
	First, Second int
}

// Mismatched is emitted when two selected cards differ. They stay face up
// until the revert.
type Mismatched struct {
	First, Second int
}

// HintRevealed is emitted when a hint shows a pair.
type HintRevealed struct {
	First, Second int
}

// LevelCompleted is emitted a short delay after the last pair is found.
type LevelCompleted struct {
	Level     int
	Moves     int
	Seconds   int
	Stars     int
	NextLevel int
}

// SessionCompleted is emitted when advancing past the last level.
type SessionCompleted struct {
	TotalMoves   int
	TotalSeconds int
	AverageStars float64
}

func (DisplayChanged) event()   {}
func (LevelStarted) event()     {}
func (MatchFound) event()       {}
func (Mismatched) event()       {}
func (HintRevealed) event()     {}
func (LevelCompleted) event()   {}
func (SessionCompleted) event() {}

type listener struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every event and returns a function that removes
// it. Listeners are called in registration order.
func (s *Session) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.nextListener++
	id := s.nextListener
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) emit(e Event) {
	// Listeners may unsubscribe while being notified.
	ls := append([]listener(nil), s.listeners...)
	for _, l := range ls {
		l.fn(e)
	}
}
