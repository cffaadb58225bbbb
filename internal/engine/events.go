package engine

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventHit EventKind = iota
	EventCollect
	EventPowerUp
	EventAnnounce
	EventPhase
	EventWin
	EventGameOver
	EventNewBest
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "hit"
	case EventCollect:
		return "collect"
	case EventPowerUp:
		return "powerup"
	case EventAnnounce:
		return "announce"
	case EventPhase:
		return "phase"
	case EventWin:
		return "win"
	case EventGameOver:
		return "gameover"
	case EventNewBest:
		return "newbest"
	default:
		return "unknown"
	}
}

// Event is one outcome of a tick.
type Event struct {
	Kind   EventKind
	Entity Entity // the entity involved, for contact events
	Phase  int    // for phase and announce events
	Text   string // announcement text
	Value  int    // session result, for terminal and new-best events
}

// StepResult is returned by every tick.
type StepResult struct {
	Status Status
	Events []Event
	// Ended is true only on the tick that reached a terminal status.
	Ended bool
}

// Has reports whether an event of kind k occurred.
func (r StepResult) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
