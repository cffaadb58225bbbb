package engine

// Status is the top-level arcade session state.
type Status string

const (
	StatusStart    Status = "start"
	StatusPlaying  Status = "playing"
	StatusGameOver Status = "gameover"
	StatusWin      Status = "win"
)

// Terminal reports whether the status ends a session.
func (s Status) Terminal() bool {
	return s == StatusGameOver || s == StatusWin
}

// SessionEdges is the arcade session transition table.
var SessionEdges = map[Status][]Status{
	StatusStart:    {StatusPlaying},
	StatusPlaying:  {StatusGameOver, StatusWin},
	StatusGameOver: {StatusStart, StatusPlaying},
	StatusWin:      {StatusStart, StatusPlaying},
}

// NewSession creates an arcade session machine in StatusStart.
func NewSession() *Machine[Status] {
	return NewMachine(StatusStart, SessionEdges)
}
