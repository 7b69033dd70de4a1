package layout

import (
	"time"

	"github.com/google/uuid"
)

// Mode is a gallery layout.
type Mode int

const (
	// ModeNone is the mode of an item that has not been placed yet.
	ModeNone Mode = iota
	ModeSpiral
	ModeHorizon
)

func (m Mode) String() string {
	switch m {
	case ModeSpiral:
		return "spiral"
	case ModeHorizon:
		return "horizon"
	}
	return "none"
}

// Other returns the mode a transition from m leads to.
func (m Mode) Other() Mode {
	if m == ModeSpiral {
		return ModeHorizon
	}
	return ModeSpiral
}

// Phase is where the gallery is in its choreography.
type Phase int

const (
	PhaseStable Phase = iota
	PhaseHiding
	PhaseShowing
)

func (p Phase) String() string {
	switch p {
	case PhaseHiding:
		return "hiding"
	case PhaseShowing:
		return "showing"
	}
	return "stable"
}

// Boundary names which edge item of the layout triggered a transition.
type Boundary int

const (
	BoundaryNone Boundary = iota
	BoundaryStart
	BoundaryEnd
)

func (b Boundary) String() string {
	switch b {
	case BoundaryStart:
		return "start"
	case BoundaryEnd:
		return "end"
	}
	return "none"
}

// Transition is the record of one hide, reposition and show cycle.
type Transition struct {
	ID       uuid.UUID
	From     Mode
	To       Mode
	Boundary Boundary

	// Delay is the stagger step between consecutive in-view items.
	Delay time.Duration

	// Initial is set for the first setup, whose hides are instant.
	Initial bool
}

// EventKind classifies gallery events.
type EventKind int

const (
	// EventTransitionStarted is emitted when the lock is taken and hides are scheduled.
	EventTransitionStarted EventKind = iota

	// EventModeChanged is emitted once every item is hidden and the mode flag flips.
	// Hosts move the camera in response.
	EventModeChanged

	// EventTransitionCompleted is emitted when the last show finishes and the lock clears.
	EventTransitionCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventModeChanged:
		return "mode-changed"
	case EventTransitionCompleted:
		return "completed"
	}
	return "started"
}

// Event reports a choreography edge.
type Event struct {
	Kind       EventKind
	Transition uuid.UUID
	Mode       Mode
}
