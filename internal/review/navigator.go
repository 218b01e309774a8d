// Package review implements the card navigation state machine used during a review session.
package review

import "fmt"

// Action is a user input consumed by the navigator
type Action int

const (
	ActionFlip Action = iota
	ActionNext
	ActionPrev
	ActionToggleTracking
	ActionGradeCorrect
	ActionGradeIncorrect
)

var actionNames = map[Action]string{
	ActionFlip:           "flip",
	ActionNext:           "next",
	ActionPrev:           "prev",
	ActionToggleTracking: "track",
	ActionGradeCorrect:   "correct",
	ActionGradeIncorrect: "incorrect",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction maps the name returned by Action.String back to the action
func ParseAction(name string) (Action, bool) {
	for action, n := range actionNames {
		if n == name {
			return action, true
		}
	}
	return 0, false
}

// State is the transient position of a review session
type State struct {
	Index    int
	Flipped  bool
	Tracking bool
}

// Outcome tells the caller what the transition requires beyond the new state
type Outcome struct {
	// Graded is set when a grade action was accepted; the caller records it
	Graded  bool
	Correct bool
	// Changed is false for no-ops such as moving past either end of the deck
	Changed bool
}

// Apply returns the state that follows action on a deck of size cards
func Apply(s State, action Action, size int) (State, Outcome) {
	next := s

	switch action {
	case ActionFlip:
		next.Flipped = !s.Flipped
	case ActionNext:
		if s.Index < size-1 {
			next.Index = s.Index + 1
			next.Flipped = false
		}
	case ActionPrev:
		if s.Index > 0 && size > 0 {
			next.Index = s.Index - 1
			next.Flipped = false
		}
	case ActionToggleTracking:
		next.Tracking = !s.Tracking
	case ActionGradeCorrect, ActionGradeIncorrect:
		if CanGrade(s, size) {
			return s, Outcome{Graded: true, Correct: action == ActionGradeCorrect}
		}
	}

	return next, Outcome{Changed: next != s}
}

// CanGrade reports whether grade actions take effect in state s
func CanGrade(s State, size int) bool {
	return s.Tracking && s.Flipped && s.Index >= 0 && s.Index < size
}

// Clamp keeps the index inside a deck of size cards after the deck changed
func Clamp(s State, size int) State {
	if s.Index >= size {
		s.Index = size - 1
	}
	if s.Index < 0 {
		s.Index = 0
	}
	return s
}

// Navigator holds the state of one review session and exposes the actions as methods
type Navigator struct {
	state State
	size  int
}

// NewNavigator returns a navigator at the first card, face up, not tracking
func NewNavigator(size int) *Navigator {
	return &Navigator{size: size}
}

// Reset returns to the initial state for a reloaded deck
func (n *Navigator) Reset(size int) {
	n.state = State{}
	n.size = size
}

// Resize follows a deck that grew without resetting the session
func (n *Navigator) Resize(size int) {
	n.size = size
	n.state = Clamp(n.state, size)
}

// State returns the current state
func (n *Navigator) State() State {
	return n.state
}

// Do applies action and returns the outcome
func (n *Navigator) Do(action Action) Outcome {
	var out Outcome
	n.state, out = Apply(n.state, action, n.size)
	return out
}

func (n *Navigator) Flip() Outcome           { return n.Do(ActionFlip) }
func (n *Navigator) Next() Outcome           { return n.Do(ActionNext) }
func (n *Navigator) Prev() Outcome           { return n.Do(ActionPrev) }
func (n *Navigator) ToggleTracking() Outcome { return n.Do(ActionToggleTracking) }

// Grade asks for a grade of the current card
func (n *Navigator) Grade(isCorrect bool) Outcome {
	if isCorrect {
		return n.Do(ActionGradeCorrect)
	}
	return n.Do(ActionGradeIncorrect)
}
