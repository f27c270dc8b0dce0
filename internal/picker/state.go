// Package picker implements the mood picker interaction: choose one mood,
// optionally attach a note, submit the pair and reset once the server accepts it.
//
// The state machine is
//
//	Unselected --select--> Selected --submit--> Submitting
//	Submitting --success--> Unselected (reset and reload)
//	Submitting --failure--> Selected (unchanged)
//
// State values are plain data and the handlers below are pure, so any front
// end can drive them. Picker binds them to a Controls implementation.
package picker

import (
	"errors"
	"fmt"
	"slices"

	"github.com/julianstephens/moodlit/internal/models"
)

// Phase is the position in the picker state machine
type Phase int

const (
	PhaseUnselected Phase = iota
	PhaseSelected
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseUnselected:
		return "unselected"
	case PhaseSelected:
		return "selected"
	case PhaseSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ErrUnknownMood is returned when selecting an id outside the option set
var ErrUnknownMood = errors.New("unknown mood")

// State is the complete picker state. The zero value is an empty, unselected picker.
type State struct {
	Phase Phase
	Mood  string
	Note  string
}

// SubmitEnabled reports whether the submit control should be enabled
func (s State) SubmitEnabled() bool {
	return s.Phase == PhaseSelected
}

// Selected reports whether a mood is currently chosen
func (s State) Selected() bool {
	return s.Mood != ""
}

// Select makes id the single active mood. Re-selecting the current mood is a
// no-op, and selection is frozen while a submission is in flight.
func Select(s State, id string) State {
	if s.Phase == PhaseSubmitting || id == "" {
		return s
	}
	s.Mood = id
	s.Phase = PhaseSelected
	return s
}

// SelectFrom is Select restricted to the given option set
func SelectFrom(s State, options []string, id string) (State, error) {
	if !slices.Contains(options, id) {
		return s, fmt.Errorf("%w: %q", ErrUnknownMood, id)
	}
	return Select(s, id), nil
}

// SetNote replaces the note text. The note may be edited in any phase except
// while submitting, since the in-flight payload has already been captured.
func SetNote(s State, note string) State {
	if s.Phase == PhaseSubmitting {
		return s
	}
	s.Note = note
	return s
}

// BeginSubmit moves a Selected state to Submitting and returns the payload to
// send. ok is false when there is nothing to send: no selection, or a
// submission is already in flight.
func BeginSubmit(s State) (next State, payload models.MoodRequest, ok bool) {
	if s.Phase != PhaseSelected || s.Mood == "" {
		return s, models.MoodRequest{}, false
	}
	s.Phase = PhaseSubmitting
	return s, models.MoodRequest{Mood: s.Mood, Note: s.Note}, true
}

// Outcome tells the front end what to do after a submission settles
type Outcome struct {
	// Reset means selection and note were cleared and the view should reload
	Reset bool
	Err   error
}

// Settle finishes a submission. A nil err resets the picker; any error
// returns it to Selected with mood and note intact.
func Settle(s State, err error) (State, Outcome) {
	if s.Phase != PhaseSubmitting {
		return s, Outcome{Err: err}
	}
	if err != nil {
		s.Phase = PhaseSelected
		return s, Outcome{Err: err}
	}
	return State{}, Outcome{Reset: true}
}
