package picker

import (
	"context"
	"errors"
	"sync"

	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// ErrSubmitInFlight is returned by Submit while a previous submission is pending
var ErrSubmitInFlight = errors.New("a mood submission is already in progress")

// Controls is the view the picker drives: a row of mood controls, a note
// input and a submit control.
type Controls interface {
	// MarkActive shows id as the only active mood; "" clears every control
	MarkActive(id string)
	SetSubmitEnabled(enabled bool)
	// Note returns the current note text
	Note() string
	ClearNote()
	// Reload refreshes the view after a successful submission
	Reload()
	ReportError(err error)
}

// Submitter delivers a mood to the server
type Submitter interface {
	SaveMood(ctx context.Context, req models.MoodRequest) error
}

// Picker binds picker state to a set of controls and a submitter
type Picker struct {
	mu        sync.Mutex
	state     State
	options   []string
	controls  Controls
	submitter Submitter
}

// New creates a picker over the given mood ids and puts the controls in
// their initial state: nothing active and submit disabled.
func New(options []string, controls Controls, submitter Submitter) *Picker {
	p := &Picker{
		options:   options,
		controls:  controls,
		submitter: submitter,
	}
	controls.MarkActive("")
	controls.SetSubmitEnabled(false)
	return p
}

// State returns a snapshot of the current state
func (p *Picker) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Options returns the selectable mood ids
func (p *Picker) Options() []string {
	return p.options
}

// SelectMood makes id the active mood and enables submit
func (p *Picker) SelectMood(id string) error {
	p.mu.Lock()
	next, err := SelectFrom(p.state, p.options, id)
	if err != nil {
		p.mu.Unlock()
		return err
	}
	p.state = next
	p.mu.Unlock()

	p.render(next)
	return nil
}

// Submit sends the selected mood and current note. It is a no-op without a
// selection. On success the controls are reset and reloaded; on failure the
// state is left as it was and the error is logged, reported and returned.
func (p *Picker) Submit(ctx context.Context) error {
	p.mu.Lock()
	if p.state.Phase == PhaseSubmitting {
		p.mu.Unlock()
		return ErrSubmitInFlight
	}
	p.state = SetNote(p.state, p.controls.Note())
	next, payload, ok := BeginSubmit(p.state)
	if !ok {
		p.mu.Unlock()
		return nil
	}
	p.state = next
	p.mu.Unlock()

	p.controls.SetSubmitEnabled(false)

	err := p.submitter.SaveMood(ctx, payload)

	p.mu.Lock()
	settled, outcome := Settle(p.state, err)
	p.state = settled
	p.mu.Unlock()

	if outcome.Err != nil {
		logger.Error("Error saving mood", "mood", payload.Mood, "error", outcome.Err)
		p.render(settled)
		p.controls.ReportError(outcome.Err)
		return outcome.Err
	}

	logger.Debug("Mood saved", "mood", payload.Mood)
	p.controls.ClearNote()
	p.render(settled)
	p.controls.Reload()
	return nil
}

func (p *Picker) render(s State) {
	p.controls.MarkActive(s.Mood)
	p.controls.SetSubmitEnabled(s.SubmitEnabled())
}
