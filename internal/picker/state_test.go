package picker

import (
	"errors"
	"testing"
)

var testOptions = []string{"happy", "calm", "sad"}

func TestSelectIsExclusiveAndIdempotent(t *testing.T) {
	tests := []struct {
		name   string
		clicks []string
		want   string
	}{
		{name: "single", clicks: []string{"happy"}, want: "happy"},
		{name: "switch", clicks: []string{"happy", "sad"}, want: "sad"},
		{name: "reselect", clicks: []string{"calm", "calm", "calm"}, want: "calm"},
		{name: "back and forth", clicks: []string{"happy", "sad", "happy"}, want: "happy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			for _, id := range tt.clicks {
				var err error
				s, err = SelectFrom(s, testOptions, id)
				if err != nil {
					t.Fatalf("SelectFrom(%q) error = %v", id, err)
				}
			}
			if s.Mood != tt.want {
				t.Errorf("Mood = %q, want %q", s.Mood, tt.want)
			}
			if s.Phase != PhaseSelected {
				t.Errorf("Phase = %v, want %v", s.Phase, PhaseSelected)
			}
		})
	}
}

func TestSelectFromUnknownMood(t *testing.T) {
	s := Select(State{}, "happy")
	got, err := SelectFrom(s, testOptions, "grumpy")
	if !errors.Is(err, ErrUnknownMood) {
		t.Fatalf("error = %v, want ErrUnknownMood", err)
	}
	if got != s {
		t.Errorf("state changed on unknown mood: %+v", got)
	}
}

func TestSubmitEnabledIffSelected(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{state: State{}, want: false},
		{state: State{Phase: PhaseSelected, Mood: "happy"}, want: true},
		{state: State{Phase: PhaseSubmitting, Mood: "happy"}, want: false},
	}
	for _, tt := range tests {
		if got := tt.state.SubmitEnabled(); got != tt.want {
			t.Errorf("%v.SubmitEnabled() = %v, want %v", tt.state.Phase, got, tt.want)
		}
	}
}

func TestBeginSubmitWithoutSelection(t *testing.T) {
	s := SetNote(State{}, "just a note")
	next, payload, ok := BeginSubmit(s)
	if ok {
		t.Fatal("BeginSubmit should refuse an unselected state")
	}
	if next != s || payload.Mood != "" {
		t.Errorf("unexpected transition: %+v %+v", next, payload)
	}
}

func TestBeginSubmitCapturesPayload(t *testing.T) {
	s := SetNote(Select(State{}, "happy"), "feeling good")
	next, payload, ok := BeginSubmit(s)
	if !ok {
		t.Fatal("BeginSubmit refused a selected state")
	}
	if next.Phase != PhaseSubmitting {
		t.Errorf("Phase = %v, want submitting", next.Phase)
	}
	if payload.Mood != "happy" || payload.Note != "feeling good" {
		t.Errorf("payload = %+v", payload)
	}

	// No re-entry while in flight
	if _, _, ok := BeginSubmit(next); ok {
		t.Error("BeginSubmit should refuse while submitting")
	}
	if got := Select(next, "sad"); got != next {
		t.Errorf("Select while submitting changed state: %+v", got)
	}
	if got := SetNote(next, "edited"); got.Note != "feeling good" {
		t.Errorf("SetNote while submitting changed note to %q", got.Note)
	}
}

func TestSettle(t *testing.T) {
	submitting := State{Phase: PhaseSubmitting, Mood: "happy", Note: "feeling good"}

	t.Run("success resets", func(t *testing.T) {
		next, out := Settle(submitting, nil)
		if !out.Reset || out.Err != nil {
			t.Errorf("outcome = %+v, want reset", out)
		}
		if next != (State{}) {
			t.Errorf("state = %+v, want zero", next)
		}
	})

	t.Run("failure keeps selection", func(t *testing.T) {
		boom := errors.New("boom")
		next, out := Settle(submitting, boom)
		if out.Reset || !errors.Is(out.Err, boom) {
			t.Errorf("outcome = %+v", out)
		}
		if next.Phase != PhaseSelected || next.Mood != "happy" || next.Note != "feeling good" {
			t.Errorf("state = %+v, want selected happy with note", next)
		}
		if !next.SubmitEnabled() {
			t.Error("submit should be enabled again after a failure")
		}
	})

	t.Run("not submitting is ignored", func(t *testing.T) {
		s := Select(State{}, "calm")
		next, out := Settle(s, nil)
		if out.Reset || next != s {
			t.Errorf("Settle on selected state = %+v %+v", next, out)
		}
	})
}

func TestPhaseString(t *testing.T) {
	if PhaseSubmitting.String() != "submitting" {
		t.Errorf("PhaseSubmitting.String() = %q", PhaseSubmitting.String())
	}
	if Phase(9).String() != "Phase(9)" {
		t.Errorf("Phase(9).String() = %q", Phase(9).String())
	}
}
