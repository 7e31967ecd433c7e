package orchestrator

import "testing"

func TestTransition(t *testing.T) {
	tests := []struct {
		from State
		o    outcome
		want State
	}{
		{Start, succeeded, CreatingFast},
		{Start, failed, CreatingFast},
		{CreatingFast, succeeded, EnvReady},
		{CreatingFast, failed, CreatingStandard},
		{CreatingStandard, succeeded, EnvReady},
		{CreatingStandard, failed, Failed},
		{EnvReady, succeeded, Installing},
		{Installing, succeeded, Done},
		{Installing, failed, InstallFailed},
		{Done, failed, Done},
		{InstallFailed, succeeded, InstallFailed},
		{Failed, succeeded, Failed},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			if got := transition(tt.from, tt.o); got != tt.want {
				t.Errorf("transition(%s, %d) = %s, want %s", tt.from, tt.o, got, tt.want)
			}
		})
	}
}

func TestTransitionVisitsEachStateOnce(t *testing.T) {
	// Walk every combination of outcomes and check no state repeats.
	var walk func(s State, seen map[State]bool)
	walk = func(s State, seen map[State]bool) {
		if seen[s] {
			t.Fatalf("state %s visited twice", s)
		}
		if s.Terminal() {
			return
		}
		for _, o := range []outcome{succeeded, failed} {
			next := make(map[State]bool, len(seen)+1)
			for k := range seen {
				next[k] = true
			}
			next[s] = true
			walk(transition(s, o), next)
		}
	}
	walk(Start, map[State]bool{})
}

func TestStateString(t *testing.T) {
	if got := CreatingStandard.String(); got != "CreatingStandard" {
		t.Errorf("String() = %q", got)
	}
	if got := State(42).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}

func TestStateTerminal(t *testing.T) {
	for _, s := range []State{Start, CreatingFast, CreatingStandard, EnvReady, Installing} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []State{Done, InstallFailed, Failed} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}
