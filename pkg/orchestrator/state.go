package orchestrator

// State is a step of the orchestration state machine.
type State int

const (
	Start State = iota
	CreatingFast
	CreatingStandard
	EnvReady
	Installing
	Done
	InstallFailed
	Failed
)

var stateNames = [...]string{
	Start:            "Start",
	CreatingFast:     "CreatingFast",
	CreatingStandard: "CreatingStandard",
	EnvReady:         "EnvReady",
	Installing:       "Installing",
	Done:             "Done",
	InstallFailed:    "InstallFailed",
	Failed:           "Failed",
}

// String returns the state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Terminal reports whether the walk stops at s.
func (s State) Terminal() bool {
	return s == Done || s == InstallFailed || s == Failed
}

// outcome is the result of the action performed in a state.
type outcome int

const (
	succeeded outcome = iota
	failed
)

func outcomeOf(err error) outcome {
	if err != nil {
		return failed
	}
	return succeeded
}

// transition returns the state that follows s given the outcome of its
// action. States without an action ignore the outcome. Terminal states map
// to themselves.
func transition(s State, o outcome) State {
	switch s {
	case Start:
		return CreatingFast
	case CreatingFast:
		if o == succeeded {
			return EnvReady
		}
		return CreatingStandard
	case CreatingStandard:
		if o == succeeded {
			return EnvReady
		}
		return Failed
	case EnvReady:
		return Installing
	case Installing:
		if o == succeeded {
			return Done
		}
		return InstallFailed
	}
	return s
}
