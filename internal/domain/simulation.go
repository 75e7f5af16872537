package domain

// TransitionState is the animation lifecycle of the simulation view.
type TransitionState int

const (
	TransitionIdle TransitionState = iota
	TransitionTransitioning
	TransitionSettling
)

func (s TransitionState) String() string {
	switch s {
	case TransitionIdle:
		return "idle"
	case TransitionTransitioning:
		return "transitioning"
	case TransitionSettling:
		return "settling"
	default:
		return "unknown"
	}
}

func (s TransitionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SimulationState is the single record the simulation controller owns.
// Filter and Advisory lag Mode while a transition is in flight.
type SimulationState struct {
	Mode       ImpairmentMode   `json:"mode"`
	Filter     FilterExpression `json:"filter"`
	Advisory   AdvisoryText     `json:"advisory"`
	Pending    bool             `json:"pending"`
	Transition TransitionState  `json:"transition"`

	// Generation increments on every mode selection.
	Generation uint64 `json:"generation"`
}

// InitialSimulationState is Idle with Normal vision.
func InitialSimulationState() SimulationState {
	return SimulationState{Mode: ModeNormal, Transition: TransitionIdle}
}

// AdvisoryVisible reports whether the advisory box should be drawn at all.
func (s SimulationState) AdvisoryVisible() bool {
	return s.Advisory != ""
}

// Settled is true once no delayed effect is outstanding.
func (s SimulationState) Settled() bool {
	return s.Transition == TransitionIdle
}

// Clone returns a copy safe to hand to other goroutines.
func (s SimulationState) Clone() SimulationState {
	s.Filter = s.Filter.Clone()
	return s
}
