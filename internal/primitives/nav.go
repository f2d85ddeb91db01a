package primitives

// NavState is a navigation target produced by the navigation-state holder.
type NavState struct {
	Screen string `json:"screen" yaml:"screen"`
	Extra  Detail `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Direction is the slide direction of a transition.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// TransitionState describes an in-flight slide. A nil *TransitionState means
// no animation is running.
type TransitionState struct {
	From      NavState  `json:"from" yaml:"from"`
	To        NavState  `json:"to" yaml:"to"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// DecisionKind classifies how a navigation request is handled.
type DecisionKind int

const (
	// Reselect: the request targets the settled screen. Settle without
	// animation or measurement.
	Reselect DecisionKind = iota
	// Jump: settle immediately without animation.
	Jump
	// Slide: animate in Decision.Direction.
	Slide
)

func (k DecisionKind) String() string {
	switch k {
	case Reselect:
		return "reselect"
	case Jump:
		return "jump"
	case Slide:
		return "slide"
	default:
		return "unknown"
	}
}

// Decision is the outcome of evaluating a navigation request against the
// settled navigation state.
type Decision struct {
	Kind      DecisionKind
	Direction Direction // set for Slide only
}
