package wizard

// State is a step of the booking wizard.
type State string

const (
	StateContactInfo    State = "contact_info"
	StateBookingDetails State = "booking_details"
	StateReview         State = "review"
	StateSubmitting     State = "submitting"
	StateConfirmed      State = "confirmed"
	StateFailed         State = "failed"
)

// validTransitions defines the allowed state transitions.
var validTransitions = map[State][]State{
	StateContactInfo:    {StateBookingDetails},
	StateBookingDetails: {StateContactInfo, StateReview},
	StateReview:         {StateBookingDetails, StateSubmitting},
	StateSubmitting:     {StateConfirmed, StateFailed},
	StateFailed:         {StateReview, StateSubmitting},
	StateConfirmed:      {},
}

// CanTransitionTo checks whether moving from s to target is allowed.
func (s State) CanTransitionTo(target State) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true once the booking has been placed.
func (s State) IsTerminal() bool {
	return s == StateConfirmed
}
