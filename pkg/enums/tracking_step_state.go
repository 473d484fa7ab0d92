package enums

// TrackingStepState is the display state of one step of the order progress indicator.
type TrackingStepState string

const (
	TrackingStepCompleted TrackingStepState = "completed"
	TrackingStepCurrent   TrackingStepState = "current"
	TrackingStepUpcoming  TrackingStepState = "upcoming"
)

// String implements fmt.Stringer.
func (t TrackingStepState) String() string {
	return string(t)
}
