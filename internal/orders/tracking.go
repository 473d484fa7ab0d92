package orders

import (
	"sort"

	"github.com/angelmondragon/laundrypro-storefront/pkg/enums"
)

const (
	StepOrderPlaced = "order-placed"
	StepProcessing  = "processing"
	StepInTransit   = "in-transit"
	StepDelivered   = "delivered"
)

// TrackingStep is one stage of the fixed four-step progress indicator.
type TrackingStep struct {
	Key   string
	Label string
	State enums.TrackingStepState
}

// TrackingSteps derives the progress indicator for status. There is no in-transit
// status, so that step only ever shows upcoming or completed.
func TrackingSteps(status enums.OrderStatus) []TrackingStep {
	completed := status == enums.OrderStatusCompleted

	processing := enums.TrackingStepUpcoming
	switch {
	case status == enums.OrderStatusProcessing:
		processing = enums.TrackingStepCurrent
	case completed:
		processing = enums.TrackingStepCompleted
	}

	tail := enums.TrackingStepUpcoming
	if completed {
		tail = enums.TrackingStepCompleted
	}

	return []TrackingStep{
		{Key: StepOrderPlaced, Label: "Order Placed", State: enums.TrackingStepCompleted},
		{Key: StepProcessing, Label: "Processing", State: processing},
		{Key: StepInTransit, Label: "In Transit", State: tail},
		{Key: StepDelivered, Label: "Delivered", State: tail},
	}
}

// SortByPlacedDesc returns a copy of list ordered newest placement first.
func SortByPlacedDesc(list []Order) []Order {
	out := make([]Order, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlacedAt.After(out[j].PlacedAt)
	})
	return out
}
