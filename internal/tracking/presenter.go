package tracking

import "time"

const dateLayout = "Jan 2, 2006"

// PendingDate is shown for steps that have not happened yet.
const PendingDate = "Pending"

// Step is one row of the tracking timeline.
type Step struct {
	Status      Status
	Label       string
	Description string
	Completed   bool
	Date        string
}

var descriptions = map[Status]string{
	StatusProcessing:     "Your order is being prepared",
	StatusShipped:        "Your order has left the warehouse",
	StatusOutOfDelivery:  "Your order is out for delivery",
	StatusDelivered:      "Your order has been delivered",
	StatusCancelled:      "Your order was cancelled",
	StatusReturnAccepted: "Your return request was accepted",
	StatusReturned:       "Your items have been returned",
	StatusRefundAccepted: "Your refund request was accepted",
	StatusRefunded:       "Your refund has been issued",
}

var labels = map[Status]string{
	StatusProcessing:     "Processing",
	StatusShipped:        "Shipped",
	StatusOutOfDelivery:  "Out for Delivery",
	StatusDelivered:      "Delivered",
	StatusCancelled:      "Cancelled",
	StatusReturnAccepted: "Return Accepted",
	StatusReturned:       "Returned",
	StatusRefundAccepted: "Refund Accepted",
	StatusRefunded:       "Refunded",
}

var deliverySequence = []Status{
	StatusProcessing,
	StatusShipped,
	StatusOutOfDelivery,
	StatusDelivered,
}

var returnSequence = append(deliverySequence[:len(deliverySequence):len(deliverySequence)],
	StatusReturnAccepted,
	StatusReturned,
)

var refundSequence = append(deliverySequence[:len(deliverySequence):len(deliverySequence)],
	StatusRefundAccepted,
	StatusRefunded,
)

// sequenceFor picks the fixed step list the current status belongs to.
func sequenceFor(status Status) []Status {
	switch status {
	case StatusReturnAccepted, StatusReturned:
		return returnSequence
	case StatusRefundAccepted, StatusRefunded:
		return refundSequence
	default:
		return deliverySequence
	}
}

// Steps renders the tracking timeline for an order. A cancelled order is a
// single-step view regardless of timestamps. Every step up to and including
// the current status is marked completed; each step's date falls back from
// its own timestamp, to the order creation date for already-reached steps,
// to "Pending".
func Steps(status Status, timestamps map[Status]time.Time, createdAt time.Time) []Step {
	if status == StatusCancelled {
		return []Step{{
			Status:      StatusCancelled,
			Label:       labels[StatusCancelled],
			Description: descriptions[StatusCancelled],
			Completed:   true,
			Date:        stepDate(StatusCancelled, 0, 0, timestamps, createdAt),
		}}
	}

	sequence := sequenceFor(status)

	current := -1
	for i, s := range sequence {
		if s == status {
			current = i
			break
		}
	}

	steps := make([]Step, 0, len(sequence))
	for i, s := range sequence {
		steps = append(steps, Step{
			Status:      s,
			Label:       labels[s],
			Description: descriptions[s],
			Completed:   current >= 0 && i <= current,
			Date:        stepDate(s, i, current, timestamps, createdAt),
		})
	}
	return steps
}

func stepDate(s Status, index, current int, timestamps map[Status]time.Time, createdAt time.Time) string {
	if ts, ok := timestamps[s]; ok && !ts.IsZero() {
		return ts.Format(dateLayout)
	}
	if current >= 0 && index <= current && !createdAt.IsZero() {
		return createdAt.Format(dateLayout)
	}
	return PendingDate
}
