package tracking

import "errors"

var ErrUnknownStatus = errors.New("unknown order status")

// Status is the backend-owned order state. The client renders it and nothing
// more; transitions happen server-side.
type Status string

const (
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusOutOfDelivery  Status = "out of delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
	StatusReturnAccepted Status = "return accepted"
	StatusReturned       Status = "returned"
	StatusRefundAccepted Status = "refund accepted"
	StatusRefunded       Status = "refunded"
)

var allStatuses = map[Status]bool{
	StatusProcessing:     true,
	StatusShipped:        true,
	StatusOutOfDelivery:  true,
	StatusDelivered:      true,
	StatusCancelled:      true,
	StatusReturnAccepted: true,
	StatusReturned:       true,
	StatusRefundAccepted: true,
	StatusRefunded:       true,
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !allStatuses[s] {
		return "", ErrUnknownStatus
	}
	return s, nil
}

// Cancellable reports whether the user may still request cancellation.
func (s Status) Cancellable() bool {
	return s == StatusProcessing || s == StatusShipped
}
