package order

import (
	"context"
	"fmt"
	"time"

	"abinexis-storefront/internal/api"
	"abinexis-storefront/internal/tracking"
)

// Backend is the slice of the API client the order views need.
type Backend interface {
	GetOrders(ctx context.Context) ([]api.Order, error)
	GetOrder(ctx context.Context, orderID string) (*api.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*api.Order, error)
}

// TrackedOrder is an order joined with its rendered tracking timeline.
type TrackedOrder struct {
	Order       api.Order
	Status      tracking.Status
	Steps       []tracking.Step
	Cancellable bool
}

type Service interface {
	List(ctx context.Context) ([]api.Order, error)
	Track(ctx context.Context, orderID string) (*TrackedOrder, error)
	Cancel(ctx context.Context, orderID string) (*TrackedOrder, error)
}

type service struct {
	backend Backend
}

func NewService(backend Backend) Service {
	return &service{backend: backend}
}

func (s *service) List(ctx context.Context) ([]api.Order, error) {
	return s.backend.GetOrders(ctx)
}

func (s *service) Track(ctx context.Context, orderID string) (*TrackedOrder, error) {
	ord, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return present(ord)
}

// Cancel requests cancellation and re-renders the timeline from the
// backend's answer. The backend decides whether cancellation is still
// possible; Cancellable here is advisory for the UI.
func (s *service) Cancel(ctx context.Context, orderID string) (*TrackedOrder, error) {
	ord, err := s.backend.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return present(ord)
}

func present(ord *api.Order) (*TrackedOrder, error) {
	status, err := tracking.ParseStatus(ord.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", ord.ID, err)
	}

	timestamps := make(map[tracking.Status]time.Time, len(ord.StatusTimestamps))
	for raw, ts := range ord.StatusTimestamps {
		if s, err := tracking.ParseStatus(raw); err == nil {
			timestamps[s] = ts
		}
	}

	return &TrackedOrder{
		Order:       *ord,
		Status:      status,
		Steps:       tracking.Steps(status, timestamps, ord.CreatedAt),
		Cancellable: status.Cancellable(),
	}, nil
}
