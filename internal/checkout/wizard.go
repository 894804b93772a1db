package checkout

import (
	"context"
	"regexp"
	"sync"

	"abinexis-storefront/internal/address"
	"abinexis-storefront/internal/api"
	"abinexis-storefront/internal/logger"
	"abinexis-storefront/internal/pricing"

	"go.uber.org/zap"
)

// Step is a wizard position. Forward movement is gated, backward is free.
type Step int

const (
	StepInformation Step = iota + 1
	StepShipping
	StepPayment
)

func (s Step) String() string {
	switch s {
	case StepInformation:
		return "information"
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	default:
		return "unknown"
	}
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

type PersonalInfo struct {
	FirstName string
	LastName  string
	Email     string
}

// OrderPlacer is the slice of the API client the wizard needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*api.Order, error)
}

// Wizard drives the three-step checkout. It owns no pricing or inventory
// truth: items arrive from the cart snapshot and the backend has the final
// word at placement.
type Wizard struct {
	placer OrderPlacer

	mu            sync.Mutex
	step          Step
	info          PersonalInfo
	selectedAddr  *address.Address
	items         []pricing.LineItem
	paymentMethod string
	stepErrs      map[Step]error
	processing    bool
}

func NewWizard(placer OrderPlacer) *Wizard {
	return &Wizard{
		placer:   placer,
		step:     StepInformation,
		stepErrs: make(map[Step]error),
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// StepError returns the last recorded gate failure for a step, or nil.
func (w *Wizard) StepError(step Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stepErrs[step]
}

// SetPersonalInfo stores the buyer's details. A recorded information-step
// error clears as soon as the new details pass the gate.
func (w *Wizard) SetPersonalInfo(info PersonalInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.info = info
	if validatePersonalInfo(info) == nil {
		delete(w.stepErrs, StepInformation)
	}
}

// SelectAddress stores the delivery address. Selecting a non-nil address
// clears the shipping-step error immediately.
func (w *Wizard) SelectAddress(addr *address.Address) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.selectedAddr = addr
	if addr != nil {
		delete(w.stepErrs, StepShipping)
	}
}

// SetItems replaces the wizard's view of the cart. Called on every cart
// refresh so the stock gate at placement sees the latest snapshot.
func (w *Wizard) SetItems(items []pricing.LineItem) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = make([]pricing.LineItem, len(items))
	copy(w.items, items)
}

func (w *Wizard) SetPaymentMethod(method string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paymentMethod = method
}

// Next advances one step when the current step's gate passes. On failure the
// error is recorded against the step and returned; the wizard stays put.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepInformation:
		if err := validatePersonalInfo(w.info); err != nil {
			w.stepErrs[StepInformation] = err
			return err
		}
		w.step = StepShipping
	case StepShipping:
		if w.selectedAddr == nil {
			w.stepErrs[StepShipping] = ErrNoAddressSelected
			return ErrNoAddressSelected
		}
		w.step = StepPayment
	case StepPayment:
		// already at the last step
	}
	return nil
}

// Back moves one step towards information. Never gated.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > StepInformation {
		w.step--
	}
}

// CanPlaceOrder reports whether the terminal action is currently allowed.
func (w *Wizard) CanPlaceOrder() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.placementGate() == nil
}

func (w *Wizard) placementGate() error {
	if w.step != StepPayment {
		return ErrNotAtPayment
	}
	if w.selectedAddr == nil {
		return ErrNoAddressSelected
	}
	if len(w.items) == 0 {
		return ErrCartEmpty
	}
	if !pricing.AllInStock(w.items) {
		return ErrItemsOutOfStock
	}
	if w.processing {
		return ErrAlreadyProcessing
	}
	return nil
}

// PlaceOrder submits the order. A processing flag guards the duration of the
// call so a double trigger gets ErrAlreadyProcessing instead of a second
// submission. On failure the wizard stays at the payment step; nothing is
// retried.
func (w *Wizard) PlaceOrder(ctx context.Context) (*api.Order, error) {
	w.mu.Lock()
	if err := w.placementGate(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.processing = true

	req := api.CreateOrderRequest{
		Items:           make([]api.OrderItemInput, 0, len(w.items)),
		ShippingAddress: addressDTO(*w.selectedAddr),
		PaymentMethod:   w.paymentMethod,
	}
	for _, item := range w.items {
		req.Items = append(req.Items, api.OrderItemInput{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Filters:   item.Filters,
		})
	}
	w.mu.Unlock()

	log := logger.FromCtx(ctx).With(
		zap.Int("item_count", len(req.Items)),
		zap.String("payment_method", req.PaymentMethod),
	)
	log.Info("placing order")

	order, err := w.placer.CreateOrder(ctx, req)

	w.mu.Lock()
	w.processing = false
	w.mu.Unlock()

	if err != nil {
		log.Error("order placement failed", zap.Error(err))
		return nil, err
	}

	log.Info("order placed", zap.String("order_id", order.ID), zap.String("status", order.Status))
	return order, nil
}

func validatePersonalInfo(info PersonalInfo) error {
	if info.FirstName == "" {
		return ErrFirstNameRequired
	}
	if info.LastName == "" {
		return ErrLastNameRequired
	}
	if info.Email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(info.Email) {
		return ErrEmailInvalid
	}
	return nil
}

func addressDTO(addr address.Address) api.AddressDTO {
	return api.AddressDTO{
		Type:     string(addr.Type),
		Address:  addr.Address,
		City:     addr.City,
		State:    addr.State,
		ZipCode:  addr.ZipCode,
		Phone:    addr.Phone,
		IsActive: addr.IsActive,
	}
}
