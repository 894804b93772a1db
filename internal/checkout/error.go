package checkout

import "errors"

var (
	// -- Step 1 gates --
	ErrFirstNameRequired = errors.New("first name is required")
	ErrLastNameRequired  = errors.New("last name is required")
	ErrEmailRequired     = errors.New("email is required")
	ErrEmailInvalid      = errors.New("email address is invalid")

	// -- Step 2 gate --
	ErrNoAddressSelected = errors.New("no delivery address selected")

	// -- Placement --
	ErrNotAtPayment      = errors.New("order can only be placed at the payment step")
	ErrCartEmpty         = errors.New("cannot place an order with an empty cart")
	ErrItemsOutOfStock   = errors.New("some items in the cart are out of stock")
	ErrAlreadyProcessing = errors.New("order placement already in progress")
)
