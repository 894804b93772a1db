package address

import "errors"

var (
	ErrNoAddresses     = errors.New("no saved addresses")
	ErrIndexOutOfRange = errors.New("address index out of range")
	ErrIncompleteInput = errors.New("address is missing required fields")
)
