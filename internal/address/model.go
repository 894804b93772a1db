package address

// Type is the user-facing label of a saved address.
type Type string

const (
	TypeHome  Type = "Home"
	TypeWork  Type = "Work"
	TypeOther Type = "Other"
)

// Address is a saved delivery address. The account on the backend owns the
// record; this is the cached copy used during checkout.
type Address struct {
	Type     Type
	Address  string
	City     string
	State    string
	ZipCode  string
	Phone    string
	IsActive bool
}
