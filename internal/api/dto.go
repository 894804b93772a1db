package api

import (
	"fmt"
	"time"
)

// DTOs are validated once at the network boundary so nothing downstream has
// to defensively probe optional fields.

type ProductRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	InStock  bool   `json:"inStock"`
}

type CartEntry struct {
	Product       ProductRef        `json:"product"`
	Quantity      int               `json:"quantity"`
	Price         float64           `json:"price"`
	DiscountPrice float64           `json:"discountPrice"`
	Filters       map[string]string `json:"filters"`
}

type CartResponse struct {
	Items []CartEntry `json:"items"`
}

func (c *CartResponse) Validate() error {
	for i, entry := range c.Items {
		if entry.Product.ID == "" {
			return fmt.Errorf("%w: cart item %d has no product id", ErrInvalidResponse, i)
		}
		if entry.Quantity < 1 {
			return fmt.Errorf("%w: cart item %d has quantity %d", ErrInvalidResponse, i, entry.Quantity)
		}
		if entry.Price < 0 {
			return fmt.Errorf("%w: cart item %d has negative price", ErrInvalidResponse, i)
		}
	}
	return nil
}

// PriceDetails is the backend's pricing of a product under a specific filter
// selection.
type PriceDetails struct {
	ProductID      string  `json:"productId"`
	EffectivePrice float64 `json:"effectivePrice"`
	NormalPrice    float64 `json:"normalPrice"`
	ShippingCost   float64 `json:"shippingCost"`
}

func (p *PriceDetails) Validate() error {
	if p.ProductID == "" {
		return fmt.Errorf("%w: price details missing product id", ErrInvalidResponse)
	}
	if p.EffectivePrice < 0 || p.NormalPrice < 0 || p.ShippingCost < 0 {
		return fmt.Errorf("%w: price details for %s contain negative amounts", ErrInvalidResponse, p.ProductID)
	}
	return nil
}

type OrderItemInput struct {
	ProductID string            `json:"productId"`
	Quantity  int               `json:"quantity"`
	Price     float64           `json:"price"`
	Filters   map[string]string `json:"filters,omitempty"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items"`
	ShippingAddress AddressDTO       `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID               string               `json:"id"`
	Status           string               `json:"status"`
	Total            float64              `json:"total"`
	Items            []OrderItem          `json:"items"`
	CreatedAt        time.Time            `json:"createdAt"`
	StatusTimestamps map[string]time.Time `json:"statusTimestamps"`
}

func (o *Order) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("%w: order missing id", ErrInvalidResponse)
	}
	if o.Status == "" {
		return fmt.Errorf("%w: order %s missing status", ErrInvalidResponse, o.ID)
	}
	return nil
}

type OrderList struct {
	Orders []Order `json:"orders"`
}

func (l *OrderList) Validate() error {
	for i := range l.Orders {
		if err := l.Orders[i].Validate(); err != nil {
			return fmt.Errorf("order %d: %w", i, err)
		}
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

func (a *AuthResponse) Validate() error {
	if a.Token == "" {
		return fmt.Errorf("%w: auth response missing token", ErrInvalidResponse)
	}
	return nil
}

type AddressDTO struct {
	Type     string `json:"type"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
}

type Profile struct {
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Addresses []AddressDTO `json:"addresses"`
}

func (p *Profile) Validate() error {
	if p.Email == "" {
		return fmt.Errorf("%w: profile missing email", ErrInvalidResponse)
	}
	for i, addr := range p.Addresses {
		if addr.Address == "" {
			return fmt.Errorf("%w: address %d is empty", ErrInvalidResponse, i)
		}
	}
	return nil
}

type UpdateProfileRequest struct {
	FirstName *string      `json:"firstName,omitempty"`
	LastName  *string      `json:"lastName,omitempty"`
	Phone     *string      `json:"phone,omitempty"`
	Addresses []AddressDTO `json:"addresses,omitempty"`
}
