package cart

import (
	"context"
	"sync"

	"abinexis-storefront/internal/api"
	"abinexis-storefront/internal/logger"
	"abinexis-storefront/internal/pricing"

	"go.uber.org/zap"
)

// Backend is the slice of the API client the cart needs.
type Backend interface {
	GetCart(ctx context.Context) (*api.CartResponse, error)
	AddToCart(ctx context.Context, req api.AddToCartRequest) (*api.CartResponse, error)
	RemoveFromCart(ctx context.Context, req api.RemoveFromCartRequest) (*api.CartResponse, error)
	GetPriceDetails(ctx context.Context, productID string, selectedFilters map[string]string) (*api.PriceDetails, error)
}

// Service holds the current cart snapshot. Totals are never stored; they are
// recomputed from the snapshot on every Summary call.
type Service interface {
	Load(ctx context.Context) ([]pricing.LineItem, error)
	Items() []pricing.LineItem
	Add(ctx context.Context, productID string, quantity int, filters map[string]string) error
	UpdateQuantity(ctx context.Context, productID string, quantity int) error
	Remove(ctx context.Context, productID string) error
	Summary() pricing.PriceSummary
}

type service struct {
	backend  Backend
	discount pricing.Discount

	mu    sync.RWMutex
	items []pricing.LineItem
}

func NewService(backend Backend, discount pricing.Discount) Service {
	if discount == nil {
		discount = pricing.NoDiscount{}
	}
	return &service{backend: backend, discount: discount}
}

// Load fetches the cart and prices every line under its filter selection.
// On failure the previous snapshot is kept so the caller can fall back to
// cached state.
func (s *service) Load(ctx context.Context) ([]pricing.LineItem, error) {
	resp, err := s.backend.GetCart(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, resp)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	return s.Items(), nil
}

func (s *service) buildItems(ctx context.Context, resp *api.CartResponse) ([]pricing.LineItem, error) {
	log := logger.FromCtx(ctx)

	items := make([]pricing.LineItem, 0, len(resp.Items))
	for _, entry := range resp.Items {
		item := pricing.LineItem{
			ID:            entry.Product.ID,
			Name:          entry.Product.Name,
			Quantity:      entry.Quantity,
			InStock:       entry.Product.InStock,
			Filters:       entry.Filters,
			Price:         entry.Price,
			OriginalPrice: entry.Price,
		}
		if entry.DiscountPrice > 0 {
			item.Price = entry.DiscountPrice
		}

		details, err := s.backend.GetPriceDetails(ctx, entry.Product.ID, entry.Filters)
		if err != nil {
			// Priced from the cart entry itself; shipping unknown until the
			// next successful refresh.
			log.Warn("price details unavailable, using cart entry prices",
				zap.String("product_id", entry.Product.ID),
				zap.Error(err),
			)
		} else {
			item.Price = details.EffectivePrice
			item.OriginalPrice = details.NormalPrice
			item.ShippingCost = details.ShippingCost
		}

		items = append(items, item)
	}
	return items, nil
}

func (s *service) Items() []pricing.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pricing.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *service) Add(ctx context.Context, productID string, quantity int, filters map[string]string) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	resp, err := s.backend.AddToCart(ctx, api.AddToCartRequest{
		ProductID: productID,
		Quantity:  quantity,
		Filters:   filters,
	})
	if err != nil {
		return err
	}
	return s.replaceFrom(ctx, resp)
}

// UpdateQuantity sets an item's quantity. Zero or negative removes the item.
// The backend only exposes add and remove, so a decrease is a remove
// followed by a re-add at the new quantity.
func (s *service) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	s.mu.RLock()
	var current *pricing.LineItem
	for i := range s.items {
		if s.items[i].ID == productID {
			item := s.items[i]
			current = &item
			break
		}
	}
	s.mu.RUnlock()

	if current == nil {
		return ErrItemNotFound
	}
	if quantity == current.Quantity {
		return nil
	}

	if quantity > current.Quantity {
		resp, err := s.backend.AddToCart(ctx, api.AddToCartRequest{
			ProductID: productID,
			Quantity:  quantity - current.Quantity,
			Filters:   current.Filters,
		})
		if err != nil {
			return err
		}
		return s.replaceFrom(ctx, resp)
	}

	if _, err := s.backend.RemoveFromCart(ctx, api.RemoveFromCartRequest{
		ProductID: productID,
		Filters:   current.Filters,
	}); err != nil {
		return err
	}
	resp, err := s.backend.AddToCart(ctx, api.AddToCartRequest{
		ProductID: productID,
		Quantity:  quantity,
		Filters:   current.Filters,
	})
	if err != nil {
		return err
	}
	return s.replaceFrom(ctx, resp)
}

func (s *service) Remove(ctx context.Context, productID string) error {
	s.mu.RLock()
	var filters map[string]string
	found := false
	for i := range s.items {
		if s.items[i].ID == productID {
			filters = s.items[i].Filters
			found = true
			break
		}
	}
	s.mu.RUnlock()

	if !found {
		return ErrItemNotFound
	}

	resp, err := s.backend.RemoveFromCart(ctx, api.RemoveFromCartRequest{
		ProductID: productID,
		Filters:   filters,
	})
	if err != nil {
		return err
	}
	return s.replaceFrom(ctx, resp)
}

func (s *service) replaceFrom(ctx context.Context, resp *api.CartResponse) error {
	items, err := s.buildItems(ctx, resp)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Summary recomputes the totals from the current snapshot.
func (s *service) Summary() pricing.PriceSummary {
	return pricing.Aggregate(s.Items(), s.discount)
}
