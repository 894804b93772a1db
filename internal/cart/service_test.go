package cart

import (
	"context"
	"errors"
	"testing"

	"abinexis-storefront/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of the Backend interface
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) GetCart(ctx context.Context) (*api.CartResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CartResponse), args.Error(1)
}

func (m *MockBackend) AddToCart(ctx context.Context, req api.AddToCartRequest) (*api.CartResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CartResponse), args.Error(1)
}

func (m *MockBackend) RemoveFromCart(ctx context.Context, req api.RemoveFromCartRequest) (*api.CartResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CartResponse), args.Error(1)
}

func (m *MockBackend) GetPriceDetails(ctx context.Context, productID string, selectedFilters map[string]string) (*api.PriceDetails, error) {
	args := m.Called(ctx, productID, selectedFilters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.PriceDetails), args.Error(1)
}

func cartWith(entries ...api.CartEntry) *api.CartResponse {
	return &api.CartResponse{Items: entries}
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - prices merged from price details", func(t *testing.T) {
		mockBackend := new(MockBackend)
		svc := NewService(mockBackend, nil)

		mockBackend.On("GetCart", ctx).Return(cartWith(
			api.CartEntry{
				Product:  api.ProductRef{ID: "p1", Name: "Mug", InStock: true},
				Quantity: 2,
				Price:    120,
			},
		), nil).Once()
		mockBackend.On("GetPriceDetails", ctx, "p1", mock.Anything).Return(&api.PriceDetails{
			ProductID:      "p1",
			EffectivePrice: 100,
			NormalPrice:    120,
			ShippingCost:   10,
		}, nil).Once()

		items, err := svc.Load(ctx)

		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, 100.0, items[0].Price)
		assert.Equal(t, 120.0, items[0].OriginalPrice)
		assert.Equal(t, 10.0, items[0].ShippingCost)

		summary := svc.Summary()
		assert.Equal(t, 200.0, summary.Subtotal)
		assert.Equal(t, 40.0, summary.Savings)
		assert.Equal(t, 210.0, summary.Total)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Price details failure falls back to cart entry prices", func(t *testing.T) {
		mockBackend := new(MockBackend)
		svc := NewService(mockBackend, nil)

		mockBackend.On("GetCart", ctx).Return(cartWith(
			api.CartEntry{
				Product:       api.ProductRef{ID: "p1", Name: "Mug", InStock: true},
				Quantity:      1,
				Price:         120,
				DiscountPrice: 90,
			},
		), nil).Once()
		mockBackend.On("GetPriceDetails", ctx, "p1", mock.Anything).Return(nil, errors.New("pricing down")).Once()

		items, err := svc.Load(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 90.0, items[0].Price)
		assert.Equal(t, 120.0, items[0].OriginalPrice)
		assert.Equal(t, 0.0, items[0].ShippingCost)
	})

	t.Run("Cart fetch failure keeps previous snapshot", func(t *testing.T) {
		mockBackend := new(MockBackend)
		svc := NewService(mockBackend, nil)

		mockBackend.On("GetCart", ctx).Return(cartWith(
			api.CartEntry{Product: api.ProductRef{ID: "p1", InStock: true}, Quantity: 1, Price: 50},
		), nil).Once()
		mockBackend.On("GetPriceDetails", ctx, "p1", mock.Anything).Return(&api.PriceDetails{
			ProductID: "p1", EffectivePrice: 50, NormalPrice: 50,
		}, nil).Once()
		_, err := svc.Load(ctx)
		assert.NoError(t, err)

		mockBackend.On("GetCart", ctx).Return(nil, errors.New("network down")).Once()

		_, err = svc.Load(ctx)

		assert.Error(t, err)
		assert.Len(t, svc.Items(), 1)
	})
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockBackend := new(MockBackend)
		svc := NewService(mockBackend, nil)

		mockBackend.On("AddToCart", ctx, api.AddToCartRequest{
			ProductID: "p1",
			Quantity:  1,
		}).Return(cartWith(
			api.CartEntry{Product: api.ProductRef{ID: "p1", InStock: true}, Quantity: 1, Price: 50},
		), nil).Once()
		mockBackend.On("GetPriceDetails", ctx, "p1", mock.Anything).Return(&api.PriceDetails{
			ProductID: "p1", EffectivePrice: 50, NormalPrice: 50,
		}, nil).Once()

		err := svc.Add(ctx, "p1", 1, nil)

		assert.NoError(t, err)
		assert.Len(t, svc.Items(), 1)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		svc := NewService(new(MockBackend), nil)
		err := svc.Add(ctx, "p1", 0, nil)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	load := func(t *testing.T, mockBackend *MockBackend, svc Service, qty int) {
		t.Helper()
		mockBackend.On("GetCart", ctx).Return(cartWith(
			api.CartEntry{Product: api.ProductRef{ID: "p1", InStock: true}, Quantity: qty, Price: 50},
		), nil).Once()
		mockBackend.On("GetPriceDetails", ctx, "p1", mock.Anything).Return(&api.PriceDetails{
			ProductID: "p1", EffectivePrice: 50, NormalPrice: 50,
		}, nil)
		_, err := svc.Load(ctx)
		assert.NoError(t, err)
	}

	t.Run("Increase adds the delta", func(t *testing.T) {
		mockBackend := new(MockBackend)
		svc := NewService(mockBackend, nil)
		load(t, mockBackend, svc, 2)

		mockBackend.On("AddToCart", ctx, api.AddToCartRequest{
			ProductID: "p1",
			Quantity:  3,
		}).Return(cartWith(
			api.CartEntry{Product: api.ProductRef{ID: "p1", InStock: true}, Quantity: 5, Price: 50},
		), nil).Once()

		err := svc.UpdateQuantity(ctx, "p1", 5)

		assert.NoError(t, err)
		assert.Equal(t, 5, svc.Items()[0].Quantity)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Decrease removes and re-adds", func(t *testing.T) {
		mockBackend := new(MockBackend)
		svc := NewService(mockBackend, nil)
		load(t, mockBackend, svc, 3)

		mockBackend.On("RemoveFromCart", ctx, api.RemoveFromCartRequest{ProductID: "p1"}).
			Return(cartWith(), nil).Once()
		mockBackend.On("AddToCart", ctx, api.AddToCartRequest{
			ProductID: "p1",
			Quantity:  1,
		}).Return(cartWith(
			api.CartEntry{Product: api.ProductRef{ID: "p1", InStock: true}, Quantity: 1, Price: 50},
		), nil).Once()

		err := svc.UpdateQuantity(ctx, "p1", 1)

		assert.NoError(t, err)
		assert.Equal(t, 1, svc.Items()[0].Quantity)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Zero removes the item", func(t *testing.T) {
		mockBackend := new(MockBackend)
		svc := NewService(mockBackend, nil)
		load(t, mockBackend, svc, 2)

		mockBackend.On("RemoveFromCart", ctx, api.RemoveFromCartRequest{ProductID: "p1"}).
			Return(cartWith(), nil).Once()

		err := svc.UpdateQuantity(ctx, "p1", 0)

		assert.NoError(t, err)
		assert.Empty(t, svc.Items())
	})

	t.Run("Unknown item", func(t *testing.T) {
		mockBackend := new(MockBackend)
		svc := NewService(mockBackend, nil)
		load(t, mockBackend, svc, 1)

		err := svc.UpdateQuantity(ctx, "ghost", 2)

		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("Same quantity is a no-op", func(t *testing.T) {
		mockBackend := new(MockBackend)
		svc := NewService(mockBackend, nil)
		load(t, mockBackend, svc, 2)

		err := svc.UpdateQuantity(ctx, "p1", 2)

		assert.NoError(t, err)
		mockBackend.AssertNotCalled(t, "AddToCart")
		mockBackend.AssertNotCalled(t, "RemoveFromCart")
	})
}

func TestService_Summary_OutOfStockExcluded(t *testing.T) {
	ctx := context.Background()
	mockBackend := new(MockBackend)
	svc := NewService(mockBackend, nil)

	mockBackend.On("GetCart", ctx).Return(cartWith(
		api.CartEntry{Product: api.ProductRef{ID: "p1", InStock: true}, Quantity: 1, Price: 100},
		api.CartEntry{Product: api.ProductRef{ID: "p2", InStock: false}, Quantity: 1, Price: 500},
	), nil).Once()
	mockBackend.On("GetPriceDetails", ctx, "p1", mock.Anything).Return(&api.PriceDetails{
		ProductID: "p1", EffectivePrice: 100, NormalPrice: 100, ShippingCost: 10,
	}, nil).Once()
	mockBackend.On("GetPriceDetails", ctx, "p2", mock.Anything).Return(&api.PriceDetails{
		ProductID: "p2", EffectivePrice: 500, NormalPrice: 500, ShippingCost: 25,
	}, nil).Once()

	_, err := svc.Load(ctx)
	assert.NoError(t, err)

	summary := svc.Summary()

	assert.Equal(t, 100.0, summary.Subtotal)
	assert.Equal(t, 10.0, summary.ShippingCost)
	assert.Equal(t, 110.0, summary.Total)
	assert.Len(t, svc.Items(), 2)
}

func TestService_Summary_WithDiscountStrategy(t *testing.T) {
	mockBackend := new(MockBackend)
	svc := NewService(mockBackend, discountFunc(func(subtotal float64) float64 { return subtotal / 10 }))

	ctx := context.Background()
	mockBackend.On("GetCart", ctx).Return(cartWith(
		api.CartEntry{Product: api.ProductRef{ID: "p1", InStock: true}, Quantity: 1, Price: 100},
	), nil).Once()
	mockBackend.On("GetPriceDetails", ctx, "p1", mock.Anything).Return(&api.PriceDetails{
		ProductID: "p1", EffectivePrice: 100, NormalPrice: 100,
	}, nil).Once()

	_, err := svc.Load(ctx)
	assert.NoError(t, err)

	summary := svc.Summary()

	assert.Equal(t, 10.0, summary.Discount)
	assert.Equal(t, 90.0, summary.Total)
}

type discountFunc func(subtotal float64) float64

func (f discountFunc) Amount(subtotal float64) float64 { return f(subtotal) }
