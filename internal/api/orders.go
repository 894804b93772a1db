package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateOrder submits the order. Not idempotent: the caller is responsible
// for not firing it twice for one checkout.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrders(ctx context.Context) ([]Order, error) {
	var out OrderList
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var out Order
	path := fmt.Sprintf("/api/orders/%s", url.PathEscape(orderID))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	var out Order
	path := fmt.Sprintf("/api/orders/%s/cancel", url.PathEscape(orderID))
	if err := c.do(ctx, http.MethodPut, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
