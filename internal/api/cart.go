package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// GetCart fetches the authenticated user's cart.
func (c *Client) GetCart(ctx context.Context) (*CartResponse, error) {
	var out CartResponse
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type AddToCartRequest struct {
	ProductID string            `json:"productId"`
	Quantity  int               `json:"quantity"`
	Filters   map[string]string `json:"filters,omitempty"`
}

func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) (*CartResponse, error) {
	var out CartResponse
	if err := c.do(ctx, http.MethodPost, "/api/cart/add", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type RemoveFromCartRequest struct {
	ProductID string            `json:"productId"`
	Filters   map[string]string `json:"filters,omitempty"`
}

func (c *Client) RemoveFromCart(ctx context.Context, req RemoveFromCartRequest) (*CartResponse, error) {
	var out CartResponse
	if err := c.do(ctx, http.MethodDelete, "/api/cart/remove", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPriceDetails asks the backend to price a product under the given filter
// selection. Filters travel as a JSON-encoded query parameter.
func (c *Client) GetPriceDetails(ctx context.Context, productID string, selectedFilters map[string]string) (*PriceDetails, error) {
	query := url.Values{}
	if len(selectedFilters) > 0 {
		encoded, err := json.Marshal(selectedFilters)
		if err != nil {
			return nil, fmt.Errorf("failed to encode selected filters: %w", err)
		}
		query.Set("selectedFilters", string(encoded))
	}

	var out PriceDetails
	path := fmt.Sprintf("/api/products/%s/price-details", url.PathEscape(productID))
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
