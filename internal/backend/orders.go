package backend

import (
	"context"
	"net/http"
	"net/url"
)

// PlaceOrder submits the checkout payload and returns the created order.
func (c *Client) PlaceOrder(ctx context.Context, input OrderInput) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders fetches the authenticated user's order history.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/my-orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrders fetches every order (admin).
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type statusPatch struct {
	Status string `json:"status"`
}

// UpdateOrderStatus transitions an order (admin).
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(orderID)+"/status", statusPatch{Status: status}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
