package gateway

import (
	"context"
	"net/http"
)

// Get issues a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (*Response, error) {
	return c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodGet, Params: params})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodPost, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodPut, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) (*Response, error) {
	return c.Request(ctx, endpoint, &RequestOptions{Method: http.MethodDelete})
}
