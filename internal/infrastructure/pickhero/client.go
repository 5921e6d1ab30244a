// Package pickhero is the HTTP gateway to the PickHero warehouse
// management system. All calls authenticate with a bearer token and
// return classified *APIError values on failure.
package pickhero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Timeouts are fixed rather than caller configurable. Webhook handling
// runs synchronously on the inbound request path and must stay bounded.
const (
	requestTimeout = 30 * time.Second
	connectTimeout = 10 * time.Second

	maxResponseSize = 4 << 20
)

// Config holds the connection settings for the warehouse API.
type Config struct {
	BaseURL string
	Token   string
	// Debug logs outbound request bodies before dispatch.
	Debug bool
}

// Client is the authenticated HTTP client behind all typed resources.
type Client struct {
	baseURL    string
	token      string
	debug      bool
	httpClient *http.Client
	logger     *zap.Logger

	orders     *OrdersResource
	products   *ProductsResource
	customers  *CustomersResource
	stock      *StockResource
	shipments  *ShipmentsResource
	warehouses *WarehousesResource
	webhooks   *WebhooksResource
}

// NewClient creates a gateway client for the given warehouse instance.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		debug:   cfg.Debug,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
			},
		},
	}

	c.orders = &OrdersResource{client: c}
	c.products = &ProductsResource{client: c}
	c.customers = &CustomersResource{client: c}
	c.stock = &StockResource{client: c}
	c.shipments = &ShipmentsResource{client: c}
	c.warehouses = &WarehousesResource{client: c}
	c.webhooks = &WebhooksResource{client: c}
	return c
}

// BaseURL returns the configured API base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Orders returns the orders endpoint.
func (c *Client) Orders() *OrdersResource { return c.orders }

// Products returns the products endpoint.
func (c *Client) Products() *ProductsResource { return c.products }

// Customers returns the customers endpoint.
func (c *Client) Customers() *CustomersResource { return c.customers }

// Stock returns the stock endpoint.
func (c *Client) Stock() *StockResource { return c.stock }

// Shipments returns the shipments endpoint.
func (c *Client) Shipments() *ShipmentsResource { return c.shipments }

// Warehouses returns the warehouses endpoint.
func (c *Client) Warehouses() *WarehousesResource { return c.warehouses }

// Webhooks returns the webhooks endpoint.
func (c *Client) Webhooks() *WebhooksResource { return c.webhooks }

// ---------------------------------------------------------------------------
// HTTP plumbing
// ---------------------------------------------------------------------------

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, nil, body, out)
}

func (c *Client) patch(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPatch, endpoint, nil, body, out)
}

func (c *Client) delete(ctx context.Context, endpoint string) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, nil)
}

// do executes one API call. Responses with status >= 400 become
// *APIError; transport failures become *APIError with StatusCode 0.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	reqURL := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	var rawBody []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encode request body: %v", err)}
		}
		rawBody = encoded
		reqBody = bytes.NewReader(encoded)
	}

	if c.debug {
		c.logger.Debug("warehouse api request",
			zap.String("method", method),
			zap.String("url", reqURL),
			zap.ByteString("body", rawBody),
		)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("http request failed: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &APIError{Message: fmt.Sprintf("read response body: %v", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.parseError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid JSON response: %v", err),
		}
	}
	return nil
}

// parseError builds a classified error from an error response. The
// warehouse normally answers with {"message": ..., "errors": {...}}, but
// proxies can inject HTML error pages.
func (c *Client) parseError(statusCode int, body []byte) *APIError {
	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return &APIError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("API request failed with status %d: %s", statusCode, snippet),
		}
	}

	message := payload.Message
	if message == "" {
		message = "API request failed"
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     payload.Errors,
	}
}
