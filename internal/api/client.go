package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// BasePath is the common prefix of every backend endpoint.
const BasePath = "/api/v1"

// LoginPath is the full path of the login endpoint; the request pipeline
// exempts it from session-invalidation handling.
const LoginPath = BasePath + "/auth/login"

// Client is the shared entry point to the backend REST API. All requests go
// through the single http.Client it holds, so the authenticated request
// pipeline applies uniformly.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	Auth           *AuthAPI
	Products       *ProductsAPI
	Customers      *CustomersAPI
	SalesOrders    *SalesOrdersAPI
	PurchaseOrders *PurchaseOrdersAPI
}

// NewClient creates a client for the backend at baseURL. The httpClient is
// expected to carry the transport pipeline; a nil httpClient uses
// http.DefaultClient (useful only in tests).
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
	c.Auth = &AuthAPI{client: c}
	c.Products = &ProductsAPI{client: c}
	c.Customers = &CustomersAPI{client: c}
	c.SalesOrders = &SalesOrdersAPI{client: c}
	c.PurchaseOrders = &PurchaseOrdersAPI{client: c}
	return c
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries pagination data on list responses.
type Meta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// doEnveloped performs a JSON request against an enveloped endpoint and
// decodes the data field into out. Returns the response meta when present.
func (c *Client) doEnveloped(ctx context.Context, method, path string, query url.Values, body, out any) (*Meta, error) {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unwrapURLError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp).asDomainError()
	}

	// Deletes answer 204 with no body; there is no envelope to decode.
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success && env.Error != nil {
		return nil, &Error{Status: resp.StatusCode, Code: env.Error.Code, Detail: env.Error.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode response data: %w", err)
		}
	}
	return env.Meta, nil
}

// unwrapURLError strips the *url.Error wrapper http.Client adds around
// transport errors so the pipeline's sentinel errors surface directly.
func unwrapURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return urlErr.Err
	}
	return err
}
