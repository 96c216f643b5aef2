// Package client is a typed HTTP client for the courier order API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/courierdesk/internal/domain/errors"
	"github.com/polkiloo/courierdesk/internal/server/http/dto"
)

// APIError is a non-2xx response. It unwraps to the matching domain error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return domainErrors.ErrNotFound
	case http.StatusConflict:
		return domainErrors.ErrAlreadyExists
	case http.StatusUnauthorized:
		return domainErrors.ErrInvalidCredentials
	case http.StatusForbidden:
		return domainErrors.ErrForbidden
	case http.StatusBadRequest:
		return domainErrors.ErrInvalidOrder
	}
	return nil
}

// HTTPClient talks to the order API over HTTP.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
	logger     *slog.Logger
}

// NewHTTPClient creates a client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("api url must be an http(s) url with a host, got %q", baseURL)
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SetToken sets the bearer token sent with every request.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// Login exchanges admin credentials for a token and keeps it for later calls.
func (c *HTTPClient) Login(ctx context.Context, login, password string) (string, error) {
	var resp dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/admin/login", nil, dto.AuthRequest{Login: login, Password: password}, &resp); err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

// CreateOrder submits a new order.
func (c *HTTPClient) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	var order dto.OrderResponse
	if err := c.do(ctx, http.MethodPost, "/order/create", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// TrackOrder fetches a single order by identifier.
func (c *HTTPClient) TrackOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	var order dto.OrderResponse
	if err := c.do(ctx, http.MethodGet, "/order/track/"+url.PathEscape(orderID), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns every order, newest first. Requires a token.
func (c *HTTPClient) ListOrders(ctx context.Context) ([]dto.OrderResponse, error) {
	var orders []dto.OrderResponse
	if err := c.do(ctx, http.MethodGet, "/order/all", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus changes the status of an order. Requires a token.
func (c *HTTPClient) UpdateStatus(ctx context.Context, orderID, status string) (*dto.OrderResponse, error) {
	var order dto.OrderResponse
	body := dto.UpdateStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPatch, "/order/"+url.PathEscape(orderID), nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Stats returns order counters. Requires a token.
func (c *HTTPClient) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var stats dto.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/order/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Quote previews the price for distance and urgency.
func (c *HTTPClient) Quote(ctx context.Context, distance float64, urgent bool) (*dto.QuoteResponse, error) {
	query := url.Values{}
	query.Set("distance", strconv.FormatFloat(distance, 'f', -1, 64))
	query.Set("urgent", strconv.FormatBool(urgent))

	var quote dto.QuoteResponse
	if err := c.do(ctx, http.MethodGet, "/order/price", query, nil, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// Ranges returns the price table.
func (c *HTTPClient) Ranges(ctx context.Context) ([]dto.RangeResponse, error) {
	var ranges []dto.RangeResponse
	if err := c.do(ctx, http.MethodGet, "/order/price/ranges", nil, nil, &ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}

func (c *HTTPClient) do(ctx context.Context, method, route string, query url.Values, in, out any) error {
	// route is already escaped; order ids must reach the server as one segment
	endpoint := *c.baseURL
	escaped := strings.TrimRight(c.baseURL.EscapedPath(), "/") + route
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return fmt.Errorf("build request path: %w", err)
	}
	endpoint.Path, endpoint.RawPath = unescaped, escaped
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Error
		}
		c.logger.Debug("api request failed",
			slog.String("method", method),
			slog.String("path", endpoint.Path),
			slog.Int("status", resp.StatusCode))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, domainErrors.ErrNotFound)
}
