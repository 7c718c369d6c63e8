package payment

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
	"path"
	"strconv"
	"time"

	"github.com/lafrite/friterie/internal/domain/model"
)

// ErrSessionNotFound indicates the provider doesn't know the session.
var ErrSessionNotFound = errors.New("checkout session not found")

// ErrSessionRejected indicates the provider refused to create a session.
var ErrSessionRejected = errors.New("checkout session rejected")

// TooManyRequestsError represents rate limiting signal from the provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// SessionRequest describes a hosted checkout session to create.
type SessionRequest struct {
	Items      []model.OrderItem
	Total      int64
	Currency   string
	OrderRef   string
	SuccessURL string
	CancelURL  string
}

// Provider exposes operations against the hosted checkout provider.
type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (*model.CheckoutSession, error)
	GetSessionState(ctx context.Context, sessionID string) (model.SessionState, error)
}

// HTTPClient implements Provider via the provider's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

type sessionLineItem struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

type createSessionPayload struct {
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	LineItems  []sessionLineItem `json:"line_items"`
	Reference  string            `json:"reference"`
	SuccessURL string            `json:"success_url"`
	CancelURL  string            `json:"cancel_url"`
}

type sessionResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// NewHTTPClient creates provider client with the given request timeout.
func NewHTTPClient(baseURL, secretKey string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment provider url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment provider url must be absolute")
	}
	if secretKey == "" {
		return nil, fmt.Errorf("payment secret key must be provided")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL:   parsed,
		secretKey: secretKey,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CreateSession requests a hosted checkout session for the given cart.
func (c *HTTPClient) CreateSession(ctx context.Context, req SessionRequest) (*model.CheckoutSession, error) {
	lines := make([]sessionLineItem, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, sessionLineItem{Name: it.Name, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	payload := createSessionPayload{
		Amount:     req.Total,
		Currency:   req.Currency,
		LineItems:  lines,
		Reference:  req.OrderRef,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var data sessionResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, err
		}
		if data.ID == "" || data.URL == "" {
			return nil, fmt.Errorf("provider returned incomplete session")
		}
		return &model.CheckoutSession{ID: data.ID, URL: data.URL}, nil
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("checkout session rejected", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, ErrSessionRejected
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("checkout session request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, fmt.Errorf("payment provider error: %s", resp.Status)
	}
}

// GetSessionState queries current provider-side state of a session.
func (c *HTTPClient) GetSessionState(ctx context.Context, sessionID string) (model.SessionState, error) {
	resp, err := c.do(ctx, http.MethodGet, path.Join("/v1/checkout/sessions", sessionID), nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data sessionResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return "", err
		}
		return model.SessionState(data.Status), nil
	case http.StatusNotFound:
		return "", ErrSessionNotFound
	case http.StatusTooManyRequests:
		return "", TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("session state request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return "", fmt.Errorf("payment provider error: %s", resp.Status)
	}
}

func (c *HTTPClient) do(ctx context.Context, method, endpointPath string, body io.Reader) (*http.Response, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
