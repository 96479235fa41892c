package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"staymate/internal/shared/config"
	"staymate/pkg/logger"
)

// envelope is the {data, message} wrapper every backend service responds
// with. Some legacy endpoints return a bare payload; decode falls back to the
// raw body in that case, once, at this boundary.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// caller is the shared HTTP plumbing under every service client.
type caller struct {
	service string
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func newCaller(service, baseURL string, timeout time.Duration, log *logger.Logger) *caller {
	return &caller{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *caller) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *caller) post(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *caller) put(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, query, body, out)
}

func (c *caller) del(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *caller) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s service: encode request: %w", c.service, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("%s service: build request: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.log.LogUpstreamCall(ctx, c.service, method, path, 0, duration, err)
		return fmt.Errorf("%s service: %w", c.service, ErrUnavailable)
	}
	defer resp.Body.Close()

	c.log.LogUpstreamCall(ctx, c.service, method, path, resp.StatusCode, duration, nil)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s service: read response: %w", c.service, err)
	}

	if resp.StatusCode >= 400 {
		return c.verdictError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s service: decode data: %w", c.service, err)
		}
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s service: decode response: %w", c.service, err)
	}
	return nil
}

// verdictError extracts the upstream message from an error body.
func (c *caller) verdictError(status int, raw []byte) error {
	var env envelope
	message := ""
	if err := json.Unmarshal(raw, &env); err == nil {
		message = env.Message
		if message == "" {
			message = env.Error
		}
	}
	return &Error{Service: c.service, StatusCode: status, Message: message}
}

// Clients bundles one typed client per backend service.
type Clients struct {
	Users         *UserClient
	Hotels        *HotelClient
	Bookings      *BookingClient
	Payments      *PaymentClient
	Notifications *NotificationClient
}

// NewClients builds the full client set from the upstream configuration.
func NewClients(cfg config.UpstreamConfig, log *logger.Logger) *Clients {
	return &Clients{
		Users:         &UserClient{caller: newCaller("user", cfg.UserServiceURL, cfg.Timeout, log)},
		Hotels:        &HotelClient{caller: newCaller("hotel", cfg.HotelServiceURL, cfg.Timeout, log)},
		Bookings:      &BookingClient{caller: newCaller("booking", cfg.BookingServiceURL, cfg.Timeout, log)},
		Payments:      &PaymentClient{caller: newCaller("payment", cfg.PaymentServiceURL, cfg.Timeout, log)},
		Notifications: &NotificationClient{caller: newCaller("notification", cfg.NotificationServiceURL, cfg.Timeout, log)},
	}
}
