// Package remote implements booking.Store over the salonboard HTTP API.
package remote

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
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/javiermolinar/salonboard/internal/booking"
	"github.com/javiermolinar/salonboard/internal/dateutil"
)

// APIKeyHeader carries the shared API key.
const APIKeyHeader = "x-api-key"

// Cache keys for read-mostly endpoints. Bookings are never cached.
const (
	cacheKeyResources = "salonboard:resources"
	cacheKeyServices  = "salonboard:services"
)

// Client errors. Every failed call wraps one of these.
var (
	ErrRequest          = errors.New("request failed")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Code)
	}
	return fmt.Sprintf("http %d: %s", e.Code, e.Message)
}

// Unwrap reports ErrUnexpectedStatus, plus booking.ErrNotFound for a 404.
func (e *StatusError) Unwrap() []error {
	if e.Code == http.StatusNotFound {
		return []error{ErrUnexpectedStatus, booking.ErrNotFound}
	}
	return []error{ErrUnexpectedStatus}
}

// Client is an HTTP booking store.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter

	redis    *redis.Client
	cacheTTL time.Duration
}

var (
	_ booking.Store           = (*Client)(nil)
	_ booking.CustomerRemover = (*Client)(nil)
)

// NewClient constructs a client for baseURL. A zero timeout means 10 seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// UseRateLimit caps outgoing requests per second. Zero or less disables it.
func (c *Client) UseRateLimit(perSecond float64) {
	if perSecond <= 0 {
		c.limiter = nil
		return
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
}

// UseRedisCache configures optional Redis caching for resources and services.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// FetchResources returns resources in display order.
func (c *Client) FetchResources(ctx context.Context) ([]booking.ResourceRecord, error) {
	var wrap struct {
		Resources []booking.ResourceRecord `json:"resources"`
	}
	if c.readCache(ctx, cacheKeyResources, &wrap) {
		return wrap.Resources, nil
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/resources", nil, &wrap); err != nil {
		return nil, fmt.Errorf("fetching resources: %w", err)
	}
	c.writeCache(ctx, cacheKeyResources, wrap)
	return wrap.Resources, nil
}

// FetchServices returns all services.
func (c *Client) FetchServices(ctx context.Context) ([]booking.ServiceRecord, error) {
	var wrap struct {
		Services []booking.ServiceRecord `json:"services"`
	}
	if c.readCache(ctx, cacheKeyServices, &wrap) {
		return wrap.Services, nil
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/services", nil, &wrap); err != nil {
		return nil, fmt.Errorf("fetching services: %w", err)
	}
	c.writeCache(ctx, cacheKeyServices, wrap)
	return wrap.Services, nil
}

// FetchBookingsForDate returns the bookings on date's day.
func (c *Client) FetchBookingsForDate(ctx context.Context, date time.Time) ([]booking.BookingRecord, error) {
	var wrap struct {
		Bookings []booking.BookingRecord `json:"bookings"`
	}
	path := "/api/v1/bookings?date=" + url.QueryEscape(dateutil.FormatDate(date))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wrap); err != nil {
		return nil, fmt.Errorf("fetching bookings: %w", err)
	}
	return wrap.Bookings, nil
}

// CreateCustomer inserts a customer and returns its id.
func (c *Client) CreateCustomer(ctx context.Context, firstName, lastName string) (string, error) {
	body := struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}{firstName, lastName}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/customers", body, &resp); err != nil {
		return "", fmt.Errorf("creating customer: %w", err)
	}
	return resp.ID, nil
}

// CreateBooking inserts a booking and returns its id.
func (c *Client) CreateBooking(ctx context.Context, b booking.NewBooking) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/bookings", b, &resp); err != nil {
		return "", fmt.Errorf("creating booking: %w", err)
	}
	return resp.ID, nil
}

// UpdateBookingResourceAndTime moves a booking.
func (c *Client) UpdateBookingResourceAndTime(ctx context.Context, bookingID, resourceID string, start time.Time) error {
	body := struct {
		ResourceID string    `json:"resource_id"`
		Start      time.Time `json:"start"`
	}{resourceID, start}
	path := "/api/v1/bookings/" + url.PathEscape(bookingID) + "/placement"
	if err := c.doJSON(ctx, http.MethodPatch, path, body, nil); err != nil {
		return fmt.Errorf("moving booking %s: %w", bookingID, err)
	}
	return nil
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, customerID string) error {
	path := "/api/v1/customers/" + url.PathEscape(customerID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting customer %s: %w", customerID, err)
	}
	return nil
}

// HealthCheck checks that the API is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %s %s: %w", ErrRequest, method, path, err)
		}
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequest, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
