package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"yookassa_client/internal/domain/entities"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"
)

const (
	defaultBaseURL       = "https://api.yookassa.ru/v3/"
	idempotenceKeyHeader = "Idempotence-Key"
	defaultTimeout       = 30 * time.Second
)

var ErrMissingCredentials = errors.New("missing YooKassa shop id or secret key")

// Client is the YooKassa API client.
//
// A Client is immutable after construction and safe for concurrent use: every
// call is an independent request/response cycle over the shared http.Client,
// with no state carried between calls. The client performs no retries; a
// fresh idempotence key is generated on every keyed call, so replaying a
// logical operation with the same key is the caller's job.
type Client struct {
	httpClient *http.Client
	shopID     string
	secretKey  string
	baseURL    string
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the API base URL, for tests or a proxy. A trailing
// slash is appended if absent since endpoints are joined as path suffixes.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
	}
}

// WithHTTPClient substitutes the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each call. There is no internal renewal or retry.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient builds a client authenticating as shopID:secretKey via HTTP
// basic auth on every request.
func NewClient(shopID, secretKey string, opts ...Option) (*Client, error) {
	if shopID == "" || secretKey == "" {
		log.Printf("[payment][gateway] missing credentials")
		return nil, ErrMissingCredentials
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		shopID:     shopID,
		secretKey:  secretKey,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	log.Printf("[payment][gateway] YooKassa client initialized base_url=%s", c.baseURL)
	return c, nil
}

// sendRequest assembles and dispatches one authenticated request. Mutating
// operations pass needsIdempotenceKey=true and get a fresh v4 UUID under the
// Idempotence-Key header; reads never carry one. Transport failures are
// reported as ErrNetwork before any response classification happens.
func (c *Client) sendRequest(ctx context.Context, method, endpoint string, body any, needsIdempotenceKey bool, query url.Values) (*http.Response, error) {
	rawURL := c.baseURL + endpoint
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, endpoint, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.shopID, c.secretKey)

	if needsIdempotenceKey {
		key := uuid.NewString()
		if !httpguts.ValidHeaderFieldValue(key) {
			return nil, ErrInvalidIdempotenceKey
		}
		req.Header.Set(idempotenceKeyHeader, key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[payment][gateway] request failed method=%s endpoint=%s err=%v", method, endpoint, err)
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return resp, nil
}

// processResponse classifies a completed response purely by status code.
// 2xx decodes into the expected type; anything else becomes an *APIError
// built from the buffered body, structured details attached only when the
// body parses as the gateway's error shape.
func processResponse[R any](resp *http.Response) (*R, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: string(raw)}
		var details APIErrorDetails
		if err := json.Unmarshal(raw, &details); err == nil && details.Code != "" {
			apiErr.Details = &details
		}
		return nil, apiErr
	}

	var result R
	if err := json.Unmarshal(raw, &result); err != nil {
		var missing *entities.MissingFieldError
		var unknown *entities.UnknownStatusError
		if errors.As(err, &missing) || errors.As(err, &unknown) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &result, nil
}

// CreatePayment creates a payment. Always idempotence-keyed. When a redirect
// confirmation was requested the returned payment carries the URL the end
// user must be sent to.
func (c *Client) CreatePayment(ctx context.Context, req entities.CreatePaymentRequest) (*entities.Payment, error) {
	log.Printf("[payment][gateway] create start amount=%s %s", req.Amount.Value, req.Amount.Currency)
	resp, err := c.sendRequest(ctx, http.MethodPost, "payments", req, true, nil)
	if err != nil {
		return nil, err
	}
	p, err := processResponse[entities.Payment](resp)
	if err != nil {
		log.Printf("[payment][gateway] create failed err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] create success payment_id=%s status=%s", p.ID, p.Status)
	return p, nil
}

// GetPayment retrieves a payment snapshot by id. Read-only, never keyed.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*entities.Payment, error) {
	endpoint := "payments/" + url.PathEscape(paymentID)
	resp, err := c.sendRequest(ctx, http.MethodGet, endpoint, nil, false, nil)
	if err != nil {
		return nil, err
	}
	return processResponse[entities.Payment](resp)
}

// CapturePayment converts a waiting_for_capture hold into a transfer. With a
// nil req the full amount is captured and an explicit "{}" body is sent: the
// endpoint requires a JSON object even when there is nothing to say.
func (c *Client) CapturePayment(ctx context.Context, paymentID string, req *entities.CapturePaymentRequest) (*entities.Payment, error) {
	endpoint := "payments/" + url.PathEscape(paymentID) + "/capture"
	body := req
	if body == nil {
		body = &entities.CapturePaymentRequest{}
	}
	log.Printf("[payment][gateway] capture start payment_id=%s partial=%t", paymentID, req != nil && req.Amount != nil)
	resp, err := c.sendRequest(ctx, http.MethodPost, endpoint, body, true, nil)
	if err != nil {
		return nil, err
	}
	p, err := processResponse[entities.Payment](resp)
	if err != nil {
		log.Printf("[payment][gateway] capture failed payment_id=%s err=%v", paymentID, err)
		return nil, err
	}
	log.Printf("[payment][gateway] capture success payment_id=%s status=%s", p.ID, p.Status)
	return p, nil
}

// CancelPayment cancels a payment the gateway still holds. Same empty-object
// body contract as capture.
func (c *Client) CancelPayment(ctx context.Context, paymentID string) (*entities.Payment, error) {
	endpoint := "payments/" + url.PathEscape(paymentID) + "/cancel"
	log.Printf("[payment][gateway] cancel start payment_id=%s", paymentID)
	resp, err := c.sendRequest(ctx, http.MethodPost, endpoint, struct{}{}, true, nil)
	if err != nil {
		return nil, err
	}
	p, err := processResponse[entities.Payment](resp)
	if err != nil {
		log.Printf("[payment][gateway] cancel failed payment_id=%s err=%v", paymentID, err)
		return nil, err
	}
	log.Printf("[payment][gateway] cancel success payment_id=%s status=%s", p.ID, p.Status)
	return p, nil
}

// ListPayments fetches one page of payments. Filters are caller-defined
// key/value pairs passed through verbatim as query parameters; pass the
// previous page's NextCursor under "cursor" to continue a listing.
func (c *Client) ListPayments(ctx context.Context, filters map[string]string) (*entities.PaymentList, error) {
	query := url.Values{}
	for k, v := range filters {
		query.Set(k, v)
	}
	resp, err := c.sendRequest(ctx, http.MethodGet, "payments", nil, false, query)
	if err != nil {
		return nil, err
	}
	return processResponse[entities.PaymentList](resp)
}
