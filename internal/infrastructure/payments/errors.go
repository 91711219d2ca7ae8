package payments

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks transport failures: the request never produced an
	// HTTP response (DNS, TLS, timeout, connection reset).
	ErrNetwork = errors.New("network error calling payment gateway")

	// ErrDecode marks malformed JSON where the status code promised a
	// well-formed success payload.
	ErrDecode = errors.New("malformed gateway response")

	// ErrInvalidIdempotenceKey reports a generated key that cannot be sent
	// as a header value.
	ErrInvalidIdempotenceKey = errors.New("generated idempotence key is not a valid header value")
)

// APIErrorDetails is the structured error body the gateway returns alongside
// non-2xx statuses, when it returns one at all.
type APIErrorDetails struct {
	Type        string  `json:"type"`
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Parameter   *string `json:"parameter,omitempty"`
}

// APIError is a non-2xx response from the gateway. Message always holds the
// raw body text; Details is nil whenever the body was absent or not the
// structured error shape (an HTML error page, truncated JSON, and so on).
// An unparsable error body never fails the call by itself.
type APIError struct {
	Status  int
	Message string
	Details *APIErrorDetails
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("gateway API error (status %d, code %s): %s", e.Status, e.Details.Code, e.Details.Description)
	}
	return fmt.Sprintf("gateway API error (status %d): %s", e.Status, e.Message)
}
