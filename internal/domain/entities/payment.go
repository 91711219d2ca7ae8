package entities

import (
	"encoding/json"
	"fmt"
)

// PaymentStatus is the gateway-side lifecycle state of a payment.
//
// The set is closed on purpose: pending -> waiting_for_capture -> succeeded,
// or a cancellation from either non-terminal state. An unknown value coming
// off the wire fails the decode instead of defaulting, so a gateway
// vocabulary change surfaces as an error rather than a silently wrong state.
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusWaitingForCapture PaymentStatus = "waiting_for_capture"
	PaymentStatusSucceeded         PaymentStatus = "succeeded"
	PaymentStatusCanceled          PaymentStatus = "canceled"
)

// UnknownStatusError reports a payment status value outside the closed enum.
type UnknownStatusError struct {
	Value string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown payment status %q", e.Value)
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch PaymentStatus(raw) {
	case PaymentStatusPending, PaymentStatusWaitingForCapture, PaymentStatusSucceeded, PaymentStatusCanceled:
		*s = PaymentStatus(raw)
		return nil
	}
	return &UnknownStatusError{Value: raw}
}

// Terminal reports whether the gateway will never move the payment again.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusCanceled
}

// MissingFieldError reports a success payload that lacks a field the payment
// model requires.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in response", e.Field)
}

// Recipient identifies the shop and gateway account credited by a payment.
type Recipient struct {
	AccountID string `json:"account_id"`
	GatewayID string `json:"gateway_id"`
}

// Confirmation is the gateway's echo of how the payer completes the payment.
// For redirect confirmations ConfirmationURL is where the end user must be
// sent; the client's responsibility ends at returning it.
type Confirmation struct {
	Type             string  `json:"type"`
	ConfirmationURL  *string `json:"confirmation_url,omitempty"`
	ReturnURL        *string `json:"return_url,omitempty"`
	Enforce          *bool   `json:"enforce,omitempty"`
	Locale           *string `json:"locale,omitempty"`
	ConfirmationData *string `json:"confirmation_data,omitempty"`
}

// CardProduct is the card scheme product classification, when the issuer
// reports one.
type CardProduct struct {
	Code *string `json:"code,omitempty"`
	Name *string `json:"name,omitempty"`
}

// CardDetails is the masked card echo in a payment response.
type CardDetails struct {
	First6        *string      `json:"first6,omitempty"`
	Last4         string       `json:"last4"`
	ExpiryYear    string       `json:"expiry_year"`
	ExpiryMonth   string       `json:"expiry_month"`
	CardType      string       `json:"card_type"`
	IssuerCountry *string      `json:"issuer_country,omitempty"`
	IssuerName    *string      `json:"issuer_name,omitempty"`
	Source        *string      `json:"source,omitempty"`
	CardProduct   *CardProduct `json:"card_product,omitempty"`
}

// PayerBankDetails identifies the payer's bank for SBP payments.
type PayerBankDetails struct {
	BIC    *string `json:"bic,omitempty"`
	BankID *string `json:"bank_id,omitempty"`
}

// PaymentMethod is the gateway's echo of the instrument that was used.
//
// Unlike the request-side selector this stays a flat struct: the gateway
// decides which optional fields accompany each type and the client only
// reports what it was told.
type PaymentMethod struct {
	Type             string            `json:"type"`
	ID               string            `json:"id"`
	Saved            bool              `json:"saved"`
	Title            *string           `json:"title,omitempty"`
	Card             *CardDetails      `json:"card,omitempty"`
	Login            *string           `json:"login,omitempty"`
	Phone            *string           `json:"phone,omitempty"`
	SBPOperationID   *string           `json:"sbp_operation_id,omitempty"`
	PayerBankDetails *PayerBankDetails `json:"payer_bank_details,omitempty"`
}

// CancellationDetails reports who canceled a payment and why. Party and
// reason stay open strings: the gateway's vocabulary for them evolves and the
// client must not reject values it has not seen before.
type CancellationDetails struct {
	Party  string `json:"party"`
	Reason string `json:"reason"`
}

type ThreeDSecure struct {
	Applied        bool  `json:"applied"`
	MethodRelevant *bool `json:"method_relevant,omitempty"`
}

type AuthorizationDetails struct {
	RRN          *string       `json:"rrn,omitempty"`
	AuthCode     *string       `json:"auth_code,omitempty"`
	ThreeDSecure *ThreeDSecure `json:"three_d_secure,omitempty"`
}

// Payment is the gateway's snapshot of a payment resource.
//
// A Payment value is immutable on the client side: any state change requires
// a new round trip, and the gateway remains the sole authority over the
// status transitions.
type Payment struct {
	ID                   string                `json:"id"`
	Status               PaymentStatus         `json:"status"`
	Amount               Amount                `json:"amount"`
	IncomeAmount         *Amount               `json:"income_amount,omitempty"`
	Description          *string               `json:"description,omitempty"`
	Recipient            Recipient             `json:"recipient"`
	PaymentMethod        *PaymentMethod        `json:"payment_method,omitempty"`
	CapturedAt           *string               `json:"captured_at,omitempty"`
	CreatedAt            string                `json:"created_at"`
	ExpiresAt            *string               `json:"expires_at,omitempty"`
	Confirmation         *Confirmation         `json:"confirmation,omitempty"`
	Test                 bool                  `json:"test"`
	Paid                 bool                  `json:"paid"`
	Refundable           bool                  `json:"refundable"`
	RefundedAmount       *Amount               `json:"refunded_amount,omitempty"`
	ReceiptRegistration  *string               `json:"receipt_registration,omitempty"`
	Metadata             map[string]any        `json:"metadata,omitempty"`
	CancellationDetails  *CancellationDetails  `json:"cancellation_details,omitempty"`
	AuthorizationDetails *AuthorizationDetails `json:"authorization_details,omitempty"`
}

// paymentWire shadows Payment with pointers on every required field so the
// decoder can tell "absent" from "zero value". Booleans especially: a plain
// struct would turn a missing "paid" into false without complaint.
type paymentWire struct {
	ID                   *string               `json:"id"`
	Status               *PaymentStatus        `json:"status"`
	Amount               *Amount               `json:"amount"`
	IncomeAmount         *Amount               `json:"income_amount"`
	Description          *string               `json:"description"`
	Recipient            *Recipient            `json:"recipient"`
	PaymentMethod        *PaymentMethod        `json:"payment_method"`
	CapturedAt           *string               `json:"captured_at"`
	CreatedAt            *string               `json:"created_at"`
	ExpiresAt            *string               `json:"expires_at"`
	Confirmation         *Confirmation         `json:"confirmation"`
	Test                 *bool                 `json:"test"`
	Paid                 *bool                 `json:"paid"`
	Refundable           *bool                 `json:"refundable"`
	RefundedAmount       *Amount               `json:"refunded_amount"`
	ReceiptRegistration  *string               `json:"receipt_registration"`
	Metadata             map[string]any        `json:"metadata"`
	CancellationDetails  *CancellationDetails  `json:"cancellation_details"`
	AuthorizationDetails *AuthorizationDetails `json:"authorization_details"`
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	var w paymentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	required := []struct {
		name   string
		absent bool
	}{
		{"id", w.ID == nil},
		{"status", w.Status == nil},
		{"amount", w.Amount == nil},
		{"recipient", w.Recipient == nil},
		{"created_at", w.CreatedAt == nil},
		{"test", w.Test == nil},
		{"paid", w.Paid == nil},
		{"refundable", w.Refundable == nil},
	}
	for _, f := range required {
		if f.absent {
			return &MissingFieldError{Field: f.name}
		}
	}

	*p = Payment{
		ID:                   *w.ID,
		Status:               *w.Status,
		Amount:               *w.Amount,
		IncomeAmount:         w.IncomeAmount,
		Description:          w.Description,
		Recipient:            *w.Recipient,
		PaymentMethod:        w.PaymentMethod,
		CapturedAt:           w.CapturedAt,
		CreatedAt:            *w.CreatedAt,
		ExpiresAt:            w.ExpiresAt,
		Confirmation:         w.Confirmation,
		Test:                 *w.Test,
		Paid:                 *w.Paid,
		Refundable:           *w.Refundable,
		RefundedAmount:       w.RefundedAmount,
		ReceiptRegistration:  w.ReceiptRegistration,
		Metadata:             w.Metadata,
		CancellationDetails:  w.CancellationDetails,
		AuthorizationDetails: w.AuthorizationDetails,
	}
	return nil
}

// PaymentList is one page of payments plus the opaque cursor for the next
// page. A nil cursor means the final page; an empty Items slice alone does
// not, since filters may legitimately match nothing on a non-final boundary.
type PaymentList struct {
	Type       string    `json:"type"`
	Items      []Payment `json:"items"`
	NextCursor *string   `json:"next_cursor,omitempty"`
}

// HasNextPage reports whether another page can be fetched by passing
// NextCursor back as the "cursor" filter.
func (l PaymentList) HasNextPage() bool {
	return l.NextCursor != nil
}
