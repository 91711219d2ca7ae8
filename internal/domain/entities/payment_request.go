package entities

import (
	"encoding/json"
	"errors"
	"strconv"
)

var ErrAmbiguousPaymentInstrument = errors.New("at most one of payment_token, payment_method_id or payment_method_data may be set")

// ConfirmationRequest asks the gateway for a specific confirmation scenario,
// typically a redirect back to the shop.
type ConfirmationRequest struct {
	Type      string  `json:"type"`
	ReturnURL string  `json:"return_url"`
	Enforce   *bool   `json:"enforce,omitempty"`
	Locale    *string `json:"locale,omitempty"`
}

// CardData is raw card input for PCI DSS-scoped merchants only.
type CardData struct {
	Number      string  `json:"number"`
	ExpiryYear  string  `json:"expiry_year"`
	ExpiryMonth string  `json:"expiry_month"`
	CSC         *string `json:"csc,omitempty"`
	Cardholder  *string `json:"cardholder,omitempty"`
}

// PaymentMethodData selects the payer's instrument on a create request.
//
// Each variant carries only the fields its method actually uses; on the wire
// all of them flatten into the gateway's single object with a "type"
// discriminator. Variants are closed over this package so the set of methods
// the client can express stays explicit.
type PaymentMethodData interface {
	paymentMethodDataType() string
}

// BankCardData pays with a card, optionally passing raw card details.
type BankCardData struct {
	Card *CardData
}

func (BankCardData) paymentMethodDataType() string { return "bank_card" }

func (d BankCardData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string    `json:"type"`
		Card *CardData `json:"card,omitempty"`
	}{Type: d.paymentMethodDataType(), Card: d.Card})
}

// SBPData pays through the faster-payments system.
type SBPData struct{}

func (SBPData) paymentMethodDataType() string { return "sbp" }

func (d SBPData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{Type: d.paymentMethodDataType()})
}

// SberPayData pays through SberPay, identified by the payer's login.
type SberPayData struct {
	Login *string
}

func (SberPayData) paymentMethodDataType() string { return "sberbank" }

func (d SberPayData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string  `json:"type"`
		Login *string `json:"login,omitempty"`
	}{Type: d.paymentMethodDataType(), Login: d.Login})
}

// MobileBalanceData charges the payer's mobile phone balance.
type MobileBalanceData struct {
	Phone string
}

func (MobileBalanceData) paymentMethodDataType() string { return "mobile_balance" }

func (d MobileBalanceData) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Phone string `json:"phone"`
	}{Type: d.paymentMethodDataType(), Phone: d.Phone})
}

// CreatePaymentRequest is the payload for creating a payment.
//
// At most one of PaymentToken, PaymentMethodID and PaymentMethodData resolves
// the payer's instrument; with none set the gateway defers method selection
// to its own hosted page.
type CreatePaymentRequest struct {
	Amount            Amount               `json:"amount"`
	Description       *string              `json:"description,omitempty"`
	PaymentMethodData PaymentMethodData    `json:"payment_method_data,omitempty"`
	Confirmation      *ConfirmationRequest `json:"confirmation,omitempty"`
	Capture           *bool                `json:"capture,omitempty"`
	SavePaymentMethod *bool                `json:"save_payment_method,omitempty"`
	Metadata          map[string]any       `json:"metadata,omitempty"`
	Receipt           *Receipt             `json:"receipt,omitempty"`
	PaymentToken      *string              `json:"payment_token,omitempty"`
	PaymentMethodID   *string              `json:"payment_method_id,omitempty"`
	ClientIP          *string              `json:"client_ip,omitempty"`
}

// Validate enforces the invariants the gateway would otherwise reject at the
// wire: a well-formed amount and a single payment instrument selector.
func (r CreatePaymentRequest) Validate() error {
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	selectors := 0
	if r.PaymentToken != nil {
		selectors++
	}
	if r.PaymentMethodID != nil {
		selectors++
	}
	if r.PaymentMethodData != nil {
		selectors++
	}
	if selectors > 1 {
		return ErrAmbiguousPaymentInstrument
	}
	return nil
}

// DecodePaymentMethodData decodes the gateway's flat payment_method_data
// object into the matching union variant, keyed by its "type" discriminator.
func DecodePaymentMethodData(raw json.RawMessage) (PaymentMethodData, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "bank_card":
		var body struct {
			Card *CardData `json:"card"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return BankCardData{Card: body.Card}, nil
	case "sbp":
		return SBPData{}, nil
	case "sberbank":
		var body struct {
			Login *string `json:"login"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return SberPayData{Login: body.Login}, nil
	case "mobile_balance":
		var body struct {
			Phone string `json:"phone"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, err
		}
		return MobileBalanceData{Phone: body.Phone}, nil
	}
	return nil, &UnknownPaymentMethodError{Type: head.Type}
}

// UnknownPaymentMethodError reports a payment_method_data type outside the
// variants this client can express.
type UnknownPaymentMethodError struct {
	Type string
}

func (e *UnknownPaymentMethodError) Error() string {
	return "unknown payment method data type " + strconv.Quote(e.Type)
}

func (r *CreatePaymentRequest) UnmarshalJSON(data []byte) error {
	type plain CreatePaymentRequest
	var w struct {
		plain
		PaymentMethodData json.RawMessage `json:"payment_method_data"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = CreatePaymentRequest(w.plain)
	if len(w.PaymentMethodData) > 0 && string(w.PaymentMethodData) != "null" {
		data, err := DecodePaymentMethodData(w.PaymentMethodData)
		if err != nil {
			return err
		}
		r.PaymentMethodData = data
	}
	return nil
}

// CapturePaymentRequest optionally narrows a capture to a partial amount or
// attaches a fiscal receipt. The zero value marshals to "{}", which is what
// the capture endpoint requires when there is nothing to say.
type CapturePaymentRequest struct {
	Amount  *Amount  `json:"amount,omitempty"`
	Receipt *Receipt `json:"receipt,omitempty"`
}
