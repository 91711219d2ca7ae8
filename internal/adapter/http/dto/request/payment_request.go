package request

import (
	"encoding/json"
	"errors"
	"strings"

	"yookassa_client/internal/domain/entities"
)

var ErrInvalidPaymentMethodData = errors.New("invalid payment_method_data")

type AmountRequest struct {
	Value    string `json:"value" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

// CreatePaymentRequest is the facade payload for creating a payment. It is
// wire-compatible with the gateway schema plus one convenience: a top-level
// return_url resolves into a redirect confirmation when no explicit
// confirmation block is given.
type CreatePaymentRequest struct {
	Amount            AmountRequest                 `json:"amount" binding:"required"`
	Description       *string                       `json:"description,omitempty"`
	Capture           *bool                         `json:"capture,omitempty"`
	ReturnURL         string                        `json:"return_url,omitempty"`
	Confirmation      *entities.ConfirmationRequest `json:"confirmation,omitempty"`
	PaymentMethodData json.RawMessage               `json:"payment_method_data,omitempty"`
	PaymentToken      *string                       `json:"payment_token,omitempty"`
	PaymentMethodID   *string                       `json:"payment_method_id,omitempty"`
	SavePaymentMethod *bool                         `json:"save_payment_method,omitempty"`
	Metadata          map[string]any                `json:"metadata,omitempty"`
	Receipt           *entities.Receipt             `json:"receipt,omitempty"`
	ClientIP          *string                       `json:"client_ip,omitempty"`
}

// Resolve translates the facade payload into the domain command.
func (r CreatePaymentRequest) Resolve() (entities.CreatePaymentRequest, error) {
	out := entities.CreatePaymentRequest{
		Amount:            entities.Amount{Value: strings.TrimSpace(r.Amount.Value), Currency: strings.TrimSpace(r.Amount.Currency)},
		Description:       r.Description,
		Capture:           r.Capture,
		Confirmation:      r.Confirmation,
		PaymentToken:      r.PaymentToken,
		PaymentMethodID:   r.PaymentMethodID,
		SavePaymentMethod: r.SavePaymentMethod,
		Metadata:          r.Metadata,
		Receipt:           r.Receipt,
		ClientIP:          r.ClientIP,
	}

	if out.Confirmation == nil {
		if returnURL := strings.TrimSpace(r.ReturnURL); returnURL != "" {
			out.Confirmation = &entities.ConfirmationRequest{Type: "redirect", ReturnURL: returnURL}
		}
	}

	if len(r.PaymentMethodData) > 0 && string(r.PaymentMethodData) != "null" {
		data, err := entities.DecodePaymentMethodData(r.PaymentMethodData)
		if err != nil {
			return entities.CreatePaymentRequest{}, errors.Join(ErrInvalidPaymentMethodData, err)
		}
		out.PaymentMethodData = data
	}

	return out, nil
}

// CapturePaymentRequest optionally narrows a capture. An empty payload
// resolves to nil, which the gateway client turns into the mandatory "{}".
type CapturePaymentRequest struct {
	Amount  *AmountRequest    `json:"amount,omitempty"`
	Receipt *entities.Receipt `json:"receipt,omitempty"`
}

func (r CapturePaymentRequest) Resolve() *entities.CapturePaymentRequest {
	if r.Amount == nil && r.Receipt == nil {
		return nil
	}
	out := &entities.CapturePaymentRequest{Receipt: r.Receipt}
	if r.Amount != nil {
		out.Amount = &entities.Amount{Value: strings.TrimSpace(r.Amount.Value), Currency: strings.TrimSpace(r.Amount.Currency)}
	}
	return out
}
