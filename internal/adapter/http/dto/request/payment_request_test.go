package request

import (
	"encoding/json"
	"errors"
	"testing"

	"yookassa_client/internal/domain/entities"
)

func TestCreatePaymentRequest_Resolve(t *testing.T) {
	t.Run("return_url shortcut", func(t *testing.T) {
		r := CreatePaymentRequest{
			Amount:    AmountRequest{Value: " 100.00 ", Currency: " RUB "},
			ReturnURL: " https://shop.test/return ",
		}
		cmd, err := r.Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd.Amount.Value != "100.00" || cmd.Amount.Currency != "RUB" {
			t.Fatalf("expected trimmed amount, got %+v", cmd.Amount)
		}
		if cmd.Confirmation == nil || cmd.Confirmation.Type != "redirect" || cmd.Confirmation.ReturnURL != "https://shop.test/return" {
			t.Fatalf("expected redirect confirmation, got %+v", cmd.Confirmation)
		}
	})

	t.Run("explicit confirmation wins over return_url", func(t *testing.T) {
		r := CreatePaymentRequest{
			Amount:       AmountRequest{Value: "100.00", Currency: "RUB"},
			ReturnURL:    "https://shop.test/ignored",
			Confirmation: &entities.ConfirmationRequest{Type: "embedded", ReturnURL: "https://shop.test/explicit"},
		}
		cmd, err := r.Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd.Confirmation.Type != "embedded" || cmd.Confirmation.ReturnURL != "https://shop.test/explicit" {
			t.Fatalf("expected explicit confirmation, got %+v", cmd.Confirmation)
		}
	})

	t.Run("payment_method_data decodes through the union", func(t *testing.T) {
		r := CreatePaymentRequest{
			Amount:            AmountRequest{Value: "100.00", Currency: "RUB"},
			PaymentMethodData: json.RawMessage(`{"type":"sbp"}`),
		}
		cmd, err := r.Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := cmd.PaymentMethodData.(entities.SBPData); !ok {
			t.Fatalf("expected SBPData, got %#v", cmd.PaymentMethodData)
		}
	})

	t.Run("unknown payment_method_data type rejected", func(t *testing.T) {
		r := CreatePaymentRequest{
			Amount:            AmountRequest{Value: "100.00", Currency: "RUB"},
			PaymentMethodData: json.RawMessage(`{"type":"crypto"}`),
		}
		_, err := r.Resolve()
		if !errors.Is(err, ErrInvalidPaymentMethodData) {
			t.Fatalf("expected ErrInvalidPaymentMethodData, got %v", err)
		}
	})
}

func TestCapturePaymentRequest_Resolve(t *testing.T) {
	if got := (CapturePaymentRequest{}).Resolve(); got != nil {
		t.Fatalf("empty payload must resolve to nil, got %+v", got)
	}

	r := CapturePaymentRequest{Amount: &AmountRequest{Value: "50.00", Currency: "RUB"}}
	got := r.Resolve()
	if got == nil || got.Amount == nil || got.Amount.Value != "50.00" {
		t.Fatalf("expected partial amount, got %+v", got)
	}
}
