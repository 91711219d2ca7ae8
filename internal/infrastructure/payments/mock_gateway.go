package payments

import (
	"context"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"yookassa_client/internal/domain/entities"

	"github.com/google/uuid"
)

// MockGateway is the in-process stand-in used when PAYMENT_GATEWAY_MOCK is
// enabled, so the service runs without YooKassa credentials. It keeps the
// payments it fabricated in memory purely to make retrieve/capture/cancel
// answer consistently within one process; nothing is persisted.
type MockGateway struct {
	mu       sync.Mutex
	payments map[string]entities.Payment
}

func NewMockGateway() *MockGateway {
	log.Printf("[payment][gateway] mock mode enabled")
	return &MockGateway{payments: make(map[string]entities.Payment)}
}

func (g *MockGateway) CreatePayment(_ context.Context, req entities.CreatePaymentRequest) (*entities.Payment, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	p := entities.Payment{
		ID:        uuid.NewString(),
		Status:    entities.PaymentStatusPending,
		Amount:    req.Amount,
		Recipient: entities.Recipient{AccountID: "mock", GatewayID: "mock"},
		CreatedAt: now,
		Test:      true,
		Metadata:  req.Metadata,
	}
	if req.Capture == nil || !*req.Capture {
		p.Status = entities.PaymentStatusWaitingForCapture
		p.Paid = true
	}
	if req.Confirmation != nil && req.Confirmation.Type == "redirect" {
		confirmationURL := "https://yoomoney.ru/checkout/payments/v2/contract?orderId=" + p.ID
		p.Confirmation = &entities.Confirmation{
			Type:            "redirect",
			ConfirmationURL: &confirmationURL,
			ReturnURL:       &req.Confirmation.ReturnURL,
		}
	}

	g.mu.Lock()
	g.payments[p.ID] = p
	g.mu.Unlock()
	log.Printf("[payment][gateway] mock create success payment_id=%s status=%s", p.ID, p.Status)
	return &p, nil
}

func (g *MockGateway) GetPayment(_ context.Context, paymentID string) (*entities.Payment, error) {
	g.mu.Lock()
	p, ok := g.payments[paymentID]
	g.mu.Unlock()
	if !ok {
		return nil, &APIError{Status: 404, Message: "payment not found", Details: &APIErrorDetails{
			Type: "error", ID: uuid.NewString(), Code: "not_found", Description: "Payment not found",
		}}
	}
	return &p, nil
}

func (g *MockGateway) CapturePayment(_ context.Context, paymentID string, req *entities.CapturePaymentRequest) (*entities.Payment, error) {
	return g.transition(paymentID, entities.PaymentStatusSucceeded, func(p *entities.Payment) {
		if req != nil && req.Amount != nil {
			p.Amount = *req.Amount
		}
		capturedAt := time.Now().UTC().Format(time.RFC3339Nano)
		p.CapturedAt = &capturedAt
		p.Paid = true
		p.Refundable = true
	})
}

func (g *MockGateway) CancelPayment(_ context.Context, paymentID string) (*entities.Payment, error) {
	return g.transition(paymentID, entities.PaymentStatusCanceled, func(p *entities.Payment) {
		p.Paid = false
		p.CancellationDetails = &entities.CancellationDetails{Party: "merchant", Reason: "canceled_by_merchant"}
	})
}

func (g *MockGateway) ListPayments(_ context.Context, _ map[string]string) (*entities.PaymentList, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	items := make([]entities.Payment, 0, len(g.payments))
	for _, p := range g.payments {
		items = append(items, p)
	}
	return &entities.PaymentList{Type: "list", Items: items}, nil
}

func (g *MockGateway) transition(paymentID string, status entities.PaymentStatus, mutate func(*entities.Payment)) (*entities.Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.payments[paymentID]
	if !ok {
		return nil, &APIError{Status: 404, Message: "payment not found", Details: &APIErrorDetails{
			Type: "error", ID: uuid.NewString(), Code: "not_found", Description: "Payment not found",
		}}
	}
	if p.Status != entities.PaymentStatusWaitingForCapture {
		return nil, &APIError{Status: 400, Message: "invalid payment status", Details: &APIErrorDetails{
			Type: "error", ID: uuid.NewString(), Code: "invalid_request", Description: "Payment is not waiting for capture",
		}}
	}
	p.Status = status
	mutate(&p)
	g.payments[paymentID] = p
	return &p, nil
}

// IsMockModeEnabled reports whether the gateway mock toggle is set.
func IsMockModeEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "YOOKASSA_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
