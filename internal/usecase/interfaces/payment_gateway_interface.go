package interfaces

import (
	"context"

	"yookassa_client/internal/domain/entities"
)

// IPaymentGateway abstracts the external payment provider (YooKassa).
//
// Implementations must be safe for concurrent use: the use case layer issues
// overlapping calls with no cross-request ordering guarantee, and callers
// needing ordering (create-then-capture) sequence calls themselves.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, req entities.CreatePaymentRequest) (*entities.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*entities.Payment, error)
	CapturePayment(ctx context.Context, paymentID string, req *entities.CapturePaymentRequest) (*entities.Payment, error)
	CancelPayment(ctx context.Context, paymentID string) (*entities.Payment, error)
	ListPayments(ctx context.Context, filters map[string]string) (*entities.PaymentList, error)
}
