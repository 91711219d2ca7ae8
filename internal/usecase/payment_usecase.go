package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"yookassa_client/internal/domain/entities"
	"yookassa_client/internal/usecase/interfaces"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrInvalidPaymentID     = errors.New("invalid payment id")
	ErrInvalidPaymentInput  = errors.New("invalid payment input")
)

// IPaymentUseCase encapsulates the payment lifecycle operations the service
// exposes: create, retrieve, capture, cancel and list.
type IPaymentUseCase interface {
	Create(ctx context.Context, req entities.CreatePaymentRequest) (*entities.Payment, error)
	Get(ctx context.Context, paymentID string) (*entities.Payment, error)
	Capture(ctx context.Context, paymentID string, req *entities.CapturePaymentRequest) (*entities.Payment, error)
	Cancel(ctx context.Context, paymentID string) (*entities.Payment, error)
	List(ctx context.Context, filters map[string]string) (*entities.PaymentList, error)
}

type PaymentUseCase struct {
	gateway interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{gateway: gateway}
}

// Create validates the request locally before spending a round trip: the
// amount must match the gateway's decimal wire format and at most one
// payment instrument selector may be set.
func (u *PaymentUseCase) Create(ctx context.Context, req entities.CreatePaymentRequest) (*entities.Payment, error) {
	log.Printf("[payment][usecase] create start amount=%s %s", req.Amount.Value, req.Amount.Currency)
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured")
		return nil, ErrGatewayNotConfigured
	}
	if err := req.Validate(); err != nil {
		log.Printf("[payment][usecase] invalid create request err=%v", err)
		return nil, errors.Join(ErrInvalidPaymentInput, err)
	}

	p, err := u.gateway.CreatePayment(ctx, req)
	if err != nil {
		log.Printf("[payment][usecase] create failed err=%v", err)
		return nil, err
	}
	log.Printf("[payment][usecase] create success payment_id=%s status=%s", p.ID, p.Status)
	return p, nil
}

func (u *PaymentUseCase) Get(ctx context.Context, paymentID string) (*entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	if u.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}
	return u.gateway.GetPayment(ctx, paymentID)
}

// Capture forwards a capture, validating a partial amount when one is given.
// The gateway only accepts captures while the payment is waiting_for_capture;
// that check stays on the gateway side, the authority over transitions.
func (u *PaymentUseCase) Capture(ctx context.Context, paymentID string, req *entities.CapturePaymentRequest) (*entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	log.Printf("[payment][usecase] capture start payment_id=%s", paymentID)
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	if u.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}
	if req != nil && req.Amount != nil {
		if err := req.Amount.Validate(); err != nil {
			log.Printf("[payment][usecase] invalid capture amount payment_id=%s err=%v", paymentID, err)
			return nil, errors.Join(ErrInvalidPaymentInput, err)
		}
	}

	p, err := u.gateway.CapturePayment(ctx, paymentID, req)
	if err != nil {
		log.Printf("[payment][usecase] capture failed payment_id=%s err=%v", paymentID, err)
		return nil, err
	}
	log.Printf("[payment][usecase] capture success payment_id=%s status=%s", p.ID, p.Status)
	return p, nil
}

func (u *PaymentUseCase) Cancel(ctx context.Context, paymentID string) (*entities.Payment, error) {
	paymentID = strings.TrimSpace(paymentID)
	log.Printf("[payment][usecase] cancel start payment_id=%s", paymentID)
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}
	if u.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}

	p, err := u.gateway.CancelPayment(ctx, paymentID)
	if err != nil {
		log.Printf("[payment][usecase] cancel failed payment_id=%s err=%v", paymentID, err)
		return nil, err
	}
	log.Printf("[payment][usecase] cancel success payment_id=%s status=%s", p.ID, p.Status)
	return p, nil
}

// List passes caller filters through untouched; the cursor for the next page
// travels as an ordinary "cursor" filter on the follow-up call.
func (u *PaymentUseCase) List(ctx context.Context, filters map[string]string) (*entities.PaymentList, error) {
	if u.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}
	return u.gateway.ListPayments(ctx, filters)
}
