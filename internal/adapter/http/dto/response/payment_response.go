package response

import (
	"yookassa_client/internal/domain/entities"
)

// PaymentResponse mirrors the gateway's payment snapshot, with the redirect
// confirmation URL additionally flattened to the top level since it is the
// one field most integrations need.
type PaymentResponse struct {
	ID                  string                         `json:"id"`
	Status              string                         `json:"status"`
	Amount              entities.Amount                `json:"amount"`
	Paid                bool                           `json:"paid"`
	Test                bool                           `json:"test"`
	Refundable          bool                           `json:"refundable"`
	CreatedAt           string                         `json:"created_at"`
	CapturedAt          *string                        `json:"captured_at,omitempty"`
	ExpiresAt           *string                        `json:"expires_at,omitempty"`
	Description         *string                        `json:"description,omitempty"`
	ConfirmationURL     *string                        `json:"confirmation_url,omitempty"`
	Confirmation        *entities.Confirmation         `json:"confirmation,omitempty"`
	PaymentMethod       *entities.PaymentMethod        `json:"payment_method,omitempty"`
	CancellationDetails *entities.CancellationDetails  `json:"cancellation_details,omitempty"`
	RefundedAmount      *entities.Amount               `json:"refunded_amount,omitempty"`
	IncomeAmount        *entities.Amount               `json:"income_amount,omitempty"`
	Metadata            map[string]any                 `json:"metadata,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	res := PaymentResponse{
		ID:                  p.ID,
		Status:              string(p.Status),
		Amount:              p.Amount,
		Paid:                p.Paid,
		Test:                p.Test,
		Refundable:          p.Refundable,
		CreatedAt:           p.CreatedAt,
		CapturedAt:          p.CapturedAt,
		ExpiresAt:           p.ExpiresAt,
		Description:         p.Description,
		Confirmation:        p.Confirmation,
		PaymentMethod:       p.PaymentMethod,
		CancellationDetails: p.CancellationDetails,
		RefundedAmount:      p.RefundedAmount,
		IncomeAmount:        p.IncomeAmount,
		Metadata:            p.Metadata,
	}
	if p.Confirmation != nil {
		res.ConfirmationURL = p.Confirmation.ConfirmationURL
	}
	return res
}

// PaymentListResponse is one page of payments. NextCursor is passed back as
// the "cursor" query parameter to fetch the following page; its absence, not
// an empty items slice, marks the final page.
type PaymentListResponse struct {
	Items      []PaymentResponse `json:"items"`
	NextCursor *string           `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
}

func FromPaymentList(l entities.PaymentList) PaymentListResponse {
	items := make([]PaymentResponse, 0, len(l.Items))
	for _, p := range l.Items {
		items = append(items, FromPayment(p))
	}
	return PaymentListResponse{
		Items:      items,
		NextCursor: l.NextCursor,
		HasMore:    l.HasNextPage(),
	}
}
