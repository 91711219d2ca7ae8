package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yookassa_client/internal/adapter/http/handlers/mocks"
	"yookassa_client/internal/domain/entities"
	"yookassa_client/internal/infrastructure/payments"
	"yookassa_client/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(uc usecase.IPaymentUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(uc)
	r := gin.New()
	r.POST("/v1/payments", h.CreatePayment)
	r.GET("/v1/payments", h.ListPayments)
	r.GET("/v1/payments/:payment_id", h.GetPayment)
	r.POST("/v1/payments/:payment_id/capture", h.CapturePayment)
	r.POST("/v1/payments/:payment_id/cancel", h.CancelPayment)
	return r
}

func TestPaymentHandler_CreatePayment(t *testing.T) {
	t.Run("invalid json payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(uc)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("return_url shortcut becomes redirect confirmation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(uc)

		confirmationURL := "https://yookassa.test/confirm"
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, cmd entities.CreatePaymentRequest) (*entities.Payment, error) {
				if cmd.Confirmation == nil || cmd.Confirmation.Type != "redirect" || cmd.Confirmation.ReturnURL != "https://shop.test/return" {
					t.Fatalf("expected resolved redirect confirmation, got %+v", cmd.Confirmation)
				}
				return &entities.Payment{
					ID:           "p-1",
					Status:       entities.PaymentStatusPending,
					Amount:       cmd.Amount,
					CreatedAt:    "2024-06-01T12:00:00.000Z",
					Confirmation: &entities.Confirmation{Type: "redirect", ConfirmationURL: &confirmationURL},
				}, nil
			})

		body := `{"amount":{"value":"100.00","currency":"RUB"},"return_url":"https://shop.test/return"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if got["confirmation_url"] != confirmationURL {
			t.Fatalf("expected flattened confirmation_url, got %v", got)
		}
	})

	t.Run("gateway API error keeps upstream status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(uc)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, &payments.APIError{
			Status:  http.StatusPaymentRequired,
			Message: "insufficient funds",
			Details: &payments.APIErrorDetails{Type: "error", ID: "e-1", Code: "payment_declined", Description: "Payment declined"},
		})

		body := `{"amount":{"value":"100.00","currency":"RUB"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusPaymentRequired {
			t.Fatalf("expected 402, got %d", w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if got["code"] != "GATEWAY_payment_declined" {
			t.Fatalf("expected gateway code, got %v", got)
		}
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(uc)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, usecase.ErrInvalidPaymentInput)

		body := `{"amount":{"value":"100.00","currency":"RUB"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_GetPayment(t *testing.T) {
	t.Run("not found passes gateway status through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(uc)

		uc.EXPECT().Get(gomock.Any(), "p-missing").Return(nil, &payments.APIError{Status: http.StatusNotFound, Message: "not found"})

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/p-missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("network error maps to 503", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(uc)

		uc.EXPECT().Get(gomock.Any(), "p-1").Return(nil, payments.ErrNetwork)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/p-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("missing field in gateway response maps to 502", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(uc)

		uc.EXPECT().Get(gomock.Any(), "p-1").Return(nil, &entities.MissingFieldError{Field: "status"})

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/p-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_CapturePayment(t *testing.T) {
	t.Run("empty body captures in full", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(uc)

		uc.EXPECT().Capture(gomock.Any(), "p-1", gomock.Nil()).Return(&entities.Payment{
			ID: "p-1", Status: entities.PaymentStatusSucceeded, CreatedAt: "2024-06-01T12:00:00.000Z",
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/p-1/capture", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("partial capture body is forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(uc)

		uc.EXPECT().Capture(gomock.Any(), "p-1", gomock.Any()).DoAndReturn(
			func(_ any, _ string, req *entities.CapturePaymentRequest) (*entities.Payment, error) {
				if req == nil || req.Amount == nil || req.Amount.Value != "50.00" {
					t.Fatalf("expected partial amount 50.00, got %+v", req)
				}
				return &entities.Payment{ID: "p-1", Status: entities.PaymentStatusSucceeded}, nil
			})

		body := `{"amount":{"value":"50.00","currency":"RUB"}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments/p-1/capture", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_CancelPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	r := newPaymentRouter(uc)

	uc.EXPECT().Cancel(gomock.Any(), "p-1").Return(&entities.Payment{
		ID:                  "p-1",
		Status:              entities.PaymentStatusCanceled,
		CancellationDetails: &entities.CancellationDetails{Party: "merchant", Reason: "canceled_by_merchant"},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/payments/p-1/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got["status"] != "canceled" {
		t.Fatalf("expected canceled, got %v", got)
	}
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIPaymentUseCase(ctrl)
	r := newPaymentRouter(uc)

	cursor := "page-2"
	uc.EXPECT().List(gomock.Any(), map[string]string{"status": "succeeded", "limit": "5"}).
		Return(&entities.PaymentList{Type: "list", NextCursor: &cursor}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/payments?status=succeeded&limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got["next_cursor"] != "page-2" || got["has_more"] != true {
		t.Fatalf("expected next cursor page-2, got %v", got)
	}
}
