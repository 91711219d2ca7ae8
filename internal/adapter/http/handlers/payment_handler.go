package handlers

import (
	"errors"
	"log"
	"net/http"

	request "yookassa_client/internal/adapter/http/dto/request"
	response "yookassa_client/internal/adapter/http/dto/response"
	"yookassa_client/internal/domain/entities"
	"yookassa_client/internal/infrastructure/payments"
	"yookassa_client/internal/usecase"
	"yookassa_client/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_PAYMENT_INPUT", "Invalid payment payload", http.StatusBadRequest)

// PaymentHandler exposes the payment lifecycle over HTTP: create, retrieve,
// capture, cancel and list.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePayment creates a payment at the gateway and returns its snapshot,
// including the confirmation URL when a redirect confirmation was requested.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payload request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] create invalid payload err=%v", err)
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	cmd, err := payload.Resolve()
	if err != nil {
		log.Printf("[payment][handler] create unresolvable payload err=%v", err)
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), cmd)
	if err != nil {
		log.Printf("[payment][handler] create failed err=%v", err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success payment_id=%s status=%s", created.ID, created.Status)

	c.JSON(http.StatusCreated, response.FromPayment(*created))
}

// GetPayment returns the current gateway-side snapshot of a payment.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	p, err := h.usecase.Get(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] get failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(*p))
}

// CapturePayment captures a payment waiting for capture. The body is
// optional; without one the whole amount is captured.
func (h *PaymentHandler) CapturePayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var payload request.CapturePaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			log.Printf("[payment][handler] capture invalid payload payment_id=%s err=%v", paymentID, err)
			c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
			return
		}
	}

	p, err := h.usecase.Capture(c.Request.Context(), paymentID, payload.Resolve())
	if err != nil {
		log.Printf("[payment][handler] capture failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] capture success payment_id=%s status=%s", p.ID, p.Status)

	c.JSON(http.StatusOK, response.FromPayment(*p))
}

// CancelPayment cancels a payment the gateway still holds.
func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	p, err := h.usecase.Cancel(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("[payment][handler] cancel failed payment_id=%s err=%v", paymentID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] cancel success payment_id=%s status=%s", p.ID, p.Status)

	c.JSON(http.StatusOK, response.FromPayment(*p))
}

// ListPayments forwards every query parameter as a gateway list filter,
// including "cursor" for pagination.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	filters := map[string]string{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}

	list, err := h.usecase.List(c.Request.Context(), filters)
	if err != nil {
		log.Printf("[payment][handler] list failed err=%v", err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentList(*list))
}

// mapPaymentError translates the gateway client's error taxonomy into the
// facade's HTTP envelope. Gateway API errors keep their upstream status.
func mapPaymentError(err error) *pkg.AppError {
	var apiErr *payments.APIError
	if errors.As(err, &apiErr) {
		code := "GATEWAY_ERROR"
		message := apiErr.Message
		if apiErr.Details != nil {
			code = "GATEWAY_" + apiErr.Details.Code
			message = apiErr.Details.Description
		}
		return pkg.NewDomainErrorSimple(code, message, apiErr.Status)
	}

	var missing *entities.MissingFieldError
	var unknownStatus *entities.UnknownStatusError
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentID), errors.Is(err, usecase.ErrInvalidPaymentInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("GATEWAY_NOT_CONFIGURED", "Payment gateway not configured", http.StatusServiceUnavailable)
	case errors.Is(err, payments.ErrNetwork):
		return pkg.NewDomainErrorSimple("GATEWAY_UNREACHABLE", "Payment gateway unreachable", http.StatusServiceUnavailable)
	case errors.As(err, &missing), errors.As(err, &unknownStatus), errors.Is(err, payments.ErrDecode):
		return pkg.NewDomainErrorSimple("GATEWAY_BAD_RESPONSE", "Payment gateway returned an unexpected response", http.StatusBadGateway)
	}
	return pkg.NewDomainErrorSimple("INTERNAL_ERROR", "Internal error", http.StatusInternalServerError)
}
