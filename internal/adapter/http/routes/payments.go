package routes

import (
	"yookassa_client/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("", paymentHandler.CreatePayment)
		payments.GET("", paymentHandler.ListPayments)
		payments.GET("/:payment_id", paymentHandler.GetPayment)
		payments.POST("/:payment_id/capture", paymentHandler.CapturePayment)
		payments.POST("/:payment_id/cancel", paymentHandler.CancelPayment)
	}
}
