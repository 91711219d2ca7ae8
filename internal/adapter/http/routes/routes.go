package routes

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"yookassa_client/internal/adapter/http/handlers"
	"yookassa_client/internal/infrastructure/payments"
	"yookassa_client/internal/usecase"
	"yookassa_client/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	var gateway interfaces.IPaymentGateway
	if payments.IsMockModeEnabled() {
		gateway = payments.NewMockGateway()
	} else {
		opts := []payments.Option{}
		if baseURL := os.Getenv("YOOKASSA_API_BASE_URL"); baseURL != "" {
			opts = append(opts, payments.WithBaseURL(baseURL))
		}
		client, err := payments.NewClient(os.Getenv("YOOKASSA_SHOP_ID"), os.Getenv("YOOKASSA_SECRET_KEY"), opts...)
		if err != nil {
			log.Printf("YooKassa gateway not configured: %v", err)
		} else {
			gateway = client
		}
	}

	paymentUseCase := usecase.NewPaymentUseCase(gateway)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler)
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
