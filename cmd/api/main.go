package main

import (
	"yookassa_client/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           YooKassa Payment Service API
// @version         1.0
// @description     Stateless HTTP facade over the YooKassa payment gateway (create, retrieve, capture, cancel, list).

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.basic BasicAuth
// @description Gateway credentials (shop id + secret key) are configured server-side via YOOKASSA_SHOP_ID / YOOKASSA_SECRET_KEY.

func main() {
	routes.Run()
}
