package main

import (
	"log"
	"net/http"
	"os"

	"tableside/api-gateway/internal/gateway"

	"github.com/rs/cors"
)

func main() {
	config := gateway.Config{
		TableSvcURL: getEnv("TABLE_SVC_URL", "http://localhost:8091"),
		OrderSvcURL: getEnv("ORDER_SVC_URL", "http://localhost:8092"),
		StaffSvcURL: getEnv("STAFF_SVC_URL", "http://localhost:8093"),
	}

	gw := gateway.NewGateway(config, &http.Client{})

	r := gw.SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080", "http://127.0.0.1:8080", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	handler := c.Handler(r)

	log.Println("API Gateway starting on port 8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
