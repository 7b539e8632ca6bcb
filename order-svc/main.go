package main

import (
	"log"
	"net/http"

	"tableside/config"
	httpapi "tableside/order-svc/internal/api/http"
	"tableside/order-svc/internal/service"
	"tableside/order-svc/internal/storage"
)

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	redisClient := config.MustInitRedis()
	defer redisClient.Close()

	kafkaWriter := config.NewKafkaWriter("orders")
	defer kafkaWriter.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	hub := storage.NewRealtimeHub(redisClient)
	publisher := storage.NewKafkaPublisher(kafkaWriter)

	menu := service.NewMenuService(repo)
	cart := service.NewCartService(repo, hub)
	orders := service.NewOrderService(repo, hub, publisher)

	handler := httpapi.NewHandler(menu, cart, orders)
	router := httpapi.NewRouter(handler)

	log.Println("Order Service starting on port 8092")
	log.Fatal(http.ListenAndServe(":8092", router))
}
