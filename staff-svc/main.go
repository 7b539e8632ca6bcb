package main

import (
	"log"
	"net/http"
	"os"

	"tableside/config"
	httpapi "tableside/staff-svc/internal/api/http"
	"tableside/staff-svc/internal/service"
	"tableside/staff-svc/internal/storage"
)

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	redisClient := config.MustInitRedis()
	defer redisClient.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	tokens := storage.NewTokenStore(redisClient)
	hub := storage.NewRealtimeHub(redisClient)

	accounts := service.NewAccountService(repo, tokens)
	waiters := service.NewWaiterService(repo, hub)
	kitchen := service.NewKitchenService(repo, hub)

	if err := accounts.EnsureAdmin(os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	handler := httpapi.NewHandler(accounts, waiters, kitchen, hub, storage.KitchenChannel)
	router := httpapi.NewRouter(handler)

	log.Println("Staff Service starting on port 8093")
	log.Fatal(http.ListenAndServe(":8093", router))
}
