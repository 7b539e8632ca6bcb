package main

import (
	"log"
	"net/http"
	"time"

	"tableside/config"
	httpapi "tableside/table-svc/internal/api/http"
	"tableside/table-svc/internal/service"
	"tableside/table-svc/internal/storage"
)

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	qr := service.DefaultQRGenerator{BaseURL: config.PublicBaseURL()}

	resolver := service.NewResolverService(repo)
	parties := service.NewPartyService(repo)
	tables := service.NewTableService(repo, qr)

	sweeper, err := service.StartSessionSweeper(repo, 10*time.Minute)
	if err != nil {
		log.Fatal("Failed to start session sweeper:", err)
	}
	defer func() { _ = sweeper.Shutdown() }()

	handler := httpapi.NewHandler(resolver, parties, tables)
	router := httpapi.NewRouter(handler)

	log.Println("Table Service starting on port 8091")
	log.Fatal(http.ListenAndServe(":8091", router))
}
