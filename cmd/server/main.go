package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"shoutbox-backend/internal/config"
	"shoutbox-backend/internal/database"
	"shoutbox-backend/internal/db"
	"shoutbox-backend/internal/handlers"
	"shoutbox-backend/internal/health"
	h "shoutbox-backend/internal/http"
	"shoutbox-backend/internal/middleware"
	"shoutbox-backend/internal/repositories"
	"shoutbox-backend/internal/services"
	"shoutbox-backend/migrations"

	"github.com/joho/godotenv"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool, migrations.FS)
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	mediaStore, err := services.NewS3MediaStore(context.Background(), cfg.Media)
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	messageRepo := repositories.NewPostgresMessageRepository(pool)
	messageService := services.NewMessageService(messageRepo, mediaStore, cfg)

	messageHandler := handlers.NewMessageHandler(messageService)
	healthHandler := handlers.NewHealthHandler(health.NewChecker(pool))
	systemStatusHandler := handlers.NewSystemStatusHandler()

	router := h.NewRouter(messageHandler, healthHandler, systemStatusHandler)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := corsMiddleware(middleware.SecurityHeaders(middleware.RequestMetrics(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
