package db

import (
	"context"
	"log"

	"shoutbox-backend/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the Postgres pool and verifies the connection.
// Startup is aborted if the database is unreachable.
func Connect(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database")
	return pool
}
