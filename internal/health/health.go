package health

import (
	"context"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Checker struct {
	db *pgxpool.Pool
}

type Status struct {
	OK         bool           `json:"ok"`
	Database   DatabaseStatus `json:"database"`
	Goroutines int            `json:"goroutines"`
	Memory     MemoryStats    `json:"memory"`
}

type DatabaseStatus struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type MemoryStats struct {
	AllocMB float64 `json:"alloc_mb"`
	SysMB   float64 `json:"sys_mb"`
	NumGC   uint32  `json:"num_gc"`
}

func NewChecker(db *pgxpool.Pool) *Checker {
	return &Checker{db: db}
}

// Check pings the database with a short timeout and reports runtime
// stats alongside, for goroutine leak spotting.
func (c *Checker) Check() Status {
	dbStatus := c.checkDatabase()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return Status{
		OK:         dbStatus.Status == "healthy",
		Database:   dbStatus,
		Goroutines: runtime.NumGoroutine(),
		Memory: MemoryStats{
			AllocMB: float64(memStats.Alloc) / 1024 / 1024,
			SysMB:   float64(memStats.Sys) / 1024 / 1024,
			NumGC:   memStats.NumGC,
		},
	}
}

func (c *Checker) checkDatabase() DatabaseStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := c.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	status := "healthy"
	if err != nil {
		status = "unhealthy"
	}
	return DatabaseStatus{Status: status, ResponseTime: responseTime}
}
