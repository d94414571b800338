package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Cleanup schedules
const (
	VisitorSweepSpec   = "@every 5m"
	RateLimitSweepSpec = "@every 1m"
)

// VisitorStore evicts idle visitor page states
type VisitorStore interface {
	Sweep() int
}

// LimiterStore drops expired rate limit windows
type LimiterStore interface {
	Sweep(now time.Time)
}

// StartScheduler starts the in-memory cleanup jobs. Stop the returned scheduler on shutdown.
func StartScheduler(store VisitorStore, limiter LimiterStore) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(VisitorSweepSpec, func() { SweepVisitors(store) }); err != nil {
		return nil, fmt.Errorf("failed to schedule visitor sweep: %w", err)
	}
	if _, err := c.AddFunc(RateLimitSweepSpec, func() { limiter.Sweep(time.Now()) }); err != nil {
		return nil, fmt.Errorf("failed to schedule rate limit sweep: %w", err)
	}

	c.Start()
	log.Println("[CRON] Cleanup scheduler started")
	return c, nil
}

// SweepVisitors evicts idle visitors and returns how many were removed
func SweepVisitors(store VisitorStore) int {
	n := store.Sweep()
	if n > 0 {
		log.Printf("[CRON] Evicted %d idle visitor sessions", n)
	}
	return n
}
