// Package health exposes liveness and readiness endpoints.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker reports service health. Dependencies are optional; a nil
// dependency is skipped rather than reported as failing.
type Checker struct {
	db      *pgxpool.Pool
	redis   *redis.Client
	started time.Time
}

func NewChecker(db *pgxpool.Pool, redisClient *redis.Client) *Checker {
	return &Checker{
		db:      db,
		redis:   redisClient,
		started: time.Now(),
	}
}

type status struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleHealth is the liveness probe. It answers OK whenever the process
// is serving.
func (c *Checker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, status{
		Status: "ok",
		Uptime: time.Since(c.started).Round(time.Second).String(),
	})
}

// HandleReady is the readiness probe. It pings each configured dependency
// and answers 503 if any is unreachable.
func (c *Checker) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if c.db != nil {
		if err := c.db.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}

	if c.redis != nil {
		if err := c.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	code := http.StatusOK
	s := "ready"
	if !healthy {
		code = http.StatusServiceUnavailable
		s = "degraded"
	}
	writeStatus(w, code, status{
		Status: s,
		Uptime: time.Since(c.started).Round(time.Second).String(),
		Checks: checks,
	})
}

func writeStatus(w http.ResponseWriter, code int, s status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(s)
}
