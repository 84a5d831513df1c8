// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Version reported by the health endpoints.
const Version = "1.0.0"

// HealthHandler serves the health probe endpoints. None of these routes
// pass through the auth middleware.
type HealthHandler struct {
	db          *gorm.DB
	rdb         *redis.Client // nil when running without Redis
	environment string
	startedAt   time.Time
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(db *gorm.DB, rdb *redis.Client, environment string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		rdb:         rdb,
		environment: environment,
		startedAt:   time.Now(),
	}
}

// pingDB checks database connectivity through the underlying sql.DB.
func (h *HealthHandler) pingDB(c *gin.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request.Context())
}

// Live reports that the process is up. It never touches dependencies.
func (h *HealthHandler) Live(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.startedAt).Seconds(),
		"version":     Version,
		"environment": h.environment,
	})
}

// Ready reports whether the service can take traffic: the database
// must be reachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	if err := h.pingDB(c); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

// Check reports the health of the service and its dependencies.
// Redis being down degrades the report but does not fail it; the
// service runs without the cache.
func (h *HealthHandler) Check(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	dbStatus := "up"
	status := http.StatusOK
	if err := h.pingDB(c); err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	redisStatus := "disabled"
	if h.rdb != nil {
		redisStatus = "up"
		if err := h.rdb.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "down"
		}
	}

	c.JSON(status, gin.H{
		"status":    statusWord(status),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
		"database":  dbStatus,
		"redis":     redisStatus,
	})
}

func statusWord(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unavailable"
}
