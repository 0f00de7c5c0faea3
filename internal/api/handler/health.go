package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, envelope{Data: healthResponse{
		Status:  "ok",
		Message: "devfolio API is running",
	}})
}

// ReadinessHandler handles GET /health/ready — readiness probe.
// Checks MongoDB and Redis connectivity before declaring the service ready.
// Nil dependencies (memory backend) are reported as skipped.
type ReadinessHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewReadinessHandler(db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{mongo: db, redis: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	resp := readinessResponse{
		Status:       "ok",
		Dependencies: make(map[string]dependencyStatus, 2),
	}

	resp.Dependencies["mongo"] = h.checkMongo(ctx)
	resp.Dependencies["redis"] = h.checkRedis(ctx)

	code := http.StatusOK
	for _, dep := range resp.Dependencies {
		if dep.Status == "error" {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	return c.JSON(code, envelope{Data: resp})
}

func (h *ReadinessHandler) checkMongo(ctx context.Context) dependencyStatus {
	if h.mongo == nil {
		return dependencyStatus{Status: "skipped"}
	}
	if err := h.mongo.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return dependencyStatus{Status: "error", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}

func (h *ReadinessHandler) checkRedis(ctx context.Context) dependencyStatus {
	if h.redis == nil {
		return dependencyStatus{Status: "skipped"}
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{Status: "error", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}
