package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	repo   repository.ReportRepository
	driver string
}

func NewHealthHandler(repo repository.ReportRepository, driver string) *HealthHandler {
	return &HealthHandler{repo: repo, driver: driver}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	if err := h.repo.Ping(ctx); err != nil {
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Driver:    h.driver,
	})
}
