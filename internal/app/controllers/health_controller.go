package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pr17-lab/sata-backend/internal/app/services"
	"github.com/pr17-lab/sata-backend/internal/middleware"
)

// HealthController exposes liveness probes.
type HealthController struct {
	healthService *services.HealthService
}

// NewHealthController creates a new HealthController
func NewHealthController(healthService *services.HealthService) *HealthController {
	return &HealthController{healthService: healthService}
}

// Check reports database reachability.
func (c *HealthController) Check(ctx *gin.Context) {
	status := c.healthService.Check(ctx)

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, status)
}

// DetailedCheck adds per-table row counts.
func (c *HealthController) DetailedCheck(ctx *gin.Context) {
	status, err := c.healthService.DetailedCheck(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, status)
}
