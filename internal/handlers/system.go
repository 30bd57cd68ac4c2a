package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/robsiuuu/jokebook/internal/config"
	"github.com/robsiuuu/jokebook/internal/services"
	"gorm.io/gorm"
)

// SystemHandler serves the liveness and health routes
type SystemHandler struct {
	Config *config.Config
	DB     *gorm.DB
}

// Test handles GET /api/test
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/test [get]
func (h *SystemHandler) Test(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Server is working!"})
}

// Health handles GET /health
// @Summary Health check
// @Description Report database reachability and pool statistics
// @Tags System
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB)
	if !result.Healthy() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
