package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/robsiuuu/jokebook/internal/config"
	"github.com/robsiuuu/jokebook/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every check passed
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck performs a health check of the service and its database pool
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB) HealthCheckResult {
	log := zap.L()
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}
	result.Details["database_type"] = cfg.DBType

	// Network reachability of the database host, when it has one
	if dialed, err := utils.PingDatabaseHost(cfg.DatabaseURL); dialed {
		if err != nil {
			result.Details["database_host_error"] = err.Error()
			log.Warn("Health check - database host unreachable", zap.Error(err))
		} else {
			result.Details["database_host"] = "ok"
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Error("Health check failed - database connection", zap.Error(err))
		return result
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Error("Health check failed - database ping", zap.Error(err))
		return result
	}

	result.Database = "ok"
	stats := sqlDB.Stats()
	result.Details["open_connections"] = strconv.Itoa(stats.OpenConnections)
	result.Details["in_use"] = strconv.Itoa(stats.InUse)
	result.Details["idle"] = strconv.Itoa(stats.Idle)
	result.Details["max_open_connections"] = strconv.Itoa(stats.MaxOpenConnections)

	log.Debug("Health check passed - all systems operational")
	return result
}
