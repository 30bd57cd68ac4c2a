package services_test

import (
	"context"
	"testing"

	"github.com/robsiuuu/jokebook/internal/database"
	"github.com/robsiuuu/jokebook/internal/services"
	"github.com/robsiuuu/jokebook/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	cfg := testhelpers.SQLiteConfig()

	db, err := database.Connect(cfg)
	require.NoError(t, err)

	result := services.HealthCheck(context.Background(), cfg, db)
	assert.True(t, result.Healthy())
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "sqlite", result.Details["database_type"])
	assert.Equal(t, "1", result.Details["max_open_connections"])

	require.NoError(t, database.Close(db))

	result = services.HealthCheck(context.Background(), cfg, db)
	assert.False(t, result.Healthy())
	assert.Equal(t, "unreachable", result.Database)
	assert.NotEmpty(t, result.ErrorMessage)
}
