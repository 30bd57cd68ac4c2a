package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponseShape(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return ErrorResponse(c, "Failed to fetch categories", fiber.StatusInternalServerError, "getCategories")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom?x=1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body ErrorResponseStruct
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 500, body.Status)
	assert.Equal(t, "Failed to fetch categories", body.Message)
	assert.Equal(t, body.Message, body.Error)
	assert.False(t, body.Ok)
	assert.Equal(t, "/boom?x=1", body.URL)
	assert.Equal(t, "getCategories", body.Type)
	assert.NotEmpty(t, body.Timestamp)
}

func TestNotFoundAndBadRequest(t *testing.T) {
	app := fiber.New()
	app.Get("/missing", func(c *fiber.Ctx) error { return NotFoundResponse(c, "gone") })
	app.Get("/bad", func(c *fiber.Ctx) error { return BadRequestResponse(c, "nope") })

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/bad", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPingDatabaseHostSkipsFileDatabases(t *testing.T) {
	for _, dsn := range []string{"file::memory:", "jokes.db", "host=localhost user=x dbname=y"} {
		dialed, err := PingDatabaseHost(dsn)
		assert.False(t, dialed, dsn)
		assert.NoError(t, err, dsn)
	}
}

func TestPingServiceUnreachable(t *testing.T) {
	// Port 1 on loopback is not expected to accept connections
	err := PingService("postgres://127.0.0.1:1/jokebook", 200*time.Millisecond)
	assert.Error(t, err)
}
