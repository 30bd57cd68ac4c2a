package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContextAssignsID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext(time.Second))

	var seen string
	var hasDeadline bool
	app.Get("/", func(c *fiber.Ctx) error {
		seen = RequestID(c)
		_, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	header := resp.Header.Get(RequestIDHeader)
	assert.Equal(t, seen, header)
	_, err = uuid.Parse(header)
	assert.NoError(t, err)
	assert.True(t, hasDeadline)
}

func TestRequestContextKeepsIncomingID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext(0))

	var hasDeadline bool
	app.Get("/", func(c *fiber.Ctx) error {
		_, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
	assert.False(t, hasDeadline)
}
