package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/robsiuuu/jokebook/internal/handlers"
	"github.com/robsiuuu/jokebook/internal/testhelpers"
	"github.com/robsiuuu/jokebook/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/custom", func(c *fiber.Ctx) error {
		return &types.CustomError{Code: http.StatusConflict, Message: "already there", Type: "conflict"}
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.NewError(http.StatusTeapot, "short and stout")
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	cases := []struct {
		path    string
		status  int
		message string
		errType string
	}{
		{"/custom", http.StatusConflict, "already there", "conflict"},
		{"/fiber", http.StatusTeapot, "short and stout", "unknown"},
		{"/plain", http.StatusInternalServerError, "boom", "unknown"},
	}
	for _, tc := range cases {
		resp := do(t, app, httptest.NewRequest("GET", tc.path, nil))
		testhelpers.AssertStatus(t, resp, tc.status)

		var body errorBody
		testhelpers.ParseJSON(t, resp, &body)
		assert.Equal(t, tc.status, body.Status, tc.path)
		assert.Equal(t, tc.message, body.Message, tc.path)
		assert.Equal(t, tc.message, body.Error, tc.path)
		assert.Equal(t, tc.errType, body.Type, tc.path)
		assert.False(t, body.Ok, tc.path)
	}
}

func TestRouteErrorsAreCustomErrors(t *testing.T) {
	db := testhelpers.NewSeededTestDB(t)
	h := &handlers.JokeHandler{DB: db}

	// Routes hand their failures to Fiber as CustomError
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		var customErr *types.CustomError
		if !errors.As(err, &customErr) {
			t.Errorf("expected CustomError, got %T", err)
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendStatus(customErr.Code)
	}})
	handlers.RegisterJokebookRoutes(app.Group("/jokebook"), h)

	resp := do(t, app, httptest.NewRequest("GET", "/jokebook/categories/doesNotExist", nil))
	testhelpers.AssertStatus(t, resp, http.StatusNotFound)

	req := testhelpers.JSONRequest(t, "POST", "/jokebook/add", map[string]string{"category": "x"})
	resp = do(t, app, req)
	testhelpers.AssertStatus(t, resp, http.StatusBadRequest)
}
