// jokes_test.go
//
// A joke delivery service backed by a relational database
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jokebook.
// jokebook is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jokebook is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jokebook.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/robsiuuu/jokebook/internal/database"
	"github.com/robsiuuu/jokebook/internal/handlers"
	"github.com/robsiuuu/jokebook/internal/models"
	"github.com/robsiuuu/jokebook/internal/services"
	"github.com/robsiuuu/jokebook/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Ok      bool   `json:"ok"`
	Type    string `json:"type"`
}

func setupApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.RegisterJokebookRoutes(app.Group("/jokebook"), &handlers.JokeHandler{DB: db})
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestGetCategories(t *testing.T) {
	app := setupApp(t, testhelpers.NewSeededTestDB(t))

	resp := do(t, app, httptest.NewRequest("GET", "/jokebook/categories", nil))
	testhelpers.AssertStatus(t, resp, http.StatusOK)

	var categories []string
	testhelpers.ParseJSON(t, resp, &categories)
	assert.Equal(t, []string{"funnyJoke", "lameJoke"}, categories)
}

func TestGetCategoriesEmpty(t *testing.T) {
	app := setupApp(t, testhelpers.NewTestDB(t))

	resp := do(t, app, httptest.NewRequest("GET", "/jokebook/categories", nil))
	testhelpers.AssertStatus(t, resp, http.StatusOK)

	var categories []string
	testhelpers.ParseJSON(t, resp, &categories)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestGetJokesByCategory(t *testing.T) {
	app := setupApp(t, testhelpers.NewSeededTestDB(t))

	t.Run("All", func(t *testing.T) {
		resp := do(t, app, httptest.NewRequest("GET", "/jokebook/categories/funnyJoke", nil))
		testhelpers.AssertStatus(t, resp, http.StatusOK)

		var jokes []services.JokeResult
		testhelpers.ParseJSON(t, resp, &jokes)
		require.Len(t, jokes, 3)
		assert.Equal(t, "Why did the student eat his homework?", jokes[0].Setup)
	})

	t.Run("Limit", func(t *testing.T) {
		resp := do(t, app, httptest.NewRequest("GET", "/jokebook/categories/funnyJoke?limit=2", nil))
		testhelpers.AssertStatus(t, resp, http.StatusOK)

		var jokes []services.JokeResult
		testhelpers.ParseJSON(t, resp, &jokes)
		assert.Len(t, jokes, 2)
	})

	t.Run("InvalidLimitIgnored", func(t *testing.T) {
		resp := do(t, app, httptest.NewRequest("GET", "/jokebook/categories/lameJoke?limit=abc", nil))
		testhelpers.AssertStatus(t, resp, http.StatusOK)

		var jokes []services.JokeResult
		testhelpers.ParseJSON(t, resp, &jokes)
		assert.Len(t, jokes, 2)
	})

	t.Run("ZeroLimitOnExistingCategory", func(t *testing.T) {
		resp := do(t, app, httptest.NewRequest("GET", "/jokebook/categories/lameJoke?limit=0", nil))
		testhelpers.AssertStatus(t, resp, http.StatusOK)

		var jokes []services.JokeResult
		testhelpers.ParseJSON(t, resp, &jokes)
		assert.Empty(t, jokes)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		resp := do(t, app, httptest.NewRequest("GET", "/jokebook/categories/doesNotExist", nil))
		testhelpers.AssertStatus(t, resp, http.StatusNotFound)

		var body errorBody
		testhelpers.ParseJSON(t, resp, &body)
		assert.Equal(t, "Category 'doesNotExist' not found", body.Error)
		assert.Equal(t, body.Error, body.Message)
		assert.False(t, body.Ok)
		assert.Equal(t, "notFound", body.Type)
	})

	t.Run("EscapedName", func(t *testing.T) {
		resp := do(t, app, httptest.NewRequest("GET", "/jokebook/categories/no%20such", nil))
		testhelpers.AssertStatus(t, resp, http.StatusNotFound)

		var body errorBody
		testhelpers.ParseJSON(t, resp, &body)
		assert.Equal(t, "Category 'no such' not found", body.Error)
	})
}

func TestGetJokesByCategoryWithoutJokes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	testhelpers.CreateTestCategory(t, db, "empty")
	app := setupApp(t, db)

	resp := do(t, app, httptest.NewRequest("GET", "/jokebook/categories/empty", nil))
	testhelpers.AssertStatus(t, resp, http.StatusOK)

	var jokes []services.JokeResult
	testhelpers.ParseJSON(t, resp, &jokes)
	assert.NotNil(t, jokes)
	assert.Empty(t, jokes)
}

func TestGetRandomJoke(t *testing.T) {
	t.Run("Seeded", func(t *testing.T) {
		app := setupApp(t, testhelpers.NewSeededTestDB(t))

		resp := do(t, app, httptest.NewRequest("GET", "/jokebook/random", nil))
		testhelpers.AssertStatus(t, resp, http.StatusOK)

		var joke services.RandomJokeResult
		testhelpers.ParseJSON(t, resp, &joke)
		assert.Contains(t, database.SeedJokes, database.SeedJoke{
			Category: joke.Category,
			Setup:    joke.Setup,
			Delivery: joke.Delivery,
		})
	})

	t.Run("Empty", func(t *testing.T) {
		app := setupApp(t, testhelpers.NewTestDB(t))

		resp := do(t, app, httptest.NewRequest("GET", "/jokebook/random", nil))
		testhelpers.AssertStatus(t, resp, http.StatusNotFound)

		var body errorBody
		testhelpers.ParseJSON(t, resp, &body)
		assert.Equal(t, "No jokes available in the database", body.Error)
	})
}

func TestAddJoke(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db := testhelpers.NewSeededTestDB(t)
		app := setupApp(t, db)

		req := testhelpers.JSONRequest(t, "POST", "/jokebook/add", map[string]string{
			"category": "newCat",
			"setup":    "Why?",
			"delivery": "Because.",
		})
		resp := do(t, app, req)
		testhelpers.AssertStatus(t, resp, http.StatusOK)

		var body handlers.AddJokeResponse
		testhelpers.ParseJSON(t, resp, &body)
		assert.Equal(t, "Joke added successfully", body.Message)
		assert.Equal(t, []services.JokeResult{{Setup: "Why?", Delivery: "Because."}}, body.Jokes)

		resp = do(t, app, httptest.NewRequest("GET", "/jokebook/categories", nil))
		var categories []string
		testhelpers.ParseJSON(t, resp, &categories)
		assert.Equal(t, []string{"funnyJoke", "lameJoke", "newCat"}, categories)
	})

	t.Run("MissingFields", func(t *testing.T) {
		db := testhelpers.NewSeededTestDB(t)
		app := setupApp(t, db)

		req := testhelpers.JSONRequest(t, "POST", "/jokebook/add", map[string]string{"category": "x"})
		resp := do(t, app, req)
		testhelpers.AssertStatus(t, resp, http.StatusBadRequest)

		var body errorBody
		testhelpers.ParseJSON(t, resp, &body)
		assert.Equal(t, "Missing required parameters: category, setup, delivery", body.Error)
		assert.Equal(t, "validation", body.Type)

		assert.EqualValues(t, 2, testhelpers.CountRows(t, db, &models.Category{}))
		assert.EqualValues(t, len(database.SeedJokes), testhelpers.CountRows(t, db, &models.Joke{}))
	})

	t.Run("EmptyString", func(t *testing.T) {
		app := setupApp(t, testhelpers.NewSeededTestDB(t))

		req := testhelpers.JSONRequest(t, "POST", "/jokebook/add", map[string]string{
			"category": "x",
			"setup":    "",
			"delivery": "d",
		})
		resp := do(t, app, req)
		testhelpers.AssertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("NonString", func(t *testing.T) {
		db := testhelpers.NewSeededTestDB(t)
		app := setupApp(t, db)

		req := testhelpers.JSONRequest(t, "POST", "/jokebook/add", map[string]interface{}{
			"category": "x",
			"setup":    42,
			"delivery": true,
		})
		resp := do(t, app, req)
		testhelpers.AssertStatus(t, resp, http.StatusBadRequest)

		var body errorBody
		testhelpers.ParseJSON(t, resp, &body)
		assert.Equal(t, "All parameters must be strings", body.Error)
		assert.EqualValues(t, 2, testhelpers.CountRows(t, db, &models.Category{}))
	})

	t.Run("FalsyNonStringIsMissing", func(t *testing.T) {
		app := setupApp(t, testhelpers.NewSeededTestDB(t))

		for _, body := range []map[string]interface{}{
			{"category": "x", "setup": 0, "delivery": "d"},
			{"category": "x", "setup": "s", "delivery": false},
		} {
			resp := do(t, app, testhelpers.JSONRequest(t, "POST", "/jokebook/add", body))
			testhelpers.AssertStatus(t, resp, http.StatusBadRequest)

			var errBody errorBody
			testhelpers.ParseJSON(t, resp, &errBody)
			assert.Equal(t, "Missing required parameters: category, setup, delivery", errBody.Error)
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		app := setupApp(t, testhelpers.NewSeededTestDB(t))

		req := httptest.NewRequest("POST", "/jokebook/add", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp := do(t, app, req)
		testhelpers.AssertStatus(t, resp, http.StatusBadRequest)

		var body errorBody
		testhelpers.ParseJSON(t, resp, &body)
		assert.True(t, strings.HasPrefix(body.Error, "Invalid request body"), body.Error)
	})
}
