// jokes.go
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

package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/robsiuuu/jokebook/internal/services"
	"github.com/robsiuuu/jokebook/internal/types"
	"gorm.io/gorm"
)

// JokeHandler handles the jokebook routes
type JokeHandler struct {
	DB *gorm.DB
}

// AddJokeRequest is the body of POST /jokebook/add
type AddJokeRequest struct {
	Category types.JSONString `json:"category" swaggertype:"string"`
	Setup    types.JSONString `json:"setup" swaggertype:"string"`
	Delivery types.JSONString `json:"delivery" swaggertype:"string"`
}

// Validate checks presence first, then type, like the front end expects
func (r AddJokeRequest) Validate() error {
	if r.Category.Missing() || r.Setup.Missing() || r.Delivery.Missing() {
		return &types.ValidationError{Message: "Missing required parameters: category, setup, delivery"}
	}
	if r.Category.NotString || r.Setup.NotString || r.Delivery.NotString {
		return &types.ValidationError{Message: "All parameters must be strings"}
	}
	return nil
}

// AddJokeResponse is the success body of POST /jokebook/add
type AddJokeResponse struct {
	Message string                `json:"message"`
	Jokes   []services.JokeResult `json:"jokes"`
}

// GetCategories handles GET /jokebook/categories
// @Summary List categories
// @Description List every joke category name in lexicographic order
// @Tags Jokebook
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /jokebook/categories [get]
func (h *JokeHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := services.ListCategories(c.UserContext(), h.DB)
	if err != nil {
		return respondError(c, err, "getCategories", "Failed to fetch categories")
	}

	return c.Status(fiber.StatusOK).JSON(categories)
}

// GetJokesByCategory handles GET /jokebook/categories/:category?limit=n
// @Summary Get jokes by category
// @Description Get the jokes of a category in insertion order, optionally limited
// @Tags Jokebook
// @Produce json
// @Param category path string true "Category name"
// @Param limit query int false "Maximum number of jokes"
// @Success 200 {array} services.JokeResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /jokebook/categories/{category} [get]
func (h *JokeHandler) GetJokesByCategory(c *fiber.Ctx) error {
	ctx := c.UserContext()
	category := pathParam(c, "category")
	limit := c.Query("limit")

	jokes, err := services.ListJokesByCategory(ctx, h.DB, category, limit)
	if err != nil {
		return respondError(c, err, "getJokesByCategory", "Failed to fetch jokes")
	}

	if len(jokes) == 0 {
		exists, err := services.CategoryExists(ctx, h.DB, category)
		if err != nil {
			return respondError(c, err, "getJokesByCategory", "Failed to fetch jokes")
		}
		if !exists {
			return respondError(c, &types.NotFoundError{Resource: "Category", Name: category}, "getJokesByCategory", "")
		}
	}

	return c.Status(fiber.StatusOK).JSON(jokes)
}

// GetRandomJoke handles GET /jokebook/random
// @Summary Get a random joke
// @Description Get one joke chosen uniformly at random across all categories
// @Tags Jokebook
// @Produce json
// @Success 200 {object} services.RandomJokeResult
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /jokebook/random [get]
func (h *JokeHandler) GetRandomJoke(c *fiber.Ctx) error {
	joke, err := services.GetRandomJoke(c.UserContext(), h.DB)
	if err != nil {
		return respondError(c, err, "getRandomJoke", "Failed to fetch random joke")
	}

	if joke == nil {
		return respondError(c, &types.NotFoundError{Message: "No jokes available in the database"}, "getRandomJoke", "")
	}

	return c.Status(fiber.StatusOK).JSON(joke)
}

// AddJoke handles POST /jokebook/add
// @Summary Add a joke
// @Description Add a joke, creating its category if needed, and return the category's jokes
// @Tags Jokebook
// @Accept json
// @Produce json
// @Param body body AddJokeRequest true "Joke to add"
// @Success 200 {object} AddJokeResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /jokebook/add [post]
func (h *JokeHandler) AddJoke(c *fiber.Ctx) error {
	var body AddJokeRequest
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, &types.ValidationError{
			Message: fmt.Sprintf("Invalid request body: %v", err),
		}, "addJoke", "")
	}

	if err := body.Validate(); err != nil {
		return respondError(c, err, "addJoke", "")
	}

	jokes, err := services.AddJoke(c.UserContext(), h.DB,
		body.Category.String(), body.Setup.String(), body.Delivery.String())
	if err != nil {
		return respondError(c, err, "addJoke", "Failed to add joke")
	}

	return c.Status(fiber.StatusOK).JSON(AddJokeResponse{
		Message: "Joke added successfully",
		Jokes:   jokes,
	})
}
