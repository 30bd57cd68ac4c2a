package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterJokebookRoutes mounts the jokebook API on r
func RegisterJokebookRoutes(r fiber.Router, h *JokeHandler) {
	r.Get("/categories", h.GetCategories)
	r.Get("/categories/:category", h.GetJokesByCategory)
	r.Get("/random", h.GetRandomJoke)
	r.Post("/add", h.AddJoke)
}
