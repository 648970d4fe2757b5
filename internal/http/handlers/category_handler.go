package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vendrefacile/internal/repos"
)

type CategoryHandler struct {
	Categories *repos.CategoryRepo
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Categories.List()
	if err != nil {
		return fail(c, "categories.list", err)
	}
	return c.JSON(cats)
}
