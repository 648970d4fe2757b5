package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "vendrefacile/internal/log"
	"vendrefacile/internal/services"
	"vendrefacile/internal/validate"
)

type FavoriteHandler struct {
	Favs *services.FavoriteService
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	rows, err := h.Favs.List(callerID(c))
	if err != nil {
		return fail(c, "favorites.list", err)
	}
	return c.JSON(rows)
}

func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	annonceID, ok := validate.ID(c.Params("annonce_id"))
	if !ok {
		return badRequest(c, "invalid annonce id")
	}
	f, err := h.Favs.Add(callerID(c), annonceID)
	if err != nil {
		return fail(c, "favorites.add", err)
	}
	applog.Audit(c, "favorites.add", map[string]any{"annonce": annonceID})
	return c.Status(fiber.StatusCreated).JSON(f)
}

func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	annonceID, ok := validate.ID(c.Params("annonce_id"))
	if !ok {
		return badRequest(c, "invalid annonce id")
	}
	if err := h.Favs.Remove(callerID(c), annonceID); err != nil {
		return fail(c, "favorites.remove", err)
	}
	applog.Audit(c, "favorites.remove", map[string]any{"annonce": annonceID})
	return c.JSON(fiber.Map{"deleted": true})
}
