package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "vendrefacile/internal/log"
	"vendrefacile/internal/repos"
	"vendrefacile/internal/services"
	"vendrefacile/internal/validate"
)

type AnnonceHandler struct {
	Listings *services.ListingService
}

// Search is the public browse endpoint; every filter is optional.
func (h *AnnonceHandler) Search(c *fiber.Ctx) error {
	params := services.SearchParams{
		City:     validate.Text(c.Query("city"), 100),
		Query:    validate.Text(c.Query("q"), 100),
		Status:   validate.Text(c.Query("status"), 20),
		Page:     validate.Page(c.Query("page")),
		PageSize: validate.Limit(c.Query("limit"), 20, 100),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, ok := validate.ID(raw)
		if !ok {
			return badRequest(c, "invalid category_id")
		}
		params.CategoryID = &id
	}
	if raw := c.Query("price_min"); raw != "" {
		v, ok := validate.Price(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "price_min", "value": raw})
			return badRequest(c, "invalid price_min")
		}
		params.PriceMin = &v
	}
	if raw := c.Query("price_max"); raw != "" {
		v, ok := validate.Price(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "price_max", "value": raw})
			return badRequest(c, "invalid price_max")
		}
		params.PriceMax = &v
	}

	rows, err := h.Listings.Search(params)
	if err != nil {
		return fail(c, "annonces.search", err)
	}
	return c.JSON(rows)
}

func (h *AnnonceHandler) Mine(c *fiber.Ctx) error {
	rows, err := h.Listings.Mine(callerID(c))
	if err != nil {
		return fail(c, "annonces.mine", err)
	}
	return c.JSON(rows)
}

func (h *AnnonceHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid annonce id")
	}
	row, err := h.Listings.Get(id)
	if err != nil {
		return fail(c, "annonces.detail", err)
	}
	return c.JSON(row)
}

type annonceBody struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	City        *string  `json:"city"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	CategoryID  *int64   `json:"category_id"`
	Status      *string  `json:"status"`
}

func (h *AnnonceHandler) Create(c *fiber.Ctx) error {
	var body annonceBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	title := ""
	if body.Title != nil {
		title = validate.Text(*body.Title, 255)
	}
	a, err := h.Listings.Create(callerID(c), repos.NewAnnonce{
		Title:       title,
		Description: body.Description,
		Price:       body.Price,
		City:        body.City,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		CategoryID:  body.CategoryID,
	})
	if err != nil {
		return fail(c, "annonces.create", err)
	}
	applog.Audit(c, "annonces.create", map[string]any{"annonce": a.ID})
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AnnonceHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid annonce id")
	}
	var body annonceBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	a, err := h.Listings.Update(id, callerID(c), repos.AnnonceUpdate{
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		City:        body.City,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		CategoryID:  body.CategoryID,
		Status:      body.Status,
	})
	if err != nil {
		return fail(c, "annonces.update", err)
	}
	applog.Audit(c, "annonces.update", map[string]any{"annonce": a.ID})
	return c.JSON(a)
}

func (h *AnnonceHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid annonce id")
	}
	if err := h.Listings.Delete(id, callerID(c)); err != nil {
		return fail(c, "annonces.delete", err)
	}
	applog.Audit(c, "annonces.delete", map[string]any{"annonce": id})
	return c.JSON(fiber.Map{"deleted": true})
}
