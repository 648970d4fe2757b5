package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "vendrefacile/internal/log"
	"vendrefacile/internal/services"
	"vendrefacile/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body struct {
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Username string  `json:"username"`
		Phone    *string `json:"phone"`
		City     *string `json:"city"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		applog.Security(c, "auth.register.fail", map[string]any{"reason": "bad_email"})
		return badRequest(c, "invalid email")
	}
	if !validate.Password(body.Password) {
		return badRequest(c, "password must be 8 to 72 characters")
	}
	username, ok := validate.Username(body.Username)
	if !ok {
		return badRequest(c, "invalid username")
	}
	if body.Phone != nil {
		p, ok := validate.Phone(*body.Phone)
		if !ok {
			return badRequest(c, "invalid phone")
		}
		body.Phone = &p
	}

	u, token, err := h.Auth.Register(services.Registration{
		Email:    email,
		Password: body.Password,
		Username: username,
		Phone:    body.Phone,
		City:     body.City,
	})
	if err != nil {
		return fail(c, "auth.register", err)
	}
	applog.Audit(c, "auth.register.success", map[string]any{"user": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u, "token": token})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	u, token, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": body.Email})
		return fail(c, "auth.login", err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"user": u.ID})
	return c.JSON(fiber.Map{"user": u, "token": token})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	u, err := h.Auth.Profile(callerID(c))
	if err != nil {
		return fail(c, "profile.get", err)
	}
	return c.JSON(u)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var body struct {
		Username *string `json:"username"`
		Phone    *string `json:"phone"`
		City     *string `json:"city"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Username != nil {
		name, ok := validate.Username(*body.Username)
		if !ok {
			return badRequest(c, "invalid username")
		}
		body.Username = &name
	}
	if body.Phone != nil {
		p, ok := validate.Phone(*body.Phone)
		if !ok {
			return badRequest(c, "invalid phone")
		}
		body.Phone = &p
	}
	u, err := h.Auth.UpdateProfile(callerID(c), body.Username, body.Phone, body.City)
	if err != nil {
		return fail(c, "profile.update", err)
	}
	applog.Audit(c, "profile.update", nil)
	return c.JSON(u)
}
