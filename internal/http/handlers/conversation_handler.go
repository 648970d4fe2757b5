package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "vendrefacile/internal/log"
	"vendrefacile/internal/services"
	"vendrefacile/internal/validate"
)

type ConversationHandler struct {
	Convs *services.ConversationService
}

// Open creates the thread for (annonce, caller) or returns the existing
// one. 201 marks a fresh thread, 200 the canonical older row.
func (h *ConversationHandler) Open(c *fiber.Ctx) error {
	var body struct {
		AnnonceID int64 `json:"annonce_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.AnnonceID <= 0 {
		return badRequest(c, "annonce_id is required")
	}
	res, err := h.Convs.Open(body.AnnonceID, callerID(c))
	if err != nil {
		return fail(c, "conversations.open", err)
	}
	status := fiber.StatusOK
	if res.Created {
		status = fiber.StatusCreated
		applog.Audit(c, "conversations.create", map[string]any{"conversation": res.Conversation.ID})
	}
	return c.Status(status).JSON(res.Conversation)
}

func (h *ConversationHandler) List(c *fiber.Ctx) error {
	rows, err := h.Convs.ListForUser(callerID(c))
	if err != nil {
		return fail(c, "conversations.list", err)
	}
	return c.JSON(rows)
}

func (h *ConversationHandler) Messages(c *fiber.Ctx) error {
	convID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid conversation id")
	}
	msgs, err := h.Convs.Messages(convID, callerID(c))
	if err != nil {
		return fail(c, "messages.list", err)
	}
	return c.JSON(msgs)
}

func (h *ConversationHandler) Send(c *fiber.Ctx) error {
	convID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid conversation id")
	}
	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	m, err := h.Convs.Send(convID, callerID(c), body.Content)
	if err != nil {
		return fail(c, "messages.send", err)
	}
	applog.Audit(c, "messages.send", map[string]any{"conversation": convID})
	return c.Status(fiber.StatusCreated).JSON(m)
}
