package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aperturelabs/alms/internal/response"
	"github.com/aperturelabs/alms/internal/service"
)

type MessageHandler struct {
	messages *service.MessageService
}

func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messages: messages,
	}
}

func (h *MessageHandler) Register(app *fiber.App, requireAuth fiber.Handler) {
	app.Post("/send-message", requireAuth, h.Send)
	app.Get("/get-messages/:conversationId", requireAuth, h.List)
	app.Get("/get-unread-messages/:conversationId", requireAuth, h.ListUnread)
}

// Send godoc
//
//	@Summary		Send a message
//	@Description	Content must be 1 to 4096 characters. It is stored encrypted
//	@Tags			messages
//	@Accept			json
//	@Produce		json
//	@Security		SessionToken
//	@Param			input	body		docs.SendMessageInput	true	"Message"
//	@Success		201		{object}	docs.Message
//	@Failure		400		{object}	docs.ErrorInfo
//	@Failure		404		{object}	docs.ErrorInfo
//	@Router			/send-message [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var input service.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadJSON(c)
	}

	message, err := h.messages.Send(c.UserContext(), GetEmployeeFromContext(c), input)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, message)
}

// List godoc
//
//	@Summary	List every message of a conversation and mark them read
//	@Tags		messages
//	@Produce	json
//	@Security	SessionToken
//	@Param		conversationId	path		int	true	"Conversation ID"
//	@Success	200				{array}		docs.Message
//	@Failure	404				{object}	docs.ErrorInfo
//	@Router		/get-messages/{conversationId} [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	id, err := paramID(c, "conversationId")
	if err != nil {
		return HandleDomainError(c, err)
	}

	messages, err := h.messages.List(c.UserContext(), GetEmployeeFromContext(c), id)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, messages)
}

// ListUnread godoc
//
//	@Summary	List unread messages of a conversation and mark them read
//	@Tags		messages
//	@Produce	json
//	@Security	SessionToken
//	@Param		conversationId	path		int	true	"Conversation ID"
//	@Success	200				{array}		docs.Message
//	@Failure	404				{object}	docs.ErrorInfo
//	@Router		/get-unread-messages/{conversationId} [get]
func (h *MessageHandler) ListUnread(c *fiber.Ctx) error {
	id, err := paramID(c, "conversationId")
	if err != nil {
		return HandleDomainError(c, err)
	}

	messages, err := h.messages.ListUnread(c.UserContext(), GetEmployeeFromContext(c), id)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, messages)
}
