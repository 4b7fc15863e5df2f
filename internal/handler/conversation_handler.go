package handler

import (
	"github.com/gofiber/fiber/v2"

	_ "github.com/aperturelabs/alms/internal/docs"
	"github.com/aperturelabs/alms/internal/domain"
	"github.com/aperturelabs/alms/internal/response"
	"github.com/aperturelabs/alms/internal/service"
)

type ConversationHandler struct {
	conversations *service.ConversationService
}

func NewConversationHandler(conversations *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
	}
}

type AddToGroupInput struct {
	ConversationID int64  `json:"conversationId" example:"12"`
	Username       string `json:"username" example:"jdoe"`
}

type CreatedConversationResponse struct {
	ID int64 `json:"id"`
}

func (h *ConversationHandler) Register(app *fiber.App, requireAuth fiber.Handler) {
	app.Post("/create-group-conversation", requireAuth, h.CreateGroup)
	app.Post("/add-employee-to-group", requireAuth, h.AddToGroup)
	app.Get("/get-direct-conversation/:employeeUsername", requireAuth, h.GetDirect)
	app.Get("/get-conversation/:id", requireAuth, h.Get)
	app.Get("/get-all-conversations", requireAuth, h.ListAll)
	app.Get("/get-group-conversations", requireAuth, h.ListGroups)
	app.Get("/get-unread-conversations", requireAuth, h.ListUnread)
}

// CreateGroup godoc
//
//	@Summary		Create a group conversation
//	@Description	The caller is always a member. Duplicate usernames are ignored
//	@Tags			conversations
//	@Accept			json
//	@Produce		json
//	@Security		SessionToken
//	@Param			input	body		docs.CreateGroupInput	true	"Group name and members"
//	@Success		201		{object}	docs.CreatedConversation
//	@Failure		400		{object}	docs.ErrorInfo
//	@Router			/create-group-conversation [post]
func (h *ConversationHandler) CreateGroup(c *fiber.Ctx) error {
	var input service.CreateGroupInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadJSON(c)
	}

	id, err := h.conversations.CreateGroup(c.UserContext(), GetEmployeeFromContext(c), input)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, CreatedConversationResponse{ID: id})
}

// AddToGroup godoc
//
//	@Summary	Add an employee to a group conversation
//	@Tags		conversations
//	@Accept		json
//	@Produce	json
//	@Security	SessionToken
//	@Param		input	body		docs.AddToGroupInput	true	"Conversation and username"
//	@Success	200		{object}	docs.Conversation
//	@Failure	400		{object}	docs.ErrorInfo
//	@Failure	404		{object}	docs.ErrorInfo
//	@Router		/add-employee-to-group [post]
func (h *ConversationHandler) AddToGroup(c *fiber.Ctx) error {
	var input AddToGroupInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadJSON(c)
	}

	caller := GetEmployeeFromContext(c)
	if err := h.conversations.AddToGroup(c.UserContext(), caller, input.ConversationID, input.Username); err != nil {
		return HandleDomainError(c, err)
	}

	conversation, err := h.conversations.Get(c.UserContext(), caller, input.ConversationID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.OK(c, conversation)
}

// GetDirect godoc
//
//	@Summary	Get or create the direct conversation with an employee
//	@Tags		conversations
//	@Produce	json
//	@Security	SessionToken
//	@Param		employeeUsername	path		string	true	"Other employee"
//	@Success	200					{object}	docs.Conversation
//	@Failure	404					{object}	docs.ErrorInfo
//	@Router		/get-direct-conversation/{employeeUsername} [get]
func (h *ConversationHandler) GetDirect(c *fiber.Ctx) error {
	conversation, err := h.conversations.GetOrCreateDirect(c.UserContext(), GetEmployeeFromContext(c), c.Params("employeeUsername"))
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, conversation)
}

// Get godoc
//
//	@Summary	Get a conversation with its participants
//	@Tags		conversations
//	@Produce	json
//	@Security	SessionToken
//	@Param		id	path		int	true	"Conversation ID"
//	@Success	200	{object}	docs.Conversation
//	@Failure	404	{object}	docs.ErrorInfo
//	@Router		/get-conversation/{id} [get]
func (h *ConversationHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return HandleDomainError(c, err)
	}

	conversation, err := h.conversations.Get(c.UserContext(), GetEmployeeFromContext(c), id)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, conversation)
}

// ListAll godoc
//
//	@Summary	List the caller's conversations, most recently updated first
//	@Tags		conversations
//	@Produce	json
//	@Security	SessionToken
//	@Success	200	{array}	docs.Conversation
//	@Router		/get-all-conversations [get]
func (h *ConversationHandler) ListAll(c *fiber.Ctx) error {
	return h.list(c, domain.ConversationFilter{})
}

// ListGroups godoc
//
//	@Summary	List the caller's group conversations
//	@Tags		conversations
//	@Produce	json
//	@Security	SessionToken
//	@Success	200	{array}	docs.Conversation
//	@Router		/get-group-conversations [get]
func (h *ConversationHandler) ListGroups(c *fiber.Ctx) error {
	onlyGroups := true
	return h.list(c, domain.ConversationFilter{OnlyGroup: &onlyGroups})
}

func (h *ConversationHandler) list(c *fiber.Ctx, filter domain.ConversationFilter) error {
	conversations, err := h.conversations.List(c.UserContext(), GetEmployeeFromContext(c), filter)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, nonNil(conversations))
}

// ListUnread godoc
//
//	@Summary	List conversations with unread messages and their counts
//	@Tags		conversations
//	@Produce	json
//	@Security	SessionToken
//	@Success	200	{array}	docs.Conversation
//	@Router		/get-unread-conversations [get]
func (h *ConversationHandler) ListUnread(c *fiber.Ctx) error {
	conversations, err := h.conversations.ListUnread(c.UserContext(), GetEmployeeFromContext(c))
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, nonNil(conversations))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
