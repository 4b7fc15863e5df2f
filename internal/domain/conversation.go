package domain

import (
	"context"
	"time"
)

type Conversation struct {
	ID             int64                 `json:"id"`
	Name           *string               `json:"name"`
	IsGroup        bool                  `json:"isGroup"`
	CreatedAt      time.Time             `json:"datetimeCreated"`
	UpdatedAt      time.Time             `json:"datetimeUpdated"`
	UnreadMessages *int                  `json:"unreadMessages,omitempty"`
	Participants   []ParticipantResponse `json:"participants,omitempty"`
}

type ParticipantResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

type CreateConversationInput struct {
	Name      *string
	Usernames []string
}

// ConversationFilter narrows ListForEmployee; nil OnlyGroup lists everything.
type ConversationFilter struct {
	OnlyGroup *bool
}

type ConversationRepository interface {
	Create(ctx context.Context, input CreateConversationInput) (int64, error)
	FindByID(ctx context.Context, id int64) (*Conversation, error)
	FindDirect(ctx context.Context, username1, username2 string) (*Conversation, error)
	ListForEmployee(ctx context.Context, employeeID int64, filter ConversationFilter) ([]Conversation, error)
	ListWithUnread(ctx context.Context, employeeID int64) ([]Conversation, error)
	Participants(ctx context.Context, conversationID int64) ([]ParticipantResponse, error)
	ParticipantIDs(ctx context.Context, conversationID int64) ([]int64, error)
	AddParticipant(ctx context.Context, conversationID int64, username string) error
	HasParticipant(ctx context.Context, conversationID, employeeID int64) (bool, error)
}
