package domain

import (
	"context"
	"time"
)

const MaxMessageLength = 4096

type Message struct {
	ID             int64     `json:"id"`
	EmployeeID     int64     `json:"employeeId"`
	ConversationID int64     `json:"conversationId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"datetimeCreated"`
}

type CreateMessageInput struct {
	EmployeeID     int64
	ConversationID int64
	Content        string
}

type MessageRepository interface {
	// Create inserts the message and bumps the conversation's update time
	// in one transaction.
	Create(ctx context.Context, input CreateMessageInput) (*Message, error)
	ListByConversation(ctx context.Context, conversationID int64) ([]Message, error)
	ListUnread(ctx context.Context, conversationID, employeeID int64) ([]Message, error)
	MarkRead(ctx context.Context, employeeID int64, messageIDs []int64) error
}
