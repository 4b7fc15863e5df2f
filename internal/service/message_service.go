package service

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/aperturelabs/alms/internal/domain"
	"github.com/aperturelabs/alms/internal/metrics"
)

var ErrInvalidMessageLength = fmt.Errorf("%w: message must be between 1 and %d characters long", domain.ErrInvalidInput, domain.MaxMessageLength)

// MessageNotifier pushes a freshly sent message to the listed employees.
type MessageNotifier interface {
	EmitMessage(recipients []int64, message domain.Message)
}

type MessageService struct {
	repo          domain.MessageRepository
	conversations *ConversationService
	guard         *MessageGuard
	notifier      MessageNotifier
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

func NewMessageService(
	repo domain.MessageRepository,
	conversations *ConversationService,
	guard *MessageGuard,
	notifier MessageNotifier,
	m *metrics.Metrics,
	logger *slog.Logger,
) *MessageService {
	return &MessageService{
		repo:          repo,
		conversations: conversations,
		guard:         guard,
		notifier:      notifier,
		metrics:       m,
		logger:        logger,
	}
}

type SendMessageInput struct {
	ConversationID int64  `json:"conversationId"`
	Content        string `json:"content"`
}

// Send stores the message encrypted and returns it with plaintext content.
func (s *MessageService) Send(ctx context.Context, sender *domain.Employee, input SendMessageInput) (*domain.Message, error) {
	n := utf8.RuneCountInString(input.Content)
	if n < 1 || n > domain.MaxMessageLength {
		return nil, ErrInvalidMessageLength
	}

	if err := s.conversations.EnsureAccess(ctx, sender.ID, input.ConversationID); err != nil {
		return nil, err
	}

	protected, err := s.guard.Protect(input.Content)
	if err != nil {
		return nil, fmt.Errorf("encrypt message: %w", err)
	}

	message, err := s.repo.Create(ctx, domain.CreateMessageInput{
		EmployeeID:     sender.ID,
		ConversationID: input.ConversationID,
		Content:        protected,
	})
	if err != nil {
		return nil, err
	}

	message.Content = input.Content
	s.metrics.MessageSent()
	s.notify(ctx, *message)

	return message, nil
}

func (s *MessageService) notify(ctx context.Context, message domain.Message) {
	if s.notifier == nil {
		return
	}

	recipients, err := s.conversations.ParticipantIDs(ctx, message.ConversationID)
	if err != nil {
		s.logger.Warn("failed to resolve message recipients",
			"conversation_id", message.ConversationID,
			"error", err,
		)
		return
	}

	s.notifier.EmitMessage(recipients, message)
}

// List returns every message of the conversation and marks them read for
// the caller.
func (s *MessageService) List(ctx context.Context, caller *domain.Employee, conversationID int64) ([]domain.Message, error) {
	if err := s.conversations.EnsureAccess(ctx, caller.ID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	return s.readAndMark(ctx, caller, messages)
}

// ListUnread returns the messages the caller has not read yet and marks
// them read.
func (s *MessageService) ListUnread(ctx context.Context, caller *domain.Employee, conversationID int64) ([]domain.Message, error) {
	if err := s.conversations.EnsureAccess(ctx, caller.ID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListUnread(ctx, conversationID, caller.ID)
	if err != nil {
		return nil, err
	}

	return s.readAndMark(ctx, caller, messages)
}

func (s *MessageService) readAndMark(ctx context.Context, caller *domain.Employee, messages []domain.Message) ([]domain.Message, error) {
	if len(messages) == 0 {
		return []domain.Message{}, nil
	}

	ids := make([]int64, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
	}

	if err := s.repo.MarkRead(ctx, caller.ID, ids); err != nil {
		return nil, err
	}

	return s.guard.RevealMessages(messages), nil
}
