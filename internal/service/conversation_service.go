package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aperturelabs/alms/internal/domain"
)

var ErrConversationNotFound = fmt.Errorf("%w: conversation not found", domain.ErrNotFound)

// UnknownEmployeesError lists usernames that do not belong to any employee.
type UnknownEmployeesError struct {
	Usernames []string
}

func (e *UnknownEmployeesError) Error() string {
	return "employees do not exist"
}

func (e *UnknownEmployeesError) Unwrap() error {
	return domain.ErrInvalidInput
}

type ConversationService struct {
	repo      domain.ConversationRepository
	employees domain.EmployeeRepository
	logger    *slog.Logger
}

func NewConversationService(repo domain.ConversationRepository, employees domain.EmployeeRepository, logger *slog.Logger) *ConversationService {
	return &ConversationService{
		repo:      repo,
		employees: employees,
		logger:    logger,
	}
}

// EnsureAccess returns ErrConversationNotFound when the employee is not a
// participant, so callers cannot discover conversations they are not in.
func (s *ConversationService) EnsureAccess(ctx context.Context, employeeID, conversationID int64) error {
	ok, err := s.repo.HasParticipant(ctx, conversationID, employeeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConversationNotFound
	}
	return nil
}

type CreateGroupInput struct {
	Name      string   `json:"name"`
	Employees []string `json:"employees"`
}

// CreateGroup adds the creator to the member list, drops duplicates and
// creates the conversation with all members in one transaction.
func (s *ConversationService) CreateGroup(ctx context.Context, creator *domain.Employee, input CreateGroupInput) (int64, error) {
	if input.Name == "" {
		return 0, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	usernames := dedupe(append(append([]string{}, input.Employees...), creator.Username))

	if err := s.ensureEmployeesExist(ctx, usernames); err != nil {
		return 0, err
	}

	name := input.Name
	id, err := s.repo.Create(ctx, domain.CreateConversationInput{Name: &name, Usernames: usernames})
	if err != nil {
		return 0, err
	}

	s.logger.Info("conversation created", "conversation_id", id, "participants", len(usernames))
	return id, nil
}

func (s *ConversationService) ensureEmployeesExist(ctx context.Context, usernames []string) error {
	existing, err := s.employees.ExistingUsernames(ctx, usernames)
	if err != nil {
		return err
	}

	known := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		known[u] = struct{}{}
	}

	var missing []string
	for _, u := range usernames {
		if _, ok := known[u]; !ok {
			missing = append(missing, u)
		}
	}

	if len(missing) > 0 {
		return &UnknownEmployeesError{Usernames: missing}
	}
	return nil
}

func (s *ConversationService) AddToGroup(ctx context.Context, caller *domain.Employee, conversationID int64, username string) error {
	if err := s.EnsureAccess(ctx, caller.ID, conversationID); err != nil {
		return err
	}

	conversation, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.IsGroup {
		return domain.ErrNotGroup
	}

	if err := s.repo.AddParticipant(ctx, conversationID, username); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: employee not found", domain.ErrNotFound)
		}
		return err
	}
	return nil
}

// GetOrCreateDirect returns the one-to-one conversation between caller and
// the other employee, creating it on first use.
func (s *ConversationService) GetOrCreateDirect(ctx context.Context, caller *domain.Employee, otherUsername string) (*domain.Conversation, error) {
	if otherUsername == caller.Username {
		return nil, fmt.Errorf("%w: cannot open a direct conversation with yourself", domain.ErrInvalidInput)
	}

	if err := s.ensureEmployeesExist(ctx, []string{otherUsername}); err != nil {
		var unknown *UnknownEmployeesError
		if errors.As(err, &unknown) {
			return nil, fmt.Errorf("%w: employee does not exist", domain.ErrNotFound)
		}
		return nil, err
	}

	conversation, err := s.repo.FindDirect(ctx, caller.Username, otherUsername)
	if errors.Is(err, domain.ErrNotFound) {
		usernames := []string{caller.Username, otherUsername}
		if _, err := s.repo.Create(ctx, domain.CreateConversationInput{Usernames: usernames}); err != nil {
			return nil, err
		}
		conversation, err = s.repo.FindDirect(ctx, caller.Username, otherUsername)
	}
	if err != nil {
		return nil, err
	}

	return s.withParticipants(ctx, conversation)
}

func (s *ConversationService) Get(ctx context.Context, caller *domain.Employee, conversationID int64) (*domain.Conversation, error) {
	if err := s.EnsureAccess(ctx, caller.ID, conversationID); err != nil {
		return nil, err
	}

	conversation, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	return s.withParticipants(ctx, conversation)
}

func (s *ConversationService) List(ctx context.Context, caller *domain.Employee, filter domain.ConversationFilter) ([]domain.Conversation, error) {
	conversations, err := s.repo.ListForEmployee(ctx, caller.ID, filter)
	if err != nil {
		return nil, err
	}
	return s.attachParticipants(ctx, conversations)
}

func (s *ConversationService) ListUnread(ctx context.Context, caller *domain.Employee) ([]domain.Conversation, error) {
	conversations, err := s.repo.ListWithUnread(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return s.attachParticipants(ctx, conversations)
}

func (s *ConversationService) ParticipantIDs(ctx context.Context, conversationID int64) ([]int64, error) {
	return s.repo.ParticipantIDs(ctx, conversationID)
}

func (s *ConversationService) withParticipants(ctx context.Context, c *domain.Conversation) (*domain.Conversation, error) {
	participants, err := s.repo.Participants(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Participants = participants
	return c, nil
}

func (s *ConversationService) attachParticipants(ctx context.Context, conversations []domain.Conversation) ([]domain.Conversation, error) {
	for i := range conversations {
		if _, err := s.withParticipants(ctx, &conversations[i]); err != nil {
			return nil, err
		}
	}
	return conversations, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
