package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aperturelabs/alms/internal/domain"
)

var (
	errDB      = errors.New("connection refused")
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	testStart  = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

// memSessionRepo keeps sessions in memory with the same one-per-employee
// replacement rule as the Postgres repository.
type memSessionRepo struct {
	mu          sync.Mutex
	byToken     map[string]domain.Session
	nextID      int64
	replaceErr  error
	findErr     error
	updateErr   error
	updateCalls int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{byToken: make(map[string]domain.Session)}
}

func (r *memSessionRepo) Replace(_ context.Context, input domain.CreateSessionInput) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.replaceErr != nil {
		return nil, r.replaceErr
	}

	for token, s := range r.byToken {
		if s.EmployeeID == input.EmployeeID {
			delete(r.byToken, token)
		}
	}

	r.nextID++
	s := domain.Session{
		ID:         r.nextID,
		Token:      input.Token,
		EmployeeID: input.EmployeeID,
		CreatedAt:  input.CreatedAt,
		ExpiresAt:  input.ExpiresAt,
	}
	r.byToken[input.Token] = s
	return &s, nil
}

func (r *memSessionRepo) FindByToken(_ context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *memSessionRepo) UpdateExpiry(_ context.Context, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	if s, ok := r.byToken[token]; ok {
		s.ExpiresAt = expiresAt
		r.byToken[token] = s
	}
	return nil
}

func (r *memSessionRepo) CountActive(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, s := range r.byToken {
		if s.IsActiveAt(now) {
			n++
		}
	}
	return n, nil
}

func (r *memSessionRepo) DeleteByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byToken, token)
	return nil
}

func (r *memSessionRepo) employeeOf(token string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byToken[token]
	return s.EmployeeID, ok
}

type employeeRepoMock struct {
	findByIDFn           func(ctx context.Context, id int64) (*domain.Employee, error)
	findByUsernameFn     func(ctx context.Context, username string) (*domain.Employee, error)
	findBySessionTokenFn func(ctx context.Context, token string) (*domain.Employee, error)
	findAllFn            func(ctx context.Context) ([]domain.Employee, error)
	findActiveFn         func(ctx context.Context, now time.Time) ([]domain.Employee, error)
	existingUsernamesFn  func(ctx context.Context, usernames []string) ([]string, error)
	countFn              func(ctx context.Context) (int, error)
	createFn             func(ctx context.Context, input domain.CreateEmployeeInput) (*domain.Employee, error)
	setColorFn           func(ctx context.Context, id int64, color int) error
	setPasswordHashFn    func(ctx context.Context, id int64, hash string) error
}

func (m *employeeRepoMock) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *employeeRepoMock) FindByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, domain.ErrNotFound
}

func (m *employeeRepoMock) FindBySessionToken(ctx context.Context, token string) (*domain.Employee, error) {
	if m.findBySessionTokenFn != nil {
		return m.findBySessionTokenFn(ctx, token)
	}
	return nil, domain.ErrNotFound
}

func (m *employeeRepoMock) FindAll(ctx context.Context) ([]domain.Employee, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *employeeRepoMock) FindActive(ctx context.Context, now time.Time) ([]domain.Employee, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx, now)
	}
	return nil, nil
}

func (m *employeeRepoMock) ExistingUsernames(ctx context.Context, usernames []string) ([]string, error) {
	if m.existingUsernamesFn != nil {
		return m.existingUsernamesFn(ctx, usernames)
	}
	return usernames, nil
}

func (m *employeeRepoMock) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *employeeRepoMock) Create(ctx context.Context, input domain.CreateEmployeeInput) (*domain.Employee, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &domain.Employee{ID: 1, Username: input.Username, Name: input.Name, Surname: input.Surname, PasswordHash: input.PasswordHash}, nil
}

func (m *employeeRepoMock) SetColor(ctx context.Context, id int64, color int) error {
	if m.setColorFn != nil {
		return m.setColorFn(ctx, id, color)
	}
	return nil
}

func (m *employeeRepoMock) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	if m.setPasswordHashFn != nil {
		return m.setPasswordHashFn(ctx, id, hash)
	}
	return nil
}

type conversationRepoMock struct {
	createFn          func(ctx context.Context, input domain.CreateConversationInput) (int64, error)
	findByIDFn        func(ctx context.Context, id int64) (*domain.Conversation, error)
	findDirectFn      func(ctx context.Context, username1, username2 string) (*domain.Conversation, error)
	listForEmployeeFn func(ctx context.Context, employeeID int64, filter domain.ConversationFilter) ([]domain.Conversation, error)
	listWithUnreadFn  func(ctx context.Context, employeeID int64) ([]domain.Conversation, error)
	participantsFn    func(ctx context.Context, conversationID int64) ([]domain.ParticipantResponse, error)
	participantIDsFn  func(ctx context.Context, conversationID int64) ([]int64, error)
	addParticipantFn  func(ctx context.Context, conversationID int64, username string) error
	hasParticipantFn  func(ctx context.Context, conversationID, employeeID int64) (bool, error)
}

func (m *conversationRepoMock) Create(ctx context.Context, input domain.CreateConversationInput) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return 1, nil
}

func (m *conversationRepoMock) FindByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *conversationRepoMock) FindDirect(ctx context.Context, username1, username2 string) (*domain.Conversation, error) {
	if m.findDirectFn != nil {
		return m.findDirectFn(ctx, username1, username2)
	}
	return nil, domain.ErrNotFound
}

func (m *conversationRepoMock) ListForEmployee(ctx context.Context, employeeID int64, filter domain.ConversationFilter) ([]domain.Conversation, error) {
	if m.listForEmployeeFn != nil {
		return m.listForEmployeeFn(ctx, employeeID, filter)
	}
	return nil, nil
}

func (m *conversationRepoMock) ListWithUnread(ctx context.Context, employeeID int64) ([]domain.Conversation, error) {
	if m.listWithUnreadFn != nil {
		return m.listWithUnreadFn(ctx, employeeID)
	}
	return nil, nil
}

func (m *conversationRepoMock) Participants(ctx context.Context, conversationID int64) ([]domain.ParticipantResponse, error) {
	if m.participantsFn != nil {
		return m.participantsFn(ctx, conversationID)
	}
	return []domain.ParticipantResponse{}, nil
}

func (m *conversationRepoMock) ParticipantIDs(ctx context.Context, conversationID int64) ([]int64, error) {
	if m.participantIDsFn != nil {
		return m.participantIDsFn(ctx, conversationID)
	}
	return nil, nil
}

func (m *conversationRepoMock) AddParticipant(ctx context.Context, conversationID int64, username string) error {
	if m.addParticipantFn != nil {
		return m.addParticipantFn(ctx, conversationID, username)
	}
	return nil
}

func (m *conversationRepoMock) HasParticipant(ctx context.Context, conversationID, employeeID int64) (bool, error) {
	if m.hasParticipantFn != nil {
		return m.hasParticipantFn(ctx, conversationID, employeeID)
	}
	return true, nil
}

type messageRepoMock struct {
	createFn             func(ctx context.Context, input domain.CreateMessageInput) (*domain.Message, error)
	listByConversationFn func(ctx context.Context, conversationID int64) ([]domain.Message, error)
	listUnreadFn         func(ctx context.Context, conversationID, employeeID int64) ([]domain.Message, error)
	markReadFn           func(ctx context.Context, employeeID int64, messageIDs []int64) error
}

func (m *messageRepoMock) Create(ctx context.Context, input domain.CreateMessageInput) (*domain.Message, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &domain.Message{ID: 1, EmployeeID: input.EmployeeID, ConversationID: input.ConversationID, Content: input.Content}, nil
}

func (m *messageRepoMock) ListByConversation(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	if m.listByConversationFn != nil {
		return m.listByConversationFn(ctx, conversationID)
	}
	return nil, nil
}

func (m *messageRepoMock) ListUnread(ctx context.Context, conversationID, employeeID int64) ([]domain.Message, error) {
	if m.listUnreadFn != nil {
		return m.listUnreadFn(ctx, conversationID, employeeID)
	}
	return nil, nil
}

func (m *messageRepoMock) MarkRead(ctx context.Context, employeeID int64, messageIDs []int64) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, employeeID, messageIDs)
	}
	return nil
}

type sessionIssuerMock struct {
	issueTokenFn func(ctx context.Context, employeeID int64) (string, error)
	revokeFn     func(ctx context.Context, token string) error
}

func (m *sessionIssuerMock) IssueToken(ctx context.Context, employeeID int64) (string, error) {
	if m.issueTokenFn != nil {
		return m.issueTokenFn(ctx, employeeID)
	}
	return "token", nil
}

func (m *sessionIssuerMock) Revoke(ctx context.Context, token string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, token)
	}
	return nil
}

// prefixCipher "encrypts" by prefixing and fails on anything without the
// prefix, which is enough to drive MessageGuard.
type prefixCipher struct{}

const cipherPrefix = "enc:"

var errNotEncrypted = errors.New("not encrypted")

func (prefixCipher) Encrypt(plaintext string) (string, error) {
	return cipherPrefix + plaintext, nil
}

func (prefixCipher) Decrypt(stored string) (string, error) {
	if len(stored) < len(cipherPrefix) || stored[:len(cipherPrefix)] != cipherPrefix {
		return "", errNotEncrypted
	}
	return stored[len(cipherPrefix):], nil
}

type notifierMock struct {
	mu      sync.Mutex
	emitted []domain.Message
	toWhom  [][]int64
}

func (n *notifierMock) EmitMessage(recipients []int64, message domain.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emitted = append(n.emitted, message)
	n.toWhom = append(n.toWhom, recipients)
}
