package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/aperturelabs/alms/internal/domain"
)

type messageFixture struct {
	messages      *messageRepoMock
	conversations *conversationRepoMock
	notifier      *notifierMock
	svc           *MessageService
}

func newMessageFixture() *messageFixture {
	f := &messageFixture{
		messages: &messageRepoMock{},
		conversations: &conversationRepoMock{
			hasParticipantFn: func(_ context.Context, conversationID, _ int64) (bool, error) {
				return conversationID == 1, nil
			},
			participantIDsFn: func(context.Context, int64) ([]int64, error) {
				return []int64{1, 2}, nil
			},
		},
		notifier: &notifierMock{},
	}

	conversations := NewConversationService(f.conversations, &employeeRepoMock{}, testLogger)
	guard := NewMessageGuard(prefixCipher{}, nil, testLogger)
	f.svc = NewMessageService(f.messages, conversations, guard, f.notifier, nil, testLogger)
	return f
}

func TestSendMessage(t *testing.T) {
	f := newMessageFixture()

	var stored domain.CreateMessageInput
	f.messages.createFn = func(_ context.Context, input domain.CreateMessageInput) (*domain.Message, error) {
		stored = input
		return &domain.Message{ID: 9, EmployeeID: input.EmployeeID, ConversationID: input.ConversationID, Content: input.Content}, nil
	}

	msg, err := f.svc.Send(context.Background(), testCaller, SendMessageInput{ConversationID: 1, Content: "hi bob"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if stored.Content != cipherPrefix+"hi bob" {
		t.Errorf("stored content = %q, want encrypted form", stored.Content)
	}
	if msg.Content != "hi bob" {
		t.Errorf("returned content = %q, want plaintext", msg.Content)
	}
	if len(f.notifier.emitted) != 1 {
		t.Fatalf("events emitted = %d, want 1", len(f.notifier.emitted))
	}
	if f.notifier.emitted[0].Content != "hi bob" {
		t.Errorf("event content = %q", f.notifier.emitted[0].Content)
	}
	if !reflect.DeepEqual(f.notifier.toWhom[0], []int64{1, 2}) {
		t.Errorf("recipients = %v, want [1 2]", f.notifier.toWhom[0])
	}
}

func TestSendMessageRejections(t *testing.T) {
	tests := []struct {
		name           string
		conversationID int64
		content        string
		wantErr        error
	}{
		{name: "empty content", conversationID: 1, content: "", wantErr: ErrInvalidMessageLength},
		{name: "too long", conversationID: 1, content: strings.Repeat("x", domain.MaxMessageLength+1), wantErr: ErrInvalidMessageLength},
		{name: "not a participant", conversationID: 2, content: "hello", wantErr: ErrConversationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMessageFixture()
			f.messages.createFn = func(context.Context, domain.CreateMessageInput) (*domain.Message, error) {
				t.Fatal("message must not be stored")
				return nil, nil
			}

			_, err := f.svc.Send(context.Background(), testCaller, SendMessageInput{ConversationID: tt.conversationID, Content: tt.content})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Send() error = %v, want %v", err, tt.wantErr)
			}
			if len(f.notifier.emitted) != 0 {
				t.Error("event emitted for a rejected message")
			}
		})
	}
}

func TestSendMessageMaxLengthCountsRunes(t *testing.T) {
	f := newMessageFixture()

	content := strings.Repeat("ž", domain.MaxMessageLength)
	if _, err := f.svc.Send(context.Background(), testCaller, SendMessageInput{ConversationID: 1, Content: content}); err != nil {
		t.Errorf("Send() error = %v", err)
	}
}

func TestSendMessageStoreFailure(t *testing.T) {
	f := newMessageFixture()
	f.messages.createFn = func(context.Context, domain.CreateMessageInput) (*domain.Message, error) {
		return nil, errDB
	}

	if _, err := f.svc.Send(context.Background(), testCaller, SendMessageInput{ConversationID: 1, Content: "hi"}); !errors.Is(err, errDB) {
		t.Errorf("Send() error = %v, want %v", err, errDB)
	}
	if len(f.notifier.emitted) != 0 {
		t.Error("event emitted for a failed insert")
	}
}

func TestListMessagesRevealsAndMarksRead(t *testing.T) {
	f := newMessageFixture()

	f.messages.listByConversationFn = func(context.Context, int64) ([]domain.Message, error) {
		return []domain.Message{
			{ID: 1, Content: cipherPrefix + "first"},
			{ID: 2, Content: "legacy plain row"},
			{ID: 3, Content: cipherPrefix + "third"},
		}, nil
	}

	var markedBy int64
	var markedIDs []int64
	f.messages.markReadFn = func(_ context.Context, employeeID int64, ids []int64) error {
		markedBy = employeeID
		markedIDs = ids
		return nil
	}

	messages, err := f.svc.List(context.Background(), testCaller, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	var contents []string
	for _, m := range messages {
		contents = append(contents, m.Content)
	}
	if want := []string{"first", "legacy plain row", "third"}; !reflect.DeepEqual(contents, want) {
		t.Errorf("contents = %v, want %v", contents, want)
	}
	if markedBy != testCaller.ID || !reflect.DeepEqual(markedIDs, []int64{1, 2, 3}) {
		t.Errorf("marked %v by %d", markedIDs, markedBy)
	}
}

func TestListUnreadEmpty(t *testing.T) {
	f := newMessageFixture()
	f.messages.markReadFn = func(context.Context, int64, []int64) error {
		t.Fatal("nothing to mark")
		return nil
	}

	messages, err := f.svc.ListUnread(context.Background(), testCaller, 1)
	if err != nil {
		t.Fatalf("ListUnread() error = %v", err)
	}
	if messages == nil || len(messages) != 0 {
		t.Errorf("ListUnread() = %#v, want empty non-nil slice", messages)
	}
}

func TestListMessagesRequiresParticipation(t *testing.T) {
	f := newMessageFixture()

	if _, err := f.svc.List(context.Background(), testCaller, 2); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("List() error = %v, want %v", err, ErrConversationNotFound)
	}
	if _, err := f.svc.ListUnread(context.Background(), testCaller, 2); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("ListUnread() error = %v, want %v", err, ErrConversationNotFound)
	}
}
