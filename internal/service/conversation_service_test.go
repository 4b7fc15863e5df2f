package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/aperturelabs/alms/internal/domain"
)

var testCaller = &domain.Employee{ID: 1, Username: "alice"}

func knownUsernames(known ...string) func(context.Context, []string) ([]string, error) {
	set := make(map[string]bool, len(known))
	for _, k := range known {
		set[k] = true
	}
	return func(_ context.Context, usernames []string) ([]string, error) {
		var out []string
		for _, u := range usernames {
			if set[u] {
				out = append(out, u)
			}
		}
		return out, nil
	}
}

func TestCreateGroup(t *testing.T) {
	var created domain.CreateConversationInput
	repo := &conversationRepoMock{
		createFn: func(_ context.Context, input domain.CreateConversationInput) (int64, error) {
			created = input
			return 11, nil
		},
	}
	employees := &employeeRepoMock{existingUsernamesFn: knownUsernames("alice", "bob", "carol")}
	svc := NewConversationService(repo, employees, testLogger)

	id, err := svc.CreateGroup(context.Background(), testCaller, CreateGroupInput{
		Name:      "team",
		Employees: []string{"bob", "carol", "bob"},
	})
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	if id != 11 {
		t.Errorf("id = %d, want 11", id)
	}

	want := []string{"bob", "carol", "alice"}
	if !reflect.DeepEqual(created.Usernames, want) {
		t.Errorf("usernames = %v, want %v", created.Usernames, want)
	}
	if created.Name == nil || *created.Name != "team" {
		t.Errorf("name = %v, want team", created.Name)
	}
}

func TestCreateGroupValidation(t *testing.T) {
	employees := &employeeRepoMock{existingUsernamesFn: knownUsernames("alice", "bob")}
	repo := &conversationRepoMock{
		createFn: func(context.Context, domain.CreateConversationInput) (int64, error) {
			t.Fatal("conversation must not be created")
			return 0, nil
		},
	}
	svc := NewConversationService(repo, employees, testLogger)
	ctx := context.Background()

	if _, err := svc.CreateGroup(ctx, testCaller, CreateGroupInput{Employees: []string{"bob"}}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing name error = %v, want %v", err, domain.ErrInvalidInput)
	}

	_, err := svc.CreateGroup(ctx, testCaller, CreateGroupInput{Name: "team", Employees: []string{"bob", "ghost", "phantom"}})

	var unknown *UnknownEmployeesError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want UnknownEmployeesError", err)
	}
	if !reflect.DeepEqual(unknown.Usernames, []string{"ghost", "phantom"}) {
		t.Errorf("unknown = %v", unknown.Usernames)
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Error("unknown employees must wrap ErrInvalidInput")
	}
}

func TestEnsureAccess(t *testing.T) {
	repo := &conversationRepoMock{
		hasParticipantFn: func(_ context.Context, conversationID, employeeID int64) (bool, error) {
			if conversationID == 99 {
				return false, errDB
			}
			return conversationID == 1 && employeeID == testCaller.ID, nil
		},
	}
	svc := NewConversationService(repo, &employeeRepoMock{}, testLogger)
	ctx := context.Background()

	if err := svc.EnsureAccess(ctx, testCaller.ID, 1); err != nil {
		t.Errorf("participant denied: %v", err)
	}
	if err := svc.EnsureAccess(ctx, testCaller.ID, 2); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("non-participant error = %v, want %v", err, ErrConversationNotFound)
	}
	if err := svc.EnsureAccess(ctx, testCaller.ID, 99); !errors.Is(err, errDB) {
		t.Errorf("repository error = %v, want %v", err, errDB)
	}
}

func TestAddToGroup(t *testing.T) {
	conversations := map[int64]*domain.Conversation{
		1: {ID: 1, IsGroup: true},
		2: {ID: 2, IsGroup: false},
	}

	var added []string
	repo := &conversationRepoMock{
		findByIDFn: func(_ context.Context, id int64) (*domain.Conversation, error) {
			if c, ok := conversations[id]; ok {
				return c, nil
			}
			return nil, domain.ErrNotFound
		},
		addParticipantFn: func(_ context.Context, _ int64, username string) error {
			if username == "ghost" {
				return domain.ErrNotFound
			}
			added = append(added, username)
			return nil
		},
	}
	svc := NewConversationService(repo, &employeeRepoMock{}, testLogger)
	ctx := context.Background()

	tests := []struct {
		name           string
		conversationID int64
		username       string
		wantErr        error
	}{
		{name: "group", conversationID: 1, username: "bob"},
		{name: "direct conversation", conversationID: 2, username: "bob", wantErr: domain.ErrNotGroup},
		{name: "unknown employee", conversationID: 1, username: "ghost", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AddToGroup(ctx, testCaller, tt.conversationID, tt.username)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("AddToGroup() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddToGroup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if !reflect.DeepEqual(added, []string{"bob"}) {
		t.Errorf("added = %v, want [bob]", added)
	}
}

func TestGetOrCreateDirect(t *testing.T) {
	t.Run("existing conversation", func(t *testing.T) {
		repo := &conversationRepoMock{
			findDirectFn: func(context.Context, string, string) (*domain.Conversation, error) {
				return &domain.Conversation{ID: 5}, nil
			},
			createFn: func(context.Context, domain.CreateConversationInput) (int64, error) {
				t.Fatal("existing conversation must not be recreated")
				return 0, nil
			},
		}
		svc := NewConversationService(repo, &employeeRepoMock{}, testLogger)

		c, err := svc.GetOrCreateDirect(context.Background(), testCaller, "bob")
		if err != nil {
			t.Fatalf("GetOrCreateDirect() error = %v", err)
		}
		if c.ID != 5 {
			t.Errorf("id = %d, want 5", c.ID)
		}
	})

	t.Run("created on first use", func(t *testing.T) {
		var stored *domain.Conversation
		repo := &conversationRepoMock{
			findDirectFn: func(context.Context, string, string) (*domain.Conversation, error) {
				if stored == nil {
					return nil, domain.ErrNotFound
				}
				return stored, nil
			},
			createFn: func(_ context.Context, input domain.CreateConversationInput) (int64, error) {
				if input.Name != nil {
					t.Error("direct conversations have no name")
				}
				stored = &domain.Conversation{ID: 8}
				return 8, nil
			},
			participantsFn: func(context.Context, int64) ([]domain.ParticipantResponse, error) {
				return []domain.ParticipantResponse{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}, nil
			},
		}
		svc := NewConversationService(repo, &employeeRepoMock{}, testLogger)

		c, err := svc.GetOrCreateDirect(context.Background(), testCaller, "bob")
		if err != nil {
			t.Fatalf("GetOrCreateDirect() error = %v", err)
		}
		if c.ID != 8 || len(c.Participants) != 2 {
			t.Errorf("conversation = %+v", c)
		}
	})

	t.Run("unknown employee", func(t *testing.T) {
		employees := &employeeRepoMock{existingUsernamesFn: knownUsernames("alice")}
		svc := NewConversationService(&conversationRepoMock{}, employees, testLogger)

		_, err := svc.GetOrCreateDirect(context.Background(), testCaller, "ghost")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want %v", err, domain.ErrNotFound)
		}
	})

	t.Run("self", func(t *testing.T) {
		svc := NewConversationService(&conversationRepoMock{}, &employeeRepoMock{}, testLogger)

		_, err := svc.GetOrCreateDirect(context.Background(), testCaller, testCaller.Username)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("error = %v, want %v", err, domain.ErrInvalidInput)
		}
	})
}

func TestListPassesFilter(t *testing.T) {
	onlyGroups := true
	var gotFilter domain.ConversationFilter
	repo := &conversationRepoMock{
		listForEmployeeFn: func(_ context.Context, _ int64, filter domain.ConversationFilter) ([]domain.Conversation, error) {
			gotFilter = filter
			return []domain.Conversation{{ID: 1}, {ID: 2}}, nil
		},
		participantsFn: func(_ context.Context, id int64) ([]domain.ParticipantResponse, error) {
			return []domain.ParticipantResponse{{ID: id}}, nil
		},
	}
	svc := NewConversationService(repo, &employeeRepoMock{}, testLogger)

	list, err := svc.List(context.Background(), testCaller, domain.ConversationFilter{OnlyGroup: &onlyGroups})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotFilter.OnlyGroup == nil || !*gotFilter.OnlyGroup {
		t.Error("group filter not passed through")
	}
	for _, c := range list {
		if len(c.Participants) != 1 || c.Participants[0].ID != c.ID {
			t.Errorf("conversation %d participants = %+v", c.ID, c.Participants)
		}
	}
}
