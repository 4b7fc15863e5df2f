package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aperturelabs/alms/internal/domain"
)

const conversationColumns = `c.id, c.name, c.is_group, c.datetime_created, c.datetime_updated`

type PostgresConversationRepository struct {
	db *sql.DB
}

func NewPostgresConversationRepository(db *sql.DB) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db}
}

func scanConversation(row rowScanner, extra ...any) (*domain.Conversation, error) {
	var c domain.Conversation
	var name sql.NullString

	dest := append([]any{&c.ID, &name, &c.IsGroup, &c.CreatedAt, &c.UpdatedAt}, extra...)
	err := row.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	c.Name = fromNullString(name)
	return &c, nil
}

// Create inserts the conversation and all participants atomically. A
// conversation with more than two participants is a group.
func (r *PostgresConversationRepository) Create(ctx context.Context, input domain.CreateConversationInput) (int64, error) {
	var id int64

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO conversations (name, is_group) VALUES ($1, $2) RETURNING id`,
			toNullString(input.Name), len(input.Usernames) > 2,
		).Scan(&id)
		if err != nil {
			return err
		}

		for _, username := range input.Usernames {
			if err := insertParticipant(ctx, tx, id, username); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertParticipant(ctx context.Context, db execer, conversationID int64, username string) error {
	query := `
		INSERT INTO conversation_participants (id_conversation, id_employee)
		SELECT $1, id FROM employees WHERE username = $2
	`

	result, err := db.ExecContext(ctx, query, conversationID, username)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresConversationRepository) FindByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations c WHERE c.id = $1`
	return scanConversation(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresConversationRepository) FindDirect(ctx context.Context, username1, username2 string) (*domain.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations c
		JOIN conversation_participants cp1 ON c.id = cp1.id_conversation
		JOIN conversation_participants cp2 ON c.id = cp2.id_conversation
		JOIN employees e1 ON cp1.id_employee = e1.id
		JOIN employees e2 ON cp2.id_employee = e2.id
		WHERE c.is_group = false
		  AND e1.username = $1
		  AND e2.username = $2
		LIMIT 1
	`
	return scanConversation(r.db.QueryRowContext(ctx, query, username1, username2))
}

func (r *PostgresConversationRepository) ListForEmployee(ctx context.Context, employeeID int64, filter domain.ConversationFilter) ([]domain.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversation_participants cp
		JOIN conversations c ON cp.id_conversation = c.id
		WHERE cp.id_employee = $1
		  AND ($2::boolean IS NULL OR c.is_group = $2)
		ORDER BY c.datetime_updated DESC
	`

	var onlyGroup sql.NullBool
	if filter.OnlyGroup != nil {
		onlyGroup = sql.NullBool{Bool: *filter.OnlyGroup, Valid: true}
	}

	return r.queryConversations(ctx, false, query, employeeID, onlyGroup)
}

func (r *PostgresConversationRepository) ListWithUnread(ctx context.Context, employeeID int64) ([]domain.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `, COUNT(DISTINCT m.id) AS unread_messages
		FROM conversations c
		JOIN conversation_participants cp ON c.id = cp.id_conversation
		JOIN messages m ON c.id = m.id_conversation
		LEFT JOIN read_messages rm ON m.id = rm.id_message AND rm.id_employee = cp.id_employee
		WHERE cp.id_employee = $1 AND rm.id_message IS NULL
		GROUP BY c.id
		ORDER BY c.datetime_updated DESC
	`
	return r.queryConversations(ctx, true, query, employeeID)
}

func (r *PostgresConversationRepository) queryConversations(ctx context.Context, withUnread bool, query string, args ...any) ([]domain.Conversation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []domain.Conversation{}
	for rows.Next() {
		var c *domain.Conversation
		if withUnread {
			var unread int
			c, err = scanConversation(rows, &unread)
			if c != nil {
				c.UnreadMessages = &unread
			}
		} else {
			c, err = scanConversation(rows)
		}
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return conversations, nil
}

func (r *PostgresConversationRepository) Participants(ctx context.Context, conversationID int64) ([]domain.ParticipantResponse, error) {
	query := `
		SELECT e.id, e.username, e.name, e.surname
		FROM conversation_participants cp
		JOIN employees e ON cp.id_employee = e.id
		WHERE cp.id_conversation = $1
		ORDER BY e.username
	`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []domain.ParticipantResponse{}
	for rows.Next() {
		var p domain.ParticipantResponse
		if err := rows.Scan(&p.ID, &p.Username, &p.Name, &p.Surname); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *PostgresConversationRepository) ParticipantIDs(ctx context.Context, conversationID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_employee FROM conversation_participants WHERE id_conversation = $1`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *PostgresConversationRepository) AddParticipant(ctx context.Context, conversationID int64, username string) error {
	return insertParticipant(ctx, r.db, conversationID, username)
}

func (r *PostgresConversationRepository) HasParticipant(ctx context.Context, conversationID, employeeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM conversation_participants
			WHERE id_conversation = $1 AND id_employee = $2
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, conversationID, employeeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ domain.ConversationRepository = (*PostgresConversationRepository)(nil)
