package repository

import (
	"context"
	"database/sql"

	"github.com/aperturelabs/alms/internal/domain"
)

type PostgresMessageRepository struct {
	db *sql.DB
}

func NewPostgresMessageRepository(db *sql.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, input domain.CreateMessageInput) (*domain.Message, error) {
	var message domain.Message

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO messages (id_employee, id_conversation, content)
			VALUES ($1, $2, $3)
			RETURNING id, id_employee, id_conversation, content, datetime_created
		`

		err := tx.QueryRowContext(ctx, query, input.EmployeeID, input.ConversationID, input.Content).Scan(
			&message.ID,
			&message.EmployeeID,
			&message.ConversationID,
			&message.Content,
			&message.CreatedAt,
		)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE conversations SET datetime_updated = $1 WHERE id = $2`,
			message.CreatedAt, input.ConversationID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

func (r *PostgresMessageRepository) ListByConversation(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	query := `
		SELECT id, id_employee, id_conversation, content, datetime_created
		FROM messages
		WHERE id_conversation = $1
		ORDER BY datetime_created, id
	`
	return r.queryMessages(ctx, query, conversationID)
}

func (r *PostgresMessageRepository) ListUnread(ctx context.Context, conversationID, employeeID int64) ([]domain.Message, error) {
	query := `
		SELECT m.id, m.id_employee, m.id_conversation, m.content, m.datetime_created
		FROM messages m
		LEFT JOIN read_messages rm ON m.id = rm.id_message AND rm.id_employee = $2
		WHERE m.id_conversation = $1 AND rm.id_message IS NULL
		ORDER BY m.datetime_created, m.id
	`
	return r.queryMessages(ctx, query, conversationID, employeeID)
}

func (r *PostgresMessageRepository) queryMessages(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.EmployeeID, &m.ConversationID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *PostgresMessageRepository) MarkRead(ctx context.Context, employeeID int64, messageIDs []int64) error {
	if len(messageIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO read_messages (id_message, id_employee)
		SELECT unnest($1::bigint[]), $2
		ON CONFLICT (id_message, id_employee) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, messageIDs, employeeID)
	return err
}

var _ domain.MessageRepository = (*PostgresMessageRepository)(nil)
