package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aperturelabs/alms/internal/domain"
)

var (
	testNow     = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	testExpires = testNow.Add(10 * time.Minute)
)

func sessionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "token", "employee_id", "datetime_created", "datetime_expires"})
}

func TestReplaceDeletesAndInsertsInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresSessionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM session_tokens WHERE employee_id = $1`)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO session_tokens`)).
		WithArgs("tok-new", int64(42), testNow, testExpires).
		WillReturnRows(sessionRows().AddRow(int64(5), "tok-new", int64(42), testNow, testExpires))
	mock.ExpectCommit()

	session, err := repo.Replace(context.Background(), domain.CreateSessionInput{
		Token:      "tok-new",
		EmployeeID: 42,
		CreatedAt:  testNow,
		ExpiresAt:  testExpires,
	})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if session.Token != "tok-new" || session.EmployeeID != 42 || !session.ExpiresAt.Equal(testExpires) {
		t.Errorf("Replace() = %+v", session)
	}

	expectationsMet(t, mock)
}

func TestReplaceRollsBackWhenInsertFails(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresSessionRepository(db)

	conflict := &pgconn.PgError{Code: uniqueViolationCode}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM session_tokens WHERE employee_id = $1`)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO session_tokens`)).
		WillReturnError(conflict)
	mock.ExpectRollback()

	_, err := repo.Replace(context.Background(), domain.CreateSessionInput{
		Token:      "tok-new",
		EmployeeID: 42,
		CreatedAt:  testNow,
		ExpiresAt:  testExpires,
	})
	if !errors.Is(err, conflict) {
		t.Errorf("Replace() error = %v, want the insert error", err)
	}

	expectationsMet(t, mock)
}

func TestFindByToken(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM session_tokens`)).
			WithArgs("tok-gone").
			WillReturnRows(sessionRows())

		_, err := NewPostgresSessionRepository(db).FindByToken(context.Background(), "tok-gone")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("FindByToken() error = %v, want ErrNotFound", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("expired rows are still returned", func(t *testing.T) {
		db, mock := newMockDB(t)
		expired := testNow.Add(-time.Minute)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM session_tokens`)).
			WithArgs("tok-old").
			WillReturnRows(sessionRows().AddRow(int64(5), "tok-old", int64(42), testNow.Add(-time.Hour), expired))

		session, err := NewPostgresSessionRepository(db).FindByToken(context.Background(), "tok-old")
		if err != nil {
			t.Fatalf("FindByToken() error = %v", err)
		}
		if !session.ExpiresAt.Equal(expired) {
			t.Errorf("ExpiresAt = %v, want %v", session.ExpiresAt, expired)
		}
		expectationsMet(t, mock)
	})
}

func TestCountActiveComparesAgainstNow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM session_tokens WHERE datetime_expires > $1`)).
		WithArgs(testNow).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := NewPostgresSessionRepository(db).CountActive(context.Background(), testNow)
	if err != nil || count != 3 {
		t.Errorf("CountActive() = %d, %v, want 3", count, err)
	}
	expectationsMet(t, mock)
}
