package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/OPpuolitaival/tasklist/internal/domain"
	"github.com/OPpuolitaival/tasklist/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserStore(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresUserStore(db, nil), mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func storedUser(t *testing.T) *domain.User {
	t.Helper()

	user, err := domain.NewUser("alice", "alice@example.com", "correcthorse")
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	return user
}

func userColumns() []string {
	return []string{"id", "username", "email", "hashed_password", "is_active", "created_at", "updated_at"}
}

func TestUserStoreCreate(t *testing.T) {
	s, mock := newTestUserStore(t)
	user := storedUser(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(
			user.ID, user.Username, user.Email, user.HashedPassword,
			user.IsActive, user.CreatedAt, user.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Create(context.Background(), user)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreCreate_DuplicateUsername(t *testing.T) {
	s, mock := newTestUserStore(t)
	user := storedUser(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := s.Create(context.Background(), user)
	assert.ErrorIs(t, err, store.ErrUsernameExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreCreate_MissingHash(t *testing.T) {
	s, mock := newTestUserStore(t)
	user := storedUser(t)
	user.HashedPassword = ""
	user.Password = "correcthorse" // plaintext only; store must refuse

	err := s.Create(context.Background(), user)
	assert.ErrorIs(t, err, domain.ErrEmptyHashedPassword)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreGetByID(t *testing.T) {
	s, mock := newTestUserStore(t)
	user := storedUser(t)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(
			user.ID.String(), user.Username, user.Email, user.HashedPassword,
			user.IsActive, user.CreatedAt, user.UpdatedAt,
		)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(user.ID).
		WillReturnRows(rows)

	got, err := s.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, got.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreGetByID_NotFound(t *testing.T) {
	s, mock := newTestUserStore(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreGetByUsername(t *testing.T) {
	s, mock := newTestUserStore(t)
	user := storedUser(t)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(
			user.ID.String(), user.Username, user.Email, user.HashedPassword,
			user.IsActive, user.CreatedAt, user.UpdatedAt,
		)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := s.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreGetByUsername_NotFound(t *testing.T) {
	s, mock := newTestUserStore(t)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreUpdate(t *testing.T) {
	s, mock := newTestUserStore(t)
	user := storedUser(t)
	user.Email = "new@example.com"

	mock.ExpectExec("UPDATE users").
		WithArgs(
			user.ID, user.Username, user.Email, user.HashedPassword,
			user.IsActive, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	before := user.UpdatedAt
	err := s.Update(context.Background(), user)
	assert.NoError(t, err)
	assert.False(t, user.UpdatedAt.Before(before))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreUpdate_NotFound(t *testing.T) {
	s, mock := newTestUserStore(t)
	user := storedUser(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), user)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreDeactivate(t *testing.T) {
	s, mock := newTestUserStore(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE users").
		WithArgs(id, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.Deactivate(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreDeactivate_NotFound(t *testing.T) {
	s, mock := newTestUserStore(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Deactivate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreDelete(t *testing.T) {
	s, mock := newTestUserStore(t)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStoreDelete_NotFound(t *testing.T) {
	s, mock := newTestUserStore(t)

	mock.ExpectExec("DELETE FROM users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
