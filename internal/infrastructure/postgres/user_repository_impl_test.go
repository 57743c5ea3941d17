package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-auth-api/internal/domain/entity"
	"github.com/oksasatya/go-user-auth-api/internal/domain/repository"
)

var userCols = []string{"id", "email", "password_hash", "name", "is_active", "is_staff", "is_superuser", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@example.com", "hash", "A", true, false, false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("u-1", now, now))

	u := &entity.User{Email: "a@example.com", Password: "hash", Name: "A", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), u))

	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &entity.User{Email: "a@example.com"})

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("Test@example.com").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("u-1", "Test@example.com", "hash", "Test", true, true, false, now, now))

	u, err := repo.GetByEmail(context.Background(), "Test@example.com")

	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.True(t, u.IsStaff)
	assert.False(t, u.IsSuperuser)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(userCols))

	u, err := repo.GetByID(context.Background(), "missing")

	assert.Nil(t, u)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_GetByID_MalformedID(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: "22P02"})

	_, err := repo.GetByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users`).
		WithArgs("hash2", "New", true, false, false, pgxmock.AnyArg(), "u-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	u := &entity.User{ID: "u-1", Password: "hash2", Name: "New", IsActive: true}
	require.NoError(t, repo.Update(context.Background(), u))
	assert.False(t, u.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NoRows(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &entity.User{ID: "gone"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`ORDER BY created_at`).
		WithArgs(50, 0).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("u-1", "admin@example.com", "h", "", true, true, true, now, now).
			AddRow("u-2", "test@example.com", "h", "Test Name", true, false, false, now, now))

	users, err := repo.List(context.Background(), 50, 0)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, "Test Name", users[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List_QueryError(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	boom := errors.New("boom")

	mock.ExpectQuery(`ORDER BY created_at`).WillReturnError(boom)

	_, err := repo.List(context.Background(), 10, 0)
	assert.ErrorIs(t, err, boom)
}
