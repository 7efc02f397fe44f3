package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
	"github.com/magabrotheeeer/fitness-manager/internal/storage"
)

var clientRowColumns = []string{"id", "name", "email", "phone", "goal"}

func TestClientRepository_Create(t *testing.T) {
	s, mock := newMockStorage(t)
	repo := NewClientRepository(s)
	ctx := context.Background()

	in := models.ClientInput{Name: "Anna", Email: "anna@example.com", Phone: "+7900", Goal: "lose weight"}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO clients").
			WithArgs(in.Name, in.Email, in.Phone, in.Goal).
			WillReturnRows(sqlmock.NewRows(clientRowColumns).
				AddRow(1, in.Name, in.Email, in.Phone, in.Goal))

		c, err := repo.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, &models.Client{ID: 1, Name: "Anna", Email: "anna@example.com", Phone: "+7900", Goal: "lose weight"}, c)
	})

	t.Run("email in mixed case", func(t *testing.T) {
		mixed := in
		mixed.Email = " Anna@Example.COM"
		mock.ExpectQuery("INSERT INTO clients").
			WithArgs(in.Name, "anna@example.com", in.Phone, in.Goal).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "clients_email_key"})

		_, err := repo.Create(ctx, mixed)
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO clients").
			WithArgs(in.Name, in.Email, in.Phone, in.Goal).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "clients_email_key"})

		c, err := repo.Create(ctx, in)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_Read(t *testing.T) {
	s, mock := newMockStorage(t)
	repo := NewClientRepository(s)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM clients WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(clientRowColumns).AddRow(7, "Ivan", "ivan@example.com", "", ""))

	c, err := repo.Read(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, c.ID)
	assert.Equal(t, "Ivan", c.Name)

	mock.ExpectQuery("SELECT (.+) FROM clients WHERE id = \\$1").
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows(clientRowColumns))

	_, err = repo.Read(ctx, 8)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_Update(t *testing.T) {
	s, mock := newMockStorage(t)
	repo := NewClientRepository(s)
	ctx := context.Background()

	in := models.ClientInput{Name: "Anna", Email: "anna@example.com"}

	mock.ExpectQuery("UPDATE clients").
		WithArgs(in.Name, in.Email, in.Phone, in.Goal, 3).
		WillReturnRows(sqlmock.NewRows(clientRowColumns).AddRow(3, in.Name, in.Email, "", ""))

	c, err := repo.Update(ctx, 3, in)
	require.NoError(t, err)
	assert.Equal(t, 3, c.ID)

	mock.ExpectQuery("UPDATE clients").
		WithArgs(in.Name, in.Email, in.Phone, in.Goal, 404).
		WillReturnRows(sqlmock.NewRows(clientRowColumns))

	_, err = repo.Update(ctx, 404, in)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_Remove(t *testing.T) {
	s, mock := newMockStorage(t)
	repo := NewClientRepository(s)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM clients WHERE id = \\$1").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Remove(ctx, 1))

	mock.ExpectExec("DELETE FROM clients WHERE id = \\$1").
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Remove(ctx, 2), storage.ErrNotFound)

	mock.ExpectExec("DELETE FROM clients WHERE id = \\$1").
		WithArgs(3).
		WillReturnError(errors.New("db down"))
	err := repo.Remove(ctx, 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_List(t *testing.T) {
	s, mock := newMockStorage(t)
	repo := NewClientRepository(s)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM clients ORDER BY id LIMIT \\$1 OFFSET \\$2").
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows(clientRowColumns).
			AddRow(1, "A", "a@example.com", "", "").
			AddRow(2, "B", "b@example.com", "", ""))

	list, err := repo.List(ctx, models.NewPage(2, 0))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[1].Name)

	mock.ExpectQuery("SELECT (.+) FROM clients").
		WithArgs(models.DefaultLimit, 10).
		WillReturnRows(sqlmock.NewRows(clientRowColumns))

	list, err = repo.List(ctx, models.NewPage(0, 10))
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	assert.NoError(t, mock.ExpectationsWereMet())
}
