package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
	"github.com/magabrotheeeer/fitness-manager/internal/storage"
)

var userRowColumns = []string{"id", "auth_id", "name", "surname", "email", "birth_date", "role", "created_at"}

func TestUserRepository_GetByAuthID(t *testing.T) {
	s, mock := newMockStorage(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	authID := "5f0c7e1a-3b2d-4c47-9a65-2f3f0b9f1e11"
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE auth_id = \\$1").
		WithArgs(authID).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, authID, "Anna", "Petrova", "anna@example.com", birth, models.RoleTrainer, created))

	u, err := repo.GetByAuthID(ctx, authID)
	require.NoError(t, err)
	require.NotNil(t, u.AuthID)
	assert.Equal(t, authID, *u.AuthID)
	require.NotNil(t, u.BirthDate)
	assert.Equal(t, "1990-05-17", u.BirthDate.String())
	assert.Equal(t, models.RoleTrainer, u.Role)
	assert.Equal(t, created, u.CreatedAt)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE auth_id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err = repo.GetByAuthID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateFromIdentity(t *testing.T) {
	s, mock := newMockStorage(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	ident := models.Identity{
		Subject: "5f0c7e1a-3b2d-4c47-9a65-2f3f0b9f1e11",
		Email:   "anna@example.com",
		Name:    "Anna",
		Surname: "Petrova",
	}

	t.Run("inserted", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users (.+) ON CONFLICT \\(email\\)").
			WithArgs(ident.Subject, ident.Name, ident.Surname, ident.Email, models.RoleClient).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(10, ident.Subject, ident.Name, ident.Surname, ident.Email, nil, models.RoleClient, time.Now()))

		u, err := repo.CreateFromIdentity(ctx, ident, models.RoleClient)
		require.NoError(t, err)
		assert.Equal(t, 10, u.ID)
		assert.Nil(t, u.BirthDate)
		assert.Equal(t, models.RoleClient, u.Role)
	})

	t.Run("email owned by another account", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(ident.Subject, ident.Name, ident.Surname, ident.Email, models.RoleClient).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		u, err := repo.CreateFromIdentity(ctx, ident, models.RoleClient)
		assert.Nil(t, u)
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.CreateFromIdentity(cctx, ident, models.RoleClient)
		assert.ErrorIs(t, err, context.Canceled)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	s, mock := newMockStorage(t)
	repo := NewUserRepository(s)

	birth, err := models.ParseDate("1995-01-02")
	require.NoError(t, err)

	in := models.UserInput{
		Name:      "Oleg",
		Email:     "oleg@example.com",
		BirthDate: &birth,
		Role:      models.RoleAdmin,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(nil, in.Name, in.Surname, in.Email, birth.Time, in.Role).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(2, nil, in.Name, "", in.Email, birth.Time, in.Role, time.Now()))

	u, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, u.AuthID)
	assert.Equal(t, "1995-01-02", u.BirthDate.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_EmailStoredNormalized(t *testing.T) {
	s, mock := newMockStorage(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	in := models.UserInput{Name: "Manual", Email: "  Manual@Example.com ", Role: models.RoleTrainer}
	authID := "0b6f7c52-4a38-4df4-8a0a-0d8f3cf8c2a1"

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(nil, in.Name, in.Surname, "manual@example.com", nil, in.Role).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(4, nil, in.Name, "", "manual@example.com", nil, in.Role, time.Now()))

	// вход по токену с тем же адресом попадает в ON CONFLICT (email) и
	// привязывает уже заведённую запись
	mock.ExpectQuery("INSERT INTO users (.+) ON CONFLICT \\(email\\)").
		WithArgs(authID, "manual", "", "manual@example.com", models.RoleClient).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(4, authID, in.Name, "", "manual@example.com", nil, in.Role, time.Now()))

	manual, err := repo.Create(ctx, in)
	require.NoError(t, err)

	linked, err := repo.CreateFromIdentity(ctx, models.Identity{Subject: authID, Email: "Manual@Example.com", Name: "manual"}, models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, manual.ID, linked.ID)
	assert.Equal(t, models.RoleTrainer, linked.Role)

	mock.ExpectQuery("UPDATE users").
		WithArgs(nil, in.Name, in.Surname, "manual@example.com", nil, in.Role, 4).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(4, authID, in.Name, "", "manual@example.com", nil, in.Role, time.Now()))

	_, err = repo.Update(ctx, 4, models.UserInput{Name: "Manual", Email: "MANUAL@example.com", Role: models.RoleTrainer})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
