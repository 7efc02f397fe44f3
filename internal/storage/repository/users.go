package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
	"github.com/magabrotheeeer/fitness-manager/internal/storage"
)

const userColumns = `id, auth_id::text, name, surname, email, birth_date, role, created_at`

// UserRepository работает с таблицей users.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(s *Storage) *UserRepository {
	return &UserRepository{db: s.DB}
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.AuthID, &u.Name, &u.Surname, &u.Email,
		&u.BirthDate, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create сохраняет нового пользователя и возвращает его.
func (r *UserRepository) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	const op = "storage.users.Create"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (auth_id, name, surname, email, birth_date, role)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query,
		in.AuthID, in.Name, in.Surname, models.NormalizeEmail(in.Email), in.BirthDate, in.Role))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// Read возвращает пользователя по ID.
func (r *UserRepository) Read(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.users.Read"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// GetByAuthID возвращает пользователя по идентификатору у провайдера аутентификации.
func (r *UserRepository) GetByAuthID(ctx context.Context, authID string) (*models.User, error) {
	const op = "storage.users.GetByAuthID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE auth_id = $1`, authID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// CreateFromIdentity заводит пользователя по данным провайдера. Если пользователь
// с таким email уже заведён вручную и ещё не привязан к учётной записи, запись
// привязывается к ней. Email, занятый другой учётной записью, даёт ErrAlreadyExists.
func (r *UserRepository) CreateFromIdentity(ctx context.Context, ident models.Identity, role string) (*models.User, error) {
	const op = "storage.users.CreateFromIdentity"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (auth_id, name, surname, email, role)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (email) DO UPDATE SET auth_id = EXCLUDED.auth_id
			  WHERE users.auth_id IS NULL
			  RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query,
		ident.Subject, ident.Name, ident.Surname, models.NormalizeEmail(ident.Email), role))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: email %s: %w", op, ident.Email, storage.ErrAlreadyExists)
	}
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// Update перезаписывает данные пользователя.
func (r *UserRepository) Update(ctx context.Context, id int, in models.UserInput) (*models.User, error) {
	const op = "storage.users.Update"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET auth_id = $1, name = $2, surname = $3, email = $4, birth_date = $5, role = $6
			  WHERE id = $7
			  RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRowContext(ctx, query,
		in.AuthID, in.Name, in.Surname, models.NormalizeEmail(in.Email), in.BirthDate, in.Role, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// Remove удаляет пользователя по ID.
func (r *UserRepository) Remove(ctx context.Context, id int) error {
	const op = "storage.users.Remove"
	return execOne(ctx, r.db, op, `DELETE FROM users WHERE id = $1`, id)
}

// List возвращает страницу пользователей.
func (r *UserRepository) List(ctx context.Context, page models.Page) ([]*models.User, error) {
	const op = "storage.users.List"

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	return queryList(ctx, r.db, op, scanUser, query, page.Limit, page.Offset)
}
