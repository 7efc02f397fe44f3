package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

const clientColumns = `id, name, email, phone, goal`

// ClientRepository работает с таблицей clients.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository создаёт репозиторий клиентов.
func NewClientRepository(s *Storage) *ClientRepository {
	return &ClientRepository{db: s.DB}
}

func scanClient(row rowScanner) (*models.Client, error) {
	var c models.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Goal); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create добавляет клиента и возвращает сохранённую запись.
func (r *ClientRepository) Create(ctx context.Context, in models.ClientInput) (*models.Client, error) {
	const op = "storage.clients.Create"

	query := `INSERT INTO clients (name, email, phone, goal)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + clientColumns
	c, err := scanClient(r.db.QueryRowContext(ctx, query, in.Name, models.NormalizeEmail(in.Email), in.Phone, in.Goal))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return c, nil
}

// Read возвращает клиента по ID.
func (r *ClientRepository) Read(ctx context.Context, id int) (*models.Client, error) {
	const op = "storage.clients.Read"

	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return c, nil
}

// Update перезаписывает клиента целиком.
func (r *ClientRepository) Update(ctx context.Context, id int, in models.ClientInput) (*models.Client, error) {
	const op = "storage.clients.Update"

	query := `UPDATE clients
			  SET name = $1, email = $2, phone = $3, goal = $4
			  WHERE id = $5
			  RETURNING ` + clientColumns
	c, err := scanClient(r.db.QueryRowContext(ctx, query, in.Name, models.NormalizeEmail(in.Email), in.Phone, in.Goal, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return c, nil
}

// Remove удаляет клиента по ID.
func (r *ClientRepository) Remove(ctx context.Context, id int) error {
	const op = "storage.clients.Remove"
	return execOne(ctx, r.db, op, `DELETE FROM clients WHERE id = $1`, id)
}

// List возвращает страницу клиентов, упорядоченных по ID.
func (r *ClientRepository) List(ctx context.Context, page models.Page) ([]*models.Client, error) {
	const op = "storage.clients.List"

	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id LIMIT $1 OFFSET $2`
	return queryList(ctx, r.db, op, scanClient, query, page.Limit, page.Offset)
}
