package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

const productColumns = `id, name, description, price, stock`

// ProductRepository работает с таблицей products.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(s *Storage) *ProductRepository {
	return &ProductRepository{db: s.DB}
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	const op = "storage.products.Create"

	query := `INSERT INTO products (name, description, price, stock)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.Price, in.Stock))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return p, nil
}

func (r *ProductRepository) Read(ctx context.Context, id int) (*models.Product, error) {
	const op = "storage.products.Read"

	p, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int, in models.ProductInput) (*models.Product, error) {
	const op = "storage.products.Update"

	query := `UPDATE products
			  SET name = $1, description = $2, price = $3, stock = $4
			  WHERE id = $5
			  RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.Price, in.Stock, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return p, nil
}

func (r *ProductRepository) Remove(ctx context.Context, id int) error {
	const op = "storage.products.Remove"
	return execOne(ctx, r.db, op, `DELETE FROM products WHERE id = $1`, id)
}

func (r *ProductRepository) List(ctx context.Context, page models.Page) ([]*models.Product, error) {
	const op = "storage.products.List"

	query := `SELECT ` + productColumns + ` FROM products ORDER BY id LIMIT $1 OFFSET $2`
	return queryList(ctx, r.db, op, scanProduct, query, page.Limit, page.Offset)
}
