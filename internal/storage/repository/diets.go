package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

const dietColumns = `id, name, description, calories, protein`

// DietRepository работает с таблицей diets.
type DietRepository struct {
	db *sql.DB
}

func NewDietRepository(s *Storage) *DietRepository {
	return &DietRepository{db: s.DB}
}

func scanDiet(row rowScanner) (*models.Diet, error) {
	var d models.Diet
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.Calories, &d.Protein); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DietRepository) Create(ctx context.Context, in models.DietInput) (*models.Diet, error) {
	const op = "storage.diets.Create"

	query := `INSERT INTO diets (name, description, calories, protein)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + dietColumns
	d, err := scanDiet(r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.Calories, in.Protein))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return d, nil
}

func (r *DietRepository) Read(ctx context.Context, id int) (*models.Diet, error) {
	const op = "storage.diets.Read"

	d, err := scanDiet(r.db.QueryRowContext(ctx, `SELECT `+dietColumns+` FROM diets WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return d, nil
}

func (r *DietRepository) Update(ctx context.Context, id int, in models.DietInput) (*models.Diet, error) {
	const op = "storage.diets.Update"

	query := `UPDATE diets
			  SET name = $1, description = $2, calories = $3, protein = $4
			  WHERE id = $5
			  RETURNING ` + dietColumns
	d, err := scanDiet(r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.Calories, in.Protein, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return d, nil
}

func (r *DietRepository) Remove(ctx context.Context, id int) error {
	const op = "storage.diets.Remove"
	return execOne(ctx, r.db, op, `DELETE FROM diets WHERE id = $1`, id)
}

func (r *DietRepository) List(ctx context.Context, page models.Page) ([]*models.Diet, error) {
	const op = "storage.diets.List"

	query := `SELECT ` + dietColumns + ` FROM diets ORDER BY id LIMIT $1 OFFSET $2`
	return queryList(ctx, r.db, op, scanDiet, query, page.Limit, page.Offset)
}
