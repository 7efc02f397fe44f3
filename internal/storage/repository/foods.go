package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

const foodColumns = `id, name, description, calories_per_100g`

// FoodRepository работает с таблицей foods.
type FoodRepository struct {
	db *sql.DB
}

func NewFoodRepository(s *Storage) *FoodRepository {
	return &FoodRepository{db: s.DB}
}

func scanFood(row rowScanner) (*models.Food, error) {
	var f models.Food
	if err := row.Scan(&f.ID, &f.Name, &f.Description, &f.CaloriesPer100g); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FoodRepository) Create(ctx context.Context, in models.FoodInput) (*models.Food, error) {
	const op = "storage.foods.Create"

	query := `INSERT INTO foods (name, description, calories_per_100g)
			  VALUES ($1, $2, $3)
			  RETURNING ` + foodColumns
	f, err := scanFood(r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.CaloriesPer100g))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return f, nil
}

func (r *FoodRepository) Read(ctx context.Context, id int) (*models.Food, error) {
	const op = "storage.foods.Read"

	f, err := scanFood(r.db.QueryRowContext(ctx, `SELECT `+foodColumns+` FROM foods WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return f, nil
}

func (r *FoodRepository) Update(ctx context.Context, id int, in models.FoodInput) (*models.Food, error) {
	const op = "storage.foods.Update"

	query := `UPDATE foods
			  SET name = $1, description = $2, calories_per_100g = $3
			  WHERE id = $4
			  RETURNING ` + foodColumns
	f, err := scanFood(r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.CaloriesPer100g, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return f, nil
}

func (r *FoodRepository) Remove(ctx context.Context, id int) error {
	const op = "storage.foods.Remove"
	return execOne(ctx, r.db, op, `DELETE FROM foods WHERE id = $1`, id)
}

func (r *FoodRepository) List(ctx context.Context, page models.Page) ([]*models.Food, error) {
	const op = "storage.foods.List"

	query := `SELECT ` + foodColumns + ` FROM foods ORDER BY id LIMIT $1 OFFSET $2`
	return queryList(ctx, r.db, op, scanFood, query, page.Limit, page.Offset)
}
