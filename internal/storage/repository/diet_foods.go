package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// DietFoodRepository работает с таблицей связей diet_foods.
// Все выборки дополняются названием продукта.
type DietFoodRepository struct {
	db *sql.DB
}

func NewDietFoodRepository(s *Storage) *DietFoodRepository {
	return &DietFoodRepository{db: s.DB}
}

func scanDietFood(row rowScanner) (*models.DietFood, error) {
	var df models.DietFood
	if err := row.Scan(&df.DietID, &df.FoodID, &df.FoodName, &df.Quantity); err != nil {
		return nil, err
	}
	return &df, nil
}

// List возвращает страницу всех связей.
func (r *DietFoodRepository) List(ctx context.Context, page models.Page) ([]*models.DietFood, error) {
	const op = "storage.diet_foods.List"

	query := `SELECT df.diet_id, df.food_id, f.name, df.quantity
			  FROM diet_foods df
			  JOIN foods f ON f.id = df.food_id
			  ORDER BY df.diet_id, df.food_id
			  LIMIT $1 OFFSET $2`
	return queryList(ctx, r.db, op, scanDietFood, query, page.Limit, page.Offset)
}

// ListByParent возвращает продукты одной диеты.
func (r *DietFoodRepository) ListByParent(ctx context.Context, dietID int) ([]*models.DietFood, error) {
	const op = "storage.diet_foods.ListByParent"

	query := `SELECT df.diet_id, df.food_id, f.name, df.quantity
			  FROM diet_foods df
			  JOIN foods f ON f.id = df.food_id
			  WHERE df.diet_id = $1
			  ORDER BY df.food_id`
	return queryList(ctx, r.db, op, scanDietFood, query, dietID)
}

// Attach добавляет продукт в диету.
func (r *DietFoodRepository) Attach(ctx context.Context, in models.DietFoodInput) (*models.DietFood, error) {
	const op = "storage.diet_foods.Attach"

	query := `WITH ins AS (
				INSERT INTO diet_foods (diet_id, food_id, quantity)
				VALUES ($1, $2, $3)
				RETURNING diet_id, food_id, quantity
			  )
			  SELECT ins.diet_id, ins.food_id, f.name, ins.quantity
			  FROM ins JOIN foods f ON f.id = ins.food_id`
	df, err := scanDietFood(r.db.QueryRowContext(ctx, query, in.DietID, in.FoodID, in.Quantity))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return df, nil
}

// Update меняет количество продукта в диете.
func (r *DietFoodRepository) Update(ctx context.Context, in models.DietFoodInput) (*models.DietFood, error) {
	const op = "storage.diet_foods.Update"

	query := `WITH upd AS (
				UPDATE diet_foods SET quantity = $3
				WHERE diet_id = $1 AND food_id = $2
				RETURNING diet_id, food_id, quantity
			  )
			  SELECT upd.diet_id, upd.food_id, f.name, upd.quantity
			  FROM upd JOIN foods f ON f.id = upd.food_id`
	df, err := scanDietFood(r.db.QueryRowContext(ctx, query, in.DietID, in.FoodID, in.Quantity))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return df, nil
}

// Detach убирает продукт из диеты.
func (r *DietFoodRepository) Detach(ctx context.Context, dietID, foodID int) error {
	const op = "storage.diet_foods.Detach"
	return execOne(ctx, r.db, op, `DELETE FROM diet_foods WHERE diet_id = $1 AND food_id = $2`, dietID, foodID)
}
