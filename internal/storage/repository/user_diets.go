package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// UserDietRepository работает с таблицей назначений диет user_diets.
type UserDietRepository struct {
	db *sql.DB
}

func NewUserDietRepository(s *Storage) *UserDietRepository {
	return &UserDietRepository{db: s.DB}
}

func scanUserDiet(row rowScanner) (*models.UserDiet, error) {
	var ud models.UserDiet
	if err := row.Scan(&ud.UserID, &ud.DietID, &ud.DietName, &ud.StartDate, &ud.EndDate); err != nil {
		return nil, err
	}
	return &ud, nil
}

func (r *UserDietRepository) List(ctx context.Context, page models.Page) ([]*models.UserDiet, error) {
	const op = "storage.user_diets.List"

	query := `SELECT ud.user_id, ud.diet_id, d.name, ud.start_date, ud.end_date
			  FROM user_diets ud
			  JOIN diets d ON d.id = ud.diet_id
			  ORDER BY ud.user_id, ud.diet_id
			  LIMIT $1 OFFSET $2`
	return queryList(ctx, r.db, op, scanUserDiet, query, page.Limit, page.Offset)
}

func (r *UserDietRepository) ListByParent(ctx context.Context, userID int) ([]*models.UserDiet, error) {
	const op = "storage.user_diets.ListByParent"

	query := `SELECT ud.user_id, ud.diet_id, d.name, ud.start_date, ud.end_date
			  FROM user_diets ud
			  JOIN diets d ON d.id = ud.diet_id
			  WHERE ud.user_id = $1
			  ORDER BY ud.diet_id`
	return queryList(ctx, r.db, op, scanUserDiet, query, userID)
}

func (r *UserDietRepository) Attach(ctx context.Context, in models.UserDietInput) (*models.UserDiet, error) {
	const op = "storage.user_diets.Attach"

	query := `WITH ins AS (
				INSERT INTO user_diets (user_id, diet_id, start_date, end_date)
				VALUES ($1, $2, $3, $4)
				RETURNING user_id, diet_id, start_date, end_date
			  )
			  SELECT ins.user_id, ins.diet_id, d.name, ins.start_date, ins.end_date
			  FROM ins JOIN diets d ON d.id = ins.diet_id`
	ud, err := scanUserDiet(r.db.QueryRowContext(ctx, query, in.UserID, in.DietID, in.StartDate, in.EndDate))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return ud, nil
}

func (r *UserDietRepository) Update(ctx context.Context, in models.UserDietInput) (*models.UserDiet, error) {
	const op = "storage.user_diets.Update"

	query := `WITH upd AS (
				UPDATE user_diets SET start_date = $3, end_date = $4
				WHERE user_id = $1 AND diet_id = $2
				RETURNING user_id, diet_id, start_date, end_date
			  )
			  SELECT upd.user_id, upd.diet_id, d.name, upd.start_date, upd.end_date
			  FROM upd JOIN diets d ON d.id = upd.diet_id`
	ud, err := scanUserDiet(r.db.QueryRowContext(ctx, query, in.UserID, in.DietID, in.StartDate, in.EndDate))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return ud, nil
}

func (r *UserDietRepository) Detach(ctx context.Context, userID, dietID int) error {
	const op = "storage.user_diets.Detach"
	return execOne(ctx, r.db, op, `DELETE FROM user_diets WHERE user_id = $1 AND diet_id = $2`, userID, dietID)
}
