package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

const exerciseColumns = `id, name, description, execution_time`

// ExerciseRepository работает с таблицей exercises.
type ExerciseRepository struct {
	db *sql.DB
}

func NewExerciseRepository(s *Storage) *ExerciseRepository {
	return &ExerciseRepository{db: s.DB}
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	var e models.Exercise
	if err := row.Scan(&e.ID, &e.Name, &e.Description, &e.ExecutionTime); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExerciseRepository) Create(ctx context.Context, in models.ExerciseInput) (*models.Exercise, error) {
	const op = "storage.exercises.Create"

	query := `INSERT INTO exercises (name, description, execution_time)
			  VALUES ($1, $2, $3)
			  RETURNING ` + exerciseColumns
	e, err := scanExercise(r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.ExecutionTime))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return e, nil
}

func (r *ExerciseRepository) Read(ctx context.Context, id int) (*models.Exercise, error) {
	const op = "storage.exercises.Read"

	e, err := scanExercise(r.db.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return e, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, id int, in models.ExerciseInput) (*models.Exercise, error) {
	const op = "storage.exercises.Update"

	query := `UPDATE exercises
			  SET name = $1, description = $2, execution_time = $3
			  WHERE id = $4
			  RETURNING ` + exerciseColumns
	e, err := scanExercise(r.db.QueryRowContext(ctx, query, in.Name, in.Description, in.ExecutionTime, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return e, nil
}

func (r *ExerciseRepository) Remove(ctx context.Context, id int) error {
	const op = "storage.exercises.Remove"
	return execOne(ctx, r.db, op, `DELETE FROM exercises WHERE id = $1`, id)
}

func (r *ExerciseRepository) List(ctx context.Context, page models.Page) ([]*models.Exercise, error) {
	const op = "storage.exercises.List"

	query := `SELECT ` + exerciseColumns + ` FROM exercises ORDER BY id LIMIT $1 OFFSET $2`
	return queryList(ctx, r.db, op, scanExercise, query, page.Limit, page.Offset)
}
