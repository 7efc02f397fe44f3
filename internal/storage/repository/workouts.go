package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

const workoutColumns = `id, title, category, notes, user_id`

// WorkoutRepository работает с таблицей workouts.
type WorkoutRepository struct {
	db *sql.DB
}

func NewWorkoutRepository(s *Storage) *WorkoutRepository {
	return &WorkoutRepository{db: s.DB}
}

func scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	if err := row.Scan(&w.ID, &w.Title, &w.Category, &w.Notes, &w.UserID); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkoutRepository) Create(ctx context.Context, in models.WorkoutInput) (*models.Workout, error) {
	const op = "storage.workouts.Create"

	query := `INSERT INTO workouts (title, category, notes, user_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + workoutColumns
	w, err := scanWorkout(r.db.QueryRowContext(ctx, query, in.Title, in.Category, in.Notes, in.UserID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return w, nil
}

func (r *WorkoutRepository) Read(ctx context.Context, id int) (*models.Workout, error) {
	const op = "storage.workouts.Read"

	w, err := scanWorkout(r.db.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return w, nil
}

func (r *WorkoutRepository) Update(ctx context.Context, id int, in models.WorkoutInput) (*models.Workout, error) {
	const op = "storage.workouts.Update"

	query := `UPDATE workouts
			  SET title = $1, category = $2, notes = $3, user_id = $4
			  WHERE id = $5
			  RETURNING ` + workoutColumns
	w, err := scanWorkout(r.db.QueryRowContext(ctx, query, in.Title, in.Category, in.Notes, in.UserID, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return w, nil
}

func (r *WorkoutRepository) Remove(ctx context.Context, id int) error {
	const op = "storage.workouts.Remove"
	return execOne(ctx, r.db, op, `DELETE FROM workouts WHERE id = $1`, id)
}

func (r *WorkoutRepository) List(ctx context.Context, page models.Page) ([]*models.Workout, error) {
	const op = "storage.workouts.List"

	query := `SELECT ` + workoutColumns + ` FROM workouts ORDER BY id LIMIT $1 OFFSET $2`
	return queryList(ctx, r.db, op, scanWorkout, query, page.Limit, page.Offset)
}
