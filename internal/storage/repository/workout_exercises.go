package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

// WorkoutExerciseRepository работает с таблицей связей workout_exercises.
type WorkoutExerciseRepository struct {
	db *sql.DB
}

func NewWorkoutExerciseRepository(s *Storage) *WorkoutExerciseRepository {
	return &WorkoutExerciseRepository{db: s.DB}
}

func scanWorkoutExercise(row rowScanner) (*models.WorkoutExercise, error) {
	var we models.WorkoutExercise
	if err := row.Scan(&we.WorkoutID, &we.ExerciseID, &we.ExerciseName, &we.Sets, &we.Reps); err != nil {
		return nil, err
	}
	return &we, nil
}

func (r *WorkoutExerciseRepository) List(ctx context.Context, page models.Page) ([]*models.WorkoutExercise, error) {
	const op = "storage.workout_exercises.List"

	query := `SELECT we.workout_id, we.exercise_id, e.name, we.sets, we.reps
			  FROM workout_exercises we
			  JOIN exercises e ON e.id = we.exercise_id
			  ORDER BY we.workout_id, we.exercise_id
			  LIMIT $1 OFFSET $2`
	return queryList(ctx, r.db, op, scanWorkoutExercise, query, page.Limit, page.Offset)
}

func (r *WorkoutExerciseRepository) ListByParent(ctx context.Context, workoutID int) ([]*models.WorkoutExercise, error) {
	const op = "storage.workout_exercises.ListByParent"

	query := `SELECT we.workout_id, we.exercise_id, e.name, we.sets, we.reps
			  FROM workout_exercises we
			  JOIN exercises e ON e.id = we.exercise_id
			  WHERE we.workout_id = $1
			  ORDER BY we.exercise_id`
	return queryList(ctx, r.db, op, scanWorkoutExercise, query, workoutID)
}

func (r *WorkoutExerciseRepository) Attach(ctx context.Context, in models.WorkoutExerciseInput) (*models.WorkoutExercise, error) {
	const op = "storage.workout_exercises.Attach"

	query := `WITH ins AS (
				INSERT INTO workout_exercises (workout_id, exercise_id, sets, reps)
				VALUES ($1, $2, $3, $4)
				RETURNING workout_id, exercise_id, sets, reps
			  )
			  SELECT ins.workout_id, ins.exercise_id, e.name, ins.sets, ins.reps
			  FROM ins JOIN exercises e ON e.id = ins.exercise_id`
	we, err := scanWorkoutExercise(r.db.QueryRowContext(ctx, query, in.WorkoutID, in.ExerciseID, in.Sets, in.Reps))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return we, nil
}

func (r *WorkoutExerciseRepository) Update(ctx context.Context, in models.WorkoutExerciseInput) (*models.WorkoutExercise, error) {
	const op = "storage.workout_exercises.Update"

	query := `WITH upd AS (
				UPDATE workout_exercises SET sets = $3, reps = $4
				WHERE workout_id = $1 AND exercise_id = $2
				RETURNING workout_id, exercise_id, sets, reps
			  )
			  SELECT upd.workout_id, upd.exercise_id, e.name, upd.sets, upd.reps
			  FROM upd JOIN exercises e ON e.id = upd.exercise_id`
	we, err := scanWorkoutExercise(r.db.QueryRowContext(ctx, query, in.WorkoutID, in.ExerciseID, in.Sets, in.Reps))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return we, nil
}

func (r *WorkoutExerciseRepository) Detach(ctx context.Context, workoutID, exerciseID int) error {
	const op = "storage.workout_exercises.Detach"
	return execOne(ctx, r.db, op,
		`DELETE FROM workout_exercises WHERE workout_id = $1 AND exercise_id = $2`, workoutID, exerciseID)
}
