package models

import "errors"

// ErrInvalidPeriod дата окончания раньше даты начала.
var ErrInvalidPeriod = errors.New("end_date must not be before start_date")

// Checker проверки входных данных, которые не выражаются тегами validate.
type Checker interface {
	Check() error
}

// DietFood продукт в составе диеты. Quantity количество в граммах.
type DietFood struct {
	DietID   int     `json:"diet_id"`
	FoodID   int     `json:"food_id"`
	FoodName string  `json:"food_name,omitempty"`
	Quantity float64 `json:"quantity"`
}

// DietFoodInput тело запроса для связи диеты и продукта.
type DietFoodInput struct {
	DietID   int     `json:"diet_id" validate:"required,gt=0"`
	FoodID   int     `json:"food_id" validate:"required,gt=0"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

// SetKeys подставляет ключи связи из URL.
func (in *DietFoodInput) SetKeys(dietID, foodID int) {
	in.DietID, in.FoodID = dietID, foodID
}

// WorkoutExercise упражнение в составе тренировки.
type WorkoutExercise struct {
	WorkoutID    int    `json:"workout_id"`
	ExerciseID   int    `json:"exercise_id"`
	ExerciseName string `json:"exercise_name,omitempty"`
	Sets         int    `json:"sets"`
	Reps         int    `json:"reps"`
}

// WorkoutExerciseInput тело запроса для связи тренировки и упражнения.
type WorkoutExerciseInput struct {
	WorkoutID  int `json:"workout_id" validate:"required,gt=0"`
	ExerciseID int `json:"exercise_id" validate:"required,gt=0"`
	Sets       int `json:"sets" validate:"required,gt=0"`
	Reps       int `json:"reps" validate:"required,gt=0"`
}

func (in *WorkoutExerciseInput) SetKeys(workoutID, exerciseID int) {
	in.WorkoutID, in.ExerciseID = workoutID, exerciseID
}

// UserDiet назначение диеты пользователю на период.
type UserDiet struct {
	UserID    int    `json:"user_id"`
	DietID    int    `json:"diet_id"`
	DietName  string `json:"diet_name,omitempty"`
	StartDate *Date  `json:"start_date,omitempty"`
	EndDate   *Date  `json:"end_date,omitempty"`
}

// UserDietInput тело запроса для назначения диеты.
type UserDietInput struct {
	UserID    int   `json:"user_id" validate:"required,gt=0"`
	DietID    int   `json:"diet_id" validate:"required,gt=0"`
	StartDate *Date `json:"start_date,omitempty"`
	EndDate   *Date `json:"end_date,omitempty"`
}

func (in *UserDietInput) SetKeys(userID, dietID int) {
	in.UserID, in.DietID = userID, dietID
}

// PeriodValid проверяет, что дата окончания не раньше даты начала.
func (in UserDietInput) PeriodValid() bool {
	if in.StartDate == nil || in.EndDate == nil {
		return true
	}
	return !in.EndDate.Before(in.StartDate.Time)
}

// Check реализует Checker.
func (in *UserDietInput) Check() error {
	if !in.PeriodValid() {
		return ErrInvalidPeriod
	}
	return nil
}
