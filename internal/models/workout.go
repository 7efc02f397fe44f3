package models

import "strconv"

// Workout тренировка. UserID владелец тренировки, может отсутствовать.
type Workout struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
	UserID   *int   `json:"user_id,omitempty"`
}

// WorkoutInput тело запроса для тренировки.
type WorkoutInput struct {
	Title    string `json:"title" validate:"required,max=100"`
	Category string `json:"category" validate:"max=50"`
	Notes    string `json:"notes" validate:"max=2000"`
	UserID   *int   `json:"user_id,omitempty" validate:"omitempty,gt=0"`
}

func (w Workout) CSVHeader() []string {
	return []string{"id", "title", "category", "notes", "user_id"}
}

func (w Workout) CSVRecord() []string {
	userID := ""
	if w.UserID != nil {
		userID = strconv.Itoa(*w.UserID)
	}
	return []string{strconv.Itoa(w.ID), w.Title, w.Category, w.Notes, userID}
}
