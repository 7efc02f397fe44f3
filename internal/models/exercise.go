package models

import "strconv"

// Exercise упражнение. ExecutionTime длительность выполнения в минутах.
type Exercise struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ExecutionTime int    `json:"execution_time"`
}

// ExerciseInput тело запроса для упражнения.
type ExerciseInput struct {
	Name          string `json:"name" validate:"required,max=100"`
	Description   string `json:"description" validate:"max=2000"`
	ExecutionTime int    `json:"execution_time" validate:"gte=0"`
}

func (e Exercise) CSVHeader() []string {
	return []string{"id", "name", "description", "execution_time"}
}

func (e Exercise) CSVRecord() []string {
	return []string{strconv.Itoa(e.ID), e.Name, e.Description, strconv.Itoa(e.ExecutionTime)}
}
