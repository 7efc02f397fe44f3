package models

import "strconv"

// Diet план питания с целевыми калориями и белком.
type Diet struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
	Protein     int    `json:"protein"`
}

// DietInput тело запроса для диеты.
type DietInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Calories    int    `json:"calories" validate:"gte=0"`
	Protein     int    `json:"protein" validate:"gte=0"`
}

func (d Diet) CSVHeader() []string {
	return []string{"id", "name", "description", "calories", "protein"}
}

func (d Diet) CSVRecord() []string {
	return []string{strconv.Itoa(d.ID), d.Name, d.Description, strconv.Itoa(d.Calories), strconv.Itoa(d.Protein)}
}
