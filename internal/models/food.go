package models

import "strconv"

// Food продукт питания, калорийность указана на 100 г.
type Food struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
}

// FoodInput тело запроса для продукта питания.
type FoodInput struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Description     string  `json:"description" validate:"max=2000"`
	CaloriesPer100g float64 `json:"calories_per_100g" validate:"gte=0"`
}

func (f Food) CSVHeader() []string {
	return []string{"id", "name", "description", "calories_per_100g"}
}

func (f Food) CSVRecord() []string {
	return []string{
		strconv.Itoa(f.ID), f.Name, f.Description,
		strconv.FormatFloat(f.CaloriesPer100g, 'f', -1, 64),
	}
}
