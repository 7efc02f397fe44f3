package models

import "strconv"

// Product товар интернет-магазина.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// ProductInput тело запроса для товара.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

func (p Product) CSVHeader() []string {
	return []string{"id", "name", "description", "price", "stock"}
}

func (p Product) CSVRecord() []string {
	return []string{
		strconv.Itoa(p.ID), p.Name, p.Description,
		strconv.FormatFloat(p.Price, 'f', 2, 64), strconv.Itoa(p.Stock),
	}
}
