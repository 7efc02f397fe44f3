package models

import "strconv"

// Client клиент фитнес-клуба.
type Client struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Goal  string `json:"goal"`
}

// ClientInput тело запроса для клиента.
type ClientInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
	Goal  string `json:"goal" validate:"max=1000"`
}

func (c Client) CSVHeader() []string {
	return []string{"id", "name", "email", "phone", "goal"}
}

func (c Client) CSVRecord() []string {
	return []string{strconv.Itoa(c.ID), c.Name, c.Email, c.Phone, c.Goal}
}
