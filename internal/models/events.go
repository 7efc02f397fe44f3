package models

import "time"

// Ключи маршрутизации доменных событий.
const (
	EventUserProvisioned = "user.provisioned"
	EventProductLowStock = "product.low_stock"
)

// UserProvisionedEvent публикуется, когда пользователь впервые вошёл и был
// заведён в базе автоматически.
type UserProvisionedEvent struct {
	UserID     int       `json:"user_id"`
	AuthID     string    `json:"auth_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LowStockEvent публикуется, когда остаток товара опустился до порога.
type LowStockEvent struct {
	ProductID  int       `json:"product_id"`
	Name       string    `json:"name"`
	Stock      int       `json:"stock"`
	Threshold  int       `json:"threshold"`
	OccurredAt time.Time `json:"occurred_at"`
}
