package model

import "time"

// CustomerSession identifies a customer inside one store only.
type CustomerSession struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	StoreID   string    `json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Contact is the last-used name/phone, kept per browser session for pre-filling checkout.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
