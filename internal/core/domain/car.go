package domain

import (
	"errors"
	"time"
)

var ErrCarNotFound = errors.New("car not found")

// Car is an inventory record. The identifier is assigned by the store on
// insert and immutable afterwards.
type Car struct {
	ID          string    `json:"id"`
	Make        string    `json:"make"`
	CarModel    string    `json:"model"`
	Year        int       `json:"year"`
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
