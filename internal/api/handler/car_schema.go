package handler

import "time"

// createCarRequest is validated before the service is called; required fields
// follow the inventory schema (category and stock details are optional).
type createCarRequest struct {
	Make        string  `json:"make"        validate:"required"`
	CarModel    string  `json:"model"       validate:"required"`
	Year        int     `json:"year"        validate:"required,gte=1886,lte=2100"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Category    string  `json:"category"    validate:"omitempty,oneof=sedan suv truck coupe convertible hatchback"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Quantity    *int    `json:"quantity"    validate:"omitempty,gte=0"`
	InStock     *bool   `json:"inStock"`
}

// updateCarRequest accepts any subset of the car fields; absent fields are
// left untouched.
type updateCarRequest struct {
	Make        *string  `json:"make"        validate:"omitempty,min=1"`
	CarModel    *string  `json:"model"       validate:"omitempty,min=1"`
	Year        *int     `json:"year"        validate:"omitempty,gte=1886,lte=2100"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0"`
	Category    *string  `json:"category"    validate:"omitempty,oneof=sedan suv truck coupe convertible hatchback"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Quantity    *int     `json:"quantity"    validate:"omitempty,gte=0"`
	InStock     *bool    `json:"inStock"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes.

type carResponse struct {
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

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listCarsData struct {
	Cars       []carResponse      `json:"cars"`
	Pagination paginationResponse `json:"pagination"`
}
