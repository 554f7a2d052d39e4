package ports

import (
	"context"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// CreateCarInput carries all data needed to create a new inventory record.
type CreateCarInput struct {
	Make        string
	CarModel    string
	Year        int
	Price       float64
	Category    string
	Description string
	Quantity    int
	InStock     bool
}

// ListCarsInput carries all parameters for the list endpoint.
type ListCarsInput struct {
	Make     string
	Category string
	Search   string
	Page     int
	Limit    int
}

// ListCarsResult is returned by List.
type ListCarsResult struct {
	Items      []*domain.Car
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CarService defines use-case operations for the car inventory.
type CarService interface {
	Create(ctx context.Context, input CreateCarInput) (*domain.Car, error)
	List(ctx context.Context, input ListCarsInput) (*ListCarsResult, error)
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	UpdateByID(ctx context.Context, id string, update CarUpdate) (*domain.Car, error)
	DeleteByID(ctx context.Context, id string) (*domain.Car, error)
}
