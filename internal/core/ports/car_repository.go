package ports

import (
	"context"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// ListCarsFilter carries all query parameters for listing cars.
type ListCarsFilter struct {
	Make     string // optional: exact match on make
	Category string // optional: exact match on category
	Search   string // optional: partial match on make or model
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// CarUpdate holds a partial field replacement. Nil fields are left untouched.
type CarUpdate struct {
	Make        *string
	CarModel    *string
	Year        *int
	Price       *float64
	Category    *string
	Description *string
	Quantity    *int
	InStock     *bool
}

// Empty reports whether the update carries no fields at all.
func (u CarUpdate) Empty() bool {
	return u.Make == nil && u.CarModel == nil && u.Year == nil && u.Price == nil &&
		u.Category == nil && u.Description == nil && u.Quantity == nil && u.InStock == nil
}

// CarRepository defines persistence operations for cars.
// All lookups by id return domain.ErrCarNotFound when no record matches,
// including ids that cannot be a store-assigned identifier.
type CarRepository interface {
	Insert(ctx context.Context, car *domain.Car) (*domain.Car, error)
	// List returns a page of cars matching filter and the total count.
	List(ctx context.Context, filter ListCarsFilter) ([]*domain.Car, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Car, error)
	// UpdateByID applies a partial update and returns the post-update record.
	UpdateByID(ctx context.Context, id string, update CarUpdate) (*domain.Car, error)
	// DeleteByID removes the record and returns it.
	DeleteByID(ctx context.Context, id string) (*domain.Car, error)
}
