package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// CarService is a thin pass-through between the HTTP layer and the car store.
type CarService struct {
	repo ports.CarRepository
	log  zerolog.Logger
}

func NewCarService(repo ports.CarRepository, log zerolog.Logger) *CarService {
	return &CarService{repo: repo, log: log}
}

func (s *CarService) Create(ctx context.Context, input ports.CreateCarInput) (*domain.Car, error) {
	now := time.Now().UTC()
	car := &domain.Car{
		Make:        input.Make,
		CarModel:    input.CarModel,
		Year:        input.Year,
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
		Quantity:    input.Quantity,
		InStock:     input.InStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, car)
	if err != nil {
		s.log.Error().Err(err).Str("make", input.Make).Msg("failed to create car")
		return nil, err
	}

	s.log.Info().Str("car_id", created.ID).Str("make", created.Make).Msg("car created")
	return created, nil
}

// List returns a page of cars matching the filter. An empty result is not an
// error.
func (s *CarService) List(ctx context.Context, input ports.ListCarsInput) (*ports.ListCarsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListCarsFilter{
		Make:     input.Make,
		Category: input.Category,
		Search:   input.Search,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list cars")
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListCarsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *CarService) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CarService) UpdateByID(ctx context.Context, id string, update ports.CarUpdate) (*domain.Car, error) {
	car, err := s.repo.UpdateByID(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("car_id", car.ID).Msg("car updated")
	return car, nil
}

func (s *CarService) DeleteByID(ctx context.Context, id string) (*domain.Car, error) {
	car, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("car_id", car.ID).Msg("car deleted")
	return car, nil
}
