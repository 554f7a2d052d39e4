package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
	"github.com/rentwheels/rental-api/pkg/logger"
)

type stubCarRepo struct {
	cars       map[string]*domain.Car
	nextID     int
	lastFilter ports.ListCarsFilter
	listErr    error
}

func newStubCarRepo() *stubCarRepo {
	return &stubCarRepo{cars: make(map[string]*domain.Car)}
}

func cloneCar(c *domain.Car) *domain.Car {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCarRepo) Insert(_ context.Context, car *domain.Car) (*domain.Car, error) {
	r.nextID++
	created := cloneCar(car)
	created.ID = fmt.Sprintf("car_%d", r.nextID)
	r.cars[created.ID] = cloneCar(created)
	return created, nil
}

func (r *stubCarRepo) List(_ context.Context, filter ports.ListCarsFilter) ([]*domain.Car, int64, error) {
	r.lastFilter = filter
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	out := make([]*domain.Car, 0, len(r.cars))
	for _, c := range r.cars {
		out = append(out, cloneCar(c))
	}
	return out, int64(len(out)), nil
}

func (r *stubCarRepo) FindByID(_ context.Context, id string) (*domain.Car, error) {
	c, ok := r.cars[id]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	return cloneCar(c), nil
}

func (r *stubCarRepo) UpdateByID(_ context.Context, id string, update ports.CarUpdate) (*domain.Car, error) {
	c, ok := r.cars[id]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	if update.Price != nil {
		c.Price = *update.Price
	}
	if update.Make != nil {
		c.Make = *update.Make
	}
	return cloneCar(c), nil
}

func (r *stubCarRepo) DeleteByID(_ context.Context, id string) (*domain.Car, error) {
	c, ok := r.cars[id]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	delete(r.cars, id)
	return c, nil
}

func newTestCarService(repo *stubCarRepo) *CarService {
	logger.Reset()
	return NewCarService(repo, logger.Init(logger.Options{Level: "error"}))
}

func TestCarService_Create(t *testing.T) {
	repo := newStubCarRepo()
	svc := newTestCarService(repo)

	car, err := svc.Create(context.Background(), ports.CreateCarInput{
		Make:     "Toyota",
		CarModel: "Corolla",
		Year:     2020,
		Price:    25,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if car.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if car.CreatedAt.IsZero() || car.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
	if car.Make != "Toyota" || car.CarModel != "Corolla" || car.Year != 2020 || car.Price != 25 {
		t.Fatalf("unexpected car: %+v", car)
	}
}

func TestCarService_List_Defaults(t *testing.T) {
	repo := newStubCarRepo()
	svc := newTestCarService(repo)

	result, err := svc.List(context.Background(), ports.ListCarsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != defaultPageLimit {
		t.Fatalf("expected default paging, got %+v", repo.lastFilter)
	}
	if result.Total != 0 || len(result.Items) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if result.TotalPages != 0 {
		t.Fatalf("expected 0 total pages, got %d", result.TotalPages)
	}
}

func TestCarService_List_CapsLimit(t *testing.T) {
	repo := newStubCarRepo()
	svc := newTestCarService(repo)

	if _, err := svc.List(context.Background(), ports.ListCarsInput{Page: -3, Limit: 10_000}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", repo.lastFilter.Page)
	}
	if repo.lastFilter.Limit != maxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxPageLimit, repo.lastFilter.Limit)
	}
}

func TestCarService_List_TotalPages(t *testing.T) {
	repo := newStubCarRepo()
	svc := newTestCarService(repo)

	for i := 0; i < 11; i++ {
		_, _ = svc.Create(context.Background(), ports.CreateCarInput{Make: "Ford", CarModel: "Focus", Year: 2019, Price: 20})
	}

	result, err := svc.List(context.Background(), ports.ListCarsInput{Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 11 || result.TotalPages != 2 {
		t.Fatalf("expected 11 total across 2 pages, got total=%d pages=%d", result.Total, result.TotalPages)
	}
}

func TestCarService_GetByID_NotFound(t *testing.T) {
	svc := newTestCarService(newStubCarRepo())

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
}

func TestCarService_UpdateByID(t *testing.T) {
	repo := newStubCarRepo()
	svc := newTestCarService(repo)

	created, _ := svc.Create(context.Background(), ports.CreateCarInput{Make: "Toyota", CarModel: "Corolla", Year: 2020, Price: 25})

	price := 30.0
	updated, err := svc.UpdateByID(context.Background(), created.ID, ports.CarUpdate{Price: &price})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != 30 {
		t.Fatalf("expected price 30, got %v", updated.Price)
	}
	if updated.Make != "Toyota" || updated.CarModel != "Corolla" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestCarService_UpdateByID_NotFound(t *testing.T) {
	svc := newTestCarService(newStubCarRepo())

	price := 30.0
	if _, err := svc.UpdateByID(context.Background(), "missing", ports.CarUpdate{Price: &price}); !errors.Is(err, domain.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
}

func TestCarService_DeleteByID(t *testing.T) {
	repo := newStubCarRepo()
	svc := newTestCarService(repo)

	created, _ := svc.Create(context.Background(), ports.CreateCarInput{Make: "Toyota", CarModel: "Corolla", Year: 2020, Price: 25})

	deleted, err := svc.DeleteByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("expected deleted record to be returned")
	}

	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, domain.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound after delete, got %v", err)
	}
}
