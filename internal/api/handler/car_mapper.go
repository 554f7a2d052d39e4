package handler

import (
	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateCarInput(req createCarRequest) ports.CreateCarInput {
	in := ports.CreateCarInput{
		Make:        req.Make,
		CarModel:    req.CarModel,
		Year:        req.Year,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
	}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}
	if req.InStock != nil {
		in.InStock = *req.InStock
	} else {
		in.InStock = in.Quantity > 0
	}
	return in
}

func toCarUpdate(req updateCarRequest) ports.CarUpdate {
	return ports.CarUpdate{
		Make:        req.Make,
		CarModel:    req.CarModel,
		Year:        req.Year,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Quantity:    req.Quantity,
		InStock:     req.InStock,
	}
}

// --- Service result → HTTP response ---

func toCarResponse(car *domain.Car) carResponse {
	return carResponse{
		ID:          car.ID,
		Make:        car.Make,
		CarModel:    car.CarModel,
		Year:        car.Year,
		Price:       car.Price,
		Category:    car.Category,
		Description: car.Description,
		Quantity:    car.Quantity,
		InStock:     car.InStock,
		CreatedAt:   car.CreatedAt.UTC(),
		UpdatedAt:   car.UpdatedAt.UTC(),
	}
}

func toListCarsData(r *ports.ListCarsResult) listCarsData {
	cars := make([]carResponse, len(r.Items))
	for i, car := range r.Items {
		cars[i] = toCarResponse(car)
	}
	return listCarsData{
		Cars: cars,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
