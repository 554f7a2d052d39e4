package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rentwheels/rental-api/internal/api/metrics"
	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

// CarHandler handles HTTP requests for car inventory operations.
type CarHandler struct {
	service ports.CarService
}

func NewCarHandler(service ports.CarService) *CarHandler {
	return &CarHandler{service: service}
}

// Create handles POST /v1/cars.
//
// @Summary      Create a car
// @Tags         cars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCarRequest  true  "Car details"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  failureResponse
// @Failure      401   {object}  failureResponse
// @Failure      403   {object}  failureResponse
// @Router       /v1/cars [post]
func (h *CarHandler) Create(c echo.Context) error {
	var req createCarRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	car, err := h.service.Create(c.Request().Context(), toCreateCarInput(req))
	if err != nil {
		return err
	}

	metrics.CarsCreatedTotal.Inc()
	return respond(c, http.StatusCreated, "A car is created successfully!", toCarResponse(car))
}

// List handles GET /v1/cars.
//
// @Summary      List cars
// @Tags         cars
// @Produce      json
// @Security     BearerAuth
// @Param        make      query     string  false  "Filter by make"
// @Param        category  query     string  false  "Filter by category"
// @Param        search    query     string  false  "Partial match on make or model"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  successResponse
// @Failure      401       {object}  failureResponse
// @Router       /v1/cars [get]
func (h *CarHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListCarsInput{
		Make:     c.QueryParam("make"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Cars retrieved successfully!", toListCarsData(result))
}

// Get handles GET /v1/cars/:carId.
//
// @Summary      Get a car by id
// @Tags         cars
// @Produce      json
// @Security     BearerAuth
// @Param        carId  path      string  true  "Car identifier"
// @Success      200    {object}  successResponse
// @Failure      401    {object}  failureResponse
// @Failure      404    {object}  failureResponse
// @Router       /v1/cars/{carId} [get]
func (h *CarHandler) Get(c echo.Context) error {
	carID := c.Param("carId")

	car, err := h.service.GetByID(c.Request().Context(), carID)
	if err != nil {
		if errors.Is(err, domain.ErrCarNotFound) {
			return respondError(c, http.StatusNotFound, fmt.Sprintf("Car with the id %s not found!", carID))
		}
		return err
	}

	return respond(c, http.StatusOK, "Car retrieved successfully!", toCarResponse(car))
}

// Update handles PUT /v1/cars/:carId with a partial field replacement.
//
// @Summary      Update a car
// @Tags         cars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        carId  path      string            true  "Car identifier"
// @Param        body   body      updateCarRequest  true  "Fields to replace"
// @Success      200    {object}  successResponse
// @Failure      400    {object}  failureResponse
// @Failure      401    {object}  failureResponse
// @Failure      404    {object}  failureResponse
// @Router       /v1/cars/{carId} [put]
func (h *CarHandler) Update(c echo.Context) error {
	carID := c.Param("carId")

	var req updateCarRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	car, err := h.service.UpdateByID(c.Request().Context(), carID, toCarUpdate(req))
	if err != nil {
		if errors.Is(err, domain.ErrCarNotFound) {
			return respondError(c, http.StatusNotFound, fmt.Sprintf("Car with the id %s not found!", carID))
		}
		return err
	}

	metrics.CarsUpdatedTotal.Inc()
	return respond(c, http.StatusOK, fmt.Sprintf("Successfully updated the car with the id %s!", carID), toCarResponse(car))
}

// Delete handles DELETE /v1/cars/:carId.
//
// @Summary      Delete a car
// @Tags         cars
// @Produce      json
// @Security     BearerAuth
// @Param        carId  path      string  true  "Car identifier"
// @Success      200    {object}  successResponse
// @Failure      401    {object}  failureResponse
// @Failure      404    {object}  failureResponse
// @Router       /v1/cars/{carId} [delete]
func (h *CarHandler) Delete(c echo.Context) error {
	carID := c.Param("carId")

	if _, err := h.service.DeleteByID(c.Request().Context(), carID); err != nil {
		if errors.Is(err, domain.ErrCarNotFound) {
			return respondError(c, http.StatusNotFound, fmt.Sprintf("Car with the id %s not found!", carID))
		}
		return err
	}

	metrics.CarsDeletedTotal.Inc()
	return respond(c, http.StatusOK, fmt.Sprintf("Successfully deleted the car with the id %s!", carID), map[string]any{})
}
