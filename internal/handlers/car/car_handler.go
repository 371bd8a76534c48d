// internal/handlers/car/car_handler.go
package car

import (
	"net/http"
	"strconv"

	"fleetride-service/internal/domain/car"
	"fleetride-service/internal/pkg/response"
	service "fleetride-service/internal/service/car"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	carService *service.CarService
}

func NewCarHandler(carService *service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// Create registers a new fleet vehicle (admin)
func (h *CarHandler) Create(c *gin.Context) {
	var req car.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.carService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "car registered successfully", result)
}

// List returns cars, optionally filtered by status and capacity
func (h *CarHandler) List(c *gin.Context) {
	var filters car.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.carService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "cars retrieved", result)
}

// Get returns one car
func (h *CarHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid car ID", err)
		return
	}

	result, err := h.carService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "car retrieved", result)
}

// Update patches car info (admin)
func (h *CarHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid car ID", err)
		return
	}

	var req car.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.carService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "car updated", result)
}

// Delete parks the car in maintenance (admin)
func (h *CarHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid car ID", err)
		return
	}

	if err := h.carService.Decommission(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "car decommissioned", nil)
}
