package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// VehicleHandler serves the authenticated inventory endpoints.
type VehicleHandler struct {
	service ports.VehicleService
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// vehicleRequest has no dealer field: ownership always comes from the session.
type vehicleRequest struct {
	StockNumber string               `json:"stock_number"`
	VIN         string               `json:"vin"`
	Year        int                  `json:"year"`
	Make        string               `json:"make"`
	Model       string               `json:"model"`
	Trim        string               `json:"trim"`
	Price       float64              `json:"price"`
	Mileage     int                  `json:"mileage"`
	Description string               `json:"description"`
	Images      []string             `json:"images"`
	Status      domain.VehicleStatus `json:"status"`
}

func (r vehicleRequest) input() ports.VehicleInput {
	return ports.VehicleInput{
		StockNumber: r.StockNumber,
		VIN:         r.VIN,
		Year:        r.Year,
		Make:        r.Make,
		Model:       r.Model,
		Trim:        r.Trim,
		Price:       r.Price,
		Mileage:     r.Mileage,
		Description: r.Description,
		Images:      r.Images,
		Status:      r.Status,
	}
}

type vehicleListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=draft published sold"`
	Search string `query:"q"`
	pageQuery
}

type statusRequest struct {
	Status string `json:"status"`
}

// List godoc
//
// @Summary      List inventory
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "draft, published or sold"
// @Param        q       query     string  false  "Search make, model, VIN or stock number"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  map[string]any
// @Router       /v1/vehicles [get]
func (h *VehicleHandler) List(c echo.Context) error {
	var q vehicleListQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), ports.VehicleFilter{
		Status:      q.Status,
		Search:      q.Search,
		PageRequest: q.request(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPage(page, identity[*domain.Vehicle]))
}

// Get godoc
//
// @Summary      Get a vehicle
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vehicle ID"
// @Success      200  {object}  domain.Vehicle
// @Failure      404  {object}  map[string]string
// @Router       /v1/vehicles/{id} [get]
func (h *VehicleHandler) Get(c echo.Context) error {
	v, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Create godoc
//
// @Summary      Add a vehicle to inventory
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      vehicleRequest  true  "Vehicle"
// @Success      201   {object}  domain.Vehicle
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/vehicles [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	var req vehicleRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	v, err := h.service.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, v)
}

// Update godoc
//
// @Summary      Replace a vehicle's details
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Vehicle ID"
// @Param        body  body      vehicleRequest  true  "Vehicle"
// @Success      200   {object}  domain.Vehicle
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/vehicles/{id} [put]
func (h *VehicleHandler) Update(c echo.Context) error {
	var req vehicleRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	v, err := h.service.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// SetStatus godoc
//
// @Summary      Publish, unpublish or mark a vehicle sold
// @Tags         vehicles
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string         true  "Vehicle ID"
// @Param        body  body  statusRequest  true  "Status"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/vehicles/{id}/status [patch]
func (h *VehicleHandler) SetStatus(c echo.Context) error {
	var req statusRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if err := h.service.SetStatus(c.Request().Context(), c.Param("id"), domain.VehicleStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete godoc
//
// @Summary      Delete a vehicle
// @Tags         vehicles
// @Security     BearerAuth
// @Param        id   path  string  true  "Vehicle ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
