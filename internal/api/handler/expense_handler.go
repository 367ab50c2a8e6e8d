package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

type ExpenseHandler struct {
	service ports.ExpenseService
}

func NewExpenseHandler(service ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: service}
}

// date accepts either a calendar date (2006-01-02) or an RFC 3339 timestamp,
// in JSON bodies and in query strings.
type date struct{ time.Time }

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

func (d *date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler.
func (d *date) UnmarshalParam(s string) error {
	if s == "" {
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type expenseRequest struct {
	VehicleID   string                 `json:"vehicle_id"`
	Category    domain.ExpenseCategory `json:"category"`
	Amount      float64                `json:"amount"`
	Description string                 `json:"description"`
	IncurredOn  date                   `json:"incurred_on"`
}

func (r expenseRequest) input() ports.ExpenseInput {
	return ports.ExpenseInput{
		VehicleID:   r.VehicleID,
		Category:    r.Category,
		Amount:      r.Amount,
		Description: r.Description,
		IncurredOn:  r.IncurredOn.Time,
	}
}

type expenseListQuery struct {
	VehicleID string `query:"vehicle_id"`
	Category  string `query:"category" validate:"omitempty,oneof=reconditioning transport marketing overhead other"`
	From      date   `query:"from"`
	To        date   `query:"to"`
	pageQuery
}

// List godoc
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        vehicle_id  query     string  false  "Vehicle ID"
// @Param        category    query     string  false  "Category"
// @Param        from        query     string  false  "Earliest incurred date (YYYY-MM-DD)"
// @Param        to          query     string  false  "Latest incurred date (YYYY-MM-DD)"
// @Success      200         {object}  map[string]any
// @Router       /v1/expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	var q expenseListQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), ports.ExpenseFilter{
		VehicleID:   q.VehicleID,
		Category:    q.Category,
		From:        q.From.Time,
		To:          q.To.Time,
		PageRequest: q.request(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPage(page, identity[*domain.Expense]))
}

// Create godoc
//
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      expenseRequest  true  "Expense"
// @Success      201   {object}  domain.Expense
// @Failure      422   {object}  map[string]any
// @Router       /v1/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req expenseRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	e, err := h.service.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// Update godoc
//
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Expense ID"
// @Param        body  body      expenseRequest  true  "Expense"
// @Success      200   {object}  domain.Expense
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	var req expenseRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	e, err := h.service.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Delete godoc
//
// @Summary      Delete an expense
// @Tags         expenses
// @Security     BearerAuth
// @Param        id   path  string  true  "Expense ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
