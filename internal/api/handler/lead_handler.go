package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/core/domain"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// LeadHandler serves the sales pipeline: leads and sourcing requests.
type LeadHandler struct {
	leads    ports.LeadService
	sourcing ports.SourcingService
}

func NewLeadHandler(leads ports.LeadService, sourcing ports.SourcingService) *LeadHandler {
	return &LeadHandler{leads: leads, sourcing: sourcing}
}

type leadListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=new contacted qualified won lost"`
	Source string `query:"source" validate:"omitempty,oneof=inquiry sell_my_car"`
	pageQuery
}

type sourcingListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=open in_progress fulfilled closed"`
	pageQuery
}

// List godoc
//
// @Summary      List leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Pipeline status"
// @Param        source  query     string  false  "inquiry or sell_my_car"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  map[string]any
// @Router       /v1/leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	var q leadListQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	page, err := h.leads.List(c.Request().Context(), ports.LeadFilter{
		Status:      q.Status,
		Source:      q.Source,
		PageRequest: q.request(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPage(page, identity[*domain.Lead]))
}

// Get godoc
//
// @Summary      Get a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  domain.Lead
// @Failure      404  {object}  map[string]string
// @Router       /v1/leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	lead, err := h.leads.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lead)
}

// UpdateStatus godoc
//
// @Summary      Move a lead through the pipeline
// @Tags         leads
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string         true  "Lead ID"
// @Param        body  body  statusRequest  true  "Status"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if err := h.leads.UpdateStatus(c.Request().Context(), c.Param("id"), domain.LeadStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete godoc
//
// @Summary      Delete a lead
// @Tags         leads
// @Security     BearerAuth
// @Param        id   path  string  true  "Lead ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	if err := h.leads.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSourcing godoc
//
// @Summary      List sourcing requests
// @Tags         sourcing
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "open, in_progress, fulfilled or closed"
// @Success      200     {object}  map[string]any
// @Router       /v1/sourcing-requests [get]
func (h *LeadHandler) ListSourcing(c echo.Context) error {
	var q sourcingListQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	page, err := h.sourcing.List(c.Request().Context(), ports.SourcingFilter{
		Status:      q.Status,
		PageRequest: q.request(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPage(page, identity[*domain.SourcingRequest]))
}

// UpdateSourcingStatus godoc
//
// @Summary      Update a sourcing request's status
// @Tags         sourcing
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string         true  "Sourcing request ID"
// @Param        body  body  statusRequest  true  "Status"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/sourcing-requests/{id}/status [patch]
func (h *LeadHandler) UpdateSourcingStatus(c echo.Context) error {
	var req statusRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if err := h.sourcing.UpdateStatus(c.Request().Context(), c.Param("id"), domain.SourcingStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
