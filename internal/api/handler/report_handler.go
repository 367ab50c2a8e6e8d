package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/core/ports"
)

type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type summaryResponse struct {
	VehiclesByStatus map[string]int64 `json:"vehicles_by_status"`
	LeadsByStatus    map[string]int64 `json:"leads_by_status"`
	ExpenseTotal     float64          `json:"expense_total"`
	ExpenseCount     int64            `json:"expense_count"`
}

// Summary godoc
//
// @Summary      Dealership summary report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Router       /v1/reports/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	s, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{
		VehiclesByStatus: s.VehiclesByStatus,
		LeadsByStatus:    s.LeadsByStatus,
		ExpenseTotal:     s.ExpenseTotal,
		ExpenseCount:     s.ExpenseCount,
	})
}
