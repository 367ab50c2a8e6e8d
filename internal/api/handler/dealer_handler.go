package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/core/ports"
)

type DealerHandler struct {
	service ports.DealerService
}

func NewDealerHandler(service ports.DealerService) *DealerHandler {
	return &DealerHandler{service: service}
}

type dealerSettingsRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	LeadEmail string `json:"lead_email"`
}

// GetSettings godoc
//
// @Summary      Get the caller's dealership settings
// @Tags         dealer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Dealer
// @Router       /v1/dealer/settings [get]
func (h *DealerHandler) GetSettings(c echo.Context) error {
	d, err := h.service.GetSettings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// UpdateSettings godoc
//
// @Summary      Update the caller's dealership settings
// @Tags         dealer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dealerSettingsRequest  true  "Settings"
// @Success      200   {object}  domain.Dealer
// @Failure      422   {object}  map[string]any
// @Router       /v1/dealer/settings [put]
func (h *DealerHandler) UpdateSettings(c echo.Context) error {
	var req dealerSettingsRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	d, err := h.service.UpdateSettings(c.Request().Context(), ports.DealerSettings{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		LeadEmail: req.LeadEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
